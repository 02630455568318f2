package schedule

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeParticipants(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want []string
	}{
		{name: "empty", ref: "", want: nil},
		{name: "blank", ref: "   ", want: nil},
		{name: "single", ref: "s1", want: []string{"s1"}},
		{name: "multiple", ref: "s1,s2,s3", want: []string{"s1", "s2", "s3"}},
		{name: "whitespace trimmed", ref: "s1, s2 ,s3", want: []string{"s1", "s2", "s3"}},
		{name: "blank parts skipped", ref: "s1,,s2", want: []string{"s1", "s2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeParticipants(tt.ref)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeParticipants() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("round trip", func(t *testing.T) {
		ids := []string{"s1", "s2", "s3"}
		if got := DecodeParticipants(EncodeParticipants(ids)); !reflect.DeepEqual(got, ids) {
			t.Errorf("round trip = %v, want %v", got, ids)
		}
	})
}

func TestResolveNames(t *testing.T) {
	directory := map[string]string{
		"s1": "Ana",
		"s2": "Bruno",
	}

	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{name: "all known", ids: []string{"s1", "s2"}, want: []string{"Ana", "Bruno"}},
		{name: "unknown gets fallback label", ids: []string{"s1", "gone"}, want: []string{"Ana", UnknownStudentLabel}},
		{name: "order preserved", ids: []string{"s2", "s1"}, want: []string{"Bruno", "Ana"}},
		{name: "empty", ids: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveNames(tt.ids, directory); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

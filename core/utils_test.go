package core

import (
	"encoding/json"
	"testing"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		lower bool
		want  string
	}{
		{name: "empty", s: "", want: ""},
		{name: "spaces trimmed", s: "  Ana Maria  ", want: "Ana Maria"},
		{name: "lowered", s: "  AweSome ", lower: true, want: "awesome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.s, tt.lower); got != tt.want {
				t.Errorf("CleanString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLooseFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want float64
	}{
		{name: "plain number", data: `1.5`, want: 1.5},
		{name: "integer", data: `3`, want: 3},
		{name: "zero", data: `0`, want: 0},
		{name: "quoted number", data: `"2.25"`, want: 2.25},
		{name: "garbage coerced to 0", data: `"abc"`, want: 0},
		{name: "empty string coerced to 0", data: `""`, want: 0},
		{name: "null coerced to 0", data: `null`, want: 0},
		{name: "NaN coerced to 0", data: `"NaN"`, want: 0},
		{name: "Inf coerced to 0", data: `"+Inf"`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lf LooseFloat
			if err := json.Unmarshal([]byte(tt.data), &lf); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if lf.Float64() != tt.want {
				t.Errorf("Float64() = %v, want %v", lf.Float64(), tt.want)
			}
		})
	}

	t.Run("struct field", func(t *testing.T) {
		var dst struct {
			Hours LooseFloat `json:"hours"`
		}
		if err := json.Unmarshal([]byte(`{"hours": "1,5"}`), &dst); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if dst.Hours.Float64() != 0 {
			t.Errorf("Float64() = %v, want 0", dst.Hours.Float64())
		}
	})
}

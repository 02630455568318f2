package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestStartEndOfWeek(t *testing.T) {
	lisbon, err := time.LoadLocation("Europe/Lisbon")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	tests := []struct {
		name      string
		t         time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid week",
			t:         time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC), // Wednesday
			wantStart: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monday is its own week start",
			t:         time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday belongs to the preceding monday",
			t:         time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC),
			wantStart: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "location preserved",
			t:         time.Date(2024, time.March, 6, 10, 0, 0, 0, lisbon),
			wantStart: time.Date(2024, time.March, 4, 0, 0, 0, 0, lisbon),
			wantEnd:   time.Date(2024, time.March, 10, 0, 0, 0, 0, lisbon),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.t); !got.Equal(tt.wantStart) {
				t.Errorf("StartOfWeek() = %v, want %v", got, tt.wantStart)
			}
			if got := EndOfWeek(tt.t); !got.Equal(tt.wantEnd) {
				t.Errorf("EndOfWeek() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestCursor(t *testing.T) {
	ref := time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC) // Wednesday 15:30
	c := NewCursor(ref)

	c.Advance()
	if want := ref.AddDate(0, 0, 7); !c.Current.Equal(want) {
		t.Errorf("Advance(): Current = %v, want %v", c.Current, want)
	}
	if c.Current.Hour() != 15 || c.Current.Minute() != 30 {
		t.Error("Advance() must preserve the time-of-day")
	}
	if want := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC); !c.WeekStart().Equal(want) {
		t.Errorf("WeekStart() = %v, want %v", c.WeekStart(), want)
	}

	c.Retreat()
	c.Retreat()
	if want := ref.AddDate(0, 0, -7); !c.Current.Equal(want) {
		t.Errorf("Retreat(): Current = %v, want %v", c.Current, want)
	}
}

func TestMonthWeeks(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  []int
	}{
		{name: "march 2024", year: 2024, month: time.March, want: []int{9, 10, 11, 12, 13}},
		{name: "january 2024", year: 2024, month: time.January, want: []int{1, 2, 3, 4, 5}},
		{name: "february 2021 (exactly 4 weeks)", year: 2021, month: time.February, want: []int{5, 6, 7, 8}},
		{name: "december 2024", year: 2024, month: time.December, want: []int{48, 49, 50, 51, 52}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthWeeks(tt.year, tt.month); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MonthWeeks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextWeekNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{name: "empty ledger starts at 1", existing: nil, want: 1},
		{name: "one past the max", existing: []int{9, 10, 11}, want: 12},
		{name: "unordered input", existing: []int{11, 9, 10}, want: 12},
		{name: "gaps ignored", existing: []int{9, 12}, want: 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextWeekNumber(tt.existing); got != tt.want {
				t.Errorf("NextWeekNumber() = %v, want %v", got, tt.want)
			}
		})
	}
}

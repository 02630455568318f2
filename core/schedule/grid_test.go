package schedule

import (
	"testing"
	"time"
)

func TestCellFor(t *testing.T) {
	// Monday 2024-03-04
	day := func(hour, min int) time.Time {
		return time.Date(2024, time.March, 4, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		t    time.Time
		want Cell
	}{
		{name: "grid start", t: day(8, 0), want: Cell{Row: 0, Col: 0}},
		{name: "half past", t: day(8, 30), want: Cell{Row: 1, Col: 0}},
		{name: "mid morning", t: day(10, 0), want: Cell{Row: 4, Col: 0}},
		{name: "before grid start, no clamping", t: day(7, 0), want: Cell{Row: -2, Col: 0}},
		{name: "past grid end, no clamping", t: day(21, 30), want: Cell{Row: 27, Col: 0}},
		{name: "sunday column", t: time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC), want: Cell{Row: 0, Col: 6}},
		{name: "wednesday column", t: time.Date(2024, time.March, 6, 9, 30, 0, 0, time.UTC), want: Cell{Row: 3, Col: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellFor(tt.t); got != tt.want {
				t.Errorf("CellFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGeometryFor(t *testing.T) {
	at := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC) // Tuesday 09:00

	tests := []struct {
		name       string
		duration   float64
		wantHeight float64
	}{
		{name: "one hour", duration: 1, wantHeight: 2 * CellHeight},
		{name: "hour and a half", duration: 1.5, wantHeight: 3 * CellHeight},
		{name: "half hour", duration: 0.5, wantHeight: CellHeight},
		{name: "two hours", duration: 2, wantHeight: 4 * CellHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{StartsAt: at, DurationHours: tt.duration}
			rect := GeometryFor(s, 1)

			if rect.Height != tt.wantHeight {
				t.Errorf("Height = %v, want %v", rect.Height, tt.wantHeight)
			}
			if rect.Top != 2*CellHeight {
				t.Errorf("Top = %v, want %v", rect.Top, 2*CellHeight)
			}
			if rect.Left != colWidthPct {
				t.Errorf("Left = %v, want %v", rect.Left, colWidthPct)
			}
			if rect.Width != colWidthPct-colGutter {
				t.Errorf("Width = %v, want %v", rect.Width, colWidthPct-colGutter)
			}
		})
	}
}

func TestCellToDateTime(t *testing.T) {
	weekStart := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC) // Monday

	got := CellToDateTime(weekStart, 2, 14, 30)
	want := time.Date(2024, time.March, 6, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CellToDateTime() = %v, want %v", got, want)
	}

	// round trip: the cell of the produced instant maps back
	cell := CellFor(got)
	if cell != (Cell{Row: 13, Col: 2}) {
		t.Errorf("CellFor(CellToDateTime()) = %+v, want {13 2}", cell)
	}
}

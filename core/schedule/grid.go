package schedule

import "time"

// The weekly calendar is a half-hour-resolution grid: one column per day
// (Monday first) and two rows per hour between HoursStart and HoursEnd.
const (
	HoursStart = 8
	HoursEnd   = 20

	// CellHeight is the rendered height of one half-hour row, in pixels.
	CellHeight = 40

	daysPerWeek = 7
	colWidthPct = 100.0 / daysPerWeek
	colGutter   = 0.5
)

type (
	// Cell addresses one half-hour slot on the grid.
	Cell struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}

	// Rect is the rendered rectangle of a session: Top/Height in pixels,
	// Left/Width in percent of the grid width.
	Rect struct {
		Top    float64 `json:"top"`
		Height float64 `json:"height"`
		Left   float64 `json:"left"`
		Width  float64 `json:"width"`
	}
)

// weekdayIndex maps time.Weekday to the grid column (0=Monday .. 6=Sunday).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % daysPerWeek
}

// CellFor places an instant on the grid. Times outside [HoursStart,
// HoursEnd) still map to a (possibly negative or overflowing) row; the
// grid never clamps.
func CellFor(t time.Time) Cell {
	return Cell{
		Row: (t.Hour()-HoursStart)*2 + t.Minute()/30,
		Col: weekdayIndex(t),
	}
}

// GeometryFor computes the rectangle a session occupies in the given day
// column. Height scales linearly with duration: two cells per hour.
func GeometryFor(s Session, dayIndex int) Rect {
	row := CellFor(s.StartsAt).Row
	return Rect{
		Top:    float64(row) * CellHeight,
		Height: s.DurationHours * 2 * CellHeight,
		Left:   float64(dayIndex) * colWidthPct,
		Width:  colWidthPct - colGutter,
	}
}

// CellToDateTime is the inverse mapping: a (day, hour, minute) slot of the
// displayed week back to a concrete instant. Seconds and below are zeroed.
func CellToDateTime(weekStart time.Time, dayIndex, hour, minute int) time.Time {
	d := weekStart.AddDate(0, 0, dayIndex)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

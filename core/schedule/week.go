package schedule

import (
	"sort"
	"time"
)

// StartOfWeek returns the Monday of t's week, at midnight in t's location.
func StartOfWeek(t time.Time) time.Time {
	d := t.AddDate(0, 0, -weekdayIndex(t))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// EndOfWeek returns the Sunday of t's week, at midnight.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// Cursor tracks the currently displayed week via a single reference
// instant. Shifting preserves the time-of-day of the reference.
type Cursor struct {
	Current time.Time
}

func NewCursor(ref time.Time) *Cursor {
	return &Cursor{Current: ref}
}

func (c *Cursor) Advance() { c.Current = c.Current.AddDate(0, 0, 7) }
func (c *Cursor) Retreat() { c.Current = c.Current.AddDate(0, 0, -7) }

func (c *Cursor) WeekStart() time.Time { return StartOfWeek(c.Current) }
func (c *Cursor) WeekEnd() time.Time   { return EndOfWeek(c.Current) }

// MonthWeeks enumerates the ISO week numbers a month spans: starting from
// the first day of the month, step 7 days while still inside it, collecting
// each step's week number. Deduplicated, ascending. Partial boundary weeks
// are included.
func MonthWeeks(year int, month time.Month) []int {
	seen := make(map[int]bool)
	weeks := make([]int, 0, 6)

	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 7) {
		_, wk := d.ISOWeek()
		if !seen[wk] {
			seen[wk] = true
			weeks = append(weeks, wk)
		}
	}
	sort.Ints(weeks)
	return weeks
}

// NextWeekNumber picks the week number for an "add next week" action:
// one past the highest existing number, or 1 when none exist yet.
func NextWeekNumber(existing []int) int {
	max := 0
	for _, wk := range existing {
		if wk > max {
			max = wk
		}
	}
	return max + 1
}

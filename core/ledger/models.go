package ledger

import (
	"github.com/volatiletech/null/v8"

	"github.com/jdfgtrompete/explicacoes/core"
)

// Default hourly prices, applied when neither a student override nor a
// stored row rate exists. A stored rate of 0 is a real price and is
// honored: the fallback chain triggers on NULL only.
const (
	DefaultIndividualRate = 14
	DefaultGroupRate      = 10
)

// WeeklyRecord is one aggregate ledger row: hours and rates for one
// student in one week of a month. At most one row exists per
// (student, week, month, year).
type WeeklyRecord struct {
	ID              string       `json:"id"`
	OwnerID         string       `json:"-"`
	StudentID       string       `json:"student_id"`
	WeekNumber      int          `json:"week_number"`
	Month           int          `json:"month"`
	Year            int          `json:"year"`
	IndividualHours float64      `json:"individual_hours"`
	GroupHours      float64      `json:"group_hours"`
	IndividualRate  null.Float64 `json:"individual_rate"`
	GroupRate       null.Float64 `json:"group_rate"`
}

// StudentRate is a per-student price override; at most one per student.
// Either side may be NULL to override only one class type.
type StudentRate struct {
	StudentID  string       `json:"student_id"`
	OwnerID    string       `json:"-"`
	Individual null.Float64 `json:"individual_rate"`
	Group      null.Float64 `json:"group_rate"`
}

// UpdateRecord carries hour/rate edits for a weekly record. Hours use
// LooseFloat: malformed numeric input is coerced to 0, never rejected.
// Rates stay nullable so a cleared rate falls back down the chain.
type UpdateRecord struct {
	IndividualHours *core.LooseFloat `json:"individual_hours"`
	GroupHours      *core.LooseFloat `json:"group_hours"`
	IndividualRate  *core.LooseFloat `json:"individual_rate"`
	GroupRate       *core.LooseFloat `json:"group_rate"`
}

// SetRate carries a student rate override edit.
type SetRate struct {
	Individual *core.LooseFloat `json:"individual_rate"`
	Group      *core.LooseFloat `json:"group_rate"`
}

package schedule

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/jdfgtrompete/explicacoes/core"
)

// Kind discriminates the two independently-priced class types.
type Kind string

const (
	Individual Kind = "individual"
	Group      Kind = "group"
)

// Session is one class on the weekly calendar. Participants holds student
// IDs: exactly one for an individual class, one or more for a group class.
// The comma-joined encoding of that list only exists at the storage boundary.
type Session struct {
	ID            string       `json:"id"`
	OwnerID       string       `json:"-"`
	Kind          Kind         `json:"kind"`
	Participants  []string     `json:"participants"`
	StartsAt      time.Time    `json:"starts_at"`
	DurationHours float64      `json:"duration_hours"`
	Rate          null.Float64 `json:"rate"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"` // UTC
	UpdatedAt     time.Time    `json:"updated_at"` // UTC
}

// HasParticipant reports whether the student takes part in this session.
func (s Session) HasParticipant(studentID string) bool {
	for _, id := range s.Participants {
		if id == studentID {
			return true
		}
	}
	return false
}

// NewSession contains information needed to place a new class session.
type NewSession struct {
	Kind          Kind         `json:"kind" validate:"required,oneof=individual group"`
	Participants  []string     `json:"participants" validate:"required,min=1,dive,required"`
	StartsAt      time.Time    `json:"starts_at" validate:"required"`
	DurationHours float64      `json:"duration_hours" validate:"halfhour"`
	Rate          null.Float64 `json:"rate"`
	Notes         string       `json:"notes"`
}

func (ns *NewSession) Validate() error {
	for i, id := range ns.Participants {
		ns.Participants[i] = core.CleanString(id)
	}
	ns.Notes = core.CleanString(ns.Notes)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	if ns.Kind == Individual && len(ns.Participants) != 1 {
		return core.NewValidationError(nil, core.FieldError{
			Field: "participants",
			Error: "an individual class takes exactly one student",
		})
	}
	return nil
}

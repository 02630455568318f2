package student

import (
	"context"
	"time"

	"github.com/jdfgtrompete/explicacoes/core"
)

// Student is a pupil taught by one tutor (the owner). Sessions reference
// students by ID only; ledger rows cascade away with the student.
type Student struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name string `json:"name" validate:"required"`
}

func (ns *NewStudent) Validate(ctx context.Context, ownerID string, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, ownerID, ns.Name)
}

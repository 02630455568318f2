package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jdfgtrompete/explicacoes/core"
)

var (
	// errors
	ErrNotFound  = errors.New("session not found")
	ErrSlotTaken = errors.New("a class already starts in this slot")
)

type (
	Repository interface {
		CreateSession(ctx context.Context, s Session) (Session, error)
		SessionsByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]Session, error)
		SessionsByParticipant(ctx context.Context, studentID string) ([]Session, error)
		GetSessionByID(ctx context.Context, id string) (Session, error)
		UpdateSession(ctx context.Context, s Session) (Session, error)
		DeleteSessionsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo     Repository
		notifier core.Notifier
	}
)

func NewService(repo Repository, notifier core.Notifier) *Service {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	return &Service{repo: repo, notifier: notifier}
}

// WeekIndex loads the owner's sessions for the week containing `ref` and
// wraps them in an Index for grid placement and lookups.
func (svc *Service) WeekIndex(ctx context.Context, ownerID string, ref time.Time) (Index, error) {
	start := StartOfWeek(ref)
	// query one day past Sunday so late sessions on the last day are kept
	sessions, err := svc.repo.SessionsByOwnerInRange(ctx, ownerID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return Index{}, err
	}
	return NewIndex(sessions), nil
}

// MonthIndex loads the owner's sessions for a calendar month.
func (svc *Service) MonthIndex(ctx context.Context, ownerID string, year int, month time.Month) (Index, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	sessions, err := svc.repo.SessionsByOwnerInRange(ctx, ownerID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return Index{}, err
	}
	return NewIndex(sessions), nil
}

func (svc *Service) create(ctx context.Context, ownerID string, ns NewSession) (Session, error) {
	now := time.Now().UTC()
	s := Session{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Kind:          ns.Kind,
		Participants:  ns.Participants,
		StartsAt:      ns.StartsAt.Truncate(time.Minute),
		DurationHours: ns.DurationHours,
		Rate:          ns.Rate,
		Notes:         ns.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := svc.repo.CreateSession(ctx, s)
	if err != nil {
		svc.notifier.Error("could not save the class")
		return Session{}, err
	}
	svc.notifier.Success("class added")
	return created, nil
}

// Create places a session with no slot guard (the fine-grained dialog
// path): overlap at sub-hour precision is allowed and rendered as
// competing positions.
func (svc *Service) Create(ctx context.Context, ownerID string, ns NewSession) (Session, error) {
	return svc.create(ctx, ownerID, ns)
}

// CreateAt places a session through the grid-click path, which refuses a
// slot whose whole hour is already taken. The guard shares FindAt's
// whole-hour granularity.
func (svc *Service) CreateAt(ctx context.Context, ownerID string, ns NewSession) (Session, error) {
	ix, err := svc.WeekIndex(ctx, ownerID, ns.StartsAt)
	if err != nil {
		return Session{}, err
	}
	if _, taken := ix.FindAt(ns.StartsAt, ns.StartsAt.Hour()); taken {
		return Session{}, core.NewValidationError(ErrSlotTaken, core.FieldError{
			Field: "starts_at",
			Error: ErrSlotTaken.Error(),
		})
	}
	return svc.create(ctx, ownerID, ns)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Session, error) {
	return svc.repo.GetSessionByID(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	if err := svc.repo.DeleteSessionsByID(ctx, ids...); err != nil {
		svc.notifier.Error("could not delete the class")
		return err
	}
	svc.notifier.Success("class deleted")
	return nil
}

// StudentDeleted strips the student from every session they appear in.
// A session left with no participants is deleted; group sessions shrink.
func (svc *Service) StudentDeleted(ctx context.Context, studentID string) error {
	sessions, err := svc.repo.SessionsByParticipant(ctx, studentID)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		rest := make([]string, 0, len(s.Participants))
		for _, id := range s.Participants {
			if id != studentID {
				rest = append(rest, id)
			}
		}
		if len(rest) == 0 {
			if err := svc.repo.DeleteSessionsByID(ctx, s.ID); err != nil {
				return err
			}
			continue
		}
		s.Participants = rest
		s.UpdatedAt = time.Now().UTC()
		if _, err := svc.repo.UpdateSession(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

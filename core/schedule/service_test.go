package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core"
	"github.com/jdfgtrompete/explicacoes/core/schedule"
	inmemdb "github.com/jdfgtrompete/explicacoes/storage/database/inmem"
)

const owner = "owner-1"

func setup(t *testing.T) *schedule.Service {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed, %v", err)
	}
	return schedule.NewService(inmemdb.NewSessionRepository(db), nil)
}

func newSession(participants []string, kind schedule.Kind, at time.Time, hours float64) schedule.NewSession {
	return schedule.NewSession{
		Kind:          kind,
		Participants:  participants,
		StartsAt:      at,
		DurationHours: hours,
	}
}

func TestService_CreateAt(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	monday9 := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	if _, err := svc.CreateAt(ctx, owner, newSession([]string{"s1"}, schedule.Individual, monday9, 1)); err != nil {
		t.Fatalf("CreateAt() error = %v", err)
	}

	// same whole-hour slot refused
	_, err := svc.CreateAt(ctx, owner, newSession([]string{"s2"}, schedule.Individual, monday9, 1))
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	if !ok {
		t.Fatalf("CreateAt() error = %v, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "starts_at" {
		t.Errorf("CreateAt() fields = %+v, want starts_at", vErr.Fields)
	}

	// another hour is free
	if _, err := svc.CreateAt(ctx, owner, newSession([]string{"s3"}, schedule.Group, monday9.Add(2*time.Hour), 1)); err != nil {
		t.Errorf("CreateAt(11:00) error = %v, want nil", err)
	}

	// a session starting at half past is invisible to the guard, so the
	// whole-hour slot underneath it can still be booked
	halfPast := monday9.Add(3*time.Hour + 30*time.Minute) // 12:30
	if _, err := svc.Create(ctx, owner, newSession([]string{"s2"}, schedule.Individual, halfPast, 1)); err != nil {
		t.Fatalf("Create(12:30) error = %v", err)
	}
	if _, err := svc.CreateAt(ctx, owner, newSession([]string{"s3"}, schedule.Individual, monday9.Add(3*time.Hour), 1)); err != nil {
		t.Errorf("CreateAt(12:00) error = %v, want nil", err)
	}

	// the permissive path ignores the guard entirely
	if _, err := svc.Create(ctx, owner, newSession([]string{"s4"}, schedule.Individual, monday9, 1)); err != nil {
		t.Errorf("Create() error = %v, want nil", err)
	}
}

func TestService_WeekIndex(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	monday := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	mk := func(at time.Time) {
		t.Helper()
		if _, err := svc.Create(ctx, owner, newSession([]string{"s1"}, schedule.Individual, at, 1)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	mk(monday.Add(9 * time.Hour))                  // Monday 09:00
	mk(monday.AddDate(0, 0, 6).Add(20 * time.Hour)) // Sunday 20:00
	mk(monday.AddDate(0, 0, 7).Add(9 * time.Hour))  // next Monday

	ix, err := svc.WeekIndex(ctx, owner, monday.Add(36*time.Hour))
	if err != nil {
		t.Fatalf("WeekIndex() error = %v", err)
	}
	if got := len(ix.All()); got != 2 {
		t.Errorf("WeekIndex() returned %d sessions, want 2", got)
	}
}

func TestService_StudentDeleted(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	at := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	solo, err := svc.Create(ctx, owner, newSession([]string{"gone"}, schedule.Individual, at, 1))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	duo, err := svc.Create(ctx, owner, newSession([]string{"gone", "stays"}, schedule.Group, at.Add(time.Hour), 1))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.StudentDeleted(ctx, "gone"); err != nil {
		t.Fatalf("StudentDeleted() error = %v", err)
	}

	// the solo session is gone with its only participant
	if _, err := svc.GetByID(ctx, solo.ID); errors.Cause(err) != schedule.ErrNotFound {
		t.Errorf("GetByID(solo) error = %v, want ErrNotFound", err)
	}
	// the group session shrank
	got, err := svc.GetByID(ctx, duo.ID)
	if err != nil {
		t.Fatalf("GetByID(duo) error = %v", err)
	}
	if len(got.Participants) != 1 || got.Participants[0] != "stays" {
		t.Errorf("Participants = %v, want [stays]", got.Participants)
	}
}

package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/jdfgtrompete/explicacoes/core/schedule"
)

// sessionRow carries the comma-joined participant encoding; it is decoded
// back into a slice before a Session leaves this package.
type sessionRow struct {
	ID             string       `db:"id"`
	OwnerID        string       `db:"owner_id"`
	Kind           string       `db:"kind"`
	ParticipantRef string       `db:"participant_ref"`
	StartsAt       time.Time    `db:"starts_at"`
	DurationHours  float64      `db:"duration_hours"`
	Rate           null.Float64 `db:"rate"`
	Notes          string       `db:"notes"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

func newSessionRow(s schedule.Session) sessionRow {
	return sessionRow{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		Kind:           string(s.Kind),
		ParticipantRef: schedule.EncodeParticipants(s.Participants),
		StartsAt:       s.StartsAt.UTC(),
		DurationHours:  s.DurationHours,
		Rate:           s.Rate,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt.UTC(),
		UpdatedAt:      s.UpdatedAt.UTC(),
	}
}

func (r sessionRow) model() schedule.Session {
	return schedule.Session{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Kind:          schedule.Kind(r.Kind),
		Participants:  schedule.DecodeParticipants(r.ParticipantRef),
		StartsAt:      r.StartsAt,
		DurationHours: r.DurationHours,
		Rate:          r.Rate,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type sessionRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *sqlx.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (repo sessionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return schedule.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo sessionRepository) CreateSession(ctx context.Context, s schedule.Session) (schedule.Session, error) {
	q := `
INSERT INTO class_session (id, owner_id, kind, participant_ref, starts_at, duration_hours, rate, notes, created_at, updated_at)
VALUES (:id, :owner_id, :kind, :participant_ref, :starts_at, :duration_hours, :rate, :notes, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, newSessionRow(s)); err != nil {
		return schedule.Session{}, errors.Wrap(err, "inserting session")
	}
	return s, nil
}

func (repo sessionRepository) SessionsByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]schedule.Session, error) {
	var rows []sessionRow
	q := `
SELECT * FROM class_session
WHERE owner_id = $1 AND starts_at >= $2 AND starts_at < $3
ORDER BY starts_at`
	if err := repo.db.SelectContext(ctx, &rows, q, ownerID, from.UTC(), to.UTC()); err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	sessions := make([]schedule.Session, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, r.model())
	}
	return sessions, nil
}

func (repo sessionRepository) SessionsByParticipant(ctx context.Context, studentID string) ([]schedule.Session, error) {
	// participant_ref is comma-joined; match is refined in Go to avoid
	// substring false positives on ids sharing a prefix.
	var rows []sessionRow
	q := `SELECT * FROM class_session WHERE participant_ref LIKE '%' || $1 || '%' ORDER BY starts_at`
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying sessions by participant")
	}
	sessions := make([]schedule.Session, 0, len(rows))
	for _, r := range rows {
		if s := r.model(); s.HasParticipant(studentID) {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (repo sessionRepository) GetSessionByID(ctx context.Context, id string) (schedule.Session, error) {
	var r sessionRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM class_session WHERE id = $1`, id); err != nil {
		return schedule.Session{}, repo.trapNoRowsErr(err, "getting session by id")
	}
	return r.model(), nil
}

func (repo sessionRepository) UpdateSession(ctx context.Context, s schedule.Session) (schedule.Session, error) {
	q := `
UPDATE class_session
SET kind = :kind, participant_ref = :participant_ref, starts_at = :starts_at,
    duration_hours = :duration_hours, rate = :rate, notes = :notes, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newSessionRow(s))
	if err != nil {
		return schedule.Session{}, errors.Wrap(err, "updating session")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schedule.Session{}, schedule.ErrNotFound
	}
	return s, nil
}

func (repo sessionRepository) DeleteSessionsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM class_session WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting sessions")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting sessions")
	}
	return nil
}

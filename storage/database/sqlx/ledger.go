package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/jdfgtrompete/explicacoes/core/ledger"
)

type recordRow struct {
	ID              string       `db:"id"`
	OwnerID         string       `db:"owner_id"`
	StudentID       string       `db:"student_id"`
	WeekNumber      int          `db:"week_number"`
	Month           int          `db:"month"`
	Year            int          `db:"year"`
	IndividualHours float64      `db:"individual_hours"`
	GroupHours      float64      `db:"group_hours"`
	IndividualRate  null.Float64 `db:"individual_rate"`
	GroupRate       null.Float64 `db:"group_rate"`
}

func newRecordRow(rec ledger.WeeklyRecord) recordRow {
	return recordRow{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		StudentID:       rec.StudentID,
		WeekNumber:      rec.WeekNumber,
		Month:           rec.Month,
		Year:            rec.Year,
		IndividualHours: rec.IndividualHours,
		GroupHours:      rec.GroupHours,
		IndividualRate:  rec.IndividualRate,
		GroupRate:       rec.GroupRate,
	}
}

func (r recordRow) model() ledger.WeeklyRecord {
	return ledger.WeeklyRecord{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		StudentID:       r.StudentID,
		WeekNumber:      r.WeekNumber,
		Month:           r.Month,
		Year:            r.Year,
		IndividualHours: r.IndividualHours,
		GroupHours:      r.GroupHours,
		IndividualRate:  r.IndividualRate,
		GroupRate:       r.GroupRate,
	}
}

type rateRow struct {
	StudentID      string       `db:"student_id"`
	OwnerID        string       `db:"owner_id"`
	IndividualRate null.Float64 `db:"individual_rate"`
	GroupRate      null.Float64 `db:"group_rate"`
}

func (r rateRow) model() ledger.StudentRate {
	return ledger.StudentRate{
		StudentID:  r.StudentID,
		OwnerID:    r.OwnerID,
		Individual: r.IndividualRate,
		Group:      r.GroupRate,
	}
}

type ledgerRepository struct {
	db *sqlx.DB
}

var _ ledger.Repository = (*ledgerRepository)(nil) // interface compliance check

func NewLedgerRepository(db *sqlx.DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

func (repo ledgerRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return ledger.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo ledgerRepository) CreateRecord(ctx context.Context, rec ledger.WeeklyRecord) (ledger.WeeklyRecord, error) {
	q := `
INSERT INTO weekly_record (id, owner_id, student_id, week_number, month, year,
                           individual_hours, group_hours, individual_rate, group_rate)
VALUES (:id, :owner_id, :student_id, :week_number, :month, :year,
        :individual_hours, :group_hours, :individual_rate, :group_rate)`
	if _, err := repo.db.NamedExecContext(ctx, q, newRecordRow(rec)); err != nil {
		return ledger.WeeklyRecord{}, errors.Wrap(err, "inserting weekly record")
	}
	return rec, nil
}

func (repo ledgerRepository) RecordsByOwnerAndMonth(ctx context.Context, ownerID string, month, year int) ([]ledger.WeeklyRecord, error) {
	var rows []recordRow
	q := `
SELECT * FROM weekly_record
WHERE owner_id = $1 AND month = $2 AND year = $3
ORDER BY week_number, student_id`
	if err := repo.db.SelectContext(ctx, &rows, q, ownerID, month, year); err != nil {
		return nil, errors.Wrap(err, "querying weekly records")
	}
	recs := make([]ledger.WeeklyRecord, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.model())
	}
	return recs, nil
}

func (repo ledgerRepository) GetRecordByID(ctx context.Context, id string) (ledger.WeeklyRecord, error) {
	var r recordRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM weekly_record WHERE id = $1`, id); err != nil {
		return ledger.WeeklyRecord{}, repo.trapNoRowsErr(err, "getting weekly record by id")
	}
	return r.model(), nil
}

func (repo ledgerRepository) UpdateRecord(ctx context.Context, rec ledger.WeeklyRecord) (ledger.WeeklyRecord, error) {
	q := `
UPDATE weekly_record
SET individual_hours = :individual_hours, group_hours = :group_hours,
    individual_rate = :individual_rate, group_rate = :group_rate
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newRecordRow(rec))
	if err != nil {
		return ledger.WeeklyRecord{}, errors.Wrap(err, "updating weekly record")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.WeeklyRecord{}, ledger.ErrNotFound
	}
	return rec, nil
}

func (repo ledgerRepository) DeleteRecordsByStudent(ctx context.Context, studentID string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM weekly_record WHERE student_id = $1`, studentID); err != nil {
		return errors.Wrap(err, "deleting weekly records")
	}
	return nil
}

func (repo ledgerRepository) UpsertStudentRate(ctx context.Context, rate ledger.StudentRate) (ledger.StudentRate, error) {
	q := `
INSERT INTO student_rate (student_id, owner_id, individual_rate, group_rate)
VALUES (:student_id, :owner_id, :individual_rate, :group_rate)
ON CONFLICT (student_id)
DO UPDATE SET individual_rate = EXCLUDED.individual_rate, group_rate = EXCLUDED.group_rate`
	r := rateRow{
		StudentID:      rate.StudentID,
		OwnerID:        rate.OwnerID,
		IndividualRate: rate.Individual,
		GroupRate:      rate.Group,
	}
	if _, err := repo.db.NamedExecContext(ctx, q, r); err != nil {
		return ledger.StudentRate{}, errors.Wrap(err, "upserting student rate")
	}
	return rate, nil
}

func (repo ledgerRepository) StudentRatesByOwner(ctx context.Context, ownerID string) ([]ledger.StudentRate, error) {
	var rows []rateRow
	q := `SELECT * FROM student_rate WHERE owner_id = $1 ORDER BY student_id`
	if err := repo.db.SelectContext(ctx, &rows, q, ownerID); err != nil {
		return nil, errors.Wrap(err, "querying student rates")
	}
	rates := make([]ledger.StudentRate, 0, len(rows))
	for _, r := range rows {
		rates = append(rates, r.model())
	}
	return rates, nil
}

func (repo ledgerRepository) GetStudentRate(ctx context.Context, studentID string) (ledger.StudentRate, error) {
	var r rateRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM student_rate WHERE student_id = $1`, studentID); err != nil {
		if err == sql.ErrNoRows {
			return ledger.StudentRate{}, ledger.ErrRateNotFound
		}
		return ledger.StudentRate{}, errors.Wrap(err, "getting student rate")
	}
	return r.model(), nil
}

func (repo ledgerRepository) DeleteStudentRate(ctx context.Context, studentID string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM student_rate WHERE student_id = $1`, studentID); err != nil {
		return errors.Wrap(err, "deleting student rate")
	}
	return nil
}

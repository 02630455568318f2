package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core/student"
)

type studentRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r studentRow) model() student.Student {
	return student.Student{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CheckStudentUniqueness(ctx context.Context, ownerID, name string) error {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM student WHERE owner_id = $1 AND name = $2)`
	if err := repo.db.GetContext(ctx, &exists, q, ownerID, name); err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	if exists {
		return student.ErrNameExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	q := `
INSERT INTO student (id, owner_id, name, created_at, updated_at)
VALUES (:id, :owner_id, :name, :created_at, :updated_at)`
	r := studentRow{
		ID:        std.ID,
		OwnerID:   std.OwnerID,
		Name:      std.Name,
		CreatedAt: std.CreatedAt.UTC(),
		UpdatedAt: std.UpdatedAt.UTC(),
	}
	if _, err := repo.db.NamedExecContext(ctx, q, r); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo studentRepository) StudentsByOwner(ctx context.Context, ownerID string) ([]student.Student, error) {
	var rows []studentRow
	q := `SELECT * FROM student WHERE owner_id = $1 ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q, ownerID); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.model())
	}
	return students, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var r studentRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student by id")
	}
	return r.model(), nil
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM student WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting students")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}

package student

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core"
)

var (
	// errors
	ErrNotFound   = errors.New("student not found")
	ErrNameExists = errors.New("a student with this name already exists")
)

type (
	Repository interface {
		CheckStudentUniqueness(ctx context.Context, ownerID, name string) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		StudentsByOwner(ctx context.Context, ownerID string) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	// Cascade is notified after a student row is gone so dependent data
	// (sessions, ledger rows, rate overrides) can be cleaned up.
	Cascade interface {
		StudentDeleted(ctx context.Context, studentID string) error
	}

	Service struct {
		repo     Repository
		cascades []Cascade
	}
)

func NewService(repo Repository, cascades ...Cascade) *Service {
	return &Service{repo: repo, cascades: cascades}
}

func (svc *Service) CheckUniqueness(ctx context.Context, ownerID, name string) error {
	if err := svc.repo.CheckStudentUniqueness(ctx, ownerID, name); err != nil {
		if err == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ownerID string, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      ns.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) Query(ctx context.Context, ownerID string) ([]Student, error) {
	return svc.repo.StudentsByOwner(ctx, ownerID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// Directory returns an id -> name map of the owner's students, for
// resolving session participant references.
func (svc *Service) Directory(ctx context.Context, ownerID string) (map[string]string, error) {
	students, err := svc.repo.StudentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dir := make(map[string]string, len(students))
	for _, std := range students {
		dir[std.ID] = std.Name
	}
	return dir, nil
}

// Delete removes the student, then runs every registered cascade.
// The student row goes first: if it fails nothing else is touched.
func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.GetStudentByID(ctx, id); err != nil {
		return err
	}
	if err := svc.repo.DeleteStudentsByID(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "deleting student")
	}
	for _, c := range svc.cascades {
		if err := c.StudentDeleted(ctx, id); err != nil {
			return pkgerrors.Wrap(err, "cascading student deletion")
		}
	}
	return nil
}

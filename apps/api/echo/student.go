package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core/ledger"
	"github.com/jdfgtrompete/explicacoes/core/student"
)

type studentApi struct {
	svc       *student.Service
	ledgerSvc *ledger.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service, ledgerSvc *ledger.Service) {
	api := studentApi{svc: svc, ledgerSvc: ledgerSvc}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("/:id", api.destroy)
	sg.PUT("/:id/rate", api.setRate)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}

	students, err := api.svc.Query(ctx.Request().Context(), ownerID)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}

	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(ctx.Request().Context(), ownerID, api.svc); err != nil {
		return err
	}

	std, err := api.svc.Create(ctx.Request().Context(), ownerID, data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	std, err := api.getOwnedStudent(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), std.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) setRate(ctx echo.Context) error {
	std, err := api.getOwnedStudent(ctx)
	if err != nil {
		return err
	}

	var data ledger.SetRate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetRate")
	}

	rate, err := api.ledgerSvc.SetStudentRate(ctx.Request().Context(), std.OwnerID, std.ID, data)
	if err != nil {
		return errors.Wrap(err, "setting student rate")
	}
	return ctx.JSON(http.StatusOK, rate)
}

// getOwnedStudent loads the :id student and hides other tutors' students
// behind a 404.
func (api *studentApi) getOwnedStudent(ctx echo.Context) (student.Student, error) {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return student.Student{}, err
	}

	std, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return student.Student{}, errHttpNotFound
		}
		return student.Student{}, errors.Wrap(err, "finding student by ID")
	}
	if std.OwnerID != ownerID {
		return student.Student{}, errHttpNotFound
	}
	return std, nil
}

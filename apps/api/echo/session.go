package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core/schedule"
)

type sessionApi struct {
	svc *schedule.Service
}

func registerSessionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *schedule.Service) {
	api := sessionApi{svc: svc}

	sg := g.Group("/sessions", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *sessionApi) query(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}

	var week WeekQuery
	if err := week.Bind(ctx); err != nil {
		return err
	}

	ix, err := api.svc.WeekIndex(ctx.Request().Context(), ownerID, week.Ref)
	if err != nil {
		return errors.Wrap(err, "querying week sessions")
	}
	sessions := ix.All()
	if sessions == nil {
		sessions = []schedule.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) create(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}

	var data schedule.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	// the grid path refuses a slot that already has a session; the dialog
	// path (default) books whatever it is given
	var s schedule.Session
	if ctx.QueryParam("grid") == "true" {
		s, err = api.svc.CreateAt(ctx.Request().Context(), ownerID, data)
	} else {
		s, err = api.svc.Create(ctx.Request().Context(), ownerID, data)
	}
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *sessionApi) destroy(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}

	s, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == schedule.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding session by ID")
	}
	if s.OwnerID != ownerID {
		return errHttpNotFound
	}

	if err := api.svc.Delete(ctx.Request().Context(), s.ID); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

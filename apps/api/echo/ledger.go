package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core"
	"github.com/jdfgtrompete/explicacoes/core/ledger"
)

const contentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ledgerApi struct {
	svc *ledger.Service
}

func registerLedgerAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *ledger.Service) {
	api := ledgerApi{svc: svc}

	lg := g.Group("/ledger", jwt)
	lg.GET("/records", api.queryRecords)
	lg.POST("/weeks", api.addWeek)
	lg.PUT("/records/:id", api.updateRecord)
	lg.GET("/summary", api.summary)
	lg.GET("/export", api.export)
	lg.POST("/statement", api.emailStatement)
}

// Handlers

func (api *ledgerApi) queryRecords(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}
	var mq MonthQuery
	if err := mq.Bind(ctx); err != nil {
		return err
	}

	recs, err := api.svc.RecordsForMonth(ctx.Request().Context(), ownerID, mq.Month, mq.Year)
	if err != nil {
		return errors.Wrap(err, "querying weekly records")
	}
	if recs == nil {
		recs = []ledger.WeeklyRecord{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *ledgerApi) addWeek(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}
	var mq MonthQuery
	if err := mq.Bind(ctx); err != nil {
		return err
	}

	recs, err := api.svc.AddWeek(ctx.Request().Context(), ownerID, mq.Month, mq.Year)
	if err != nil {
		return errors.Wrap(err, "adding week")
	}
	return ctx.JSON(http.StatusCreated, recs)
}

func (api *ledgerApi) updateRecord(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}

	rec, err := api.svc.GetRecord(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == ledger.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding weekly record by ID")
	}
	if rec.OwnerID != ownerID {
		return errHttpNotFound
	}

	var data ledger.UpdateRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}

	rec, err = api.svc.UpdateRecord(ctx.Request().Context(), rec.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating weekly record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *ledgerApi) summary(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}
	var mq MonthQuery
	if err := mq.Bind(ctx); err != nil {
		return err
	}

	summary, err := api.svc.MonthSummary(ctx.Request().Context(), ownerID, mq.Month, mq.Year)
	if err != nil {
		return errors.Wrap(err, "building month summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *ledgerApi) export(ctx echo.Context) error {
	ownerID, err := getOwnerID(ctx)
	if err != nil {
		return err
	}
	var mq MonthQuery
	if err := mq.Bind(ctx); err != nil {
		return err
	}

	buf, filename, err := api.svc.ExportMonth(ctx.Request().Context(), ownerID, mq.Month, mq.Year)
	if err != nil {
		return errors.Wrap(err, "exporting month")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, contentTypeXlsx, buf.Bytes())
}

func (api *ledgerApi) emailStatement(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if claims.Email == "" {
		return core.NewValidationError(errors.New("account has no email address"))
	}
	var mq MonthQuery
	if err := mq.Bind(ctx); err != nil {
		return err
	}

	to := mail.Address{Name: claims.Username, Address: claims.Email}
	if err := api.svc.EmailStatement(ctx.Request().Context(), to, claims.Subject, mq.Month, mq.Year); err != nil {
		return errors.Wrap(err, "emailing statement")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Your monthly statement is on its way to your inbox."})
}

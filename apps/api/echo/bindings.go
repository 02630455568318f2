package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jdfgtrompete/explicacoes/core"
)

// MonthQuery binds `?month=&year=` params, defaulting to the current month.
type MonthQuery struct {
	Month int
	Year  int
}

func (mq *MonthQuery) Bind(ctx echo.Context) error {
	now := time.Now()
	mq.Month = int(now.Month())
	mq.Year = now.Year()

	if v := ctx.QueryParam("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return core.NewValidationError(nil, core.FieldError{Field: "month", Error: "must be between 1 and 12"})
		}
		mq.Month = m
	}
	if v := ctx.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "year", Error: "must be a valid year"})
		}
		mq.Year = y
	}
	return nil
}

// WeekQuery binds the `?week=` param (RFC3339, any instant within the
// wanted week), defaulting to now.
type WeekQuery struct {
	Ref time.Time
}

func (wq *WeekQuery) Bind(ctx echo.Context) error {
	wq.Ref = time.Now()

	if v := ctx.QueryParam("week"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "week", Error: "must be a valid RFC3339 datetime"})
		}
		wq.Ref = t
	}
	return nil
}

package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core"
	"github.com/jdfgtrompete/explicacoes/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler translates domain and framework errors into JSON
// responses. Catching a core shutdown error additionally triggers a graceful
// stop via signalShutdown.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code, message := translateError(err, ctx, logger)

		if core.IsShutdown(err) {
			signalShutdown()
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		if ctx.Response().Committed {
			return
		}
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, message)
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}

func translateError(err error, ctx echo.Context, logger core.Logger) (int, interface{}) {
	switch cause := errors.Cause(err).(type) {
	case *echo.HTTPError:
		if cause == middleware.ErrJWTMissing {
			return http.StatusUnauthorized, cause.Message
		}
		if herr, ok := cause.Internal.(*echo.HTTPError); ok {
			cause = herr
		}
		return cause.Code, cause.Message

	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(cause))
		for _, vErr := range cause {
			fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
		}
		return http.StatusBadRequest, fldErrs

	case *core.ValidationError:
		if cause.Fields == nil {
			return http.StatusBadRequest, cause.Error()
		}
		fldErrs := make(map[string]string, len(cause.Fields))
		for _, fErr := range cause.Fields {
			fldErrs[fErr.Field] = fErr.Error
		}
		return http.StatusBadRequest, fldErrs
	}

	// anything else is a server fault; log it with the acting user attached
	msg := http.StatusText(http.StatusInternalServerError)
	var usr user.User
	if claims, cErr := getContextClaims(ctx); cErr == nil {
		usr.ID = claims.Subject
		usr.Username = claims.Username
		usr.Email = claims.Email
	}
	logger.Error(msg, errors.Wrap(err, msg), usr)
	return http.StatusInternalServerError, msg
}

package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core"
	"github.com/jdfgtrompete/explicacoes/core/ledger"
	"github.com/jdfgtrompete/explicacoes/core/schedule"
	"github.com/jdfgtrompete/explicacoes/core/student"
	"github.com/jdfgtrompete/explicacoes/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
		Logger         core.Logger

		UserSvc     *user.Service
		StudentSvc  *student.Service
		ScheduleSvc *schedule.Service
		LedgerSvc   *ledger.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerStudentAPI(v1, jwt, s.opts.StudentSvc, s.opts.LedgerSvc)
	registerSessionAPI(v1, jwt, s.opts.ScheduleSvc)
	registerLedgerAPI(v1, jwt, s.opts.LedgerSvc)
}

// signalShutdown triggers a graceful shutdown from within a request handler.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Start() error {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- s.app.Start(s.opts.Addr)
	}()

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-s.shutdown:
		s.opts.Logger.Info("shutdown started: " + sig.String())
		defer s.opts.Logger.Info("shutdown complete: " + sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Stop(ctx); err != nil {
			_ = s.app.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}

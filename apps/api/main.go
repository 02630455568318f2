package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/jdfgtrompete/explicacoes/apps/api/echo"
	"github.com/jdfgtrompete/explicacoes/core"
	"github.com/jdfgtrompete/explicacoes/core/ledger"
	"github.com/jdfgtrompete/explicacoes/core/schedule"
	"github.com/jdfgtrompete/explicacoes/core/student"
	"github.com/jdfgtrompete/explicacoes/core/user"
	emailsvc "github.com/jdfgtrompete/explicacoes/services/email"
	logsvc "github.com/jdfgtrompete/explicacoes/services/logger"
	"github.com/jdfgtrompete/explicacoes/storage/database"
	sqlxrepos "github.com/jdfgtrompete/explicacoes/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()
	dbx := sqlx.NewDb(db, core.Conf.Database.Engine)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	notifier := logsvc.NewLogNotifier(logger)

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(dbx), mailSvc)
	scheduleSvc := schedule.NewService(sqlxrepos.NewSessionRepository(dbx), notifier)
	studentRepo := sqlxrepos.NewStudentRepository(dbx)
	ledgerSvc := ledger.NewService(sqlxrepos.NewLedgerRepository(dbx), studentRepo, mailSvc, notifier)
	studentSvc := student.NewService(studentRepo, scheduleSvc, ledgerSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:        core.Conf.Server.Addr(),
			Logger:      logger,
			UserSvc:     usrSvc,
			StudentSvc:  studentSvc,
			ScheduleSvc: scheduleSvc,
			LedgerSvc:   ledgerSvc,
		},
	)
	if err := app.Start(); err != nil {
		logger.Fatal("server error", err)
	}
}

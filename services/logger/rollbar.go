package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/jdfgtrompete/explicacoes/core"
	"github.com/jdfgtrompete/explicacoes/core/user"
)

// RollbarLogger reports entries to Rollbar and mirrors them to a standard
// logger. A user.User anywhere in the args becomes the Rollbar person.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) { rollbar.SetEnabled(enabled) }

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.Debug, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.Info, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.Warning, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.Error, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.Critical, msg, args)
	l.std.Fatal(msg)
}

func (l RollbarLogger) log(report func(...interface{}), msg string, args []interface{}) {
	report(l.prepare(msg, args)...)

	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

// prepare sets the Rollbar person from the first user.User arg (clearing it
// when none is present) and strips user args from what gets reported.
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	reported := make([]interface{}, 0, len(args)+1)
	reported = append(reported, msg)

	var personSet bool
	for _, arg := range args {
		usr, ok := arg.(user.User)
		if !ok {
			reported = append(reported, arg)
			continue
		}
		if !personSet {
			rollbar.SetPerson(usr.ID, usr.Username, usr.Email)
			personSet = true
		}
	}
	if !personSet {
		rollbar.ClearPerson()
	}
	return reported
}

package tests

import (
	"os"
	"testing"

	"github.com/jdfgtrompete/explicacoes/core"
)

func TestMain(m *testing.M) {
	// the error handler leaks raw error strings in debug mode; assert the
	// production response shapes instead
	core.Conf.Debug = false
	core.Conf.TestMode = true
	os.Exit(m.Run())
}

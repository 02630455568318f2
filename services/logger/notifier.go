package logsvc

import (
	"github.com/jdfgtrompete/explicacoes/core"
)

// LogNotifier reports user-facing outcome messages through the logger.
type LogNotifier struct {
	logger core.Logger
}

var _ core.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger core.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n LogNotifier) Success(msg string) {
	n.logger.Info(msg)
}

func (n LogNotifier) Error(msg string) {
	n.logger.Error(msg)
}

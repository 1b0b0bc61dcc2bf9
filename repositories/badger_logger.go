package repositories

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var _ badger.Logger = (*BadgerLogger)(nil)

// BadgerLogger redirects the storage engine's own logs to the application logger.
type BadgerLogger struct {
	log *slog.Logger
}

func NewBadgerLogger(log *slog.Logger) *BadgerLogger {
	return &BadgerLogger{log: log.With("component", "badger")}
}

func (l *BadgerLogger) Errorf(format string, args ...any) {
	l.log.Error(clean(format, args...))
}

func (l *BadgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(clean(format, args...))
}

func (l *BadgerLogger) Infof(format string, args ...any) {
	l.log.Info(clean(format, args...))
}

func (l *BadgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(clean(format, args...))
}

// clean drops the trailing newline badger puts on most messages.
func clean(format string, args ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

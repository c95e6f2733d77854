package storage

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// badgerLogger routes BadgerDB's log output through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func newBadgerLogger(l zerolog.Logger) *badgerLogger {
	return &badgerLogger{log: l.With().Str("component", "badger").Logger()}
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Error().Msg(trimf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn().Msg(trimf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.log.Debug().Msg(trimf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.log.Trace().Msg(trimf(format, args...))
}

func trimf(format string, args ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

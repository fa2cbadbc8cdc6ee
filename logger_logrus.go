package libevent

import (
	"github.com/sirupsen/logrus"
)

// logrusLogger implements the logger interface on top of a logrus entry.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps a logrus logger for use with NewIsolated.
func NewLogrusLogger(l *logrus.Logger) logger {
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) WithField(key string, value any) logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *logrusLogger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *logrusLogger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

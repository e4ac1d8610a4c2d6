// Package log provides the logging interface used throughout the
// emulator, backed by logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface accepted by every component.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// Opt configures the logger returned by New.
type Opt func(l *logrus.Logger)

// WithLevel sets the minimum level that will be logged.
func WithLevel(level string) Opt {
	return func(l *logrus.Logger) {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			l.SetLevel(lvl)
		}
	}
}

// WithOutput redirects log output to w.
func WithOutput(w io.Writer) Opt {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// New returns a new Logger.
func New(opts ...Opt) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithField returns a Logger that tags every entry with the given
// component name, if the logger supports it.
func WithField(l Logger, component string) Logger {
	if lr, ok := l.(*logrus.Logger); ok {
		return lr.WithField("component", component)
	}
	return l
}

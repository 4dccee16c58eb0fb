/*
Package logger wraps github.com/sirupsen/logrus with a single process-wide
logger. Diagnostic records (process invocations, watcher events, recoverable
failures) go through here; user-facing status lines do not.
*/
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Out = os.Stderr
	log.Level = logrus.WarnLevel
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	}
}

// SetVerbose switches between debug output and warnings only.
func SetVerbose(v bool) {
	if v {
		log.Level = logrus.DebugLevel
		return
	}
	log.Level = logrus.WarnLevel
}

// SetOutput sets the location to which log messages will be sent.
func SetOutput(out io.Writer) {
	log.Out = out
}

// WithField returns an entry carrying the given key/value pair.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithError returns an entry carrying err.
func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Logger exposes the underlying logger, e.g. for tests that inspect levels.
func Logger() *logrus.Logger {
	return log
}

// Package logger provides the logrus logger used by the CLI and sessions.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a wrapper around logrus.Logger
type Logger struct {
	*logrus.Logger
}

// New creates a logger writing to stderr at info level.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a logger writing to w at info level.
func NewWithWriter(w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	log.SetLevel(logrus.InfoLevel)

	return &Logger{Logger: log}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l := NewWithWriter(io.Discard)
	l.Logger.SetLevel(logrus.PanicLevel)

	return l
}

// SetLevel sets the logging level by name. Unknown names select info.
func (l *Logger) SetLevel(level string) {
	switch level {
	case "debug":
		l.Logger.SetLevel(logrus.DebugLevel)
	case "info":
		l.Logger.SetLevel(logrus.InfoLevel)
	case "warn":
		l.Logger.SetLevel(logrus.WarnLevel)
	case "error":
		l.Logger.SetLevel(logrus.ErrorLevel)
	default:
		l.Logger.SetLevel(logrus.InfoLevel)
	}
}

// Levels lists the level names accepted by SetLevel.
func Levels() []string {
	return []string{"debug", "info", "warn", "error"}
}

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type LogrusLogger struct {
	internalLogger *logrus.Logger
}

// New returns a Logger writing text records at level to out. An unknown
// level falls back to warn; a nil out writes to stderr.
func New(level string, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false, FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	l.SetLevel(lvl)

	return &LogrusLogger{internalLogger: l}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &LogrusLogger{internalLogger: l}
}

func (l *LogrusLogger) Info(msg string, args ...interface{}) {
	l.entry(args).Info(msg)
}

func (l *LogrusLogger) Debug(msg string, args ...interface{}) {
	l.entry(args).Debug(msg)
}

func (l *LogrusLogger) Warn(msg string, args ...interface{}) {
	l.entry(args).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, args ...interface{}) {
	l.entry(args).Error(msg)
}

// entry turns slog-style key/value pairs into logrus fields. As with slog, a
// non-string key or a trailing key without a value is recorded under
// "!BADKEY" and consumes a single argument.
func (l *LogrusLogger) entry(args []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || len(args) == 1 {
			fields["!BADKEY"] = args[0]
			args = args[1:]
			continue
		}
		fields[key] = args[1]
		args = args[2:]
	}
	return l.internalLogger.WithFields(fields)
}

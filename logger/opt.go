package logger

import (
	"io"
	"log/slog"

	"github.com/xy-planning-network/prestapp"
)

// A LoggerOptFn is a functional option configuring an AppLogger when constructing a new one.
type LoggerOptFn func(*AppLogger)

// WithEnv sets the environment AppLogger is operating in.
func WithEnv(env prestapp.Environment) LoggerOptFn {
	return func(l *AppLogger) {
		l.env = env
	}
}

// WithJSON forces AppLogger to write JSON regardless of environment.
func WithJSON() LoggerOptFn {
	return func(l *AppLogger) {
		l.json = true
	}
}

// WithLevel sets the log level AppLogger uses.
func WithLevel(level slog.Level) LoggerOptFn {
	return func(l *AppLogger) {
		l.ll = level
	}
}

// WithLogger sets the [*log/slog.Logger] AppLogger uses,
// overriding the handler chosen by environment.
func WithLogger(log *slog.Logger) LoggerOptFn {
	return func(l *AppLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *AppLogger) {
		l.skip = skip
	}
}

// WithWriter sets where AppLogger writes logs.
func WithWriter(w io.Writer) LoggerOptFn {
	return func(l *AppLogger) {
		l.w = w
	}
}

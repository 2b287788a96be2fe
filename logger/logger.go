package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"

	"github.com/xy-planning-network/prestapp"
)

// knownFrames are the frames between the caller of an AppLogger method and runtime.Callers.
const knownFrames = 3

// LevelFatal is the log level for messages logged with Fatal.
const LevelFatal = slog.LevelError + 4

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() slog.Level
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

// AppLogger implements Logger using [log/slog].
type AppLogger struct {
	env  prestapp.Environment
	json bool
	l    *slog.Logger
	ll   slog.Level
	skip int
	w    io.Writer
}

// New constructs an AppLogger.
//
// Logs are printed to os.Stdout by default.
// The default environment is DEVELOPMENT, which writes colorized text.
// The default log level is INFO.
func New(opts ...LoggerOptFn) *AppLogger {
	l := &AppLogger{
		env: prestapp.Development,
		ll:  slog.LevelInfo,
		w:   os.Stdout,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.l == nil {
		l.l = slog.New(l.handler())
	}

	return l
}

// handler constructs the slog.Handler the AppLogger writes with.
func (l *AppLogger) handler() slog.Handler {
	hopts := &slog.HandlerOptions{
		AddSource: true,
		Level:     l.ll,
	}

	if l.json || !l.env.IsDevelopment() {
		hopts.ReplaceAttr = replaceLevel(nil)
		return slog.NewJSONHandler(l.w, hopts)
	}

	hopts.ReplaceAttr = replaceLevel(colorize)
	return slog.NewTextHandler(l.w, hopts)
}

// Slog exposes the underlying [log/slog.Logger]
// for writers of records other than application logs, such as HTTP access logs.
func (l *AppLogger) Slog() *slog.Logger { return l.l }

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *AppLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *AppLogger) Debug(msg string, ctx *LogContext) { l.log(slog.LevelDebug, msg, ctx) }

// Error writes an error log.
func (l *AppLogger) Error(msg string, ctx *LogContext) { l.log(slog.LevelError, msg, ctx) }

// Fatal writes a fatal log.
//
// Fatal does not exit the program.
func (l *AppLogger) Fatal(msg string, ctx *LogContext) { l.log(LevelFatal, msg, ctx) }

// Info writes an info log.
func (l *AppLogger) Info(msg string, ctx *LogContext) { l.log(slog.LevelInfo, msg, ctx) }

// Warn writes a warning log.
func (l *AppLogger) Warn(msg string, ctx *LogContext) { l.log(slog.LevelWarn, msg, ctx) }

// LogLevel returns the level set for the AppLogger.
func (l *AppLogger) LogLevel() slog.Level { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *AppLogger) Skip() int { return l.skip }

// log builds a record attributed to the caller of the AppLogger method
// and hands it to the underlying handler.
func (l *AppLogger) log(level slog.Level, msg string, ctx *LogContext) {
	bg := context.Background()
	if !l.l.Enabled(bg, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(knownFrames+l.skip, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(slog.Any(prestapp.LogKindKey, prestapp.AppLogKind))
	if ctx != nil {
		r.AddAttrs(slog.Any("ctx", ctx))
	}

	_ = l.l.Handler().Handle(bg, r)
}

// replaceLevel names LevelFatal and applies colorizer, if any, to the level.
func replaceLevel(colorizer func(slog.Level, string) string) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 || a.Key != slog.LevelKey {
			return a
		}

		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}

		name := level.String()
		if level == LevelFatal {
			name = "FATAL"
		}

		if colorizer != nil {
			name = colorizer(level, name)
		}

		a.Value = slog.StringValue(name)
		return a
	}
}

func colorize(level slog.Level, name string) string {
	switch {
	case level >= LevelFatal:
		return color.MagentaString(name)
	case level >= slog.LevelError:
		return color.RedString(name)
	case level >= slog.LevelWarn:
		return color.YellowString(name)
	case level >= slog.LevelInfo:
		return color.BlueString(name)
	default:
		return color.WhiteString(name)
	}
}

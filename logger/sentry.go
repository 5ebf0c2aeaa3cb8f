package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

// A SentryLogger is the app logger when SENTRY_DSN is set.
//
// Every message is written by the wrapped SkipLogger.
// Warn, Error and Fatal messages whose LogContext carries an Error
// are also captured as Sentry exceptions; the Responder's failed responses
// and the session middleware's failed loads are the main sources.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger initializes the Sentry client for dsn, tagging events with tl's environment.
//
// When the client cannot start, the failure is logged and tl is returned,
// so the app keeps logging without Sentry.
func NewSentryLogger(tl *TextLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  tl.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		tl.Error(fmt.Sprintf("could not start Sentry: %s", err), &LogContext{Error: err})
		return tl
	}

	// One more frame: SentryLogger's own method sits between the caller and the TextLogger.
	return &SentryLogger{l: tl.AddSkip(tl.Skip() + 1)}
}

func (sl *SentryLogger) AddSkip(i int) SkipLogger { return sl.l.AddSkip(i) }
func (sl *SentryLogger) LogLevel() LogLevel      { return sl.l.LogLevel() }
func (sl *SentryLogger) Skip() int               { return sl.l.Skip() }

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.l.Info(msg, ctx) }

func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelWarn {
		return
	}

	sl.l.Warn(msg, ctx)
	capture(sentry.LevelWarning, ctx)
}

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelError {
		return
	}

	sl.l.Error(msg, ctx)
	capture(sentry.LevelError, ctx)
}

func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelFatal {
		return
	}

	sl.l.Fatal(msg, ctx)
	capture(sentry.LevelFatal, ctx)
}

// capture sends ctx.Error to Sentry with the request it failed on.
// A LogContext without an Error sends nothing.
func capture(level sentry.Level, ctx *LogContext) {
	if ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		if ctx.RequestID != "" {
			scope.SetTag("request_id", ctx.RequestID)
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if len(ctx.Data) > 0 {
			scope.SetContext("data", ctx.Data)
		}

		sentry.CaptureException(ctx.Error)
	})
}

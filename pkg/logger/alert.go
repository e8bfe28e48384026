package logger

import (
	"hotel-booking/pkg/common"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

// AlertFunc receives entries that were flagged for alerting.
type AlertFunc func(entry zapcore.Entry, fields map[string]interface{})

// AlertCore forwards entries carrying the send_alert flag to an AlertFunc.
type AlertCore struct {
	core     zapcore.Core
	minLevel zapcore.Level
	send     AlertFunc
}

func NewAlertCore(core zapcore.Core, minLevel zapcore.Level, send AlertFunc) *AlertCore {
	return &AlertCore{core: core, minLevel: minLevel, send: send}
}

func (a *AlertCore) Enabled(lvl zapcore.Level) bool {
	return a.core.Enabled(lvl)
}

func (a *AlertCore) With(fields []zapcore.Field) zapcore.Core {
	return &AlertCore{
		core:     a.core.With(fields),
		minLevel: a.minLevel,
		send:     a.send,
	}
}

func (a *AlertCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, a)
	}
	return checkedEntry
}

func (a *AlertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	shouldSend := false
	for _, f := range fields {
		if f.Key == common.KEY_LOG_HOOK_SEND_ALERT && f.Type == zapcore.BoolType && f.Integer == 1 {
			shouldSend = true
			break
		}
	}
	if entry.Level >= a.minLevel && shouldSend && a.send != nil {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			if f.Key == common.KEY_LOG_HOOK_SEND_ALERT {
				continue
			}
			f.AddTo(enc)
		}
		a.send(entry, enc.Fields)
	}
	return a.core.Write(entry, fields)
}

func (a *AlertCore) Sync() error {
	return a.core.Sync()
}

// SentryAlert reports the entry to Sentry. The sentry client queues events
// on its own transport so this does not block the caller.
func SentryAlert(entry zapcore.Entry, fields map[string]interface{}) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(entry.Level))
		scope.SetExtras(fields)
		if entry.Caller.Defined {
			scope.SetTag("caller", entry.Caller.TrimmedPath())
		}
		sentry.CaptureMessage(entry.Message)
	})
}

func sentryLevel(lvl zapcore.Level) sentry.Level {
	switch lvl {
	case zapcore.DebugLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	default:
		return sentry.LevelFatal
	}
}

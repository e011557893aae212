package trace

import (
	"github.com/sirupsen/logrus"
)

// LogTracer forwards events to a logrus logger. Command and file events are
// logged at Info, stages at Debug and dispatch decisions at Trace.
type LogTracer struct {
	log   logrus.FieldLogger
	level Level
}

// NewLogTracer creates a LogTracer. A nil logger means logrus.StandardLogger().
func NewLogTracer(log logrus.FieldLogger, level Level) *LogTracer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogTracer{log: log, level: level}
}

// Emit logs the event with its metadata as fields.
func (t *LogTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	fields := logrus.Fields{
		"kind":  ev.Kind.String(),
		"scope": ev.Scope.String(),
	}
	if ev.SpanID != 0 {
		fields["span"] = ev.SpanID
	}
	if ev.Detail != "" {
		fields["detail"] = ev.Detail
	}
	for k, v := range ev.Extra {
		fields[k] = v
	}
	entry := t.log.WithFields(fields)
	switch ev.Scope {
	case ScopeDriver, ScopeFile:
		entry.Info(ev.Name)
	case ScopeStage:
		entry.Debug(ev.Name)
	default:
		entry.Trace(ev.Name)
	}
}

// Flush is a no-op; logrus writes synchronously.
func (t *LogTracer) Flush() error { return nil }

// Close is a no-op.
func (t *LogTracer) Close() error { return nil }

// Level returns the current tracing level.
func (t *LogTracer) Level() Level { return t.level }

// Enabled returns true if tracing is active.
func (t *LogTracer) Enabled() bool { return t.level > LevelOff }

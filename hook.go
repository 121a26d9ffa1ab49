package tracelog

import (
	"log/slog"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/helsaawy/go-tracelog/internal/encode"
)

// Hook adapts the logger for logrus. Entries fired on the hook pass
// through the same registry, encoders, and sinks as slog records; install
// it with [logrus.AddHook] or per logger.
func (l *Logger) Hook() logrus.Hook { return hook{l} }

type hook struct {
	l *Logger
}

var _ logrus.Hook = hook{}

// Levels subscribes to every logrus level; the native facility decides
// what a session keeps.
func (hook) Levels() []logrus.Level { return logrus.AllLevels }

// Fire always returns nil; failures are counted in [Stats].
func (h hook) Fire(entry *logrus.Entry) error {
	l := h.l
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	rec := encode.Record{
		Time:      ts,
		Level:     encode.FromLogrus(entry.Level),
		EventName: l.eventName,
		Keyword:   l.keyword,
		Message:   entry.Message,
	}
	if entry.Context != nil {
		rec.Span = trace.SpanContextFromContext(entry.Context)
	}

	attrs := make([]slog.Attr, 0, len(l.attrs)+len(entry.Data))
	attrs = append(attrs, l.attrs...)
	for _, k := range sortedKeys(entry.Data) {
		attrs = append(attrs, l.qualify(slog.Any(k, entry.Data[k])))
	}
	rec.Attrs = l.extractMeta(&rec, attrs)

	p := l.providerFor(rec.Target)
	if !p.Enabled(rec.Level.Native(), rec.Keyword) {
		return nil
	}

	if l.sourceInfo && entry.Caller != nil {
		rec.ModulePath = modulePathOf(entry.Caller.Function)
		rec.File = entry.Caller.File
		rec.Line = entry.Caller.Line
	}
	l.write(p, &rec)
	return nil
}

// sortedKeys gives logrus fields a deterministic emission order.
func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

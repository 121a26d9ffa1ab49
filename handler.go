package tracelog

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/helsaawy/go-tracelog/internal/encode"
)

var _ slog.Handler = (*Logger)(nil)

// Enabled reports whether a record at level would reach a trace session,
// checking the logger's floor and then the default provider's native
// enablement. Records routed elsewhere via [TargetKey] are re-checked
// against their own provider in [Logger.Handle].
func (l *Logger) Enabled(_ context.Context, level slog.Level) bool {
	if level < l.level.Level() {
		return false
	}
	p := l.providerFor("")
	return p.Enabled(encode.FromSlog(level).Native(), l.keyword)
}

// Handle encodes the record and writes it to its provider. It always
// returns nil; runtime failures are counted in [Stats] rather than
// propagated to the log call site.
func (l *Logger) Handle(ctx context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	rec := encode.Record{
		Time:      ts,
		Level:     encode.FromSlog(r.Level),
		EventName: l.eventName,
		Keyword:   l.keyword,
		Message:   r.Message,
		Span:      trace.SpanContextFromContext(ctx),
	}

	attrs := make([]slog.Attr, 0, len(l.attrs)+r.NumAttrs())
	attrs = append(attrs, l.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, l.qualify(a))
		return true
	})
	rec.Attrs = l.extractMeta(&rec, attrs)

	p := l.providerFor(rec.Target)
	if !p.Enabled(rec.Level.Native(), rec.Keyword) {
		return nil
	}

	if l.sourceInfo && r.PC != 0 {
		rec.ModulePath, rec.File, rec.Line = source(r.PC)
	}
	l.write(p, &rec)
	return nil
}

// WithAttrs returns a handler that adds attrs ahead of every record's own
// attributes.
func (l *Logger) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return l
	}
	c := l.clone()
	for _, a := range attrs {
		c.attrs = append(c.attrs, l.qualify(a))
	}
	return c
}

// WithGroup opens a group. Native event fields have no nesting of their
// own, so subsequent attribute keys are flattened under a "name." prefix;
// group-valued attributes still nest as structured fields.
func (l *Logger) WithGroup(name string) slog.Handler {
	if name == "" {
		return l
	}
	c := l.clone()
	c.prefix += name + "."
	return c
}

func (l *Logger) clone() *Logger {
	c := *l
	c.attrs = append([]slog.Attr(nil), l.attrs...)
	return &c
}

// qualify applies the open group prefix to an attribute key. An empty-key
// group is inlined per the handler contract, so the prefix descends to its
// children instead.
func (l *Logger) qualify(a slog.Attr) slog.Attr {
	if l.prefix == "" {
		return a
	}
	if a.Key != "" {
		a.Key = l.prefix + a.Key
		return a
	}
	if a.Value.Kind() == slog.KindGroup {
		gs := a.Value.Group()
		qs := make([]slog.Attr, len(gs))
		for i, g := range gs {
			qs[i] = l.qualify(g)
		}
		a.Value = slog.GroupValue(qs...)
	}
	return a
}

// extractMeta consumes the reserved keys from attrs into rec and returns
// the remaining attributes, filtered in place. A reserved key with a value
// of the wrong type is kept as an ordinary field.
func (l *Logger) extractMeta(rec *encode.Record, attrs []slog.Attr) []slog.Attr {
	out := attrs[:0]
	for _, a := range attrs {
		switch a.Key {
		case TargetKey:
			if v := a.Value.Resolve(); v.Kind() == slog.KindString {
				rec.Target = v.String()
				continue
			}
		case EventNameKey:
			if v := a.Value.Resolve(); v.Kind() == slog.KindString && v.String() != "" {
				rec.EventName = v.String()
				continue
			}
		case KeywordKey:
			switch v := a.Value.Resolve(); v.Kind() {
			case slog.KindUint64:
				rec.Keyword = v.Uint64()
				continue
			case slog.KindInt64:
				rec.Keyword = uint64(v.Int64())
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// source resolves the call site from the record's program counter.
func source(pc uintptr) (modulePath, file string, line int) {
	f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if f.File == "" {
		return "", "", 0
	}
	return modulePathOf(f.Function), f.File, f.Line
}

// modulePathOf trims a qualified function name to its package path:
// "a/b/pkg.(*T).M" gives "a/b/pkg".
func modulePathOf(fn string) string {
	if fn == "" {
		return ""
	}
	end := strings.LastIndexByte(fn, '/') + 1
	if dot := strings.IndexByte(fn[end:], '.'); dot >= 0 {
		return fn[:end+dot]
	}
	return fn
}

package encode

import (
	"encoding/json"
	"log/slog"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

// Field names shared by every sink encoding.
const (
	fieldTime       = "time"
	fieldPayload    = "Payload"
	fieldModulePath = "Module Path"
	fieldFile       = "File"
	fieldLine       = "Line"
	fieldKeysValues = "Keys / Values"
)

// Native appends the flat event encoding to e: the leading timestamp, the
// message payload, one field per attribute in input order (or a single
// JSON blob in jsonPayload mode), then the call-site fields when known.
// It returns the number of dropped fields.
func Native(e *event.Event, r *Record, jsonPayload bool) int {
	e.Add(
		event.Time(fieldTime, r.Time),
		event.String(fieldPayload, r.Message),
	)

	dropped := 0
	if jsonPayload {
		if f, ok := jsonField(r.Attrs); ok {
			e.Add(f)
		}
	} else {
		e.Fields, dropped = appendAttrs(e.Fields, r.Attrs)
	}

	if r.ModulePath != "" {
		e.Add(event.String(fieldModulePath, r.ModulePath))
	}
	if r.File != "" {
		e.Add(event.String(fieldFile, r.File))
		if r.Line > 0 {
			e.Add(event.Uint32(fieldLine, uint32(r.Line)))
		}
	}
	return dropped
}

// jsonField collapses the attributes into a single JSON object field. A
// marshal failure skips the field; the event is still written.
func jsonField(attrs []slog.Attr) (event.Field, bool) {
	m := make(map[string]any, len(attrs))
	addJSON(m, attrs)
	b, err := json.Marshal(m)
	if err != nil {
		return event.Field{}, false
	}
	return event.String(fieldKeysValues, string(b)).WithFormat(event.FormatJSON), true
}

func addJSON(m map[string]any, attrs []slog.Attr) {
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		switch a.Value.Kind() {
		case slog.KindGroup:
			g := a.Value.Group()
			if len(g) == 0 {
				continue
			}
			if a.Key == "" {
				addJSON(m, g)
				continue
			}
			gm := make(map[string]any, len(g))
			addJSON(gm, g)
			m[a.Key] = gm
		case slog.KindAny:
			if err, ok := a.Value.Any().(error); ok {
				m[a.Key] = err.Error()
				continue
			}
			m[a.Key] = a.Value.Any()
		default:
			m[a.Key] = a.Value.Any()
		}
	}
}

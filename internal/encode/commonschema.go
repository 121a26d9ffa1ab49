package encode

import "github.com/helsaawy/go-tracelog/pkg/event"

// Common Schema 4.0 envelope.
const (
	fieldCSVersion = "__csver__"
	csVersion      = 0x0401

	fieldPartA = "PartA"
	fieldPartB = "PartB"
	fieldPartC = "PartC"

	fieldExtDT   = "ext_dt"
	fieldTraceID = "traceId"
	fieldSpanID  = "spanId"

	fieldTypeName       = "_typeName"
	fieldName           = "name"
	fieldEventTime      = "eventTime"
	fieldSeverityNumber = "severityNumber"
	fieldSeverityText   = "severityText"

	csTypeName = "Log"
)

const iso8601 = "2006-01-02T15:04:05.000000000Z07:00"

// CommonSchema appends the Common Schema 4.0 envelope to e: the schema
// version tag, PartA with the timestamp and, when the record has a span,
// the distributed-trace extension, PartB with the event identity and
// severity, and PartC with the payload. Both rendered times come from the
// single captured record timestamp.
func CommonSchema(e *event.Event, r *Record) {
	ts := r.Time.UTC().Format(iso8601)

	partA := make([]event.Field, 0, 2)
	partA = append(partA, event.String(fieldTime, ts))
	if r.Span.HasSpanID() {
		partA = append(partA, event.Struct(fieldExtDT,
			event.String(fieldTraceID, r.Span.TraceID().String()),
			event.String(fieldSpanID, r.Span.SpanID().String()),
		))
	}

	e.Add(
		event.Uint16(fieldCSVersion, csVersion).WithFormat(event.FormatSigned),
		event.Struct(fieldPartA, partA...),
		event.Struct(fieldPartB,
			event.String(fieldTypeName, csTypeName),
			event.String(fieldName, r.EventName),
			event.String(fieldEventTime, ts),
			event.Uint8(fieldSeverityNumber, uint8(r.Level)),
			event.String(fieldSeverityText, r.Level.String()),
		),
		event.Struct(fieldPartC,
			event.String(fieldPayload, r.Message),
		),
	)
}

package encode

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Record is the facade-neutral view of one log invocation, captured before
// any encoding happens. Adapters populate it from their facade's record
// type; every encoder reads from it.
type Record struct {
	// Time is captured once, as close to the log call as possible, and is
	// the only timestamp any encoder renders.
	Time  time.Time
	Level Level

	// Target routes the record to a named provider; empty selects the
	// default.
	Target string

	// EventName labels the emitted event.
	EventName string
	Keyword   uint64

	Message string
	Attrs   []slog.Attr

	// ModulePath, File and Line describe the call site when known. Line is
	// meaningful only when File is set.
	ModulePath string
	File       string
	Line       int

	// Span carries the active span context for the Common Schema
	// correlation extension. The zero value means no span.
	Span trace.SpanContext
}

// Package event holds the sink-neutral trace event model: a named event at
// a native severity level, carrying an ordered list of self-describing
// fields.
//
// Encoders build [Event] values and sink adapters translate each [Field]
// into their builder's closest primitive, so the model itself stays free of
// platform dependencies.
package event

import "time"

// Kind discriminates the value stored in a [Field].
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt64
	KindFloat64
	KindString
	KindTime
	KindBytes
	KindUint64s
	KindStruct
)

// Format hints at the rendering of a field for sinks that can express it.
// Sinks without a matching out-type fall back to the plain encoding.
type Format uint8

const (
	FormatDefault Format = iota
	// FormatHex renders integer values as hexadecimal.
	FormatHex
	// FormatSigned renders an unsigned carrier as a signed quantity.
	FormatSigned
	// FormatJSON marks a string holding a serialized JSON object.
	FormatJSON
)

// Event is one trace event prior to sink encoding.
//
// The timestamp travels as the leading field rather than in the header,
// since its wire encoding differs per sink.
type Event struct {
	Name    string
	Level   uint8
	Keyword uint64
	Fields  []Field
}

// Add appends fields in order.
func (e *Event) Add(fields ...Field) {
	e.Fields = append(e.Fields, fields...)
}

// Field is a compact tagged union over the value types the encoders
// produce. Name and Kind are always set; exactly one value slot is
// meaningful for a given kind.
type Field struct {
	Name   string
	Kind   Kind
	Format Format

	Str    string
	U64    uint64
	I64    int64
	F64    float64
	T      time.Time
	Bytes  []byte
	U64s   []uint64
	Fields []Field
}

// WithFormat returns a copy of f carrying the format hint.
func (f Field) WithFormat(fm Format) Field {
	f.Format = fm
	return f
}

func Bool(name string, v bool) Field {
	var u uint64
	if v {
		u = 1
	}
	return Field{Name: name, Kind: KindBool, U64: u}
}

func Uint8(name string, v uint8) Field {
	return Field{Name: name, Kind: KindUint8, U64: uint64(v)}
}

func Uint16(name string, v uint16) Field {
	return Field{Name: name, Kind: KindUint16, U64: uint64(v)}
}

func Uint32(name string, v uint32) Field {
	return Field{Name: name, Kind: KindUint32, U64: uint64(v)}
}

func Uint64(name string, v uint64) Field {
	return Field{Name: name, Kind: KindUint64, U64: v}
}

func Int64(name string, v int64) Field {
	return Field{Name: name, Kind: KindInt64, I64: v}
}

func Float64(name string, v float64) Field {
	return Field{Name: name, Kind: KindFloat64, F64: v}
}

func String(name, v string) Field {
	return Field{Name: name, Kind: KindString, Str: v}
}

// Time carries a timestamp whose encoding is chosen by the sink.
func Time(name string, t time.Time) Field {
	return Field{Name: name, Kind: KindTime, T: t}
}

func Bytes(name string, b []byte) Field {
	return Field{Name: name, Kind: KindBytes, Bytes: b}
}

// Uint64s carries a sequence of 64-bit words, least significant first when
// representing a wider integer.
func Uint64s(name string, vs ...uint64) Field {
	return Field{Name: name, Kind: KindUint64s, U64s: vs}
}

// Struct nests fields under name. The child count a sink declares is
// len(fields), so nested counts are accurate by construction.
func Struct(name string, fields ...Field) Field {
	return Field{Name: name, Kind: KindStruct, Fields: fields}
}

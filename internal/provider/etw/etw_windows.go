//go:build windows

// Package etw adapts the neutral event model onto Event Tracing for
// Windows through [github.com/Microsoft/go-winio/pkg/etw].
package etw

import (
	"fmt"

	"github.com/Microsoft/go-winio/pkg/etw"
	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

// Provider wraps a live ETW registration.
type Provider struct {
	name string
	p    *etw.Provider
}

// New registers name with ETW under the given provider ID. A non-zero
// group joins the registration to that provider group.
func New(name string, id, group guid.GUID) (*Provider, error) {
	opts := []etw.ProviderOpt{etw.WithID(id)}
	if group != (guid.GUID{}) {
		opts = append(opts, etw.WithGroup(group))
	}
	p, err := etw.NewProviderWithOptions(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("register ETW provider %q: %w", name, err)
	}
	return &Provider{name: name, p: p}, nil
}

func (p *Provider) Name() string { return p.name }

// Enabled defers to the session state ETW maintains for the registration.
// A zero keyword restricts on level alone.
func (p *Provider) Enabled(level uint8, keyword uint64) bool {
	return p.p.IsEnabledForLevelAndKeywords(etw.Level(level), keyword)
}

// Write emits one self-describing event.
func (p *Provider) Write(e *event.Event) error {
	return p.p.WriteEvent(e.Name,
		[]etw.EventOpt{
			etw.WithLevel(etw.Level(e.Level)),
			etw.WithKeyword(e.Keyword),
			etw.WithOpcode(etw.OpcodeInfo),
		},
		fieldOpts(make([]etw.FieldOpt, 0, len(e.Fields)), e.Fields),
	)
}

// fieldOpts maps neutral fields onto the builder's primitives. Format
// hints the public builder cannot express (hex sequences, JSON strings)
// degrade to the plain encoding of the same values.
func fieldOpts(opts []etw.FieldOpt, fields []event.Field) []etw.FieldOpt {
	for i := range fields {
		f := &fields[i]
		switch f.Kind {
		case event.KindBool:
			opts = append(opts, etw.BoolField(f.Name, f.U64 != 0))
		case event.KindUint8:
			opts = append(opts, etw.Uint8Field(f.Name, uint8(f.U64)))
		case event.KindUint16:
			opts = append(opts, etw.Uint16Field(f.Name, uint16(f.U64)))
		case event.KindUint32:
			opts = append(opts, etw.Uint32Field(f.Name, uint32(f.U64)))
		case event.KindUint64:
			opts = append(opts, etw.Uint64Field(f.Name, f.U64))
		case event.KindInt64:
			opts = append(opts, etw.Int64Field(f.Name, f.I64))
		case event.KindFloat64:
			opts = append(opts, etw.Float64Field(f.Name, f.F64))
		case event.KindString:
			opts = append(opts, etw.StringField(f.Name, f.Str))
		case event.KindTime:
			opts = append(opts, etw.Uint16Array(f.Name, systemTimeWords(f.T)))
		case event.KindBytes:
			opts = append(opts, etw.Uint8Array(f.Name, f.Bytes))
		case event.KindUint64s:
			opts = append(opts, etw.Uint64Array(f.Name, f.U64s))
		case event.KindStruct:
			opts = append(opts, etw.Struct(f.Name,
				fieldOpts(make([]etw.FieldOpt, 0, len(f.Fields)), f.Fields)...))
		}
	}
	return opts
}

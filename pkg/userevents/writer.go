package userevents

import (
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

var errNilWriter = errors.New("nil writer")

// WriterRegistrar emits events as JSON lines on a writer, one object per
// write, tagged with their set name. Its sets are always enabled. It
// stands in for the kernel transport during development and tests, and
// can feed an external forwarder.
type WriterRegistrar struct {
	mu sync.Mutex
	j  *json.Encoder
}

func NewWriterRegistrar(w io.Writer) (*WriterRegistrar, error) {
	if w == nil {
		return nil, errNilWriter
	}
	j := json.NewEncoder(w)
	j.SetEscapeHTML(false)
	return &WriterRegistrar{j: j}, nil
}

func (r *WriterRegistrar) Register(name string, level uint8, keyword uint64) (EventSet, error) {
	return &writerSet{r: r, name: name}, nil
}

type writerSet struct {
	r    *WriterRegistrar
	name string
}

func (s *writerSet) Enabled() bool { return true }

type jsonEvent struct {
	Set     string      `json:"set"`
	Name    string      `json:"name"`
	Level   uint8       `json:"level"`
	Keyword uint64      `json:"keyword,omitempty"`
	Fields  []jsonField `json:"fields"`
}

type jsonField struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func (s *writerSet) Write(e *event.Event) error {
	line := jsonEvent{
		Set:     s.name,
		Name:    e.Name,
		Level:   e.Level,
		Keyword: e.Keyword,
		Fields:  jsonFields(e.Fields),
	}

	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	return s.r.j.Encode(line)
}

func jsonFields(fs []event.Field) []jsonField {
	out := make([]jsonField, 0, len(fs))
	for i := range fs {
		f := &fs[i]
		out = append(out, jsonField{Name: f.Name, Value: fieldValue(f)})
	}
	return out
}

// fieldValue renders one field for the JSON line. Timestamps take the
// sink's native form, seconds since the Unix epoch.
func fieldValue(f *event.Field) any {
	switch f.Kind {
	case event.KindBool:
		return f.U64 != 0
	case event.KindUint8, event.KindUint16, event.KindUint32, event.KindUint64:
		return f.U64
	case event.KindInt64:
		return f.I64
	case event.KindFloat64:
		return f.F64
	case event.KindString:
		return f.Str
	case event.KindTime:
		return f.T.Unix()
	case event.KindBytes:
		return f.Bytes
	case event.KindUint64s:
		return f.U64s
	case event.KindStruct:
		return jsonFields(f.Fields)
	}
	return nil
}

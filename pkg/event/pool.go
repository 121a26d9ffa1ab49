package event

import "sync"

var pool = sync.Pool{
	New: func() any { return &Event{} },
}

// Get returns a cleared event from the pool, reset to the given identity.
// Callers must hand it back with [Put] once the sink write completes, and
// must not retain the event or its fields afterwards.
func Get(name string, level uint8, keyword uint64) *Event {
	e := pool.Get().(*Event)
	e.Reset(name, level, keyword)
	return e
}

// Put returns e to the pool.
func Put(e *Event) {
	if e == nil {
		return
	}
	pool.Put(e)
}

// Reset prepares the event for reuse. The field slice keeps its capacity,
// so steady-state logging does not allocate on the common path; element
// values are zeroed to release references into the previous event.
func (e *Event) Reset(name string, level uint8, keyword uint64) {
	e.Name = name
	e.Level = level
	e.Keyword = keyword
	for i := range e.Fields {
		e.Fields[i] = Field{}
	}
	e.Fields = e.Fields[:0]
}

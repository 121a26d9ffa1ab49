package tracelog

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/sirupsen/logrus"

	"github.com/helsaawy/go-tracelog/internal/encode"
	"github.com/helsaawy/go-tracelog/internal/provider"
	"github.com/helsaawy/go-tracelog/pkg/event"
	"github.com/helsaawy/go-tracelog/pkg/userevents"
)

// Reserved attribute keys, consumed from the record instead of emitted as
// fields. Only unprefixed top-level keys are reserved; the same keys inside
// groups pass through untouched, as does a reserved key whose value has the
// wrong type.
const (
	// TargetKey routes the record to the provider registered under the
	// string value instead of the logger's default provider.
	TargetKey = "target"
	// EventNameKey renames this record's event.
	EventNameKey = "event"
	// KeywordKey sets this record's keyword from an integer value.
	KeywordKey = "keyword"
)

// LevelTrace is the sixth severity, below [slog.LevelDebug], mapping to
// the native level one past verbose.
const LevelTrace = slog.LevelDebug - 4

const defaultEventName = "Log"

var (
	// ErrNoProviderName is returned by [New] when the provider name is
	// empty.
	ErrNoProviderName = errors.New("provider name is empty")
	// ErrZeroGUID is returned when an explicitly configured provider or
	// group ID is all zero.
	ErrZeroGUID = errors.New("GUID is all zero")
	// ErrInvalidGroupName is returned for provider group names outside
	// [a-z0-9]+.
	ErrInvalidGroupName = errors.New("invalid provider group name")
)

// Logger dispatches log records to native trace providers. It implements
// [slog.Handler]; [Logger.Hook] adapts the same logger for logrus. Derived
// handlers from WithAttrs and WithGroup share the provider registry and
// counters with their origin.
type Logger struct {
	name      string
	id        guid.GUID
	groupID   guid.GUID
	groupName string

	eventName string
	keyword   uint64

	level        slog.Leveler
	jsonPayload  bool
	commonSchema bool
	sourceInfo   bool

	registrar   userevents.Registrar
	newProvider provider.Factory

	registry *provider.Registry
	stats    *counters

	// handler state; cloned by WithAttrs and WithGroup
	attrs  []slog.Attr
	prefix string
}

type counters struct {
	registrationFailures atomic.Uint64
	writeFailures        atomic.Uint64
	droppedFields        atomic.Uint64
}

// Stats is a point-in-time snapshot of a logger's health counters.
type Stats struct {
	// Registrations is the number of providers the registry holds,
	// disabled placeholders for failed registrations included.
	Registrations int
	// RegistrationFailures counts names whose native registration failed.
	RegistrationFailures uint64
	// WriteFailures counts events the native facility rejected.
	WriteFailures uint64
	// DroppedFields counts attributes no field encoding could represent.
	DroppedFields uint64
}

// New returns a logger whose default provider registers under name.
// Configuration problems surface here; nothing on the logging path returns
// an error afterwards.
func New(name string, opts ...Option) (*Logger, error) {
	if name == "" {
		return nil, ErrNoProviderName
	}
	l := &Logger{
		name:       name,
		eventName:  defaultEventName,
		level:      LevelTrace,
		sourceInfo: true,
		stats:      &counters{},
	}
	for _, o := range opts {
		if err := o(l); err != nil {
			return nil, err
		}
	}
	if l.id == (guid.GUID{}) {
		l.id = ProviderID(name)
	}
	if l.newProvider == nil {
		l.newProvider = l.platformFactory
	}
	l.registry = provider.NewRegistry(l.newProvider)
	return l, nil
}

// platformFactory registers a name with the native facility, carrying the
// logger's group, keyword, and transport configuration. Target providers
// derive their ID from their own name; only the default name uses the
// configured ID.
func (l *Logger) platformFactory(name string) (provider.Provider, error) {
	cfg := provider.Config{
		Name:           name,
		ID:             ProviderID(name),
		GroupID:        l.groupID,
		GroupName:      l.groupName,
		DefaultKeyword: l.keyword,
		Registrar:      l.registrar,
	}
	if name == l.name {
		cfg.ID = l.id
	}
	return provider.New(cfg)
}

// Install makes l the process default: [slog.SetDefault] routes both slog
// and the legacy log package through it.
func (l *Logger) Install() {
	slog.SetDefault(slog.New(l))
}

// Stats snapshots the logger's counters.
func (l *Logger) Stats() Stats {
	return Stats{
		Registrations:        l.registry.Len(),
		RegistrationFailures: l.stats.registrationFailures.Load(),
		WriteFailures:        l.stats.writeFailures.Load(),
		DroppedFields:        l.stats.droppedFields.Load(),
	}
}

// providerFor resolves a record's destination, registering it on first
// use. A failed registration counts once, warns once, and leaves a
// disabled provider serving the name.
func (l *Logger) providerFor(target string) provider.Provider {
	name := l.name
	if target != "" {
		name = target
	}
	p, err := l.registry.Get(name)
	if err != nil {
		// the registry reports each name's failure exactly once
		l.stats.registrationFailures.Add(1)
		logrus.WithError(err).WithField("provider", name).
			Warn("trace provider registration failed")
	}
	return p
}

// write emits the record on p as a native event and, when configured, a
// second Common Schema event. Failures are counted, never returned.
func (l *Logger) write(p provider.Provider, r *encode.Record) {
	e := event.Get(r.EventName, r.Level.Native(), r.Keyword)
	defer event.Put(e)

	if dropped := encode.Native(e, r, l.jsonPayload); dropped > 0 {
		l.stats.droppedFields.Add(uint64(dropped))
	}
	if err := p.Write(e); err != nil {
		l.stats.writeFailures.Add(1)
	}
	if !l.commonSchema {
		return
	}

	e.Reset(r.EventName, r.Level.Native(), r.Keyword)
	encode.CommonSchema(e, r)
	if err := p.Write(e); err != nil {
		l.stats.writeFailures.Add(1)
	}
}

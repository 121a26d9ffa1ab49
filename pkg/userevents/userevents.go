// Package userevents adapts the neutral event model onto the Linux
// user_events facility. One event set (tracepoint) exists per level and
// keyword pair, registered lazily and cached for the life of the
// provider. The kernel-facing registration and byte transport sit behind
// [Registrar], so the facility semantics stay testable everywhere and the
// transport stays replaceable.
package userevents

import (
	"fmt"
	"sync"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

// Registrar binds event sets with the tracing facility.
type Registrar interface {
	// Register creates or finds the event set registered under name at
	// the given level and keyword.
	Register(name string, level uint8, keyword uint64) (EventSet, error)
}

// EventSet is one registered tracepoint.
type EventSet interface {
	// Enabled reports whether a tracing session is attached to the set.
	Enabled() bool
	Write(e *event.Event) error
}

type setKey struct {
	level   uint8
	keyword uint64
}

// Provider caches the event sets registered under one provider name.
type Provider struct {
	name  string
	group string
	reg   Registrar

	mu   sync.RWMutex
	sets map[setKey]EventSet
}

// nativeLevels are pre-registered at construction so the common
// severities are queryable before the first write.
var nativeLevels = [...]uint8{2, 3, 4, 5, 6}

// New registers name with the facility and pre-registers an event set for
// each mapped severity level at the default keyword. A nil registrar
// yields sets that are never enabled.
func New(name, group string, keyword uint64, reg Registrar) (*Provider, error) {
	if reg == nil {
		reg = disabledRegistrar{}
	}
	p := &Provider{
		name:  name,
		group: group,
		reg:   reg,
		sets:  make(map[setKey]EventSet, len(nativeLevels)),
	}
	for _, level := range nativeLevels {
		if _, err := p.registerSet(level, keyword); err != nil {
			return nil, fmt.Errorf("register event set %q: %w",
				SetName(name, group, level, keyword), err)
		}
	}
	return p, nil
}

func (p *Provider) Name() string { return p.name }

// Enabled reports whether the set for (level, keyword) exists and has a
// listener. A missing set reads as disabled; enablement checks never
// register sets.
func (p *Provider) Enabled(level uint8, keyword uint64) bool {
	s := p.findSet(level, keyword)
	return s != nil && s.Enabled()
}

// Write routes the event to its set, registering the set on first use.
func (p *Provider) Write(e *event.Event) error {
	s := p.findSet(e.Level, e.Keyword)
	if s == nil {
		var err error
		if s, err = p.registerSet(e.Level, e.Keyword); err != nil {
			return fmt.Errorf("register event set %q: %w",
				SetName(p.name, p.group, e.Level, e.Keyword), err)
		}
	}
	return s.Write(e)
}

func (p *Provider) findSet(level uint8, keyword uint64) EventSet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sets[setKey{level, keyword}]
}

// registerSet creates the set under the write lock, re-checking for a
// racing registration first.
func (p *Provider) registerSet(level uint8, keyword uint64) (EventSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	k := setKey{level, keyword}
	if s, ok := p.sets[k]; ok {
		return s, nil
	}
	s, err := p.reg.Register(SetName(p.name, p.group, level, keyword), level, keyword)
	if err != nil {
		return nil, err
	}
	p.sets[k] = s
	return s, nil
}

// SetName is the tracepoint name for one event set, following the
// eventheader convention: <provider>_L<level>K<keyword>[G<group>], with
// level and keyword in lowercase hex.
func SetName(provider, group string, level uint8, keyword uint64) string {
	s := fmt.Sprintf("%s_L%xK%x", provider, level, keyword)
	if group != "" {
		s += "G" + group
	}
	return s
}

type disabledRegistrar struct{}

func (disabledRegistrar) Register(string, uint8, uint64) (EventSet, error) {
	return disabledSet{}, nil
}

type disabledSet struct{}

func (disabledSet) Enabled() bool            { return false }
func (disabledSet) Write(*event.Event) error { return nil }

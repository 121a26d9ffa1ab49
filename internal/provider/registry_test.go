package provider

import (
	"errors"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

type fakeProvider struct {
	name    string
	enabled bool
	writes  atomic.Uint64
}

func (p *fakeProvider) Name() string               { return p.name }
func (p *fakeProvider) Enabled(uint8, uint64) bool { return p.enabled }
func (p *fakeProvider) Write(e *event.Event) error { p.writes.Add(1); return nil }

func TestRegistryCreateOnce(t *testing.T) {
	var calls atomic.Uint64
	r := NewRegistry(func(name string) (Provider, error) {
		calls.Add(1)
		return &fakeProvider{name: name, enabled: true}, nil
	})

	ps := make([]Provider, 16)
	var g errgroup.Group
	for i := range ps {
		i := i
		g.Go(func() error {
			p, err := r.Get("App")
			if err != nil {
				return err
			}
			ps[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if n := calls.Load(); n != 1 {
		t.Fatalf("got %d factory calls, wanted 1", n)
	}
	for i, p := range ps {
		if p != ps[0] {
			t.Fatalf("lookup %d returned a different provider", i)
		}
	}
	if n := r.Len(); n != 1 {
		t.Fatalf("got %d registrations, wanted 1", n)
	}
}

func TestRegistryDistinctNames(t *testing.T) {
	r := NewRegistry(func(name string) (Provider, error) {
		return &fakeProvider{name: name}, nil
	})

	app, err := r.Get("App")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	named, err := r.Get("Real")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if app == named {
		t.Fatalf("wanted distinct providers per name")
	}
	if app.Name() != "App" || named.Name() != "Real" {
		t.Fatalf("got names (%s, %s), wanted (App, Real)", app.Name(), named.Name())
	}
	if !r.Has("App") || !r.Has("Real") || r.Len() != 2 {
		t.Fatalf("registry should hold exactly App and Real")
	}
}

func TestRegistryFailOpen(t *testing.T) {
	var calls atomic.Uint64
	errBackend := errors.New("no backend")
	r := NewRegistry(func(name string) (Provider, error) {
		calls.Add(1)
		return nil, errBackend
	})

	p, err := r.Get("App")
	if !errors.Is(err, errBackend) {
		t.Fatalf("got %v, wanted %v", err, errBackend)
	}
	if p == nil || p.Enabled(2, 0) {
		t.Fatalf("wanted a disabled placeholder provider")
	}
	if err := p.Write(&event.Event{}); err != nil {
		t.Fatalf("disabled write failed: %v", err)
	}

	// the failure is cached; later lookups are quiet and skip the factory
	p2, err := r.Get("App")
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if p2 != p {
		t.Fatalf("second lookup returned a different provider")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("got %d factory calls, wanted 1", n)
	}
}

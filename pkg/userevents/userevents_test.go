package userevents

import (
	"errors"
	"testing"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

type fakeSet struct {
	name    string
	enabled bool
	events  []*event.Event
}

func (s *fakeSet) Enabled() bool { return s.enabled }

func (s *fakeSet) Write(e *event.Event) error {
	s.events = append(s.events, e)
	return nil
}

type fakeRegistrar struct {
	calls   int
	enabled bool
	err     error
	sets    map[string]*fakeSet
}

func (r *fakeRegistrar) Register(name string, level uint8, keyword uint64) (EventSet, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	s := &fakeSet{name: name, enabled: r.enabled}
	if r.sets == nil {
		r.sets = make(map[string]*fakeSet)
	}
	r.sets[name] = s
	return s, nil
}

func TestSetName(t *testing.T) {
	for _, tt := range []struct {
		provider, group string
		level           uint8
		keyword         uint64
		want            string
	}{
		{"App", "", 4, 0, "App_L4K0"},
		{"App", "", 11, 0x1f, "App_LbK1f"},
		{"App", "grp", 2, 1, "App_L2K1Ggrp"},
	} {
		if s := SetName(tt.provider, tt.group, tt.level, tt.keyword); s != tt.want {
			t.Fatalf("got %q, wanted %q", s, tt.want)
		}
	}
}

func TestNewPreRegisters(t *testing.T) {
	reg := &fakeRegistrar{}
	if _, err := New("App", "", 0, reg); err != nil {
		t.Fatalf("could not create provider: %v", err)
	}
	if reg.calls != len(nativeLevels) {
		t.Fatalf("got %d registrations, wanted %d", reg.calls, len(nativeLevels))
	}
	for _, level := range nativeLevels {
		if _, ok := reg.sets[SetName("App", "", level, 0)]; !ok {
			t.Fatalf("missing pre-registered set for level %d", level)
		}
	}
}

func TestEnabledFindOnly(t *testing.T) {
	reg := &fakeRegistrar{enabled: true}
	p, err := New("App", "", 0, reg)
	if err != nil {
		t.Fatalf("could not create provider: %v", err)
	}
	calls := reg.calls

	if !p.Enabled(4, 0) {
		t.Fatalf("pre-registered set should report enabled")
	}
	if p.Enabled(4, 0x10) {
		t.Fatalf("unregistered keyword should read disabled")
	}
	if reg.calls != calls {
		t.Fatalf("enablement check registered a set")
	}
}

func TestEnabledRequiresListener(t *testing.T) {
	reg := &fakeRegistrar{}
	p, err := New("App", "", 0, reg)
	if err != nil {
		t.Fatalf("could not create provider: %v", err)
	}
	if p.Enabled(4, 0) {
		t.Fatalf("set without a listener should read disabled")
	}
}

func TestWriteRegistersOnDemand(t *testing.T) {
	reg := &fakeRegistrar{enabled: true}
	p, err := New("App", "", 0, reg)
	if err != nil {
		t.Fatalf("could not create provider: %v", err)
	}
	calls := reg.calls

	e := &event.Event{Name: "Log", Level: 4, Keyword: 0x10}
	if err := p.Write(e); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if reg.calls != calls+1 {
		t.Fatalf("got %d new registrations, wanted 1", reg.calls-calls)
	}
	s := reg.sets[SetName("App", "", 4, 0x10)]
	if s == nil || len(s.events) != 1 {
		t.Fatalf("event did not reach the new set")
	}

	if err := p.Write(e); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if reg.calls != calls+1 {
		t.Fatalf("second write should reuse the cached set")
	}
	if len(s.events) != 2 {
		t.Fatalf("got %d events, wanted 2", len(s.events))
	}
}

func TestNilRegistrarDisabled(t *testing.T) {
	p, err := New("App", "", 0, nil)
	if err != nil {
		t.Fatalf("could not create provider: %v", err)
	}
	if p.Enabled(2, 0) {
		t.Fatalf("default sets should never report enabled")
	}
	if err := p.Write(&event.Event{Name: "Log", Level: 2}); err != nil {
		t.Fatalf("write should quietly discard, got %v", err)
	}
}

func TestRegisterFailure(t *testing.T) {
	errFull := errors.New("tracefs full")
	reg := &fakeRegistrar{err: errFull}
	if _, err := New("App", "", 0, reg); !errors.Is(err, errFull) {
		t.Fatalf("got %v, wanted %v", err, errFull)
	}
}

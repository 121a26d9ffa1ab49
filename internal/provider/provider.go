// Package provider routes events to the OS trace facility. A [Registry]
// hands out one [Provider] per name, creating it through a platform
// factory on first use and caching it for the life of the process;
// registrations are intentionally never torn down.
package provider

import (
	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/helsaawy/go-tracelog/pkg/event"
	"github.com/helsaawy/go-tracelog/pkg/userevents"
)

// Provider is one named registration with the native trace facility.
// Implementations must be safe for concurrent use.
type Provider interface {
	Name() string
	// Enabled reports whether a trace session wants events at this level
	// and keyword. A zero keyword restricts on level alone.
	Enabled(level uint8, keyword uint64) bool
	Write(e *event.Event) error
}

// Factory creates the provider registered under a name. The root package
// builds one around its resolved configuration; tests substitute fakes.
type Factory func(name string) (Provider, error)

// Config is the resolved identity a platform factory registers.
type Config struct {
	Name string
	// ID is the provider GUID; always resolved by the caller, either from
	// an explicit option or derived from Name.
	ID guid.GUID
	// GroupID joins the provider to a provider group when non-zero
	// (Windows).
	GroupID guid.GUID
	// GroupName suffixes event-set names when non-empty (Linux).
	GroupName string
	// DefaultKeyword seeds the pre-registered event sets (Linux).
	DefaultKeyword uint64
	// Registrar overrides the Linux event-set transport. Nil selects the
	// platform default, whose sets are never enabled.
	Registrar userevents.Registrar
}

// Disabled returns a provider that reports no listeners and discards
// writes. It stands in for failed registrations and for platforms without
// a native sink.
func Disabled(name string) Provider { return disabled(name) }

type disabled string

func (d disabled) Name() string             { return string(d) }
func (disabled) Enabled(uint8, uint64) bool { return false }
func (disabled) Write(*event.Event) error   { return nil }

package tracelog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/helsaawy/go-tracelog/internal/provider"
	"github.com/helsaawy/go-tracelog/pkg/userevents"
)

// Option configures a [Logger]. Options are applied in order during [New];
// the first error aborts construction.
type Option func(*Logger) error

// WithProviderID registers the default provider under id instead of the
// GUID derived from its name with [ProviderID].
func WithProviderID(id guid.GUID) Option {
	return func(l *Logger) error {
		if id == (guid.GUID{}) {
			return fmt.Errorf("provider ID: %w", ErrZeroGUID)
		}
		l.id = id
		return nil
	}
}

// WithProviderGroupID joins providers to an ETW provider group (Windows).
func WithProviderGroupID(id guid.GUID) Option {
	return func(l *Logger) error {
		if id == (guid.GUID{}) {
			return fmt.Errorf("provider group ID: %w", ErrZeroGUID)
		}
		l.groupID = id
		return nil
	}
}

// WithProviderGroupName suffixes user_events set names with a provider
// group (Linux). Group names are lowercase ASCII letters and digits only.
func WithProviderGroupName(name string) Option {
	return func(l *Logger) error {
		if err := validGroupName(name); err != nil {
			return err
		}
		l.groupName = name
		return nil
	}
}

func validGroupName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidGroupName)
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return fmt.Errorf("%w: %q", ErrInvalidGroupName, name)
		}
	}
	return nil
}

// WithJSONPayload collapses record attributes into one JSON object field
// per event instead of a field per key.
func WithJSONPayload() Option {
	return func(l *Logger) error {
		l.jsonPayload = true
		return nil
	}
}

// WithCommonSchema additionally emits every record as a Common Schema 4.0
// event on the same provider.
func WithCommonSchema() Option {
	return func(l *Logger) error {
		l.commonSchema = true
		return nil
	}
}

// WithDefaultEventName overrides the name given to events whose record does
// not set one via [EventNameKey]. The default is "Log".
func WithDefaultEventName(name string) Option {
	return func(l *Logger) error {
		if name == "" {
			return errors.New("default event name is empty")
		}
		l.eventName = name
		return nil
	}
}

// WithDefaultKeyword sets the keyword on events whose record does not set
// one via [KeywordKey]. The zero default restricts enablement on level
// alone.
func WithDefaultKeyword(k uint64) Option {
	return func(l *Logger) error {
		l.keyword = k
		return nil
	}
}

// WithSourceInfo controls whether call-site fields (module path, file,
// line) are appended to native events. On by default.
func WithSourceInfo(b bool) Option {
	return func(l *Logger) error {
		l.sourceInfo = b
		return nil
	}
}

// WithLevel sets the minimum level the handler admits before consulting
// native enablement. The default, [LevelTrace], admits everything.
func WithLevel(level slog.Leveler) Option {
	return func(l *Logger) error {
		l.level = level
		return nil
	}
}

// WithUserEventsRegistrar supplies the kernel-facing event-set transport
// for Linux providers, such as [userevents.NewWriterRegistrar]. Without
// one, sets register but never report a listener.
func WithUserEventsRegistrar(r userevents.Registrar) Option {
	return func(l *Logger) error {
		l.registrar = r
		return nil
	}
}

// withFactory substitutes the platform provider factory. Tests inject
// instrumented sinks through it.
func withFactory(f provider.Factory) Option {
	return func(l *Logger) error {
		l.newProvider = f
		return nil
	}
}

// Package encode turns facade log records into sink-neutral events: it owns
// the severity mapping, the flat native field layout, the value visitor,
// and the Common Schema 4.0 envelope.
package encode

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sirupsen/logrus"
)

var ErrUnknownLevel = errors.New("unknown level")

// Level is the facade-side severity, ordered from most to least severe.
// Its numeric value doubles as the Common Schema severityNumber. The zero
// value is not a valid level.
type Level uint8

const (
	LevelError = Level(iota + 1)
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var _levelNames = map[Level]string{
	LevelError: "ERROR",
	LevelWarn:  "WARN",
	LevelInfo:  "INFO",
	LevelDebug: "DEBUG",
	LevelTrace: "TRACE",
}

func (l Level) String() string {
	if s, ok := _levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("LEVEL(%d)", uint8(l))
}

func (l *Level) MarshalText() ([]byte, error) {
	if s, ok := _levelNames[*l]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("invalid level %d: %w", uint8(*l), ErrUnknownLevel)
}

// Native maps the facade severity onto the native trace level shared by
// both sinks: Error and Warn to their native counterparts, Info to
// informational, Debug to verbose. Trace has no native equivalent and maps
// one past verbose so sessions can opt into it explicitly.
func (l Level) Native() uint8 {
	switch l {
	case LevelError:
		return 2
	case LevelWarn:
		return 3
	case LevelInfo:
		return 4
	case LevelDebug:
		return 5
	case LevelTrace:
		return 6
	}
	// log-always; the facades never produce it
	return 0
}

// FromSlog buckets an [slog.Level] into the facade severity. Levels at or
// above Error fold into Error; anything below Debug reads as Trace.
func FromSlog(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarn
	case l >= slog.LevelInfo:
		return LevelInfo
	case l >= slog.LevelDebug:
		return LevelDebug
	}
	return LevelTrace
}

// FromLogrus maps a [logrus.Level]; Panic and Fatal fold into Error.
func FromLogrus(l logrus.Level) Level {
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return LevelError
	case logrus.WarnLevel:
		return LevelWarn
	case logrus.InfoLevel:
		return LevelInfo
	case logrus.DebugLevel:
		return LevelDebug
	}
	return LevelTrace
}

package encode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

var errIntTooWide = errors.New("integer wider than 128 bits")

// appendAttrs visits attrs and appends at most one field per key to fs,
// returning the grown slice and the count of dropped fields. Group values
// nest recursively; groups with an empty key are inlined and empty groups
// are elided, per the handler contract.
func appendAttrs(fs []event.Field, attrs []slog.Attr) ([]event.Field, int) {
	dropped := 0
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		if a.Value.Kind() == slog.KindGroup {
			g := a.Value.Group()
			if len(g) == 0 {
				continue
			}
			if a.Key == "" {
				var d int
				fs, d = appendAttrs(fs, g)
				dropped += d
				continue
			}
			children, d := appendAttrs(make([]event.Field, 0, len(g)), g)
			dropped += d
			if len(children) == 0 {
				continue
			}
			fs = append(fs, event.Struct(a.Key, children...))
			continue
		}
		f, err := visit(a)
		if err != nil {
			dropped++
			continue
		}
		fs = append(fs, f)
	}
	return fs, dropped
}

// visit converts one resolved, non-group attribute into exactly one field.
// An error means this field, and only this field, is dropped.
func visit(a slog.Attr) (event.Field, error) {
	v := a.Value
	switch v.Kind() {
	case slog.KindBool:
		return event.Bool(a.Key, v.Bool()), nil
	case slog.KindInt64:
		return event.Int64(a.Key, v.Int64()), nil
	case slog.KindUint64:
		return event.Uint64(a.Key, v.Uint64()), nil
	case slog.KindFloat64:
		return event.Float64(a.Key, v.Float64()), nil
	case slog.KindString:
		return event.String(a.Key, v.String()), nil
	case slog.KindDuration:
		return event.Int64(a.Key, v.Duration().Nanoseconds()), nil
	case slog.KindTime:
		return event.Time(a.Key, v.Time()), nil
	case slog.KindAny:
		return visitAny(a.Key, v.Any())
	}
	return event.String(a.Key, fmt.Sprint(v.Any())), nil
}

func visitAny(key string, v any) (event.Field, error) {
	switch v := v.(type) {
	case error:
		return event.String(key, v.Error()), nil
	case []byte:
		return event.Bytes(key, v), nil
	case *big.Int:
		if v == nil {
			break
		}
		lo, hi, err := int128Words(v)
		if err != nil {
			return event.Field{}, err
		}
		return event.Uint64s(key, lo, hi).WithFormat(event.FormatHex), nil
	}
	return event.String(key, fmt.Sprint(v)), nil
}

var (
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	wrapInt128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

// int128Words packs v into two 64-bit words, least significant first.
// Negative values take their 128-bit two's complement form. Values outside
// [-2^127, 2^128) cannot round-trip and are rejected.
func int128Words(v *big.Int) (lo, hi uint64, err error) {
	if v.Sign() >= 0 {
		if v.BitLen() > 128 {
			return 0, 0, errIntTooWide
		}
	} else {
		if v.Cmp(minInt128) < 0 {
			return 0, 0, errIntTooWide
		}
		v = new(big.Int).Add(wrapInt128, v)
	}
	var b [16]byte
	v.FillBytes(b[:])
	return binary.BigEndian.Uint64(b[8:]), binary.BigEndian.Uint64(b[:8]), nil
}

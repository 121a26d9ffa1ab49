package etw

import "time"

// systemTimeWords flattens t, in UTC, into the eight 16-bit words of a
// SYSTEMTIME structure: year, month, day-of-week (always zero), day, hour,
// minute, second, millisecond.
func systemTimeWords(t time.Time) []uint16 {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	return []uint16{
		uint16(year),
		uint16(month),
		0,
		uint16(day),
		uint16(hour),
		uint16(min),
		uint16(sec),
		uint16(t.Nanosecond() / int(time.Millisecond)),
	}
}

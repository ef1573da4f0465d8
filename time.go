package tempus

import (
	"fmt"
)

// Time represents a wall-clock reading: hour, minute, second, and nanosecond,
// with no date, offset, or zone attached. The zero value is midnight.
type Time struct {
	hour   int8
	minute int8
	second int8
	nsec   int32
}

// NewTime returns the given clock reading, or ErrInvalidComponent if any
// field is out of range. Leap seconds are not representable.
func NewTime(hour, minute, second, nanosecond int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, fmt.Errorf(
			"%w: hour %d out of range [0, 23]", ErrInvalidComponent, hour,
		)
	}
	if minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf(
			"%w: minute %d out of range [0, 59]", ErrInvalidComponent, minute,
		)
	}
	if second < 0 || second > 59 {
		return Time{}, fmt.Errorf(
			"%w: second %d out of range [0, 59]", ErrInvalidComponent, second,
		)
	}
	if nanosecond < 0 || nanosecond >= nanosPerSecond {
		return Time{}, fmt.Errorf(
			"%w: nanosecond %d out of range [0, 999999999]",
			ErrInvalidComponent, nanosecond,
		)
	}
	return Time{int8(hour), int8(minute), int8(second), int32(nanosecond)}, nil
}

// Midnight is the clock reading 00:00:00.
var Midnight = Time{}

// Hour returns the hour of t, 0 through 23.
func (t Time) Hour() int { return int(t.hour) }

// Minute returns the minute of t, 0 through 59.
func (t Time) Minute() int { return int(t.minute) }

// Second returns the second of t, 0 through 59.
func (t Time) Second() int { return int(t.second) }

// Nanosecond returns the nanosecond of t, 0 through 999999999.
func (t Time) Nanosecond() int { return int(t.nsec) }

// secondOfDay returns the whole seconds elapsed since midnight.
func (t Time) secondOfDay() int64 {
	return int64(t.hour)*secondsPerHour +
		int64(t.minute)*secondsPerMinute +
		int64(t.second)
}

// timeFromDaySeconds builds a Time from whole seconds since midnight plus a
// nanosecond part. sec must be in [0, 86400) and nsec in [0, 1e9).
func timeFromDaySeconds(sec int64, nsec int32) Time {
	return Time{
		hour:   int8(sec / secondsPerHour),
		minute: int8(sec % secondsPerHour / secondsPerMinute),
		second: int8(sec % secondsPerMinute),
		nsec:   nsec,
	}
}

// On combines t with a date into a [PlainDateTime].
func (t Time) On(d Date) PlainDateTime { return PlainDateTime{d, t} }

// Compare orders clock readings within a day, returning -1, 0, or +1.
func (t Time) Compare(o Time) int {
	if c := cmpInt(int(t.secondOfDay()), int(o.secondOfDay())); c != 0 {
		return c
	}
	return cmpInt(int(t.nsec), int(o.nsec))
}

// Round rounds t to a multiple of increment units using the given mode,
// wrapping at midnight. Rounding to UnitDay is not meaningful for a bare
// clock reading and reports ErrInvalidArgument.
func (t Time) Round(unit Unit, increment int, mode RoundMode) (Time, error) {
	if unit == UnitDay {
		return Time{}, fmt.Errorf(
			"%w: cannot round a clock reading to whole days", ErrInvalidArgument,
		)
	}
	span, err := unitSpan(unit, increment)
	if err != nil {
		return Time{}, err
	}
	sec, nsec := roundSecNanos(t.secondOfDay(), t.nsec, span, mode)
	// Wrap at midnight.
	return timeFromDaySeconds(floorMod(sec, secondsPerDay), nsec), nil
}

// FormatCommonISO formats t in the canonical ISO 8601 extended form,
// HH:MM:SS with the fractional second appended only when nonzero.
func (t Time) FormatCommonISO() string {
	return string(t.appendISO(make([]byte, 0, len("15:04:05.999999999"))))
}

func (t Time) appendISO(b []byte) []byte {
	b = appendPadded(b, int(t.hour), 2)
	b = append(b, ':')
	b = appendPadded(b, int(t.minute), 2)
	b = append(b, ':')
	b = appendPadded(b, int(t.second), 2)
	return appendFraction(b, t.nsec)
}

// appendFraction appends a dot and the nanosecond fraction with trailing
// zeros removed, or nothing at all for a whole second.
func appendFraction(b []byte, nsec int32) []byte {
	if nsec == 0 {
		return b
	}
	digits := 9
	for nsec%10 == 0 {
		nsec /= 10
		digits--
	}
	b = append(b, '.')
	return appendPadded(b, int(nsec), digits)
}

// String returns the canonical ISO 8601 form of t.
func (t Time) String() string { return t.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := ParseTimeCommonISO(string(b))
	if err == nil {
		*t = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t Time) MarshalBinary() ([]byte, error) {
	return appendVarints(
		int64(t.hour), int64(t.minute), int64(t.second), int64(t.nsec),
	), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Time) UnmarshalBinary(b []byte) error {
	var h, m, s, ns int64
	if err := consumeVarints("time", b, &h, &m, &s, &ns); err != nil {
		return err
	}
	v, err := NewTime(int(h), int(m), int(s), int(ns))
	if err == nil {
		*t = v
	}
	return err
}

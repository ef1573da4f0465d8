package tempus

import (
	"fmt"
)

// OffsetDateTime is an aware date-time with a fixed UTC offset in whole
// seconds. It pins one unambiguous moment, but the offset is a snapshot: it
// does not track civil time rules, so ordinary arithmetic is not offered.
// Shift the underlying [Instant], convert to a [ZonedDateTime], or use the
// explicit [OffsetDateTime.AddIgnoreDST] escape hatch.
type OffsetDateTime struct {
	dt     PlainDateTime
	offset int32
}

// NewOffsetDateTime validates the fields and combines them with the given
// UTC offset in seconds. No zone lookup takes place, so construction never
// encounters gaps or folds.
func NewOffsetDateTime(year, month, day, hour, minute, second, nanosecond, offsetSeconds int) (OffsetDateTime, error) {
	dt, err := NewPlainDateTime(year, month, day, hour, minute, second, nanosecond)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return dt.AssumeOffset(offsetSeconds)
}

// Offset returns the fixed UTC offset of dt in seconds.
func (dt OffsetDateTime) Offset() int { return int(dt.offset) }

// ToPlain returns the local reading, discarding the offset.
func (dt OffsetDateTime) ToPlain() PlainDateTime { return dt.dt }

// Date returns the local calendar date.
func (dt OffsetDateTime) Date() Date { return dt.dt.date }

// Time returns the local clock reading.
func (dt OffsetDateTime) Time() Time { return dt.dt.time }

// ToInstant returns the exact moment dt pins, satisfying [Moment].
func (dt OffsetDateTime) ToInstant() Instant {
	return Instant{
		sec:  dt.dt.localSeconds() - int64(dt.offset),
		nsec: dt.dt.time.nsec,
	}
}

// Compare orders by resolved instant, returning -1, 0, or +1. Two values
// with different offsets but the same instant compare equal.
func (dt OffsetDateTime) Compare(o OffsetDateTime) int {
	return dt.ToInstant().Compare(o.ToInstant())
}

// EqualInstant reports whether dt and o pin the same moment.
func (dt OffsetDateTime) EqualInstant(o Moment) bool {
	return dt.ToInstant().Compare(o.ToInstant()) == 0
}

// WithOffset returns the same moment re-expressed at another fixed offset.
func (dt OffsetDateTime) WithOffset(offsetSeconds int) (OffsetDateTime, error) {
	return dt.ToInstant().InOffset(offsetSeconds)
}

// InTZ returns the same moment in the given IANA zone.
func (dt OffsetDateTime) InTZ(zone string) (ZonedDateTime, error) {
	return dt.ToInstant().InTZ(zone)
}

// Sub returns the exact time elapsed from o to dt.
func (dt OffsetDateTime) Sub(o Moment) TimeDelta {
	return dt.ToInstant().Sub(o.ToInstant())
}

// AddIgnoreDST shifts the local reading by d while keeping the frozen
// offset. The name is the warning: if a civil rule change falls inside the
// shift, the result is a moment the zone never showed. This is the
// caller's-own-risk escape hatch the type otherwise refuses to offer.
func (dt OffsetDateTime) AddIgnoreDST(d TimeDelta) (OffsetDateTime, error) {
	shifted, err := dt.dt.AddTime(d)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return shifted.AssumeOffset(int(dt.offset))
}

// SubIgnoreDST is AddIgnoreDST with the delta negated.
func (dt OffsetDateTime) SubIgnoreDST(d TimeDelta) (OffsetDateTime, error) {
	return dt.AddIgnoreDST(d.Neg())
}

// Round rounds the local clock reading, keeping the offset.
func (dt OffsetDateTime) Round(unit Unit, increment int, mode RoundMode) (OffsetDateTime, error) {
	local, nsec, err := roundLocal(dt.dt, unit, increment, mode)
	if err != nil {
		return OffsetDateTime{}, err
	}
	rounded, err := plainFromLocalSeconds(local, nsec)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return rounded.AssumeOffset(int(dt.offset))
}

// FormatCommonISO formats dt in the canonical ISO 8601 extended form with
// its offset suffix, Z when the offset is zero.
func (dt OffsetDateTime) FormatCommonISO() string {
	b := make([]byte, 0, len("2006-01-02T15:04:05.999999999+00:00:00"))
	b = dt.dt.appendISO(b)
	return string(appendOffset(b, dt.offset, true))
}

// FormatRFC3339 formats dt as RFC 3339: the offset is always ±HH:MM or Z,
// never carrying a seconds part. Offsets with sub-minute components cannot
// be represented and report ErrInvalidComponent.
func (dt OffsetDateTime) FormatRFC3339() (string, error) {
	if dt.offset%secondsPerMinute != 0 {
		return "", fmt.Errorf(
			"%w: offset %ds has seconds, not representable in RFC 3339",
			ErrInvalidComponent, dt.offset,
		)
	}
	b := make([]byte, 0, len("2006-01-02T15:04:05.999999999+00:00"))
	b = dt.dt.appendISO(b)
	return string(appendOffset(b, dt.offset, true)), nil
}

// FormatRFC2822 formats dt as an RFC 2822 timestamp, using GMT for offset
// zero. Offsets with sub-minute components report ErrInvalidComponent.
func (dt OffsetDateTime) FormatRFC2822() (string, error) {
	if dt.offset%secondsPerMinute != 0 {
		return "", fmt.Errorf(
			"%w: offset %ds has seconds, not representable in RFC 2822",
			ErrInvalidComponent, dt.offset,
		)
	}
	return formatRFC2822(dt.dt, dt.offset, dt.offset == 0), nil
}

// String returns the canonical ISO 8601 form of dt.
func (dt OffsetDateTime) String() string { return dt.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (dt OffsetDateTime) MarshalText() ([]byte, error) {
	return []byte(dt.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *OffsetDateTime) UnmarshalText(b []byte) error {
	v, err := ParseOffsetDateTimeCommonISO(string(b))
	if err == nil {
		*dt = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (dt OffsetDateTime) MarshalBinary() ([]byte, error) {
	return appendVarints(
		int64(dt.dt.date.year), int64(dt.dt.date.month), int64(dt.dt.date.day),
		int64(dt.dt.time.hour), int64(dt.dt.time.minute), int64(dt.dt.time.second),
		int64(dt.dt.time.nsec), int64(dt.offset),
	), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (dt *OffsetDateTime) UnmarshalBinary(b []byte) error {
	var y, mo, d, h, mi, s, ns, off int64
	if err := consumeVarints(
		"offset date-time", b, &y, &mo, &d, &h, &mi, &s, &ns, &off,
	); err != nil {
		return err
	}
	pdt, err := NewPlainDateTime(
		int(y), int(mo), int(d), int(h), int(mi), int(s), int(ns),
	)
	if err != nil {
		return err
	}
	v, err := pdt.AssumeOffset(int(off))
	if err == nil {
		*dt = v
	}
	return err
}

// appendOffset appends Z for zero or ±HH:MM[:SS], including the seconds
// part only when nonzero and allowed.
func appendOffset(b []byte, offset int32, zuluForZero bool) []byte {
	if offset == 0 && zuluForZero {
		return append(b, 'Z')
	}
	o := int64(offset)
	if o < 0 {
		b = append(b, '-')
		o = -o
	} else {
		b = append(b, '+')
	}
	b = appendPadded(b, int(o/secondsPerHour), 2)
	b = append(b, ':')
	b = appendPadded(b, int(o%secondsPerHour/secondsPerMinute), 2)
	if s := o % secondsPerMinute; s != 0 {
		b = append(b, ':')
		b = appendPadded(b, int(s), 2)
	}
	return b
}

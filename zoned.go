package tempus

import (
	"fmt"
)

// ZonedDateTime is an aware date-time in an IANA time zone: a local reading
// plus the UTC offset that was in effect, resolved through the process
// timezone cache. Carrying both sides means the value stays unambiguous even
// when the zone's rules make the local reading occur twice.
type ZonedDateTime struct {
	dt     PlainDateTime
	offset int32
	zone   string
}

// NewZonedDateTime validates the fields and resolves them in the given zone
// under [DisambiguateCompatible]: a constructor builds a value from whole
// cloth and should succeed, so gapped readings shift forward and folded
// readings take the first occurrence. This deliberately differs from the
// [PlainDateTime.AssumeTZ] promotion default, which raises instead.
func NewZonedDateTime(year, month, day, hour, minute, second, nanosecond int, zone string) (ZonedDateTime, error) {
	return NewZonedDateTimeWith(
		year, month, day, hour, minute, second, nanosecond, zone,
		DisambiguateCompatible,
	)
}

// NewZonedDateTimeWith is [NewZonedDateTime] with an explicit disambiguation
// policy.
func NewZonedDateTimeWith(year, month, day, hour, minute, second, nanosecond int, zone string, dis Disambiguate) (ZonedDateTime, error) {
	dt, err := NewPlainDateTime(year, month, day, hour, minute, second, nanosecond)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return zonedFromPlain(dt, zone, dis)
}

// Zone returns the IANA zone identifier of dt.
func (dt ZonedDateTime) Zone() string { return dt.zone }

// Offset returns the resolved UTC offset of dt in seconds.
func (dt ZonedDateTime) Offset() int { return int(dt.offset) }

// ToPlain returns the local reading, discarding offset and zone.
func (dt ZonedDateTime) ToPlain() PlainDateTime { return dt.dt }

// Date returns the local calendar date.
func (dt ZonedDateTime) Date() Date { return dt.dt.date }

// Time returns the local clock reading.
func (dt ZonedDateTime) Time() Time { return dt.dt.time }

// ToInstant returns the exact moment dt pins, satisfying [Moment].
func (dt ZonedDateTime) ToInstant() Instant {
	return Instant{
		sec:  dt.dt.localSeconds() - int64(dt.offset),
		nsec: dt.dt.time.nsec,
	}
}

// ToOffset freezes dt into an [OffsetDateTime] with its current offset.
func (dt ZonedDateTime) ToOffset() OffsetDateTime {
	return OffsetDateTime{dt: dt.dt, offset: dt.offset}
}

// Compare orders by resolved instant, returning -1, 0, or +1.
func (dt ZonedDateTime) Compare(o ZonedDateTime) int {
	return dt.ToInstant().Compare(o.ToInstant())
}

// EqualInstant reports whether dt and o pin the same moment.
func (dt ZonedDateTime) EqualInstant(o Moment) bool {
	return dt.ToInstant().Compare(o.ToInstant()) == 0
}

// InTZ returns the same moment re-expressed in another zone.
func (dt ZonedDateTime) InTZ(zone string) (ZonedDateTime, error) {
	return dt.ToInstant().InTZ(zone)
}

// Sub returns the exact time elapsed from o to dt, independent of how
// either moment is represented.
func (dt ZonedDateTime) Sub(o Moment) TimeDelta {
	return dt.ToInstant().Sub(o.ToInstant())
}

// Add shifts the instant forward by d and re-derives the local reading.
// This is the instant-preserving shift: it always succeeds (within the
// calendar range) and is always unambiguous, because the reverse mapping
// from an instant is total.
func (dt ZonedDateTime) Add(d TimeDelta) (ZonedDateTime, error) {
	i, err := dt.ToInstant().Add(d)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return i.InTZ(dt.zone)
}

// SubDelta is Add with the delta negated.
func (dt ZonedDateTime) SubDelta(d TimeDelta) (ZonedDateTime, error) {
	return dt.Add(d.Neg())
}

// AddDate shifts the local calendar date by d and re-resolves the reading
// through the zone under the given policy. Calendar arithmetic follows the
// wall clock, so the result may land in a gap or fold; the policy decides,
// and [DisambiguateRaise] reports ErrSkippedTime or ErrRepeatedTime.
func (dt ZonedDateTime) AddDate(d DateDelta, dis Disambiguate) (ZonedDateTime, error) {
	shifted, err := dt.dt.AddDate(d)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return zonedFromPlain(shifted, dt.zone, dis)
}

// AddDateTime shifts the local reading by both parts of d: the calendar
// part and clock part move the wall clock, then the result is re-resolved
// under the given policy.
func (dt ZonedDateTime) AddDateTime(d DateTimeDelta, dis Disambiguate) (ZonedDateTime, error) {
	shifted, err := dt.dt.AddDelta(d)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return zonedFromPlain(shifted, dt.zone, dis)
}

// StartOfDay returns the first moment of dt's calendar date in its zone.
// That moment is usually 00:00, but a gap can swallow midnight, in which
// case the day starts when the clocks land.
func (dt ZonedDateTime) StartOfDay() (ZonedDateTime, error) {
	return zonedFromPlain(
		PlainDateTime{date: dt.dt.date}, dt.zone, DisambiguateCompatible,
	)
}

// DayLength returns the true length of dt's calendar date in its zone: 24
// hours on most days, shorter across a gap, longer across a fold.
func (dt ZonedDateTime) DayLength() (TimeDelta, error) {
	start, err := dt.StartOfDay()
	if err != nil {
		return TimeDelta{}, err
	}
	nextDate, err := dt.dt.date.AddDays(1)
	if err != nil {
		return TimeDelta{}, err
	}
	next, err := zonedFromPlain(
		PlainDateTime{date: nextDate}, dt.zone, DisambiguateCompatible,
	)
	if err != nil {
		return TimeDelta{}, err
	}
	return next.Sub(start), nil
}

// Round rounds dt to a multiple of increment units using the given mode.
// Rounding to whole days honors the civil day: the boundary is the zone's
// start of day and the modulus is the day's true length, not a fixed 24
// hours.
func (dt ZonedDateTime) Round(unit Unit, increment int, mode RoundMode) (ZonedDateTime, error) {
	if unit == UnitDay {
		return dt.roundToDay(increment, mode)
	}
	local, nsec, err := roundLocal(dt.dt, unit, increment, mode)
	if err != nil {
		return ZonedDateTime{}, err
	}
	rounded, err := plainFromLocalSeconds(local, nsec)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return zonedFromPlain(rounded, dt.zone, DisambiguateCompatible)
}

func (dt ZonedDateTime) roundToDay(increment int, mode RoundMode) (ZonedDateTime, error) {
	if increment != 1 {
		return ZonedDateTime{}, fmt.Errorf(
			"%w: day rounding only supports increment 1, got %d",
			ErrInvalidArgument, increment,
		)
	}
	start, err := dt.StartOfDay()
	if err != nil {
		return ZonedDateTime{}, err
	}
	length, err := dt.DayLength()
	if err != nil {
		return ZonedDateTime{}, err
	}
	elapsed := dt.Sub(start)
	if elapsed.IsZero() {
		return start, nil
	}
	// Day lengths are bounded, so the nanosecond counts fit in int64.
	span := length.sec*nanosPerSecond + int64(length.nsec)
	rem := elapsed.sec*nanosPerSecond + int64(elapsed.nsec)
	// Half-even ties break on the parity of the civil day, the same way
	// the fixed-span paths use the parity of the lower multiple.
	odd := floorMod(int64(dt.dt.date.DaysSinceEpoch()), 2) == 1
	if roundsUp(rem, span, mode, odd) {
		return start.Add(length)
	}
	return start, nil
}

// FormatCommonISO formats dt in the canonical ISO 8601 extended form with
// its offset and the zone id in brackets, for example
// 2023-10-29T02:30:00+01:00[Europe/Amsterdam].
func (dt ZonedDateTime) FormatCommonISO() string {
	b := make([]byte, 0, len("2006-01-02T15:04:05.999999999+00:00:00[]")+len(dt.zone))
	b = dt.dt.appendISO(b)
	b = appendOffset(b, dt.offset, false)
	b = append(b, '[')
	b = append(b, dt.zone...)
	return string(append(b, ']'))
}

// String returns the canonical ISO 8601 form of dt.
func (dt ZonedDateTime) String() string { return dt.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (dt ZonedDateTime) MarshalText() ([]byte, error) {
	return []byte(dt.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Parsing validates the
// recorded offset against the zone's rules at that local time.
func (dt *ZonedDateTime) UnmarshalText(b []byte) error {
	v, err := ParseZonedDateTimeCommonISO(string(b))
	if err == nil {
		*dt = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler. The zone id is encoded
// by length so a future field can follow it.
func (dt ZonedDateTime) MarshalBinary() ([]byte, error) {
	b := appendVarints(
		int64(dt.dt.date.year), int64(dt.dt.date.month), int64(dt.dt.date.day),
		int64(dt.dt.time.hour), int64(dt.dt.time.minute), int64(dt.dt.time.second),
		int64(dt.dt.time.nsec), int64(dt.offset), int64(len(dt.zone)),
	)
	return append(b, dt.zone...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The offset is
// trusted as recorded; it pins the moment even if the zone's rules have
// since changed.
func (dt *ZonedDateTime) UnmarshalBinary(b []byte) error {
	var y, mo, d, h, mi, s, ns, off, zlen int64
	rest, err := splitZonedBinary(b, &y, &mo, &d, &h, &mi, &s, &ns, &off, &zlen)
	if err != nil {
		return err
	}
	if int64(len(rest)) != zlen {
		return fmt.Errorf(
			"%w: zoned date-time: zone id length %d does not match payload %d",
			ErrParse, zlen, len(rest),
		)
	}
	pdt, err := NewPlainDateTime(
		int(y), int(mo), int(d), int(h), int(mi), int(s), int(ns),
	)
	if err != nil {
		return err
	}
	if err := checkOffset(int(off)); err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("%w: zoned date-time: empty zone id", ErrParse)
	}
	v, err := makeZoned(pdt, int32(off), string(rest))
	if err == nil {
		*dt = v
	}
	return err
}

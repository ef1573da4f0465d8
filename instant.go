package tempus

import (
	"fmt"
)

const (
	// Unix seconds of 0001-01-01T00:00:00Z and 9999-12-31T23:59:59Z, the
	// bounds of the representable timeline.
	minInstantSec = -62135596800
	maxInstantSec = 253402300799
)

// Instant is an exact point on the UTC timeline with nanosecond resolution
// and no calendar or zone attached. Instants cover the years 1 through 9999.
// The zero value is the Unix epoch.
type Instant struct {
	sec  int64 // seconds since 1970-01-01T00:00:00Z
	nsec int32 // always in [0, 1e9)
}

// InstantFromUnixSeconds returns the instant sec seconds after the Unix
// epoch, or ErrInvalidComponent if it lies outside years 1 through 9999.
func InstantFromUnixSeconds(sec int64) (Instant, error) {
	return makeInstant(sec, 0)
}

// InstantFromUnixMilliseconds returns the instant msec milliseconds after
// the Unix epoch.
func InstantFromUnixMilliseconds(msec int64) (Instant, error) {
	sec := floorDiv(msec, 1000)
	return makeInstant(sec, int32((msec-sec*1000)*1_000_000))
}

// InstantFromUnixNanoseconds returns the instant nsec nanoseconds after the
// Unix epoch.
func InstantFromUnixNanoseconds(nsec int64) (Instant, error) {
	sec := floorDiv(nsec, nanosPerSecond)
	return makeInstant(sec, int32(nsec-sec*nanosPerSecond))
}

// makeInstant validates the timeline bounds. nsec must already be in
// [0, 1e9).
func makeInstant(sec int64, nsec int32) (Instant, error) {
	if sec < minInstantSec || sec > maxInstantSec {
		return Instant{}, fmt.Errorf(
			"%w: instant out of range (years 1 through 9999)",
			ErrInvalidComponent,
		)
	}
	return Instant{sec: sec, nsec: nsec}, nil
}

// UnixSeconds returns the whole seconds since the Unix epoch, truncated
// toward negative infinity, plus the nanosecond within that second.
func (i Instant) UnixSeconds() (sec int64, nsec int32) {
	return i.sec, i.nsec
}

// ToInstant returns i itself, satisfying [Moment].
func (i Instant) ToInstant() Instant { return i }

// Compare orders instants chronologically, returning -1, 0, or +1. This is
// a pure integer comparison.
func (i Instant) Compare(o Instant) int {
	if i.sec != o.sec {
		if i.sec < o.sec {
			return -1
		}
		return 1
	}
	return cmpInt(int(i.nsec), int(o.nsec))
}

// Add returns i shifted forward by d, or ErrInvalidComponent if the result
// leaves the representable timeline.
func (i Instant) Add(d TimeDelta) (Instant, error) {
	nsec := int64(i.nsec) + int64(d.nsec)
	sec := i.sec + d.sec + nsec/nanosPerSecond
	return makeInstant(sec, int32(nsec%nanosPerSecond))
}

// AddDelta returns i shifted by d; it is Add under the name the aware types
// share.
func (i Instant) AddDelta(d TimeDelta) (Instant, error) { return i.Add(d) }

// Sub returns the exact time from o to i.
func (i Instant) Sub(o Instant) TimeDelta {
	return newTimeDelta(i.sec-o.sec, int64(i.nsec)-int64(o.nsec))
}

// InUTC returns the date and clock reading of i at offset zero.
func (i Instant) InUTC() OffsetDateTime {
	// At offset zero the local reading of a valid instant is always on
	// the calendar, so the conversion cannot fail.
	dt, _ := i.InOffset(0)
	return dt
}

// InOffset returns the date and clock reading of i at the given fixed UTC
// offset in seconds. Reports ErrInvalidComponent when the offset is outside
// ±24h or the local date leaves the calendar range.
func (i Instant) InOffset(offsetSeconds int) (OffsetDateTime, error) {
	if err := checkOffset(offsetSeconds); err != nil {
		return OffsetDateTime{}, err
	}
	pdt, err := i.plainAtOffset(int32(offsetSeconds))
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dt: pdt, offset: int32(offsetSeconds)}, nil
}

// InTZ returns i in the given IANA zone, resolved through the process
// timezone cache. The reverse mapping from an instant is always total and
// unambiguous, so no disambiguation policy is needed.
func (i Instant) InTZ(zone string) (ZonedDateTime, error) {
	table, err := loadTable(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	off := table.OffsetAt(i.sec)
	pdt, err := i.plainAtOffset(off)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{dt: pdt, offset: off, zone: zone}, nil
}

// plainAtOffset converts i to the local reading at the given offset.
func (i Instant) plainAtOffset(offset int32) (PlainDateTime, error) {
	local := i.sec + int64(offset)
	days := floorDiv(local, secondsPerDay)
	date, err := DateFromDays(int(days))
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{
		date: date,
		time: timeFromDaySeconds(local-days*secondsPerDay, i.nsec),
	}, nil
}

// Round rounds i to a multiple of increment units using the given mode.
// Days are fixed 24-hour spans here; use [ZonedDateTime.Round] for civil
// day boundaries.
func (i Instant) Round(unit Unit, increment int, mode RoundMode) (Instant, error) {
	span, err := unitSpan(unit, increment)
	if err != nil {
		return Instant{}, err
	}
	sec, nsec := roundSecNanos(i.sec, i.nsec, span, mode)
	return makeInstant(sec, nsec)
}

// FormatCommonISO formats i in the canonical ISO 8601 form with a Z suffix,
// for example 2023-10-29T01:30:00Z.
func (i Instant) FormatCommonISO() string {
	dt := i.InUTC()
	b := make([]byte, 0, len("2006-01-02T15:04:05.999999999Z"))
	b = dt.dt.appendISO(b)
	return string(append(b, 'Z'))
}

// FormatRFC3339 formats i as an RFC 3339 timestamp with a Z offset.
func (i Instant) FormatRFC3339() string { return i.FormatCommonISO() }

// FormatRFC2822 formats i as an RFC 2822 timestamp in GMT.
func (i Instant) FormatRFC2822() string {
	return formatRFC2822(i.InUTC().dt, 0, true)
}

// String returns the canonical ISO 8601 form of i.
func (i Instant) String() string { return i.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (i Instant) MarshalText() ([]byte, error) {
	return []byte(i.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Instant) UnmarshalText(b []byte) error {
	v, err := ParseInstantCommonISO(string(b))
	if err == nil {
		*i = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (i Instant) MarshalBinary() ([]byte, error) {
	return appendVarints(i.sec, int64(i.nsec)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (i *Instant) UnmarshalBinary(b []byte) error {
	var sec, nsec int64
	if err := consumeVarints("instant", b, &sec, &nsec); err != nil {
		return err
	}
	if nsec < 0 || nsec >= nanosPerSecond {
		return fmt.Errorf(
			"%w: instant: nanosecond part %d out of range", ErrParse, nsec,
		)
	}
	v, err := makeInstant(sec, int32(nsec))
	if err == nil {
		*i = v
	}
	return err
}

// checkOffset validates a fixed UTC offset in seconds.
func checkOffset(offsetSeconds int) error {
	if offsetSeconds <= -secondsPerDay || offsetSeconds >= secondsPerDay {
		return fmt.Errorf(
			"%w: UTC offset %ds out of range (-24h, 24h)",
			ErrInvalidComponent, offsetSeconds,
		)
	}
	return nil
}

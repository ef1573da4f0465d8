package tempus

import (
	"fmt"
)

// DateTimeDelta pairs a calendar delta with an exact delta, each normalized
// independently. It is the result type of mixed-unit arithmetic and the
// argument type for shifting a [ZonedDateTime] by both calendar and clock
// units in one step.
type DateTimeDelta struct {
	date DateDelta
	time TimeDelta
}

// NewDateTimeDelta combines a calendar part and an exact part.
func NewDateTimeDelta(date DateDelta, time TimeDelta) DateTimeDelta {
	return DateTimeDelta{date: date, time: time}
}

// DatePart returns the calendar component.
func (d DateTimeDelta) DatePart() DateDelta { return d.date }

// TimePart returns the exact component.
func (d DateTimeDelta) TimePart() TimeDelta { return d.time }

// IsZero reports whether both components are zero.
func (d DateTimeDelta) IsZero() bool {
	return d.date.IsZero() && d.time.IsZero()
}

// Add returns d + o, adding the calendar and exact parts separately.
func (d DateTimeDelta) Add(o DateTimeDelta) DateTimeDelta {
	return DateTimeDelta{date: d.date.Add(o.date), time: d.time.Add(o.time)}
}

// Sub returns d - o.
func (d DateTimeDelta) Sub(o DateTimeDelta) DateTimeDelta {
	return DateTimeDelta{date: d.date.Sub(o.date), time: d.time.Sub(o.time)}
}

// Neg returns -d.
func (d DateTimeDelta) Neg() DateTimeDelta {
	return DateTimeDelta{date: d.date.Neg(), time: d.time.Neg()}
}

// Mul returns d scaled by the integer n.
func (d DateTimeDelta) Mul(n int) DateTimeDelta {
	return DateTimeDelta{date: d.date.Mul(n), time: d.time.Mul(int64(n))}
}

// FormatCommonISO formats d as a full ISO 8601 duration. The calendar and
// exact parts keep their own signs; the time part appears after the T
// designator with a fraction only on the seconds.
func (d DateTimeDelta) FormatCommonISO() string {
	if d.IsZero() {
		return "P0D"
	}
	b := make([]byte, 0, len("-P00000Y00M0000000DT0000000000H00M00.000000000S"))
	months, days := d.date.months, d.date.days
	t := d.time
	if months <= 0 && days <= 0 && t.Sign() <= 0 {
		b = append(b, '-')
		months, days, t = -months, -days, t.Neg()
	}
	b = append(b, 'P')
	b = appendSignedComponent(b, int(months)/12, 'Y')
	b = appendSignedComponent(b, int(months)%12, 'M')
	b = appendSignedComponent(b, int(days), 'D')
	if !t.IsZero() {
		b = append(b, 'T')
		sign := ""
		if t.Sign() < 0 {
			sign, t = "-", t.Neg()
		}
		sec, nsec := t.abs()
		b = appendTimeComponent(b, sign, sec/secondsPerHour, 'H')
		b = appendTimeComponent(b, sign, sec%secondsPerHour/secondsPerMinute, 'M')
		if s := sec % secondsPerMinute; s > 0 || nsec > 0 {
			b = append(b, sign...)
			b = appendPadded(b, int(s), 1)
			b = appendFraction(b, nsec)
			b = append(b, 'S')
		}
	}
	return string(b)
}

func appendTimeComponent(b []byte, sign string, v int64, designator byte) []byte {
	if v == 0 {
		return b
	}
	b = append(b, sign...)
	b = appendPadded(b, int(v), 1)
	return append(b, designator)
}

// String returns the canonical ISO 8601 form of d.
func (d DateTimeDelta) String() string { return d.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (d DateTimeDelta) MarshalText() ([]byte, error) {
	return []byte(d.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DateTimeDelta) UnmarshalText(b []byte) error {
	v, err := ParseDateTimeDeltaCommonISO(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d DateTimeDelta) MarshalBinary() ([]byte, error) {
	return appendVarints(
		int64(d.date.months), int64(d.date.days), d.time.sec, int64(d.time.nsec),
	), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *DateTimeDelta) UnmarshalBinary(b []byte) error {
	var months, days, sec, nsec int64
	if err := consumeVarints(
		"date-time delta", b, &months, &days, &sec, &nsec,
	); err != nil {
		return err
	}
	dd := DateDelta{months: int32(months), days: int32(days)}
	td, err := timeDeltaFromParts(sec, nsec)
	if err != nil {
		return err
	}
	*d = DateTimeDelta{date: dd, time: td}
	return nil
}

func timeDeltaFromParts(sec, nsec int64) (TimeDelta, error) {
	if nsec < 0 || nsec >= nanosPerSecond {
		return TimeDelta{}, fmt.Errorf(
			"%w: nanosecond part %d out of range", ErrParse, nsec,
		)
	}
	return TimeDelta{sec: sec, nsec: int32(nsec)}, nil
}

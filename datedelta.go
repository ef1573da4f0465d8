package tempus

import (
	"fmt"
)

// DateDelta is a calendar duration: a signed months total and a signed days
// total, normalized independently. A month has no fixed physical length, so
// the two totals cannot be merged, compared, or divided; attempting to is
// reported as ErrUnsupportedOperation. The totals may carry opposite signs.
//
// Adding a DateDelta to a date applies the months first (clamping to the end
// of the target month) and the days second, so date arithmetic is neither
// commutative nor reversible at month-end boundaries. Jan 30 plus one month
// is Feb 28 or 29; subtracting the month again does not restore Jan 30.
type DateDelta struct {
	months int32
	days   int32
}

// Years returns a calendar delta of n years.
func Years(n int) DateDelta { return DateDelta{months: int32(n) * 12} }

// Months returns a calendar delta of n months.
func Months(n int) DateDelta { return DateDelta{months: int32(n)} }

// Weeks returns a calendar delta of n weeks.
func Weeks(n int) DateDelta { return DateDelta{days: int32(n) * 7} }

// Days returns a calendar delta of n days.
func Days(n int) DateDelta { return DateDelta{days: int32(n)} }

// NewDateDelta combines years, months, weeks, and days into a normalized
// calendar delta.
func NewDateDelta(years, months, weeks, days int) DateDelta {
	return DateDelta{
		months: int32(years*12 + months),
		days:   int32(weeks*7 + days),
	}
}

// InMonthsDays returns the two normalized totals.
func (d DateDelta) InMonthsDays() (months, days int) {
	return int(d.months), int(d.days)
}

// IsZero reports whether d shifts nothing.
func (d DateDelta) IsZero() bool { return d.months == 0 && d.days == 0 }

// Add returns d + o, component-wise.
func (d DateDelta) Add(o DateDelta) DateDelta {
	return DateDelta{months: d.months + o.months, days: d.days + o.days}
}

// Sub returns d - o, component-wise.
func (d DateDelta) Sub(o DateDelta) DateDelta {
	return DateDelta{months: d.months - o.months, days: d.days - o.days}
}

// Neg returns -d.
func (d DateDelta) Neg() DateDelta {
	return DateDelta{months: -d.months, days: -d.days}
}

// Mul returns d scaled by the integer n. Calendar deltas cannot be scaled by
// non-integers; see [DateDelta.MulFloat].
func (d DateDelta) Mul(n int) DateDelta {
	return DateDelta{months: d.months * int32(n), days: d.days * int32(n)}
}

// MulFloat always reports ErrUnsupportedOperation: half a month has no
// defined day length, so scaling a calendar delta by a real number has no
// universal answer.
func (d DateDelta) MulFloat(float64) (DateDelta, error) {
	return DateDelta{}, fmt.Errorf(
		"%w: cannot scale a calendar delta by a non-integer",
		ErrUnsupportedOperation,
	)
}

// Div always reports ErrUnsupportedOperation: a months total and a days
// total have no common unit to divide in.
func (d DateDelta) Div(int) (DateDelta, error) {
	return DateDelta{}, fmt.Errorf(
		"%w: cannot divide a calendar delta", ErrUnsupportedOperation,
	)
}

// Compare always reports ErrUnsupportedOperation: whether 30 days exceed one
// month depends on the month.
func (d DateDelta) Compare(DateDelta) (int, error) {
	return 0, fmt.Errorf(
		"%w: calendar deltas have no universal order", ErrUnsupportedOperation,
	)
}

// FormatCommonISO formats d as an ISO 8601 duration using years, months, and
// days. When the months and days totals carry opposite signs, each component
// carries its own sign; a delta with all components negative gets a single
// leading sign.
func (d DateDelta) FormatCommonISO() string {
	if d.IsZero() {
		return "P0D"
	}
	b := make([]byte, 0, len("-P00000Y00M0000000D"))
	months, days := d.months, d.days
	if months <= 0 && days <= 0 {
		b = append(b, '-')
		months, days = -months, -days
	}
	b = append(b, 'P')
	b = appendSignedComponent(b, int(months)/12, 'Y')
	b = appendSignedComponent(b, int(months)%12, 'M')
	b = appendSignedComponent(b, int(days), 'D')
	return string(b)
}

func appendSignedComponent(b []byte, v int, designator byte) []byte {
	if v == 0 {
		return b
	}
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	b = appendPadded(b, v, 1)
	return append(b, designator)
}

// String returns the canonical ISO 8601 form of d.
func (d DateDelta) String() string { return d.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (d DateDelta) MarshalText() ([]byte, error) {
	return []byte(d.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DateDelta) UnmarshalText(b []byte) error {
	v, err := ParseDateDeltaCommonISO(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d DateDelta) MarshalBinary() ([]byte, error) {
	return appendVarints(int64(d.months), int64(d.days)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *DateDelta) UnmarshalBinary(b []byte) error {
	var months, days int64
	if err := consumeVarints("date delta", b, &months, &days); err != nil {
		return err
	}
	*d = DateDelta{months: int32(months), days: int32(days)}
	return nil
}

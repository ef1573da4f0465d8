package tempus

import (
	"fmt"
	"math"
	"math/big"
)

// TimeDelta is an exact duration: a signed nanosecond count, fully
// normalized. Unlike [DateDelta] it has a fixed physical length, so it is
// comparable, divisible, and safe to add to any moment.
//
// The representation is (seconds, nanoseconds) with the nanosecond part
// always in [0, 1e9), so the type covers the full span between the minimum
// and maximum representable instants.
type TimeDelta struct {
	sec  int64
	nsec int32
}

// Unit constructors. Each returns the exact duration of n of the unit.

// Hours returns a delta of n hours.
func Hours(n int64) TimeDelta { return TimeDelta{sec: n * secondsPerHour} }

// Minutes returns a delta of n minutes.
func Minutes(n int64) TimeDelta { return TimeDelta{sec: n * secondsPerMinute} }

// Seconds returns a delta of n seconds.
func Seconds(n int64) TimeDelta { return TimeDelta{sec: n} }

// Milliseconds returns a delta of n milliseconds.
func Milliseconds(n int64) TimeDelta { return deltaFromNanos(n, 1_000_000) }

// Microseconds returns a delta of n microseconds.
func Microseconds(n int64) TimeDelta { return deltaFromNanos(n, 1_000) }

// Nanoseconds returns a delta of n nanoseconds.
func Nanoseconds(n int64) TimeDelta { return deltaFromNanos(n, 1) }

// deltaFromNanos normalizes n*scale nanoseconds into a delta. scale must
// divide 1e9.
func deltaFromNanos(n, scale int64) TimeDelta {
	perSec := nanosPerSecond / scale
	sec := floorDiv(n, perSec)
	return TimeDelta{sec: sec, nsec: int32((n - sec*perSec) * scale)}
}

// newTimeDelta normalizes an arbitrary (seconds, nanoseconds) pair.
func newTimeDelta(sec, nsec int64) TimeDelta {
	carry := floorDiv(nsec, nanosPerSecond)
	return TimeDelta{sec: sec + carry, nsec: int32(nsec - carry*nanosPerSecond)}
}

// IsZero reports whether d is the zero-length delta.
func (d TimeDelta) IsZero() bool { return d.sec == 0 && d.nsec == 0 }

// Sign returns -1, 0, or +1 according to the sign of d.
func (d TimeDelta) Sign() int {
	switch {
	case d.sec < 0, d.sec == 0 && d.nsec < 0:
		return -1
	case d.sec == 0 && d.nsec == 0:
		return 0
	default:
		return 1
	}
}

// Seconds returns the whole-second part of d, truncated toward zero, and
// the remaining nanoseconds.
func (d TimeDelta) Seconds() (sec int64, nsec int32) {
	if d.sec < 0 && d.nsec > 0 {
		return d.sec + 1, d.nsec - nanosPerSecond
	}
	return d.sec, d.nsec
}

// abs splits |d| into whole seconds and nanoseconds.
func (d TimeDelta) abs() (sec int64, nsec int32) {
	if d.Sign() >= 0 {
		return d.sec, d.nsec
	}
	if d.nsec > 0 {
		return -d.sec - 1, nanosPerSecond - d.nsec
	}
	return -d.sec, 0
}

// Add returns d + o.
func (d TimeDelta) Add(o TimeDelta) TimeDelta {
	return newTimeDelta(d.sec+o.sec, int64(d.nsec)+int64(o.nsec))
}

// Sub returns d - o.
func (d TimeDelta) Sub(o TimeDelta) TimeDelta {
	return newTimeDelta(d.sec-o.sec, int64(d.nsec)-int64(o.nsec))
}

// Neg returns -d.
func (d TimeDelta) Neg() TimeDelta {
	return newTimeDelta(-d.sec, -int64(d.nsec))
}

// Compare orders deltas by length, returning -1, 0, or +1.
func (d TimeDelta) Compare(o TimeDelta) int {
	if d.sec != o.sec {
		if d.sec < o.sec {
			return -1
		}
		return 1
	}
	return cmpInt(int(d.nsec), int(o.nsec))
}

// Mul returns d scaled by the integer n.
func (d TimeDelta) Mul(n int64) TimeDelta {
	r := new(big.Int).Mul(d.bigNanos(), big.NewInt(n))
	return deltaFromBig(r)
}

// MulFloat returns d scaled by the real scalar f, rounded half-even to the
// nearest nanosecond. Reports ErrInvalidArgument for NaN or infinite
// scalars.
func (d TimeDelta) MulFloat(f float64) (TimeDelta, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return TimeDelta{}, fmt.Errorf(
			"%w: cannot scale a delta by %v", ErrInvalidArgument, f,
		)
	}
	r := new(big.Float).SetInt(d.bigNanos())
	r.Mul(r, big.NewFloat(f))
	return deltaFromBigFloat(r), nil
}

// DivFloat returns d divided by the real scalar f, rounded half-even to
// the nearest nanosecond. Reports ErrInvalidArgument for zero, NaN, or
// infinite scalars.
func (d TimeDelta) DivFloat(f float64) (TimeDelta, error) {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return TimeDelta{}, fmt.Errorf(
			"%w: cannot divide a delta by %v", ErrInvalidArgument, f,
		)
	}
	r := new(big.Float).SetInt(d.bigNanos())
	r.Quo(r, big.NewFloat(f))
	return deltaFromBigFloat(r), nil
}

// Div returns d divided by the integer n, truncated toward zero to the
// nearest nanosecond. Reports ErrInvalidArgument when n is zero.
func (d TimeDelta) Div(n int64) (TimeDelta, error) {
	if n == 0 {
		return TimeDelta{}, fmt.Errorf(
			"%w: cannot divide a delta by zero", ErrInvalidArgument,
		)
	}
	r := new(big.Int).Quo(d.bigNanos(), big.NewInt(n))
	return deltaFromBig(r), nil
}

// DivDelta returns the ratio d / o as a float64. Reports ErrInvalidArgument
// when o is zero.
func (d TimeDelta) DivDelta(o TimeDelta) (float64, error) {
	if o.IsZero() {
		return 0, fmt.Errorf(
			"%w: cannot divide a delta by a zero delta", ErrInvalidArgument,
		)
	}
	r := new(big.Float).SetInt(d.bigNanos())
	r.Quo(r, new(big.Float).SetInt(o.bigNanos()))
	f, _ := r.Float64()
	return f, nil
}

// InHours returns the length of d in fractional hours.
func (d TimeDelta) InHours() float64 {
	return float64(d.sec)/secondsPerHour + float64(d.nsec)/(nanosPerSecond*secondsPerHour)
}

// InSeconds returns the length of d in fractional seconds.
func (d TimeDelta) InSeconds() float64 {
	return float64(d.sec) + float64(d.nsec)/nanosPerSecond
}

// bigNanos returns the exact nanosecond count of d, which may exceed int64.
func (d TimeDelta) bigNanos() *big.Int {
	r := new(big.Int).Mul(big.NewInt(d.sec), big.NewInt(nanosPerSecond))
	return r.Add(r, big.NewInt(int64(d.nsec)))
}

func deltaFromBig(nanos *big.Int) TimeDelta {
	var sec, nsec big.Int
	sec.DivMod(nanos, big.NewInt(nanosPerSecond), &nsec)
	// DivMod is Euclidean: the remainder is already in [0, 1e9).
	return TimeDelta{sec: sec.Int64(), nsec: int32(nsec.Int64())}
}

func deltaFromBigFloat(nanos *big.Float) TimeDelta {
	i, _ := nanos.Int(nil)
	// Half-even correction: Int truncates toward zero.
	frac := new(big.Float).Sub(nanos, new(big.Float).SetInt(i))
	f, _ := frac.Float64()
	switch {
	case f > 0.5, f == 0.5 && i.Bit(0) == 1:
		i.Add(i, big.NewInt(1))
	case f < -0.5, f == -0.5 && i.Bit(0) == 1:
		i.Sub(i, big.NewInt(1))
	}
	return deltaFromBig(i)
}

// Round rounds d to a multiple of increment units using the given mode.
func (d TimeDelta) Round(unit Unit, increment int, mode RoundMode) (TimeDelta, error) {
	span, err := unitSpan(unit, increment)
	if err != nil {
		return TimeDelta{}, err
	}
	sec, nsec := roundSecNanos(d.sec, d.nsec, span, mode)
	return TimeDelta{sec: sec, nsec: nsec}, nil
}

// FormatCommonISO formats d as an ISO 8601 duration, PT...S form, with a
// leading sign for negative deltas and a fraction only on the seconds.
func (d TimeDelta) FormatCommonISO() string {
	if d.IsZero() {
		return "PT0S"
	}
	b := make([]byte, 0, len("-PT0000000000H00M00.000000000S"))
	if d.Sign() < 0 {
		b = append(b, '-')
	}
	b = append(b, 'P', 'T')
	sec, nsec := d.abs()
	if h := sec / secondsPerHour; h > 0 {
		b = appendPadded(b, int(h), 1)
		b = append(b, 'H')
	}
	if m := sec % secondsPerHour / secondsPerMinute; m > 0 {
		b = appendPadded(b, int(m), 1)
		b = append(b, 'M')
	}
	if s := sec % secondsPerMinute; s > 0 || nsec > 0 {
		b = appendPadded(b, int(s), 1)
		b = appendFraction(b, nsec)
		b = append(b, 'S')
	}
	return string(b)
}

// String returns the canonical ISO 8601 form of d.
func (d TimeDelta) String() string { return d.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (d TimeDelta) MarshalText() ([]byte, error) {
	return []byte(d.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *TimeDelta) UnmarshalText(b []byte) error {
	v, err := ParseTimeDeltaCommonISO(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d TimeDelta) MarshalBinary() ([]byte, error) {
	return appendVarints(d.sec, int64(d.nsec)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *TimeDelta) UnmarshalBinary(b []byte) error {
	var sec, nsec int64
	if err := consumeVarints("time delta", b, &sec, &nsec); err != nil {
		return err
	}
	if nsec < 0 || nsec >= nanosPerSecond {
		return fmt.Errorf(
			"%w: time delta: nanosecond part %d out of range", ErrParse, nsec,
		)
	}
	*d = TimeDelta{sec: sec, nsec: int32(nsec)}
	return nil
}

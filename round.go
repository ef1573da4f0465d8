package tempus

import (
	"fmt"
)

// Unit is a rounding granularity, from whole days down to nanoseconds.
type Unit uint8

const (
	UnitNanosecond Unit = iota
	UnitMicrosecond
	UnitMillisecond
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
)

// String returns the unit name as accepted by the command line tools.
func (u Unit) String() string {
	switch u {
	case UnitNanosecond:
		return "nanosecond"
	case UnitMicrosecond:
		return "microsecond"
	case UnitMillisecond:
		return "millisecond"
	case UnitSecond:
		return "second"
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	default:
		return "invalid"
	}
}

// RoundMode is the tie-breaking rule for rounding.
type RoundMode uint8

const (
	// HalfEven rounds to the nearest boundary, ties to the even multiple.
	HalfEven RoundMode = iota
	// Ceil rounds up to the next boundary.
	Ceil
	// Floor rounds down to the previous boundary.
	Floor
	// HalfCeil rounds to the nearest boundary, ties upward.
	HalfCeil
	// HalfFloor rounds to the nearest boundary, ties downward.
	HalfFloor
)

// String returns the mode name as accepted by the command line tools.
func (m RoundMode) String() string {
	switch m {
	case HalfEven:
		return "half_even"
	case Ceil:
		return "ceil"
	case Floor:
		return "floor"
	case HalfCeil:
		return "half_ceil"
	case HalfFloor:
		return "half_floor"
	default:
		return "invalid"
	}
}

// unitInfo gives the nanosecond length of each unit and its natural
// modulus, the number of units that make up the next larger one.
var unitInfo = map[Unit]struct {
	nanos   int64
	modulus int64
}{
	UnitNanosecond:  {1, 1000},
	UnitMicrosecond: {1_000, 1000},
	UnitMillisecond: {1_000_000, 1000},
	UnitSecond:      {nanosPerSecond, 60},
	UnitMinute:      {secondsPerMinute * nanosPerSecond, 60},
	UnitHour:        {secondsPerHour * nanosPerSecond, 24},
	UnitDay:         {secondsPerDay * nanosPerSecond, 1},
}

// unitSpan validates the unit and increment and returns the span to round
// to, in nanoseconds. The increment must be positive and evenly divide the
// unit's natural modulus: 1000 for subsecond units, 60 for seconds and
// minutes, 24 for hours, and exactly 1 for days.
func unitSpan(unit Unit, increment int) (int64, error) {
	info, ok := unitInfo[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unknown rounding unit %d", ErrInvalidArgument, unit)
	}
	inc := int64(increment)
	if inc <= 0 || inc > info.modulus || info.modulus%inc != 0 {
		return 0, fmt.Errorf(
			"%w: increment %d does not divide %d %vs",
			ErrInvalidArgument, increment, info.modulus, unit,
		)
	}
	return inc * info.nanos, nil
}

// roundsUp reports whether a remainder in [0, span) rounds up to the next
// span boundary. oddLower is the parity of the boundary below, which decides
// half-even ties. Rounding is floored for negative values: the remainder is
// always taken non-negative, so Floor moves toward the past.
func roundsUp(rem, span int64, mode RoundMode, oddLower bool) bool {
	if rem == 0 {
		return false
	}
	switch mode {
	case Ceil:
		return true
	case Floor:
		return false
	case HalfCeil:
		return rem*2 >= span
	case HalfFloor:
		return rem*2 > span
	default: // HalfEven
		return rem*2 > span || (rem*2 == span && oddLower)
	}
}

// roundSecNanos rounds the point sec*1e9+nsec nanoseconds to a multiple of
// span, returning normalized (seconds, nanoseconds). nsec must be in
// [0, 1e9) and span must either be a multiple of 1e9 or divide it.
func roundSecNanos(sec int64, nsec int32, span int64, mode RoundMode) (int64, int32) {
	var rem int64
	var odd bool
	if span >= nanosPerSecond {
		spanSec := span / nanosPerSecond
		q := floorDiv(sec, spanSec)
		rem = (sec-q*spanSec)*nanosPerSecond + int64(nsec)
		odd = floorMod(q, 2) == 1
	} else {
		perSec := nanosPerSecond / span
		qn := int64(nsec) / span
		rem = int64(nsec) - qn*span
		// Parity of the global quotient sec*perSec + qn, kept in modular
		// arithmetic since the product overflows for large seconds.
		odd = (floorMod(sec, 2)*floorMod(perSec, 2)+floorMod(qn, 2))%2 == 1
	}
	adj := -rem
	if roundsUp(rem, span, mode, odd) {
		adj += span
	}
	n := int64(nsec) + adj
	return sec + floorDiv(n, nanosPerSecond), int32(floorMod(n, nanosPerSecond))
}

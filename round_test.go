package tempus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitSpan(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	for _, tc := range []struct {
		name      string
		unit      Unit
		increment int
		want      int64
	}{
		{"nanos", UnitNanosecond, 250, 250},
		{"micros", UnitMicrosecond, 1, 1_000},
		{"millis", UnitMillisecond, 500, 500_000_000},
		{"quarter minute", UnitSecond, 15, 15_000_000_000},
		{"half hour", UnitMinute, 30, 1_800_000_000_000},
		{"six hours", UnitHour, 6, 21_600_000_000_000},
		{"whole day", UnitDay, 1, 86_400_000_000_000},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			span, err := unitSpan(tc.unit, tc.increment)
			r.NoError(err)
			a.Equal(tc.want, span)
		})
	}
}

func TestUnitSpanRejects(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	for _, tc := range []struct {
		name      string
		unit      Unit
		increment int
	}{
		{"zero increment", UnitMinute, 0},
		{"negative increment", UnitMinute, -5},
		{"does not divide minutes", UnitMinute, 7},
		{"does not divide hours", UnitHour, 5},
		{"exceeds modulus", UnitSecond, 61},
		{"two days", UnitDay, 2},
		{"unknown unit", Unit(99), 1},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := unitSpan(tc.unit, tc.increment)
			r.ErrorIs(err, ErrInvalidArgument)
		})
	}
}

func TestRoundSecNanosParity(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	// Half-even ties resolve by the parity of the lower multiple, in both
	// the whole-second and subsecond span paths.
	sec, nsec := roundSecNanos(90, 0, 60_000_000_000, HalfEven)
	a.Equal(int64(120), sec)
	a.Equal(int32(0), nsec)

	sec, nsec = roundSecNanos(30, 0, 60_000_000_000, HalfEven)
	a.Equal(int64(0), sec)
	a.Equal(int32(0), nsec)

	sec, nsec = roundSecNanos(0, 1_500, 1_000, HalfEven)
	a.Equal(int64(0), sec)
	a.Equal(int32(2_000), nsec)

	sec, nsec = roundSecNanos(0, 500, 1_000, HalfEven)
	a.Equal(int64(0), sec)
	a.Equal(int32(0), nsec)

	// Negative values floor toward the past, so the carry borrows a second.
	sec, nsec = roundSecNanos(-1, 999_999_999, 1_000_000_000, Floor)
	a.Equal(int64(-1), sec)
	a.Equal(int32(0), nsec)

	sec, nsec = roundSecNanos(-1, 999_999_999, 1_000_000_000, Ceil)
	a.Equal(int64(0), sec)
	a.Equal(int32(0), nsec)
}

func TestUnitAndModeStrings(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal("nanosecond", UnitNanosecond.String())
	a.Equal("minute", UnitMinute.String())
	a.Equal("day", UnitDay.String())
	a.Equal("invalid", Unit(99).String())

	a.Equal("half_even", HalfEven.String())
	a.Equal("ceil", Ceil.String())
	a.Equal("half_floor", HalfFloor.String())
	a.Equal("invalid", RoundMode(99).String())
}

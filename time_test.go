package tempus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, hour, minute, second, nsec int) Time {
	t.Helper()
	v, err := NewTime(hour, minute, second, nsec)
	require.NoError(t, err)
	return v
}

func TestNewTime(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name       string
		h, m, s, n int
		ok         bool
	}{
		{"midnight", 0, 0, 0, 0, true},
		{"last nanosecond", 23, 59, 59, 999_999_999, true},
		{"hour 24", 24, 0, 0, 0, false},
		{"leap second", 23, 59, 60, 0, false},
		{"negative minute", 12, -1, 0, 0, false},
		{"nanosecond overflow", 12, 0, 0, 1_000_000_000, false},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTime(tc.h, tc.m, tc.s, tc.n)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidComponent)
			}
		})
	}
}

func TestTimeFormat(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal("00:00:00", Midnight.String())
	a.Equal("02:30:00.5", mustTime(t, 2, 30, 0, 500_000_000).String())
	a.Equal("02:30:00.000000001", mustTime(t, 2, 30, 0, 1).String())
	a.Equal("23:59:59.999999999", mustTime(t, 23, 59, 59, 999_999_999).String())
}

func TestTimeParse(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	want := mustTime(t, 2, 30, 0, 500_000_000)

	extended, err := ParseTimeCommonISO("02:30:00.5")
	r.NoError(err)
	a.Equal(want, extended)

	basic, err := ParseTimeCommonISO("023000.5")
	r.NoError(err)
	a.Equal(want, basic)

	comma, err := ParseTimeCommonISO("02:30:00,5")
	r.NoError(err)
	a.Equal(want, comma)

	_, err = ParseTimeCommonISO("02:30:00.1234567891")
	r.ErrorIs(err, ErrParse)
	_, err = ParseTimeCommonISO("24:00:00")
	r.ErrorIs(err, ErrParse)
	r.ErrorIs(err, ErrInvalidComponent)
}

func TestTimeRound(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		in   Time
		unit Unit
		inc  int
		mode RoundMode
		want Time
	}{
		{"quarter hour down", mustTime(t, 14, 47, 31, 0), UnitMinute, 15, HalfEven, mustTime(t, 14, 45, 0, 0)},
		{"quarter hour ceil", mustTime(t, 14, 47, 31, 0), UnitMinute, 15, Ceil, mustTime(t, 15, 0, 0, 0)},
		{"tie to even down", mustTime(t, 0, 0, 30, 0), UnitMinute, 1, HalfEven, Midnight},
		{"tie to even up", mustTime(t, 0, 1, 30, 0), UnitMinute, 1, HalfEven, mustTime(t, 0, 2, 0, 0)},
		{"tie half ceil", mustTime(t, 0, 0, 30, 0), UnitMinute, 1, HalfCeil, mustTime(t, 0, 1, 0, 0)},
		{"tie half floor", mustTime(t, 0, 1, 30, 0), UnitMinute, 1, HalfFloor, mustTime(t, 0, 1, 0, 0)},
		{"wrap at midnight", mustTime(t, 23, 59, 59, 0), UnitMinute, 1, Ceil, Midnight},
		{"millisecond floor", mustTime(t, 1, 2, 3, 999_999_999), UnitMillisecond, 1, Floor, mustTime(t, 1, 2, 3, 999_000_000)},
		{"idempotent", mustTime(t, 14, 45, 0, 0), UnitMinute, 15, HalfEven, mustTime(t, 14, 45, 0, 0)},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.in.Round(tc.unit, tc.inc, tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeRoundRejects(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	_, err := Midnight.Round(UnitDay, 1, HalfEven)
	r.ErrorIs(err, ErrInvalidArgument)
	_, err = Midnight.Round(UnitMinute, 7, HalfEven)
	r.ErrorIs(err, ErrInvalidArgument)
	_, err = Midnight.Round(UnitMinute, 0, HalfEven)
	r.ErrorIs(err, ErrInvalidArgument)
}

func TestTimeCompare(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal(-1, Midnight.Compare(mustTime(t, 0, 0, 0, 1)))
	a.Equal(1, mustTime(t, 13, 0, 0, 0).Compare(mustTime(t, 12, 59, 59, 0)))
	a.Equal(0, mustTime(t, 12, 0, 0, 5).Compare(mustTime(t, 12, 0, 0, 5)))
}

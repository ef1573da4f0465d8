package tempus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffsetVariants(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	want := mustOffsetDT(t, 2023, 6, 1, 12, 0, 0, 0, 2*3600)
	for _, src := range []string{
		"2023-06-01T12:00:00+02:00",
		"2023-06-01T12:00:00+02",
		"2023-06-01T12:00:00+0200",
		"2023-06-01T12:00:00+02:00:00",
	} {
		got, err := ParseOffsetDateTimeCommonISO(src)
		r.NoError(err, src)
		a.Equal(want, got, src)
	}

	sub, err := ParseOffsetDateTimeCommonISO("2023-06-01T12:00:00+00:19:32")
	r.NoError(err)
	a.Equal(19*60+32, sub.Offset())
}

func TestParseRFC3339IsStricter(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	// The RFC allows lowercase separators and a space, but only Z and
	// colon-separated hour-minute offsets.
	got, err := ParseOffsetDateTimeRFC3339("2023-06-01t12:00:00z")
	r.NoError(err)
	a.Equal("2023-06-01T12:00:00Z", got.String())

	got, err = ParseOffsetDateTimeRFC3339("2023-06-01 12:00:00+02:00")
	r.NoError(err)
	a.Equal(2*3600, got.Offset())

	for _, src := range []string{
		"2023-06-01T12:00:00+0200",
		"2023-06-01T12:00:00+02",
		"2023-06-01T12:00:00+02:00:30",
	} {
		_, err := ParseOffsetDateTimeRFC3339(src)
		r.ErrorIs(err, ErrParse, src)
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	for _, tc := range []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"date only", "2023-06-01"},
		{"missing separator", "2023-06-0112:00:00Z"},
		{"space separator outside rfc3339", "2023-06-01 12:00:00Z"},
		{"missing offset", "2023-06-01T12:00:00"},
		{"bare sign", "2023-06-01T12:00:00+"},
		{"offset hour range", "2023-06-01T12:00:00+24:00"},
		{"offset minute range", "2023-06-01T12:00:00+02:60"},
		{"trailing input", "2023-06-01T12:00:00Z extra"},
		{"mixed date separators", "2023-0601T12:00:00Z"},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseOffsetDateTimeCommonISO(tc.src)
			r.ErrorIs(err, ErrParse, tc.src)
		})
	}
}

func TestParseZonedValidatesOffset(t *testing.T) {
	withTestZones(t)
	a := assert.New(t)
	r := require.New(t)

	// Both offsets of a fold name a real moment and both parse.
	for _, tc := range []struct {
		src  string
		unix int64
	}{
		{"2023-10-29T02:30:00+02:00[Europe/Amsterdam]", 1698539400},
		{"2023-10-29T02:30:00+01:00[Europe/Amsterdam]", 1698543000},
	} {
		zdt, err := ParseZonedDateTimeCommonISO(tc.src)
		r.NoError(err, tc.src)
		sec, _ := zdt.ToInstant().UnixSeconds()
		a.Equal(tc.unix, sec, tc.src)
		a.Equal(tc.src, zdt.String())
	}

	// An offset the zone never used at that local time is a hard error,
	// not a nudge to the nearest valid moment.
	_, err := ParseZonedDateTimeCommonISO("2023-10-29T02:30:00+05:00[Europe/Amsterdam]")
	r.ErrorIs(err, ErrInvalidComponent)

	_, err = ParseZonedDateTimeCommonISO("2023-07-01T12:00:00+01:00[Europe/Amsterdam]")
	r.ErrorIs(err, ErrInvalidComponent)
}

func TestParseZonedRejects(t *testing.T) {
	withTestZones(t)
	r := require.New(t)

	for _, tc := range []struct {
		name string
		src  string
		want error
	}{
		{"no brackets", "2023-07-01T12:00:00+02:00", ErrParse},
		{"empty zone", "2023-07-01T12:00:00+02:00[]", ErrParse},
		{"unterminated zone", "2023-07-01T12:00:00+02:00[Europe/Amsterdam", ErrParse},
		{"trailing input", "2023-07-01T12:00:00+02:00[Europe/Amsterdam]x", ErrParse},
		{"unknown zone", "2023-07-01T12:00:00+02:00[Mars/Olympus]", ErrTimeZoneNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseZonedDateTimeCommonISO(tc.src)
			r.ErrorIs(err, tc.want, tc.src)
		})
	}
}

func TestParseInstantNormalizes(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	// Any recorded offset resolves to the same moment.
	utc, err := ParseInstantCommonISO("2024-03-10T14:30:00Z")
	r.NoError(err)
	local, err := ParseInstantCommonISO("2024-03-10T20:00:00+05:30")
	r.NoError(err)
	a.Equal(utc, local)

	// A reading whose moment falls off the supported range is rejected
	// even though every component is individually valid.
	_, err = ParseInstantCommonISO("0001-01-01T00:00:00+01:00")
	r.ErrorIs(err, ErrInvalidComponent)
}

func TestParseErrorsCarryPosition(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := ParseDateCommonISO("2023-13-01")
	a.ErrorIs(err, ErrParse)
	a.ErrorContains(err, "position")
}

package tempus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOffsetDT(t *testing.T, year, month, day, hour, minute, second, nsec, offset int) OffsetDateTime {
	t.Helper()
	dt, err := NewOffsetDateTime(year, month, day, hour, minute, second, nsec, offset)
	require.NoError(t, err)
	return dt
}

func TestOffsetDateTimeIdentity(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	kolkata := mustOffsetDT(t, 2024, 3, 10, 20, 0, 0, 0, 5*3600+30*60)
	utc := mustOffsetDT(t, 2024, 3, 10, 14, 30, 0, 0, 0)

	// Different readings, same moment.
	a.True(kolkata.EqualInstant(utc))
	a.Equal(0, kolkata.Compare(utc))
	a.True(kolkata.Sub(utc).IsZero())

	sec, nsec := kolkata.ToInstant().UnixSeconds()
	a.Equal(int64(1710081000), sec)
	a.Equal(int32(0), nsec)

	back, err := kolkata.WithOffset(0)
	r.NoError(err)
	a.Equal(utc, back)
}

func TestOffsetDateTimeAddIgnoreDST(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	dt := mustOffsetDT(t, 2023, 3, 25, 23, 0, 0, 0, 3600)
	shifted, err := dt.AddIgnoreDST(Hours(4))
	r.NoError(err)

	// The offset is frozen even though a real zone would have switched.
	a.Equal("2023-03-26T03:00:00+01:00", shifted.String())
	a.Equal(3600, shifted.Offset())

	undone, err := shifted.SubIgnoreDST(Hours(4))
	r.NoError(err)
	a.Equal(dt, undone)
}

func TestOffsetDateTimeStaysOnTimeline(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	// A reading at the calendar edge whose UTC projection crosses into
	// year 10000 or before year 1 is rejected at construction, so no
	// value can ever pin a moment off the timeline.
	_, err := NewOffsetDateTime(9999, 12, 31, 23, 0, 0, 0, -2*3600)
	r.ErrorIs(err, ErrInvalidComponent)
	_, err = NewOffsetDateTime(1, 1, 1, 0, 30, 0, 0, 3600)
	r.ErrorIs(err, ErrInvalidComponent)

	_, err = ParseOffsetDateTimeCommonISO("9999-12-31T23:00:00-02:00")
	r.ErrorIs(err, ErrInvalidComponent)

	// The same readings pass with offsets that keep the moment in range,
	// and formatting still round trips at the exact bounds.
	last := mustOffsetDT(t, 9999, 12, 31, 21, 59, 59, 0, -2*3600)
	back, err := ParseOffsetDateTimeCommonISO(last.String())
	r.NoError(err)
	a.Equal(last, back)

	first := mustOffsetDT(t, 1, 1, 1, 0, 30, 0, 0, 30*60)
	back, err = ParseOffsetDateTimeCommonISO(first.String())
	r.NoError(err)
	a.Equal(first, back)

	// The escape hatch cannot shift a value off the timeline either.
	edge := mustOffsetDT(t, 9999, 12, 31, 20, 0, 0, 0, -2*3600)
	_, err = edge.AddIgnoreDST(Hours(2))
	r.ErrorIs(err, ErrInvalidComponent)
}

func TestOffsetDateTimeRound(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	dt := mustOffsetDT(t, 2024, 3, 10, 14, 47, 31, 0, 5*3600+30*60)
	got, err := dt.Round(UnitMinute, 15, Ceil)
	r.NoError(err)
	a.Equal("2024-03-10T15:00:00+05:30", got.String())
}

func TestOffsetDateTimeFormats(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	utc := mustOffsetDT(t, 2021, 1, 1, 9, 0, 0, 0, 0)
	a.Equal("2021-01-01T09:00:00Z", utc.String())

	rfc3339, err := utc.FormatRFC3339()
	r.NoError(err)
	a.Equal("2021-01-01T09:00:00Z", rfc3339)

	rfc2822, err := utc.FormatRFC2822()
	r.NoError(err)
	a.Equal("Fri, 01 Jan 2021 09:00:00 GMT", rfc2822)

	cet := mustOffsetDT(t, 2021, 1, 1, 9, 0, 0, 0, 3600)
	rfc2822, err = cet.FormatRFC2822()
	r.NoError(err)
	a.Equal("Fri, 01 Jan 2021 09:00:00 +0100", rfc2822)

	// Historical sub-minute offsets survive ISO but not the RFC forms.
	amsterdamMeanTime := mustOffsetDT(t, 1920, 6, 1, 12, 0, 0, 0, 19*60+32)
	a.Equal("1920-06-01T12:00:00+00:19:32", amsterdamMeanTime.String())
	_, err = amsterdamMeanTime.FormatRFC3339()
	r.ErrorIs(err, ErrInvalidComponent)
	_, err = amsterdamMeanTime.FormatRFC2822()
	r.ErrorIs(err, ErrInvalidComponent)
}

func TestOffsetDateTimeParseVariants(t *testing.T) {
	t.Parallel()

	want := mustOffsetDT(t, 2024, 3, 10, 14, 30, 0, 0, 5*3600+30*60)
	for _, tc := range []struct {
		name string
		src  string
	}{
		{"extended", "2024-03-10T14:30:00+05:30"},
		{"basic offset", "2024-03-10T14:30:00+0530"},
		{"basic everything", "20240310T143000+0530"},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOffsetDateTimeCommonISO(tc.src)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("seconds offset", func(t *testing.T) {
		t.Parallel()
		got, err := ParseOffsetDateTimeCommonISO("1920-06-01T12:00:00+00:19:32")
		require.NoError(t, err)
		assert.Equal(t, 19*60+32, got.Offset())
	})

	t.Run("rfc3339 rejects seconds offset", func(t *testing.T) {
		t.Parallel()
		_, err := ParseOffsetDateTimeRFC3339("1920-06-01T12:00:00+00:19:32")
		require.ErrorIs(t, err, ErrParse)
	})
}

func TestOffsetDateTimeBinaryRoundTrip(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	dt := mustOffsetDT(t, 2024, 3, 10, 14, 30, 0, 123, -4*3600)
	raw, err := dt.MarshalBinary()
	r.NoError(err)
	var back OffsetDateTime
	r.NoError(back.UnmarshalBinary(raw))
	r.Equal(dt, back)
}

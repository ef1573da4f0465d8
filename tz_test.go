package tempus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempusgo/tempus/tzdb"
)

const testZone = "Europe/Amsterdam"

// testTransitions are the DST transitions of 2023 and 2024 for a +01:00
// standard, +02:00 summer zone.
var testTransitions = []tzdb.Transition{
	{At: 1679792400, Offset: 7200}, // 2023-03-26T01:00Z, clocks forward
	{At: 1698541200, Offset: 3600}, // 2023-10-29T01:00Z, clocks back
	{At: 1711846800, Offset: 7200}, // 2024-03-31T01:00Z, clocks forward
	{At: 1729990800, Offset: 3600}, // 2024-10-27T01:00Z, clocks back
}

func newTestTable(t *testing.T) *tzdb.Table {
	t.Helper()
	table, err := tzdb.NewTable(testZone, 3600, testTransitions)
	require.NoError(t, err)
	return table
}

// withTestZones swaps the process timezone source for a deterministic one
// for the duration of the test. Tests using it mutate process state and must
// not run in parallel.
func withTestZones(t *testing.T) {
	t.Helper()
	restore := SetTZSource(tzdb.MapSource{testZone: newTestTable(t)})
	t.Cleanup(restore)
}

func mustPlain(t *testing.T, year, month, day, hour, minute, second, nsec int) PlainDateTime {
	t.Helper()
	dt, err := NewPlainDateTime(year, month, day, hour, minute, second, nsec)
	require.NoError(t, err)
	return dt
}

func TestAssumeTZUnique(t *testing.T) {
	withTestZones(t)
	a := assert.New(t)
	r := require.New(t)

	zdt, err := mustPlain(t, 2024, 7, 1, 12, 0, 0, 0).AssumeTZ(testZone)
	r.NoError(err)
	a.Equal(7200, zdt.Offset())
	a.Equal(testZone, zdt.Zone())
	a.Equal("2024-07-01T12:00:00+02:00[Europe/Amsterdam]", zdt.String())
}

func TestAssumeTZRaises(t *testing.T) {
	withTestZones(t)
	r := require.New(t)

	// 02:30 was jumped over on 2023-03-26.
	_, err := mustPlain(t, 2023, 3, 26, 2, 30, 0, 0).AssumeTZ(testZone)
	r.ErrorIs(err, ErrSkippedTime)

	// 02:30 happened twice on 2023-10-29.
	_, err = mustPlain(t, 2023, 10, 29, 2, 30, 0, 0).AssumeTZ(testZone)
	r.ErrorIs(err, ErrRepeatedTime)
}

func TestAssumeTZGapPolicies(t *testing.T) {
	withTestZones(t)
	gapped := mustPlain(t, 2023, 3, 26, 2, 30, 0, 0)

	for _, tc := range []struct {
		name string
		dis  Disambiguate
		want string
	}{
		// Compatible moves forward by the length of the gap.
		{"compatible", DisambiguateCompatible, "2023-03-26T03:30:00+02:00[Europe/Amsterdam]"},
		// Earlier keeps the nonexistent wall time on the old offset.
		{"earlier", DisambiguateEarlier, "2023-03-26T02:30:00+01:00[Europe/Amsterdam]"},
		{"later", DisambiguateLater, "2023-03-26T02:30:00+02:00[Europe/Amsterdam]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			zdt, err := gapped.AssumeTZWith(testZone, tc.dis)
			require.NoError(t, err)
			assert.Equal(t, tc.want, zdt.String())
		})
	}
}

func TestAssumeTZFoldPolicies(t *testing.T) {
	withTestZones(t)
	folded := mustPlain(t, 2023, 10, 29, 2, 30, 0, 0)

	for _, tc := range []struct {
		name string
		dis  Disambiguate
		want string
	}{
		{"compatible", DisambiguateCompatible, "2023-10-29T02:30:00+02:00[Europe/Amsterdam]"},
		{"earlier", DisambiguateEarlier, "2023-10-29T02:30:00+02:00[Europe/Amsterdam]"},
		{"later", DisambiguateLater, "2023-10-29T02:30:00+01:00[Europe/Amsterdam]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			zdt, err := folded.AssumeTZWith(testZone, tc.dis)
			require.NoError(t, err)
			assert.Equal(t, tc.want, zdt.String())
		})
	}
}

func TestFoldOccurrencesAreOneHourApart(t *testing.T) {
	withTestZones(t)
	a := assert.New(t)
	r := require.New(t)

	folded := mustPlain(t, 2023, 10, 29, 2, 30, 0, 0)
	first, err := folded.AssumeTZWith(testZone, DisambiguateEarlier)
	r.NoError(err)
	second, err := folded.AssumeTZWith(testZone, DisambiguateLater)
	r.NoError(err)

	// Same wall reading, different moments.
	a.Equal(first.ToPlain(), second.ToPlain())
	a.Equal(Hours(1), second.Sub(first))
	a.Equal(-1, first.Compare(second))
	a.False(first.EqualInstant(second))
}

func TestNewZonedDateTimeDefaultsToCompatible(t *testing.T) {
	withTestZones(t)
	r := require.New(t)

	// The constructor succeeds where the promotion raises.
	zdt, err := NewZonedDateTime(2023, 3, 26, 2, 30, 0, 0, testZone)
	r.NoError(err)
	assert.Equal(t, "2023-03-26T03:30:00+02:00[Europe/Amsterdam]", zdt.String())

	_, err = NewZonedDateTimeWith(2023, 3, 26, 2, 30, 0, 0, testZone, DisambiguateRaise)
	r.ErrorIs(err, ErrSkippedTime)
}

func TestInTZIsTotal(t *testing.T) {
	withTestZones(t)
	a := assert.New(t)
	r := require.New(t)

	// Both occurrences of the folded wall time resolve without a policy.
	first, err := InstantFromUnixSeconds(1698539400) // 2023-10-29T00:30Z
	r.NoError(err)
	second, err := InstantFromUnixSeconds(1698543000) // 2023-10-29T01:30Z
	r.NoError(err)

	z1, err := first.InTZ(testZone)
	r.NoError(err)
	z2, err := second.InTZ(testZone)
	r.NoError(err)

	a.Equal("2023-10-29T02:30:00+02:00[Europe/Amsterdam]", z1.String())
	a.Equal("2023-10-29T02:30:00+01:00[Europe/Amsterdam]", z2.String())
	a.Equal(z1.ToPlain(), z2.ToPlain())
}

func TestUnknownZone(t *testing.T) {
	withTestZones(t)
	r := require.New(t)

	_, err := Now().InTZ("Mars/Olympus_Mons")
	r.ErrorIs(err, ErrTimeZoneNotFound)
	r.ErrorIs(err, tzdb.ErrNotFound)

	_, err = mustPlain(t, 2024, 7, 1, 12, 0, 0, 0).AssumeTZ("Mars/Olympus_Mons")
	r.Error(err)
	r.True(errors.Is(err, ErrTimeZoneNotFound))
}

func TestSetTZSourceRestores(t *testing.T) {
	prev := TZCache()
	restore := SetTZSource(tzdb.MapSource{})
	assert.NotSame(t, prev, TZCache())
	restore()
	assert.Same(t, prev, TZCache())
}

func TestDisambiguateString(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	a.Equal("compatible", DisambiguateCompatible.String())
	a.Equal("raise", DisambiguateRaise.String())
	a.Equal("earlier", DisambiguateEarlier.String())
	a.Equal("later", DisambiguateLater.String())
	a.Equal("invalid", Disambiguate(99).String())
}

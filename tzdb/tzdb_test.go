package tzdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Amsterdam 2023 and 2024: alternating +02:00 and +01:00.
var amsTransitions = []Transition{
	{At: 1679792400, Offset: 7200},
	{At: 1698541200, Offset: 3600},
	{At: 1711846800, Offset: 7200},
	{At: 1729990800, Offset: 3600},
}

func amsterdam(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable("Europe/Amsterdam", 3600, amsTransitions)
	require.NoError(t, err)
	return table
}

func TestNewTableRejectsUnorderedTransitions(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	_, err := NewTable("X", 0, []Transition{
		{At: 100, Offset: 3600},
		{At: 100, Offset: 7200},
	})
	r.ErrorIs(err, ErrBadData)

	_, err = NewTable("X", 0, []Transition{
		{At: 200, Offset: 3600},
		{At: 100, Offset: 7200},
	})
	r.ErrorIs(err, ErrBadData)
}

func TestOffsetAt(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	table := amsterdam(t)

	for _, tc := range []struct {
		name string
		sec  int64
		want int32
	}{
		{"before first transition", 0, 3600},
		{"one second before spring forward", 1679792399, 3600},
		{"exactly at spring forward", 1679792400, 7200},
		{"midsummer", 1688212800, 7200},
		{"exactly at fall back", 1698541200, 3600},
		{"after last transition", 1735689600, 3600},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a.Equal(tc.want, table.OffsetAt(tc.sec), tc.name)
		})
	}
}

func TestResolveLocal(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	table := amsterdam(t)

	for _, tc := range []struct {
		name  string
		local int64
		want  LocalResult
	}{
		{
			// 2023-03-26T02:30 local never happened.
			"gap", 1679797800,
			LocalResult{Kind: LocalGap, Before: 3600, After: 7200},
		},
		{
			// 2023-10-29T02:30 local happened twice.
			"fold", 1698546600,
			LocalResult{Kind: LocalFold, Before: 7200, After: 3600},
		},
		{
			// 2023-07-01T12:00 local is plain summer time.
			"unique summer", 1688212800,
			LocalResult{Kind: LocalUnique, Before: 7200, After: 7200},
		},
		{
			// The first skipped second of the gap.
			"gap start boundary", 1679796000,
			LocalResult{Kind: LocalGap, Before: 3600, After: 7200},
		},
		{
			// 03:00 local is the first reading after the gap.
			"gap end boundary", 1679799600,
			LocalResult{Kind: LocalUnique, Before: 7200, After: 7200},
		},
		{
			// 02:00 local is the first repeated reading of the fold.
			"fold start boundary", 1698544800,
			LocalResult{Kind: LocalFold, Before: 7200, After: 3600},
		},
		{
			// 03:00 local comes around only once.
			"fold end boundary", 1698548400,
			LocalResult{Kind: LocalUnique, Before: 3600, After: 3600},
		},
		{
			"before all transitions", 0,
			LocalResult{Kind: LocalUnique, Before: 3600, After: 3600},
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a.Equal(tc.want, table.ResolveLocal(tc.local), tc.name)
		})
	}
}

func TestTransitionsReturnsACopy(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	table := amsterdam(t)

	got := table.Transitions()
	a.Equal(amsTransitions, got)

	got[0].Offset = 0
	a.Equal(amsTransitions, table.Transitions())
	a.Equal("Europe/Amsterdam", table.ID())
}

package tzdb

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTZifSource(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	good := buildTZifV2(testTrans, testIdxs, testTypes, "CET-1CEST,M3.5.0,M10.5.0/3")
	src := NewTZifSource(fstest.MapFS{
		"Europe/Amsterdam": &fstest.MapFile{Data: good},
		"Europe/Broken":    &fstest.MapFile{Data: []byte("not a tzif file")},
	})

	table, err := src.Load("Europe/Amsterdam")
	r.NoError(err)
	a.Equal("Europe/Amsterdam", table.ID())
	a.Equal(int32(7200), table.OffsetAt(1688212800))

	_, err = src.Load("Europe/Rotterdam")
	r.ErrorIs(err, ErrNotFound)

	_, err = src.Load("Europe/Broken")
	r.ErrorIs(err, ErrBadData)
}

func TestTZifSourceRejectsBadIdentifiers(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	src := NewTZifSource(fstest.MapFS{})
	for _, id := range []string{
		"",
		"/etc/passwd",
		"../secrets",
		"Europe/../../etc/passwd",
		"Europe//Amsterdam",
		"Europe/./Amsterdam",
		"Europe\\Amsterdam",
	} {
		_, err := src.Load(id)
		r.ErrorIs(err, ErrNotFound, "%q", id)
	}
}

func TestMapSource(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	table, err := NewTable("X", 0, nil)
	r.NoError(err)

	src := MapSource{"X": table}
	got, err := src.Load("X")
	r.NoError(err)
	a.Same(table, got)

	_, err = src.Load("Y")
	r.ErrorIs(err, ErrNotFound)

	// A nil map is a valid source that knows no zones.
	_, err = MapSource(nil).Load("X")
	r.ErrorIs(err, ErrNotFound)
}

func TestOSSourceNeverPanics(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	// Whether or not the host has a zoneinfo database, a nonsense id must
	// come back as not found.
	_, err := OSSource().Load("Nowhere/Special")
	r.Error(err)
}

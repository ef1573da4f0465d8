package tempus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchNow(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	fixed := mustInstant(t, 1719828000)
	restore := PatchNow(fixed)
	a.Equal(fixed, Now())

	// Patches nest and each restore reinstates the clock it replaced.
	inner := mustInstant(t, 1893456000)
	restoreInner := PatchNow(inner)
	a.Equal(inner, Now())
	restoreInner()
	a.Equal(fixed, Now())

	restore()
	r.NotEqual(fixed, Now())
}

func TestNowInAndToday(t *testing.T) {
	withTestZones(t)
	a := assert.New(t)
	r := require.New(t)

	restore := PatchNow(mustInstant(t, 1719828000))
	defer restore()

	zdt, err := NowIn(testZone)
	r.NoError(err)
	a.Equal("2024-07-01T12:00:00+02:00[Europe/Amsterdam]", zdt.String())

	d, err := Today(testZone)
	r.NoError(err)
	a.Equal("2024-07-01", d.String())

	_, err = NowIn("Mars/Olympus")
	r.ErrorIs(err, ErrTimeZoneNotFound)
}

func TestNowLocal(t *testing.T) {
	withTestZones(t)
	a := assert.New(t)
	r := require.New(t)

	restoreClock := PatchNow(mustInstant(t, 1705312800))
	defer restoreClock()
	restoreZone := PatchLocalZone(testZone)
	defer restoreZone()

	a.Equal(testZone, LocalZoneID())

	zdt, err := NowLocal()
	r.NoError(err)
	a.Equal("2024-01-15T11:00:00+01:00[Europe/Amsterdam]", zdt.String())
}

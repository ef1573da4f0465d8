package tempus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrips(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	d := mustDate(t, 2023, 10, 29)
	var d2 Date
	raw, err := d.MarshalBinary()
	r.NoError(err)
	r.NoError(d2.UnmarshalBinary(raw))
	a.Equal(d, d2)

	i := mustInstant(t, -1)
	var i2 Instant
	raw, err = i.MarshalBinary()
	r.NoError(err)
	r.NoError(i2.UnmarshalBinary(raw))
	a.Equal(i, i2)

	odt := mustOffsetDT(t, 2024, 3, 10, 20, 0, 0, 1, 5*3600+1800)
	var odt2 OffsetDateTime
	raw, err = odt.MarshalBinary()
	r.NoError(err)
	r.NoError(odt2.UnmarshalBinary(raw))
	a.Equal(odt, odt2)
}

func TestBinaryRejects(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	good, err := mustDate(t, 2023, 10, 29).MarshalBinary()
	r.NoError(err)

	var d Date
	for _, tc := range []struct {
		name string
		raw  []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"unknown version", append([]byte{99}, good[1:]...)},
		{"truncated", good[:len(good)-1]},
		{"trailing bytes", append(append([]byte{}, good...), 0)},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r.ErrorIs(d.UnmarshalBinary(tc.raw), ErrParse, tc.name)
		})
	}

	// Structurally valid varints still go through component validation.
	bad := appendVarints(2023, 13, 1)
	r.ErrorIs(d.UnmarshalBinary(bad), ErrInvalidComponent)

	var i Instant
	outOfRange := appendVarints(maxInstantSec+1, 0)
	r.ErrorIs(i.UnmarshalBinary(outOfRange), ErrInvalidComponent)
}

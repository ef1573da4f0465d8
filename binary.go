package tempus

import (
	"encoding/binary"
	"fmt"
)

// Binary encodings are a version byte followed by varint-encoded fields.
// Decoding checks the version and rejects truncated or oversized input, so a
// payload written by a future incompatible release fails instead of being
// misread.

const binaryVersion = 1

// appendVarints encodes vs as varints after the version byte.
func appendVarints(vs ...int64) []byte {
	b := make([]byte, 1, 1+binary.MaxVarintLen64*len(vs))
	b[0] = binaryVersion
	for _, v := range vs {
		b = binary.AppendVarint(b, v)
	}
	return b
}

// splitZonedBinary decodes the versioned varint prefix of a zoned date-time
// payload and returns the remaining bytes, which hold the zone id.
func splitZonedBinary(b []byte, vs ...*int64) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: zoned date-time: empty binary data", ErrParse)
	}
	if b[0] != binaryVersion {
		return nil, fmt.Errorf(
			"%w: zoned date-time: unknown binary version %d", ErrParse, b[0],
		)
	}
	b = b[1:]
	for _, dst := range vs {
		v, n := binary.Varint(b)
		if n <= 0 {
			return nil, fmt.Errorf(
				"%w: zoned date-time: truncated binary data", ErrParse,
			)
		}
		*dst = v
		b = b[n:]
	}
	return b, nil
}

// consumeVarints decodes exactly len(vs) varints from a versioned payload
// into the given destinations, rejecting trailing bytes.
func consumeVarints(what string, b []byte, vs ...*int64) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: %v: empty binary data", ErrParse, what)
	}
	if b[0] != binaryVersion {
		return fmt.Errorf(
			"%w: %v: unknown binary version %d", ErrParse, what, b[0],
		)
	}
	b = b[1:]
	for _, dst := range vs {
		v, n := binary.Varint(b)
		if n <= 0 {
			return fmt.Errorf("%w: %v: truncated binary data", ErrParse, what)
		}
		*dst = v
		b = b[n:]
	}
	if len(b) != 0 {
		return fmt.Errorf(
			"%w: %v: %d trailing bytes after binary data", ErrParse, what, len(b),
		)
	}
	return nil
}

package tempus

import (
	"errors"

	"github.com/tempusgo/tempus/tzdb"
)

// The package reports failures as wrapped sentinel errors, so callers match
// on the kind of failure with [errors.Is] rather than on concrete types.
var (
	// ErrInvalidComponent denotes a calendar or clock field out of range at
	// construction, or a derivation whose result cannot be represented.
	ErrInvalidComponent = errors.New("invalid component")

	// ErrSkippedTime denotes a local time that does not exist in its zone
	// because clocks jumped forward over it.
	ErrSkippedTime = errors.New("skipped time")

	// ErrRepeatedTime denotes a local time that exists twice in its zone
	// because clocks were set back across it.
	ErrRepeatedTime = errors.New("repeated time")

	// ErrTimeZoneNotFound denotes an IANA zone identifier unknown to the
	// timezone database. It is the same sentinel as [tzdb.ErrNotFound].
	ErrTimeZoneNotFound = tzdb.ErrNotFound

	// ErrUnsupportedOperation denotes an operation that has no universal
	// answer for its operands, such as comparing two calendar deltas.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrParse denotes malformed input text. The message carries the byte
	// position of the offending component.
	ErrParse = errors.New("parse")

	// ErrInvalidArgument denotes an argument outside an operation's domain,
	// such as a rounding increment that does not divide its unit.
	ErrInvalidArgument = errors.New("invalid argument")
)

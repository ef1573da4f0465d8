// Package tempus provides immutable date and time value types with strict,
// explicit semantics.
//
// It distinguishes naive values (a clock reading not tied to any moment) from
// aware values (pinned to an exact point on the UTC timeline), and refuses to
// convert between the two without an explicit assumption at the call site.
// Daylight saving transitions are never guessed away: constructing a local
// time that falls in a gap or a fold requires a [Disambiguate] policy, and
// the default promotion policy reports the problem instead of picking a side.
//
// The value types are:
//
//   - [Instant]: an exact point on the UTC timeline, no calendar attached.
//   - [Date], [Time], [YearMonth], [MonthDay]: pure calendar and clock fields.
//   - [PlainDateTime]: a date plus a clock reading, tied to no moment.
//   - [OffsetDateTime]: a date-time with a fixed UTC offset.
//   - [ZonedDateTime]: a date-time in an IANA time zone, resolved through
//     [github.com/tempusgo/tempus/tzdb].
//   - [TimeDelta], [DateDelta], [DateTimeDelta]: exact, calendar, and mixed
//     durations.
//
// All types are immutable; every operation returns a new value. Everything in
// this package is safe for concurrent use.
package tempus

// Disambiguate selects an offset when a local time maps to zero (gap) or two
// (fold) moments in a time zone.
type Disambiguate uint8

const (
	// DisambiguateCompatible shifts a gapped time forward by the length of
	// the gap and picks the earlier occurrence of a folded time. It is the
	// default for constructors.
	DisambiguateCompatible Disambiguate = iota

	// DisambiguateRaise reports ErrSkippedTime for gaps and ErrRepeatedTime
	// for folds. It is the default when promoting a naive value.
	DisambiguateRaise

	// DisambiguateEarlier uses the offset in effect before the transition.
	DisambiguateEarlier

	// DisambiguateLater uses the offset in effect after the transition.
	DisambiguateLater
)

// String returns the policy name as accepted by the command line tools.
func (d Disambiguate) String() string {
	switch d {
	case DisambiguateCompatible:
		return "compatible"
	case DisambiguateRaise:
		return "raise"
	case DisambiguateEarlier:
		return "earlier"
	case DisambiguateLater:
		return "later"
	default:
		return "invalid"
	}
}

// A Moment is any value pinned to an exact point on the UTC timeline:
// [Instant], [OffsetDateTime], or [ZonedDateTime]. [PlainDateTime] is
// deliberately not a Moment, so mixing naive and aware values in [Since] or
// [CompareMoments] is rejected at compile time.
type Moment interface {
	// ToInstant returns the exact moment on the UTC timeline.
	ToInstant() Instant
}

// A LocalReading is any value carrying a civil date and clock reading:
// [PlainDateTime], [OffsetDateTime], or [ZonedDateTime].
type LocalReading interface {
	// ToPlain returns the local date and clock reading, discarding any
	// offset or zone.
	ToPlain() PlainDateTime
}

// Since returns the exact time elapsed from b to a, independent of how
// either moment is represented.
func Since(a, b Moment) TimeDelta {
	return a.ToInstant().Sub(b.ToInstant())
}

// CompareMoments compares two aware values by their resolved instants,
// returning -1, 0, or +1.
func CompareMoments(a, b Moment) int {
	return a.ToInstant().Compare(b.ToInstant())
}

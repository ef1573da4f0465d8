package tempus

import (
	"math"
)

// ISO 8601 duration grammar, shared by the three delta types:
//
//	[sign] P [n Y] [n M] [n W] [n D] [T [n H] [n M] [n[.f] S]]
//
// Each component may carry its own sign; a leading sign applies to every
// component. Only the seconds may carry a fraction. Designators must appear
// in order and at most once, and at least one component must be present.

// parseDuration scans the full grammar and reports which halves appeared.
func parseDuration(src string) (months, days int64, td TimeDelta, hasDate, hasTime bool, err error) {
	s := &scanner{src: src}
	sign := int64(1)
	if s.take('-') {
		sign = -1
	} else {
		s.take('+')
	}
	if err = s.expect('P'); err != nil {
		return
	}

	var years, weeks, h, m, sec int64
	var nsec int32
	seen := 0 // bitmask of components in designator order
	for !s.eof() && s.peek() != 'T' {
		var v int64
		if v, _, err = s.signedNumber(sign); err != nil {
			return
		}
		var bit int
		switch {
		case s.take('Y'):
			bit, years = 1, v
		case s.take('M'):
			bit, months = 2, v
		case s.take('W'):
			bit, weeks = 4, v
		case s.take('D'):
			bit, days = 8, v
		default:
			err = s.errf("expected a date unit designator")
			return
		}
		if seen >= bit {
			err = s.errf("duplicate or misordered duration component")
			return
		}
		seen |= bit
		hasDate = true
	}

	if s.take('T') {
		tseen := 0
		for !s.eof() {
			var v int64
			var neg bool
			if v, neg, err = s.signedNumber(sign); err != nil {
				return
			}
			var bit int
			switch {
			case s.take('H'):
				bit, h = 1, v
			case s.peek() == '.' || s.peek() == ',':
				if nsec, err = s.fractionNanos(); err != nil {
					return
				}
				if err = s.expect('S'); err != nil {
					return
				}
				bit, sec = 4, v
				if neg {
					nsec = -nsec
				}
			case s.take('M'):
				bit, m = 2, v
			case s.take('S'):
				bit, sec = 4, v
			default:
				err = s.errf("expected a time unit designator")
				return
			}
			if tseen >= bit {
				err = s.errf("duplicate or misordered duration component")
				return
			}
			tseen |= bit
			hasTime = true
		}
		if !hasTime {
			err = s.errf("empty time part")
			return
		}
	}

	if err = s.done(); err != nil {
		return
	}
	if !hasDate && !hasTime {
		err = s.errf("duration has no components")
		return
	}

	months += years * 12
	days += weeks * 7
	if months < math.MinInt32 || months > math.MaxInt32 ||
		days < math.MinInt32 || days > math.MaxInt32 {
		err = s.errf("duration out of range")
		return
	}
	td = Hours(h).Add(Minutes(m)).Add(Seconds(sec)).Add(Nanoseconds(int64(nsec)))
	return
}

// signedNumber consumes an optionally signed number and applies the outer
// sign. neg reports the effective sign even for a zero value, which decides
// the sign of a fraction following a zero seconds component.
func (s *scanner) signedNumber(outer int64) (v int64, neg bool, err error) {
	inner := int64(1)
	if s.take('-') {
		inner = -1
	}
	v, err = s.number()
	if err != nil {
		return 0, false, err
	}
	return outer * inner * v, outer*inner < 0, nil
}

// ParseTimeDeltaCommonISO parses an exact duration, PT...S form. Date
// components are rejected: a month or day count has no fixed length to
// convert to.
func ParseTimeDeltaCommonISO(src string) (TimeDelta, error) {
	_, _, td, hasDate, _, err := parseDuration(src)
	if err != nil {
		return TimeDelta{}, err
	}
	if hasDate {
		return TimeDelta{}, (&scanner{src: src}).errf(
			"calendar components not allowed in an exact duration",
		)
	}
	return td, nil
}

// ParseDateDeltaCommonISO parses a calendar duration. Time components are
// rejected.
func ParseDateDeltaCommonISO(src string) (DateDelta, error) {
	months, days, _, _, hasTime, err := parseDuration(src)
	if err != nil {
		return DateDelta{}, err
	}
	if hasTime {
		return DateDelta{}, (&scanner{src: src}).errf(
			"clock components not allowed in a calendar duration",
		)
	}
	return DateDelta{months: int32(months), days: int32(days)}, nil
}

// ParseDateTimeDeltaCommonISO parses a full duration with calendar and
// clock parts.
func ParseDateTimeDeltaCommonISO(src string) (DateTimeDelta, error) {
	months, days, td, _, _, err := parseDuration(src)
	if err != nil {
		return DateTimeDelta{}, err
	}
	return DateTimeDelta{
		date: DateDelta{months: int32(months), days: int32(days)},
		time: td,
	}, nil
}

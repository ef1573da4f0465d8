package tempus

import (
	"fmt"
)

// RFC 2822 date-times, the format email headers use:
//
//	Tue, 01 Jan 2021 09:00:00 +0100
//
// Formatting emits GMT for offset zero, per the RFC's convention for
// Greenwich time. Parsing also accepts the obsolete named zones the RFC
// grandfathers in.

var weekdayNames = [7]string{
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// obsoleteZones are the named zones of RFC 2822 §4.3. Unknown single-letter
// military zones are to be treated as +0000.
var obsoleteZones = map[string]int32{
	"GMT": 0, "UT": 0, "UTC": 0,
	"EST": -5 * secondsPerHour, "EDT": -4 * secondsPerHour,
	"CST": -6 * secondsPerHour, "CDT": -5 * secondsPerHour,
	"MST": -7 * secondsPerHour, "MDT": -6 * secondsPerHour,
	"PST": -8 * secondsPerHour, "PDT": -7 * secondsPerHour,
}

// formatRFC2822 renders a local reading with the given whole-minute offset.
func formatRFC2822(dt PlainDateTime, offset int32, gmt bool) string {
	b := make([]byte, 0, len("Mon, 02 Jan 2006 15:04:05 -0700"))
	b = append(b, weekdayNames[dt.date.Weekday()-1]...)
	b = append(b, ',', ' ')
	b = appendPadded(b, dt.date.Day(), 2)
	b = append(b, ' ')
	b = append(b, monthNames[dt.date.Month()-1]...)
	b = append(b, ' ')
	b = appendPadded(b, dt.date.Year(), 4)
	b = append(b, ' ')
	b = appendPadded(b, dt.time.Hour(), 2)
	b = append(b, ':')
	b = appendPadded(b, dt.time.Minute(), 2)
	b = append(b, ':')
	b = appendPadded(b, dt.time.Second(), 2)
	b = append(b, ' ')
	if gmt {
		return string(append(b, "GMT"...))
	}
	o := offset
	if o < 0 {
		b = append(b, '-')
		o = -o
	} else {
		b = append(b, '+')
	}
	b = appendPadded(b, int(o/secondsPerHour), 2)
	b = appendPadded(b, int(o%secondsPerHour/secondsPerMinute), 2)
	return string(b)
}

// ParseOffsetDateTimeRFC2822 parses an RFC 2822 date-time. The weekday is
// optional; when present it must agree with the date.
func ParseOffsetDateTimeRFC2822(src string) (OffsetDateTime, error) {
	s := &scanner{src: src}
	s.skipSpaces()

	weekday := -1
	if c := s.peek(); c < '0' || c > '9' {
		name := s.letters(3)
		for i, w := range weekdayNames {
			if name == w {
				weekday = i
			}
		}
		if weekday < 0 {
			return OffsetDateTime{}, s.errf("unknown weekday %q", name)
		}
		if err := s.expect(','); err != nil {
			return OffsetDateTime{}, err
		}
		s.skipSpaces()
	}

	day, err := s.oneOrTwoDigits()
	if err != nil {
		return OffsetDateTime{}, err
	}
	s.skipSpaces()
	monthName := s.letters(3)
	month := 0
	for i, m := range monthNames {
		if monthName == m {
			month = i + 1
		}
	}
	if month == 0 {
		return OffsetDateTime{}, s.errf("unknown month %q", monthName)
	}
	s.skipSpaces()
	year, err := s.digits(4)
	if err != nil {
		return OffsetDateTime{}, err
	}
	s.skipSpaces()

	hour, err := s.digits(2)
	if err != nil {
		return OffsetDateTime{}, err
	}
	if err := s.expect(':'); err != nil {
		return OffsetDateTime{}, err
	}
	minute, err := s.digits(2)
	if err != nil {
		return OffsetDateTime{}, err
	}
	second := 0
	if s.take(':') {
		if second, err = s.digits(2); err != nil {
			return OffsetDateTime{}, err
		}
	}
	s.skipSpaces()

	offset, err := s.rfc2822Zone()
	if err != nil {
		return OffsetDateTime{}, err
	}
	s.skipSpaces()
	if err := s.done(); err != nil {
		return OffsetDateTime{}, err
	}

	d, err := NewDate(year, month, day)
	if err != nil {
		return OffsetDateTime{}, s.wrap(err)
	}
	if weekday >= 0 && d.Weekday() != weekday+1 {
		return OffsetDateTime{}, fmt.Errorf(
			"%w: %q: weekday %v does not match %v",
			ErrParse, src, weekdayNames[weekday], d,
		)
	}
	t, err := NewTime(hour, minute, second, 0)
	if err != nil {
		return OffsetDateTime{}, s.wrap(err)
	}
	return PlainDateTime{date: d, time: t}.AssumeOffset(int(offset))
}

// ParseInstantRFC2822 parses an RFC 2822 date-time to the moment it pins.
func ParseInstantRFC2822(src string) (Instant, error) {
	dt, err := ParseOffsetDateTimeRFC2822(src)
	if err != nil {
		return Instant{}, err
	}
	return instantOf(dt)
}

func (s *scanner) skipSpaces() {
	for s.take(' ') {
	}
}

// letters consumes up to n ASCII letters.
func (s *scanner) letters(n int) string {
	start := s.pos
	for s.pos-start < n {
		c := s.peek()
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) oneOrTwoDigits() (int, error) {
	v, err := s.digits(1)
	if err != nil {
		return 0, err
	}
	if c := s.peek(); c >= '0' && c <= '9' {
		v = v*10 + int(c-'0')
		s.pos++
	}
	return v, nil
}

// rfc2822Zone consumes ±HHMM or an obsolete named zone.
func (s *scanner) rfc2822Zone() (int32, error) {
	var sign int32
	switch {
	case s.take('+'):
		sign = 1
	case s.take('-'):
		sign = -1
	default:
		name := s.letters(4)
		if off, ok := obsoleteZones[name]; ok {
			return off, nil
		}
		if len(name) == 1 {
			// Military zone: semantics unknown, treated as +0000.
			return 0, nil
		}
		return 0, s.errf("unknown zone %q", name)
	}
	hour, err := s.digits(2)
	if err != nil {
		return 0, err
	}
	minute, err := s.digits(2)
	if err != nil {
		return 0, err
	}
	if hour > 23 || minute > 59 {
		return 0, s.errf("offset %02d%02d out of range", hour, minute)
	}
	return sign * int32(hour*secondsPerHour+minute*secondsPerMinute), nil
}

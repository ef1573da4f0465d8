package tempus

import (
	"fmt"
)

// The parsers are strict: they accept exactly the canonical grammars (plus
// the documented basic-format variants), reject trailing input, and report
// ErrParse with the byte position of the offending component. There are no
// best-effort results; a failed parse never yields a usable value.

// scanner walks a source string byte by byte. All canonical grammars are
// ASCII, so no rune decoding is needed.
type scanner struct {
	src string
	pos int
}

// errf reports a positioned parse failure.
func (s *scanner) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %q at position %d: %v", ErrParse, s.src, s.pos, msg)
}

// wrap converts a component validation failure into a positioned parse
// failure, keeping the original kind in the chain.
func (s *scanner) wrap(err error) error {
	return fmt.Errorf("%w: %q at position %d: %w", ErrParse, s.src, s.pos, err)
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

// peek returns the next byte without consuming it, or 0 at end of input.
func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// take consumes c if it is next and reports whether it did.
func (s *scanner) take(c byte) bool {
	if s.peek() == c {
		s.pos++
		return true
	}
	return false
}

// expect consumes c or fails.
func (s *scanner) expect(c byte) error {
	if !s.take(c) {
		return s.errf("expected %q", string(c))
	}
	return nil
}

// done fails unless the whole input has been consumed.
func (s *scanner) done() error {
	if !s.eof() {
		return s.errf("unexpected trailing input")
	}
	return nil
}

// digits consumes exactly n ASCII digits.
func (s *scanner) digits(n int) (int, error) {
	v := 0
	for i := 0; i < n; i++ {
		c := s.peek()
		if c < '0' || c > '9' {
			return 0, s.errf("expected %d digits", n)
		}
		v = v*10 + int(c-'0')
		s.pos++
	}
	return v, nil
}

// number consumes 1 to 15 ASCII digits.
func (s *scanner) number() (int64, error) {
	start := s.pos
	var v int64
	for s.pos-start < 15 {
		c := s.peek()
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int64(c-'0')
		s.pos++
	}
	if s.pos == start {
		return 0, s.errf("expected a number")
	}
	if c := s.peek(); c >= '0' && c <= '9' {
		return 0, s.errf("number has too many digits")
	}
	return v, nil
}

// fractionNanos consumes a dot (or comma) and 1 to 9 fractional digits,
// returning the value scaled to nanoseconds. Returns 0 when no fraction
// follows.
func (s *scanner) fractionNanos() (int32, error) {
	if c := s.peek(); c != '.' && c != ',' {
		return 0, nil
	}
	s.pos++
	var v, n int32
	for ; n < 9; n++ {
		c := s.peek()
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int32(c-'0')
		s.pos++
	}
	if n == 0 {
		return 0, s.errf("expected fractional digits")
	}
	if c := s.peek(); c >= '0' && c <= '9' {
		return 0, s.errf("fraction longer than nanoseconds")
	}
	for ; n < 9; n++ {
		v *= 10
	}
	return v, nil
}

// ParseDateCommonISO parses a date in ISO 8601 extended (2021-01-31) or
// basic (20210131) form.
func ParseDateCommonISO(src string) (Date, error) {
	s := &scanner{src: src}
	d, err := s.date()
	if err != nil {
		return Date{}, err
	}
	if err := s.done(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// date consumes a date, detecting extended versus basic form from the byte
// after the year.
func (s *scanner) date() (Date, error) {
	year, err := s.digits(4)
	if err != nil {
		return Date{}, err
	}
	extended := s.take('-')
	month, err := s.digits(2)
	if err != nil {
		return Date{}, err
	}
	if extended {
		if err := s.expect('-'); err != nil {
			return Date{}, err
		}
	}
	day, err := s.digits(2)
	if err != nil {
		return Date{}, err
	}
	d, err := NewDate(year, month, day)
	if err != nil {
		return Date{}, s.wrap(err)
	}
	return d, nil
}

// ParseYearMonthCommonISO parses a year-month in the form 2021-01.
func ParseYearMonthCommonISO(src string) (YearMonth, error) {
	s := &scanner{src: src}
	year, err := s.digits(4)
	if err != nil {
		return YearMonth{}, err
	}
	if err := s.expect('-'); err != nil {
		return YearMonth{}, err
	}
	month, err := s.digits(2)
	if err != nil {
		return YearMonth{}, err
	}
	if err := s.done(); err != nil {
		return YearMonth{}, err
	}
	ym, err := NewYearMonth(year, month)
	if err != nil {
		return YearMonth{}, s.wrap(err)
	}
	return ym, nil
}

// ParseMonthDayCommonISO parses a month-day in the form --01-31.
func ParseMonthDayCommonISO(src string) (MonthDay, error) {
	s := &scanner{src: src}
	if err := s.expect('-'); err != nil {
		return MonthDay{}, err
	}
	if err := s.expect('-'); err != nil {
		return MonthDay{}, err
	}
	month, err := s.digits(2)
	if err != nil {
		return MonthDay{}, err
	}
	if err := s.expect('-'); err != nil {
		return MonthDay{}, err
	}
	day, err := s.digits(2)
	if err != nil {
		return MonthDay{}, err
	}
	if err := s.done(); err != nil {
		return MonthDay{}, err
	}
	md, err := NewMonthDay(month, day)
	if err != nil {
		return MonthDay{}, s.wrap(err)
	}
	return md, nil
}

// ParseTimeCommonISO parses a clock reading in ISO 8601 extended
// (02:30:00.5) or basic (023000.5) form.
func ParseTimeCommonISO(src string) (Time, error) {
	s := &scanner{src: src}
	t, err := s.time()
	if err != nil {
		return Time{}, err
	}
	if err := s.done(); err != nil {
		return Time{}, err
	}
	return t, nil
}

func (s *scanner) time() (Time, error) {
	hour, err := s.digits(2)
	if err != nil {
		return Time{}, err
	}
	extended := s.take(':')
	minute, err := s.digits(2)
	if err != nil {
		return Time{}, err
	}
	if extended {
		if err := s.expect(':'); err != nil {
			return Time{}, err
		}
	}
	second, err := s.digits(2)
	if err != nil {
		return Time{}, err
	}
	nsec, err := s.fractionNanos()
	if err != nil {
		return Time{}, err
	}
	t, err := NewTime(hour, minute, second, int(nsec))
	if err != nil {
		return Time{}, s.wrap(err)
	}
	return t, nil
}

// ParsePlainDateTimeCommonISO parses a naive date-time, date and clock
// joined by T.
func ParsePlainDateTimeCommonISO(src string) (PlainDateTime, error) {
	s := &scanner{src: src}
	dt, err := s.plain(false)
	if err != nil {
		return PlainDateTime{}, err
	}
	if err := s.done(); err != nil {
		return PlainDateTime{}, err
	}
	return dt, nil
}

// plain consumes a date, a separator, and a clock reading. The separator is
// T, or additionally t and space in the lenient RFC 3339 mode.
func (s *scanner) plain(rfc3339 bool) (PlainDateTime, error) {
	d, err := s.date()
	if err != nil {
		return PlainDateTime{}, err
	}
	switch {
	case s.take('T'):
	case rfc3339 && (s.take('t') || s.take(' ')):
	default:
		return PlainDateTime{}, s.errf("expected a date-time separator")
	}
	t, err := s.time()
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: d, time: t}, nil
}

// offset consumes a UTC offset: Z, or a sign followed by HH, HH:MM,
// HH:MM:SS, HHMM, or HHMMSS. In RFC 3339 mode only Z, z, and ±HH:MM are
// accepted.
func (s *scanner) offset(rfc3339 bool) (int32, error) {
	switch {
	case s.take('Z'):
		return 0, nil
	case rfc3339 && s.take('z'):
		return 0, nil
	}
	var sign int32
	switch {
	case s.take('+'):
		sign = 1
	case s.take('-'):
		sign = -1
	default:
		return 0, s.errf("expected a UTC offset")
	}
	hour, err := s.digits(2)
	if err != nil {
		return 0, err
	}
	if hour > 23 {
		return 0, s.errf("offset hour %d out of range", hour)
	}
	var minute, second int
	colon := s.take(':')
	if rfc3339 && !colon {
		return 0, s.errf("expected ':' in offset")
	}
	if c := s.peek(); colon || (c >= '0' && c <= '9') {
		minute, err = s.digits(2)
		if err != nil {
			return 0, err
		}
		if minute > 59 {
			return 0, s.errf("offset minute %d out of range", minute)
		}
		if !rfc3339 {
			if c := s.peek(); s.take(':') || (!colon && c >= '0' && c <= '9') {
				second, err = s.digits(2)
				if err != nil {
					return 0, err
				}
				if second > 59 {
					return 0, s.errf("offset second %d out of range", second)
				}
			}
		}
	}
	return sign * int32(hour*secondsPerHour+minute*secondsPerMinute+second), nil
}

// ParseOffsetDateTimeCommonISO parses a date-time with a Z or numeric UTC
// offset suffix.
func ParseOffsetDateTimeCommonISO(src string) (OffsetDateTime, error) {
	return parseOffsetDateTime(src, false)
}

// ParseOffsetDateTimeRFC3339 parses an RFC 3339 timestamp, accepting the
// lowercase and space variants the RFC allows.
func ParseOffsetDateTimeRFC3339(src string) (OffsetDateTime, error) {
	return parseOffsetDateTime(src, true)
}

func parseOffsetDateTime(src string, rfc3339 bool) (OffsetDateTime, error) {
	s := &scanner{src: src}
	dt, err := s.plain(rfc3339)
	if err != nil {
		return OffsetDateTime{}, err
	}
	off, err := s.offset(rfc3339)
	if err != nil {
		return OffsetDateTime{}, err
	}
	if err := s.done(); err != nil {
		return OffsetDateTime{}, err
	}
	return dt.AssumeOffset(int(off))
}

// ParseInstantCommonISO parses a date-time with any UTC offset and resolves
// it to the moment it pins.
func ParseInstantCommonISO(src string) (Instant, error) {
	dt, err := ParseOffsetDateTimeCommonISO(src)
	if err != nil {
		return Instant{}, err
	}
	return instantOf(dt)
}

// ParseInstantRFC3339 parses an RFC 3339 timestamp to the moment it pins.
func ParseInstantRFC3339(src string) (Instant, error) {
	dt, err := ParseOffsetDateTimeRFC3339(src)
	if err != nil {
		return Instant{}, err
	}
	return instantOf(dt)
}

func instantOf(dt OffsetDateTime) (Instant, error) {
	i := dt.ToInstant()
	return makeInstant(i.sec, i.nsec)
}

// ParseZonedDateTimeCommonISO parses a date-time with an offset and a
// bracketed IANA zone id, for example
// 2023-10-29T02:30:00+01:00[Europe/Amsterdam]. The offset is validated
// against the zone's rules at that local time, so a value written under an
// outdated ruleset cannot silently pin the wrong moment.
func ParseZonedDateTimeCommonISO(src string) (ZonedDateTime, error) {
	s := &scanner{src: src}
	dt, err := s.plain(false)
	if err != nil {
		return ZonedDateTime{}, err
	}
	off, err := s.offset(false)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if err := s.expect('['); err != nil {
		return ZonedDateTime{}, err
	}
	start := s.pos
	for !s.eof() && s.peek() != ']' {
		s.pos++
	}
	zone := s.src[start:s.pos]
	if err := s.expect(']'); err != nil {
		return ZonedDateTime{}, err
	}
	if zone == "" {
		return ZonedDateTime{}, s.errf("empty zone id")
	}
	if err := s.done(); err != nil {
		return ZonedDateTime{}, err
	}

	table, err := loadTable(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	res := table.ResolveLocal(dt.localSeconds())
	if off != res.Before && off != res.After {
		return ZonedDateTime{}, fmt.Errorf(
			"%w: offset %v is not valid for %v at %v",
			ErrInvalidComponent, offsetString(off), zone, dt,
		)
	}
	return makeZoned(dt, off, zone)
}

// offsetString renders an offset the way the canonical format does.
func offsetString(off int32) string {
	return string(appendOffset(make([]byte, 0, 9), off, true))
}

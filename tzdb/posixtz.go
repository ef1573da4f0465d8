package tzdb

// POSIX TZ rule evaluation for instants past a table's final transition.
// RFC 8536 version 2+ files carry a TZ environment string in their footer
// describing how the zone behaves indefinitely; without it, a table would
// go stale at its last record. The grammar and semantics follow the tzset
// description in the POSIX base definitions, including the TZ-string
// extensions RFC 8536 §3.3.1 allows (hours up to 167, signed rule times).

// ruleKind distinguishes the three date forms a rule day can take.
type ruleKind uint8

const (
	// ruleJulian is Jn: day n in 1..365, February 29 never counted.
	ruleJulian ruleKind = iota
	// ruleDOY is n: zero-based day of year in 0..365, leap day counted.
	ruleDOY
	// ruleMonthWeekDay is Mm.w.d: day d of week w of month m, with week 5
	// meaning the last.
	ruleMonthWeekDay
)

// ruleDate is one endpoint of the DST period.
type ruleDate struct {
	kind ruleKind
	day  int
	week int
	mon  int
	time int64 // seconds into the local day, may be negative or beyond 24h
}

// posixRule is a parsed TZ string.
type posixRule struct {
	stdName string
	dstName string
	stdOff  int32
	dstOff  int32
	hasDST  bool
	start   ruleDate // wall time under the standard offset
	end     ruleDate // wall time under the DST offset
}

// offsetAt returns the offset in effect at the given instant.
func (r *posixRule) offsetAt(sec int64) int32 {
	if !r.hasDST {
		return r.stdOff
	}
	year := yearOfDay(floorDiv64(sec+int64(r.stdOff), 86400))
	startAt, endAt := r.transitions(year)
	var dst bool
	if startAt <= endAt {
		dst = startAt <= sec && sec < endAt
	} else {
		// Southern hemisphere: DST wraps the year boundary.
		dst = sec < endAt || startAt <= sec
	}
	if dst {
		return r.dstOff
	}
	return r.stdOff
}

// resolveLocal resolves a local reading against the rule by synthesizing
// the transitions of the surrounding years and running the same bracketing
// search the explicit table uses.
func (r *posixRule) resolveLocal(local int64) LocalResult {
	if !r.hasDST {
		return LocalResult{Kind: LocalUnique, Before: r.stdOff, After: r.stdOff}
	}
	year := yearOfDay(floorDiv64(local, 86400))

	var trans []int64
	var offs []int32
	for y := year - 1; y <= year+1; y++ {
		startAt, endAt := r.transitions(y)
		if startAt <= endAt {
			trans = append(trans, startAt, endAt)
			offs = append(offs, r.stdOff, r.dstOff)
		} else {
			trans = append(trans, endAt, startAt)
			offs = append(offs, r.dstOff, r.stdOff)
		}
	}
	offs = append(offs, offs[0])
	return resolveIntervals(trans, offs, local)
}

// transitions returns the instants the year's DST period starts and ends.
func (r *posixRule) transitions(year int) (startAt, endAt int64) {
	startAt = yearDayUnix(year, r.start)*86400 + r.start.time - int64(r.stdOff)
	endAt = yearDayUnix(year, r.end)*86400 + r.end.time - int64(r.dstOff)
	return startAt, endAt
}

// yearDayUnix returns the epoch day number the rule date falls on in the
// given year.
func yearDayUnix(year int, d ruleDate) int64 {
	switch d.kind {
	case ruleJulian:
		day := d.day
		if day >= 60 && leapYear(year) {
			day++
		}
		return yearStartDay(year) + int64(day-1)
	case ruleDOY:
		return yearStartDay(year) + int64(d.day)
	default: // ruleMonthWeekDay
		first := yearStartDay(year) + int64(monthStartDOY(year, d.mon))
		// Weekday of the first of the month, 0 = Sunday.
		wd := int(floorMod64(first+4, 7))
		day := 1 + (d.day-wd+7)%7 + (d.week-1)*7
		if dim := monthLen(year, d.mon); day > dim {
			day -= 7 // week 5 means the last such weekday
		}
		return first + int64(day-1)
	}
}

// parsePosixTZ parses a TZ environment string such as
// "CET-1CEST,M3.5.0,M10.5.0/3". It reports ok=false for strings it cannot
// interpret, in which case the table simply ends at its last transition.
func parsePosixTZ(s string) (*posixRule, bool) {
	var r posixRule
	var ok bool
	if r.stdName, s, ok = tzName(s); !ok {
		return nil, false
	}
	var off int64
	if off, s, ok = tzOffset(s, false); !ok {
		return nil, false
	}
	// POSIX offsets are west-positive; flip to the east-positive
	// convention everything else uses.
	r.stdOff = int32(-off)
	if len(s) == 0 {
		return &r, true
	}

	if r.dstName, s, ok = tzName(s); !ok {
		return nil, false
	}
	if len(s) > 0 && s[0] != ',' && s[0] != ';' {
		if off, s, ok = tzOffset(s, false); !ok {
			return nil, false
		}
		r.dstOff = int32(-off)
	} else {
		// DST defaults to one hour ahead of standard.
		r.dstOff = r.stdOff + 3600
	}
	r.hasDST = true

	if len(s) == 0 {
		// No rule dates: the common US defaults would apply, but a TZif
		// footer always spells the dates out. Treat as all-std.
		r.hasDST = false
		return &r, true
	}
	if s[0] != ',' && s[0] != ';' {
		return nil, false
	}
	s = s[1:]
	if r.start, s, ok = tzRule(s); !ok {
		return nil, false
	}
	if len(s) == 0 || (s[0] != ',' && s[0] != ';') {
		return nil, false
	}
	if r.end, s, ok = tzRule(s[1:]); !ok || len(s) != 0 {
		return nil, false
	}
	return &r, true
}

// tzName consumes a zone abbreviation, either alphabetic or quoted in
// angle brackets.
func tzName(s string) (name, rest string, ok bool) {
	if len(s) == 0 {
		return "", "", false
	}
	if s[0] == '<' {
		for i := 1; i < len(s); i++ {
			if s[i] == '>' {
				return s[1:i], s[i+1:], len(s[1:i]) > 0
			}
		}
		return "", "", false
	}
	var i int
	for i = 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			break
		}
	}
	if i < 3 {
		return "", "", false
	}
	return s[:i], s[i:], true
}

// tzOffset consumes [+-]hh[:mm[:ss]]. Rule times (extended=true) allow
// hours up to 167 per RFC 8536 §3.3.1; zone offsets stop at 24.
func tzOffset(s string, extended bool) (offset int64, rest string, ok bool) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	maxHours := int64(24)
	if extended {
		maxHours = 167
	}
	var hours int64
	if hours, s, ok = tzNum(s, 0, maxHours); !ok {
		return 0, "", false
	}
	offset = hours * 3600
	if len(s) > 0 && s[0] == ':' {
		var mins int64
		if mins, s, ok = tzNum(s[1:], 0, 59); !ok {
			return 0, "", false
		}
		offset += mins * 60
		if len(s) > 0 && s[0] == ':' {
			var secs int64
			if secs, s, ok = tzNum(s[1:], 0, 59); !ok {
				return 0, "", false
			}
			offset += secs
		}
	}
	if neg {
		offset = -offset
	}
	return offset, s, true
}

// tzNum consumes a decimal number in [low, high].
func tzNum(s string, low, high int64) (num int64, rest string, ok bool) {
	var i int
	for i = 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		num = num*10 + int64(c-'0')
		if num > high {
			return 0, "", false
		}
	}
	if i == 0 || num < low {
		return 0, "", false
	}
	return num, s[i:], true
}

// tzRule consumes one rule date with its optional /time suffix.
func tzRule(s string) (d ruleDate, rest string, ok bool) {
	if len(s) == 0 {
		return ruleDate{}, "", false
	}
	var n int64
	switch s[0] {
	case 'J':
		d.kind = ruleJulian
		if n, s, ok = tzNum(s[1:], 1, 365); !ok {
			return ruleDate{}, "", false
		}
		d.day = int(n)
	case 'M':
		d.kind = ruleMonthWeekDay
		if n, s, ok = tzNum(s[1:], 1, 12); !ok {
			return ruleDate{}, "", false
		}
		d.mon = int(n)
		if len(s) == 0 || s[0] != '.' {
			return ruleDate{}, "", false
		}
		if n, s, ok = tzNum(s[1:], 1, 5); !ok {
			return ruleDate{}, "", false
		}
		d.week = int(n)
		if len(s) == 0 || s[0] != '.' {
			return ruleDate{}, "", false
		}
		if n, s, ok = tzNum(s[1:], 0, 6); !ok {
			return ruleDate{}, "", false
		}
		d.day = int(n)
	default:
		d.kind = ruleDOY
		if n, s, ok = tzNum(s, 0, 365); !ok {
			return ruleDate{}, "", false
		}
		d.day = int(n)
	}

	d.time = 2 * 3600 // default transition time
	if len(s) > 0 && s[0] == '/' {
		if d.time, s, ok = tzOffset(s[1:], true); !ok {
			return ruleDate{}, "", false
		}
	}
	return d, s, true
}

// Minimal civil-calendar helpers, enough to place rule dates. The zone
// engine deliberately has no dependency on the value-type package above it.

var monthDOY = [13]int{
	0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365,
}

func leapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func monthLen(year, mon int) int {
	if mon == 2 && leapYear(year) {
		return 29
	}
	return monthDOY[mon] - monthDOY[mon-1]
}

func monthStartDOY(year, mon int) int {
	doy := monthDOY[mon-1]
	if mon > 2 && leapYear(year) {
		doy++
	}
	return doy
}

// yearStartDay returns the epoch day number of January 1 of the year.
func yearStartDay(year int) int64 {
	y := int64(year - 1)
	return y*365 + y/4 - y/100 + y/400 - 719162
}

// yearOfDay returns the calendar year containing the epoch day number.
func yearOfDay(days int64) int {
	d := days + 719162 // days since 0001-01-01

	n := d / 146097
	y := 400 * n
	d -= 146097 * n

	n = d / 36524
	n -= n >> 2
	y += 100 * n
	d -= 36524 * n

	n = d / 1461
	y += 4 * n
	d -= 1461 * n

	n = d / 365
	n -= n >> 2
	y += n

	return int(y) + 1
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

func floorMod64(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

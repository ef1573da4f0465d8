package tempus

// Calendar computations work on civil day numbers: the count of days since
// the Unix epoch, 1970-01-01, over the proleptic Gregorian calendar. The
// cycle-splitting approach follows the standard library's time package;
// supported years are confined to [1, 9999] so all intermediate values stay
// comfortably inside int64.

const (
	// MinYear and MaxYear bound the representable calendar range.
	MinYear = 1
	MaxYear = 9999

	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461

	// Days from 0001-01-01 to 1970-01-01.
	unixEpochDays = 719162

	secondsPerMinute = 60
	secondsPerHour   = 60 * 60
	secondsPerDay    = 24 * 60 * 60
	nanosPerSecond   = 1_000_000_000
)

// daysBefore[m] counts the days in a non-leap year before month m+1 begins.
var daysBefore = [13]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	365,
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInMonth returns the number of days in the given month of the given
// year.
func daysInMonth(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return daysBefore[month] - daysBefore[month-1]
}

// rataDie returns the number of days from 0001-01-01 to the given date. The
// date must already be valid.
func rataDie(year, month, day int) int {
	y := year - 1
	d := y*365 + y/4 - y/100 + y/400
	d += daysBefore[month-1]
	if month > 2 && isLeap(year) {
		d++
	}
	return d + day - 1
}

// civilFromDays splits a rata-die day count back into year, month, and day.
// The count must lie within the supported year range.
func civilFromDays(abs int) (year, month, day int) {
	d := abs

	// Account for 400-year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles. The last cycle has one extra leap year, so
	// on its final day the quotient is 4 instead of 3; subtract n>>2 to
	// compensate.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off single years; same adjustment as the 100-year case.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year = y + 1
	day = d

	if isLeap(year) {
		switch {
		case day > 31+29-1:
			// After leap day; pretend it wasn't there.
			day--
		case day == 31+29-1:
			return year, 2, 29
		}
	}

	// Estimate the month assuming 31-day months; the estimate is low by at
	// most one.
	month = day / 31
	end := daysBefore[month+1]
	var begin int
	if day >= end {
		month++
		begin = end
	} else {
		begin = daysBefore[month]
	}

	return year, month + 1, day - begin + 1
}

// floorDiv divides a by b rounding toward negative infinity. b must be
// positive.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// floorMod returns a mod b with the sign of b. b must be positive.
func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

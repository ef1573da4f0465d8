package tempus

import (
	"fmt"
)

// Date represents a calendar date in the proleptic Gregorian calendar, with
// years between 1 and 9999. The zero value is the invalid date 0000-00-00;
// obtain valid dates from [NewDate], [DateFromDays], or a parser.
type Date struct {
	year  int16
	month int8
	day   int8
}

// NewDate returns the date with the given year, month, and day, or
// ErrInvalidComponent if any field is out of range for the calendar.
func NewDate(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf(
			"%w: year %d out of range [1, 9999]", ErrInvalidComponent, year,
		)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf(
			"%w: month %d out of range [1, 12]", ErrInvalidComponent, month,
		)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, fmt.Errorf(
			"%w: day %d out of range [1, %d] for %04d-%02d",
			ErrInvalidComponent, day, daysInMonth(year, month), year, month,
		)
	}
	return Date{int16(year), int8(month), int8(day)}, nil
}

// DateFromDays returns the date the given number of days after 1970-01-01
// (negative counts reach back before the epoch), or ErrInvalidComponent if
// the result falls outside years 1 through 9999.
func DateFromDays(days int) (Date, error) {
	// Rata-die day number of 9999-12-31.
	const maxAbs = 3652058
	abs := days + unixEpochDays
	if abs < 0 || abs > maxAbs {
		return Date{}, fmt.Errorf(
			"%w: day number %d out of calendar range", ErrInvalidComponent, days,
		)
	}
	y, m, d := civilFromDays(abs)
	return Date{int16(y), int8(m), int8(d)}, nil
}

// Year returns the year of d.
func (d Date) Year() int { return int(d.year) }

// Month returns the month of d, 1 through 12.
func (d Date) Month() int { return int(d.month) }

// Day returns the day of the month of d.
func (d Date) Day() int { return int(d.day) }

// DaysSinceEpoch returns the number of days from 1970-01-01 to d.
func (d Date) DaysSinceEpoch() int {
	return rataDie(int(d.year), int(d.month), int(d.day)) - unixEpochDays
}

// DayOfYear returns the ordinal day of the year, 1 through 366.
func (d Date) DayOfYear() int {
	doy := daysBefore[d.month-1] + int(d.day)
	if d.month > 2 && isLeap(int(d.year)) {
		doy++
	}
	return doy
}

// Weekday returns the ISO day of the week of d: 1 for Monday through 7 for
// Sunday.
func (d Date) Weekday() int {
	// 0001-01-01 was a Monday.
	return int(floorMod(int64(rataDie(int(d.year), int(d.month), int(d.day))), 7)) + 1
}

// YearMonth returns the year-month projection of d.
func (d Date) YearMonth() YearMonth { return YearMonth{d.year, d.month} }

// MonthDay returns the month-day projection of d.
func (d Date) MonthDay() MonthDay { return MonthDay{d.month, d.day} }

// At combines d with a clock reading into a [PlainDateTime].
func (d Date) At(t Time) PlainDateTime { return PlainDateTime{d, t} }

// Compare orders dates chronologically, returning -1, 0, or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(int(d.year), int(o.year))
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(int(d.day), int(o.day))
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AddDelta returns d shifted by the given calendar delta. Months are applied
// first, clamping the day to the end of the target month, then days; this
// order makes date arithmetic deliberately non-commutative (see [DateDelta]).
func (d Date) AddDelta(delta DateDelta) (Date, error) {
	y, m, day := int(d.year), int(d.month), int(d.day)

	if delta.months != 0 {
		total := y*12 + (m - 1) + int(delta.months)
		y, m = total/12, total%12+1
		if m < 1 { // total was negative
			y, m = y-1, m+12
		}
		if dim := daysInMonth(y, m); day > dim {
			day = dim
		}
		if y < MinYear || y > MaxYear {
			return Date{}, fmt.Errorf(
				"%w: shifted date out of calendar range", ErrInvalidComponent,
			)
		}
	}

	if delta.days == 0 {
		return Date{int16(y), int8(m), int8(day)}, nil
	}
	return DateFromDays(rataDie(y, m, day) - unixEpochDays + int(delta.days))
}

// AddYears is shorthand for AddDelta(Years(n)).
func (d Date) AddYears(n int) (Date, error) { return d.AddDelta(Years(n)) }

// AddMonths is shorthand for AddDelta(Months(n)).
func (d Date) AddMonths(n int) (Date, error) { return d.AddDelta(Months(n)) }

// AddDays is shorthand for AddDelta(Days(n)).
func (d Date) AddDays(n int) (Date, error) { return d.AddDelta(Days(n)) }

// Sub returns the number of whole days from o to d.
func (d Date) Sub(o Date) int {
	return d.DaysSinceEpoch() - o.DaysSinceEpoch()
}

// FormatCommonISO formats d in the canonical ISO 8601 extended form,
// YYYY-MM-DD.
func (d Date) FormatCommonISO() string {
	return string(d.appendISO(make([]byte, 0, len("2006-01-02"))))
}

func (d Date) appendISO(b []byte) []byte {
	b = appendPadded(b, int(d.year), 4)
	b = append(b, '-')
	b = appendPadded(b, int(d.month), 2)
	b = append(b, '-')
	return appendPadded(b, int(d.day), 2)
}

// String returns the canonical ISO 8601 form of d.
func (d Date) String() string { return d.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler using the canonical ISO 8601
// form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must be a
// canonical ISO 8601 date.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDateCommonISO(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d Date) MarshalBinary() ([]byte, error) {
	return appendVarints(int64(d.year), int64(d.month), int64(d.day)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Date) UnmarshalBinary(b []byte) error {
	var y, m, day int64
	if err := consumeVarints("date", b, &y, &m, &day); err != nil {
		return err
	}
	v, err := NewDate(int(y), int(m), int(day))
	if err == nil {
		*d = v
	}
	return err
}

// appendPadded appends v zero-padded to the given width.
func appendPadded(b []byte, v, width int) []byte {
	var buf [9]byte
	i := len(buf)
	for v > 0 || i == len(buf) {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	for len(buf)-i < width {
		i--
		buf[i] = '0'
	}
	return append(b, buf[i:]...)
}

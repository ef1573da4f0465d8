package tempus

import (
	"fmt"
)

// YearMonth is the year-and-month projection of a date, used for calendar
// navigation without committing to a day.
type YearMonth struct {
	year  int16
	month int8
}

// NewYearMonth returns the given year-month, or ErrInvalidComponent if a
// field is out of range.
func NewYearMonth(year, month int) (YearMonth, error) {
	if year < MinYear || year > MaxYear {
		return YearMonth{}, fmt.Errorf(
			"%w: year %d out of range [1, 9999]", ErrInvalidComponent, year,
		)
	}
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf(
			"%w: month %d out of range [1, 12]", ErrInvalidComponent, month,
		)
	}
	return YearMonth{int16(year), int8(month)}, nil
}

// Year returns the year of ym.
func (ym YearMonth) Year() int { return int(ym.year) }

// Month returns the month of ym, 1 through 12.
func (ym YearMonth) Month() int { return int(ym.month) }

// DaysInMonth returns the number of days in this month.
func (ym YearMonth) DaysInMonth() int {
	return daysInMonth(int(ym.year), int(ym.month))
}

// OnDay returns the date on the given day of this month.
func (ym YearMonth) OnDay(day int) (Date, error) {
	return NewDate(int(ym.year), int(ym.month), day)
}

// Compare orders year-months chronologically, returning -1, 0, or +1.
func (ym YearMonth) Compare(o YearMonth) int {
	if ym.year != o.year {
		return cmpInt(int(ym.year), int(o.year))
	}
	return cmpInt(int(ym.month), int(o.month))
}

// AddMonths returns ym shifted by the given number of months.
func (ym YearMonth) AddMonths(n int) (YearMonth, error) {
	total := int(ym.year)*12 + int(ym.month) - 1 + n
	y, m := total/12, total%12+1
	if m < 1 {
		y, m = y-1, m+12
	}
	return NewYearMonth(y, m)
}

// FormatCommonISO formats ym as YYYY-MM.
func (ym YearMonth) FormatCommonISO() string {
	b := appendPadded(make([]byte, 0, len("2006-01")), int(ym.year), 4)
	b = append(b, '-')
	return string(appendPadded(b, int(ym.month), 2))
}

// String returns the canonical ISO 8601 form of ym.
func (ym YearMonth) String() string { return ym.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ym *YearMonth) UnmarshalText(b []byte) error {
	v, err := ParseYearMonthCommonISO(string(b))
	if err == nil {
		*ym = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (ym YearMonth) MarshalBinary() ([]byte, error) {
	return appendVarints(int64(ym.year), int64(ym.month)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (ym *YearMonth) UnmarshalBinary(b []byte) error {
	var y, m int64
	if err := consumeVarints("year-month", b, &y, &m); err != nil {
		return err
	}
	v, err := NewYearMonth(int(y), int(m))
	if err == nil {
		*ym = v
	}
	return err
}

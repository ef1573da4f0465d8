package tempus

import (
	"fmt"
)

// MonthDay is the month-and-day projection of a date, used for recurring
// calendar points such as birthdays. February 29 is a valid MonthDay; use
// [MonthDay.ExistsInYear] to check it against a concrete year.
type MonthDay struct {
	month int8
	day   int8
}

// NewMonthDay returns the given month-day, or ErrInvalidComponent if the day
// is never valid for the month in any year.
func NewMonthDay(month, day int) (MonthDay, error) {
	if month < 1 || month > 12 {
		return MonthDay{}, fmt.Errorf(
			"%w: month %d out of range [1, 12]", ErrInvalidComponent, month,
		)
	}
	maxDay := daysBefore[month] - daysBefore[month-1]
	if month == 2 {
		maxDay = 29
	}
	if day < 1 || day > maxDay {
		return MonthDay{}, fmt.Errorf(
			"%w: day %d out of range [1, %d] for month %d",
			ErrInvalidComponent, day, maxDay, month,
		)
	}
	return MonthDay{int8(month), int8(day)}, nil
}

// Month returns the month of md, 1 through 12.
func (md MonthDay) Month() int { return int(md.month) }

// Day returns the day of the month of md.
func (md MonthDay) Day() int { return int(md.day) }

// ExistsInYear reports whether this month-day occurs in the given year.
// Only February 29 is year-dependent.
func (md MonthDay) ExistsInYear(year int) bool {
	return int(md.day) <= daysInMonth(year, int(md.month))
}

// InYear returns the date of this month-day in the given year, or
// ErrInvalidComponent when it does not occur that year.
func (md MonthDay) InYear(year int) (Date, error) {
	return NewDate(year, int(md.month), int(md.day))
}

// Compare orders month-days by calendar position, returning -1, 0, or +1.
func (md MonthDay) Compare(o MonthDay) int {
	if md.month != o.month {
		return cmpInt(int(md.month), int(o.month))
	}
	return cmpInt(int(md.day), int(o.day))
}

// FormatCommonISO formats md in the ISO 8601 form --MM-DD.
func (md MonthDay) FormatCommonISO() string {
	b := append(make([]byte, 0, len("--01-02")), '-', '-')
	b = appendPadded(b, int(md.month), 2)
	b = append(b, '-')
	return string(appendPadded(b, int(md.day), 2))
}

// String returns the canonical ISO 8601 form of md.
func (md MonthDay) String() string { return md.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (md MonthDay) MarshalText() ([]byte, error) {
	return []byte(md.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (md *MonthDay) UnmarshalText(b []byte) error {
	v, err := ParseMonthDayCommonISO(string(b))
	if err == nil {
		*md = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (md MonthDay) MarshalBinary() ([]byte, error) {
	return appendVarints(int64(md.month), int64(md.day)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (md *MonthDay) UnmarshalBinary(b []byte) error {
	var m, d int64
	if err := consumeVarints("month-day", b, &m, &d); err != nil {
		return err
	}
	v, err := NewMonthDay(int(m), int(d))
	if err == nil {
		*md = v
	}
	return err
}

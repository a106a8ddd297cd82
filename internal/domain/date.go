package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar value kept as plain year/month/day integers. Validity is
// checked by IsValid rather than enforced at construction, so a Date parsed
// from bad user input exists long enough to be reported on.
type Date struct {
	Year  int
	Month int
	Day   int
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

const (
	quadrennial      = 4
	centennial       = 100
	quatercentennial = 400

	minYear = 1900
)

// ParseDate parses the textual "M/D/Y" form. It accepts any integer fields;
// callers decide whether the resulting date must also be valid.
func ParseDate(text string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: date %q must have month/day/year fields", ErrFormat, text)
	}

	fields := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Date{}, fmt.Errorf("%w: date %q has a non-numeric field", ErrFormat, text)
		}
		fields[i] = n
	}

	return Date{Month: fields[0], Day: fields[1], Year: fields[2]}, nil
}

// DateOf converts a wall-clock time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func isLeapYear(year int) bool {
	if year%quadrennial != 0 {
		return false
	}
	if year%centennial == 0 {
		return year%quatercentennial == 0
	}
	return true
}

// DaysIn returns the number of days in the given month of the given year.
func DaysIn(month, year int) int {
	days := daysInMonth[month-1]
	if month == 2 && isLeapYear(year) {
		days = 29
	}
	return days
}

// IsValid reports whether the date names a real calendar day on or after 1900.
func (d Date) IsValid() bool {
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > DaysIn(d.Month, d.Year) {
		return false
	}
	return d.Year >= minYear
}

// Compare orders dates lexicographically by year, month, day.
func (d Date) Compare(other Date) int {
	if d.Year != other.Year {
		return sign(d.Year - other.Year)
	}
	if d.Month != other.Month {
		return sign(d.Month - other.Month)
	}
	return sign(d.Day - other.Day)
}

// Equal reports exact field equality.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// String renders the canonical "M/D/Y" form without zero padding.
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

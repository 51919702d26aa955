package fraud

import (
	"errors"
	"strings"
)

// ErrInvalidDate is returned when a date string does not hold three integers.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate reads three integers separated by single non-digit characters,
// e.g. "2024-03-09". Leading blanks are skipped and trailing text is ignored.
func ParseDate(s string) (year, month, day int, err error) {
	s = strings.TrimLeft(s, " \t")
	var parts [3]int
	pos := 0
	for i := range parts {
		if i > 0 {
			if pos >= len(s) || isDigit(s[pos]) {
				return 0, 0, 0, ErrInvalidDate
			}
			pos++
		}
		n, next, ok := scanInt(s, pos)
		if !ok {
			return 0, 0, 0, ErrInvalidDate
		}
		parts[i] = n
		pos = next
	}
	return parts[0], parts[1], parts[2], nil
}

// scanInt parses an optionally signed decimal integer starting at pos.
func scanInt(s string, pos int) (int, int, bool) {
	neg := false
	if pos < len(s) && (s[pos] == '-' || s[pos] == '+') {
		neg = s[pos] == '-'
		pos++
	}
	start := pos
	n := 0
	for pos < len(s) && isDigit(s[pos]) {
		n = n*10 + int(s[pos]-'0')
		pos++
	}
	if pos == start {
		return 0, pos, false
	}
	if neg {
		n = -n
	}
	return n, pos, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// DayNumber returns the Julian day number of a proleptic Gregorian date.
func DayNumber(y, m, d int) int {
	a := floorDiv(14-m, 12)
	yy := y + 4800 - a
	mm := m + 12*a - 3
	return d + floorDiv(153*mm+2, 5) + 365*yy + floorDiv(yy, 4) - floorDiv(yy, 100) + floorDiv(yy, 400) - 32045
}

// DayDistance is the absolute number of days between two dates.
// It is 0 when either date cannot be parsed.
func DayDistance(a, b string) int {
	ya, ma, da, err := ParseDate(a)
	if err != nil {
		return 0
	}
	yb, mb, db, err := ParseDate(b)
	if err != nil {
		return 0
	}
	diff := DayNumber(ya, ma, da) - DayNumber(yb, mb, db)
	if diff < 0 {
		return -diff
	}
	return diff
}

// WeekdayIndex returns 0 for Sunday through 6 for Saturday.
// Unparsable dates are treated as Monday.
func WeekdayIndex(date string) int {
	y, m, d, err := ParseDate(date)
	if err != nil {
		return 1
	}
	// Zeller's congruence, h = 0 is Saturday.
	if m < 3 {
		m += 12
		y--
	}
	k := floorMod(y, 100)
	j := floorDiv(y, 100)
	h := floorMod(d+floorDiv(13*(m+1), 5)+k+k/4+floorDiv(j, 4)+5*j, 7)
	return (h + 6) % 7
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(date string) bool {
	w := WeekdayIndex(date)
	return w == 0 || w == 6
}

// MonthKey is the literal YYYY-MM prefix of a date string.
func MonthKey(date string) string {
	if len(date) > 7 {
		return date[:7]
	}
	return date
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

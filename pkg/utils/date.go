package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"irregops-service/pkg/jalali"
)

// datePattern recognizes year-first triples with '/', '-' or '.'
// separators, after digit normalization.
var datePattern = regexp.MustCompile(`(\d{3,4})\s*[-/.]\s*(\d{1,2})\s*[-/.]\s*(\d{1,2})`)

// NormalizeDate resolves a free-form date string to a canonical Gregorian
// ISO date. Years in [1300, 1499] are treated as Jalali and converted;
// years in (1900, 3000) are taken as already Gregorian and passed through
// unchanged. Any other year cannot be attributed to a calendar reliably,
// so the result is absent (empty string), as it is for invalid triples.
func NormalizeDate(s string) string {
	m := datePattern.FindStringSubmatch(NormalizeDigits(s))
	if m == nil {
		return ""
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	switch {
	case year >= 1300 && year <= 1499:
		gy, gm, gd, err := jalali.ToGregorian(year, month, day)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%04d-%02d-%02d", gy, gm, gd)

	case year > 1900 && year < 3000:
		if !isValidGregorian(year, month, day) {
			return ""
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)

	default:
		return ""
	}
}

// isValidGregorian rejects impossible triples like February 30.
// time.Date normalizes overflowing components instead of failing, so a
// round-trip that changes any component means the input day does not
// exist.
func isValidGregorian(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && d.Month() == time.Month(month) && d.Day() == day
}

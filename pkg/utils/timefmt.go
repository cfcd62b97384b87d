package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

// timePattern accepts ':', '.' or the Arabic decimal separator (U+066B)
// between hour and minute. Digits are expected to be normalized first.
var timePattern = regexp.MustCompile(`(\d{1,2})\s*[:.\x{066B}]\s*(\d{1,2})`)

// NormalizeTime converts a free-form time string to zero-padded 24-hour
// "HH:MM". Out-of-range components are clamped rather than rejected,
// since upstream completions occasionally overshoot bounds. An input
// with no recognizable time yields the empty string.
func NormalizeTime(s string) string {
	m := timePattern.FindStringSubmatch(NormalizeDigits(s))
	if m == nil {
		return ""
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	if hour > 23 {
		hour = 23
	}
	if minute > 59 {
		minute = 59
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}

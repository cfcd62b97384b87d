package utils

import "strings"

// NormalizeDigits replaces Arabic-Indic (U+0660-0669) and Extended
// Arabic-Indic / Persian (U+06F0-06F9) digits with their ASCII
// equivalents. Every other rune passes through unchanged, so the
// function is total and idempotent.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x0660 && r <= 0x0669:
			return '0' + (r - 0x0660)
		case r >= 0x06F0 && r <= 0x06F9:
			return '0' + (r - 0x06F0)
		default:
			return r
		}
	}, s)
}

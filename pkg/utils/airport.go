package utils

import (
	"regexp"
	"strings"
)

var (
	threeLetters      = regexp.MustCompile(`^[A-Z]{3}$`)
	parenthesizedCode = regexp.MustCompile(`\(([A-Za-z]{3})\)`)
	standaloneCode    = regexp.MustCompile(`\b([A-Z]{3})\b`)
)

// ResolveAirportCode extracts a 3-letter IATA code from free text naming
// an origin or destination. Resolution order: the whole input when it is
// already a bare code, a code in parentheses ("Tehran (IKA)"), any
// standalone 3-letter uppercase token, and finally the cleaned input
// verbatim. It never fails; the result may not be a valid code.
func ResolveAirportCode(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}

	if threeLetters.MatchString(strings.ToUpper(cleaned)) {
		return strings.ToUpper(cleaned)
	}

	if m := parenthesizedCode.FindStringSubmatch(cleaned); m != nil {
		return strings.ToUpper(m[1])
	}

	if m := standaloneCode.FindStringSubmatch(cleaned); m != nil {
		return m[1]
	}

	return cleaned
}

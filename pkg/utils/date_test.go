package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "jalali slash", input: "1404/07/26", expected: "2025-10-18"},
		{name: "jalali dash", input: "1403-1-1", expected: "2024-03-20"},
		{name: "jalali persian digits", input: "۱۴۰۴/۰۷/۲۶", expected: "2025-10-18"},
		{name: "jalali leap day", input: "1403/12/30", expected: "2025-03-20"},
		{name: "jalali range lower edge", input: "1300/1/1", expected: "1921-03-21"},
		{name: "jalali range upper edge", input: "1499/12/29", expected: "2121-03-20"},
		{name: "gregorian passes through", input: "2025/01/30", expected: "2025-01-30"},
		{name: "gregorian dash", input: "2024-12-5", expected: "2024-12-05"},
		{name: "embedded in prose", input: "on 1404/07/26 evening", expected: "2025-10-18"},
		{name: "invalid jalali day", input: "1404/12/30", expected: ""},
		{name: "ambiguous year", input: "1750/05/05", expected: ""},
		{name: "year too small", input: "999/1/1", expected: ""},
		{name: "gregorian bad month", input: "2025/13/01", expected: ""},
		{name: "gregorian february overflow", input: "2025/02/30", expected: ""},
		{name: "gregorian short month overflow", input: "2025/04/31", expected: ""},
		{name: "gregorian leap day kept", input: "2024/02/29", expected: "2024-02-29"},
		{name: "gregorian leap day rejected in common year", input: "2025/02/29", expected: ""},
		{name: "no date", input: "tomorrow", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDate(tt.input))
		})
	}
}

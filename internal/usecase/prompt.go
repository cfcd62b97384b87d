package usecase

import (
	"fmt"
	"strings"

	"irregops-service/internal/domain/entity"
)

// BuildExtractionPrompt produces the instruction prompt for the primary
// extraction completion. The schema keys deliberately match the alias
// tables' first entries so well-behaved completions resolve on the first
// alias.
func BuildExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are an airline operations assistant. The text below is a flight disruption notice. It may be written in Persian, Arabic or English, and dates may use the Jalali (Shamsi) or Gregorian calendar and non-ASCII digits.

Extract the disruption details and answer with ONLY a JSON object, no markdown fences, no commentary, using exactly this schema:
{
  "airline": "<operating airline name, or empty>",
  "flightNumber": "<disrupted flight number, or empty>",
  "date": "<flight date exactly as written in the notice>",
  "origin": "<departure airport or city as written>",
  "destination": "<arrival airport or city as written>",
  "type": "<one of: %s, or empty>",
  "oldTime": "<original departure time, or empty>",
  "newTime": "<revised departure time, or empty>",
  "newFlightNumber": "<replacement flight number, or empty>",
  "newAirline": "<replacement airline, or empty>"
}

Rules:
- Copy dates and times exactly as they appear; do not convert calendars.
- Use empty strings for anything the notice does not state.
- Never invent values.

Notice:
%s`, strings.Join(entity.DisruptionTypes, ", "), text)
}

// BuildTranslationPrompt produces the prompt for the independent
// translation completion.
func BuildTranslationPrompt(text string) string {
	return fmt.Sprintf(`Translate the following flight disruption notice into clear, natural English. Keep flight numbers, airport codes and times unchanged. Answer with only the translation, nothing else.

Notice:
%s`, text)
}

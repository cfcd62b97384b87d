// internal/domain/entity/disruption.go
package entity

import (
	"time"
)

// Disruption types, a closed enumeration. The classifier returns one of
// these or the empty string when nothing can be inferred.
const (
	TypeDelay             = "delay"
	TypeAdvance           = "advance"
	TypeCancel            = "cancel"
	TypeNumberChange      = "number_change"
	TypeNumberTimeDelay   = "number_time_delay"
	TypeNumberTimeAdvance = "number_time_advance"
)

// DisruptionTypes lists every valid disruption type.
var DisruptionTypes = []string{
	TypeDelay,
	TypeAdvance,
	TypeCancel,
	TypeNumberChange,
	TypeNumberTimeDelay,
	TypeNumberTimeAdvance,
}

// IsDisruptionType reports whether t is a member of the enumeration.
func IsDisruptionType(t string) bool {
	for _, known := range DisruptionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DisruptionRecord is the structured, calendar-correct result of one
// pipeline invocation. It is assembled once and never mutated afterwards.
type DisruptionRecord struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	Airline         string    `json:"airline" bson:"airline"`
	FlightNumber    string    `json:"flightNumber" bson:"flightNumber"`
	Date            string    `json:"date,omitempty" bson:"date,omitempty"`
	Origin          string    `json:"origin" bson:"origin"`
	Destination     string    `json:"destination" bson:"destination"`
	Type            string    `json:"type" bson:"type"`
	OldTime         string    `json:"oldTime,omitempty" bson:"oldTime,omitempty"`
	NewTime         string    `json:"newTime,omitempty" bson:"newTime,omitempty"`
	NewFlightNumber string    `json:"newFlightNumber,omitempty" bson:"newFlightNumber,omitempty"`
	NewAirline      string    `json:"newAirline,omitempty" bson:"newAirline,omitempty"`
	TranslatedText  string    `json:"translatedText,omitempty" bson:"translatedText,omitempty"`
	SourceText      string    `json:"-" bson:"sourceText"`
	Model           string    `json:"-" bson:"model,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// Request modes accepted by the pipeline.
const (
	ModeExtract          = "extract"
	ModeExtractTranslate = "extract_translate"
	ModeTranslate        = "translate"
)

// ExtractRequest carries one notice into the pipeline. APIKey and
// PreferredModel are optional; empty values fall back to the service
// configuration, never to a hidden process-wide lookup.
type ExtractRequest struct {
	Text           string `json:"text"`
	APIKey         string `json:"apiKey,omitempty"`
	PreferredModel string `json:"model,omitempty"`
	Mode           string `json:"mode,omitempty"`
}

// ExtractResult is the pipeline output: the assembled record plus the raw
// completion text(s) for diagnostics.
type ExtractResult struct {
	Record         *DisruptionRecord `json:"record"`
	RawCompletion  string            `json:"rawCompletion,omitempty"`
	RawTranslation string            `json:"rawTranslation,omitempty"`
}

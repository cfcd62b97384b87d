package utils

import (
	"strings"

	"irregops-service/internal/domain/entity"
)

// ClassifyDisruptionType returns the disruption type for a record. An
// explicit type that belongs to the enumeration wins; otherwise the type
// is inferred from which replacement fields are present. When neither
// a new flight number nor a new time exists, the type stays empty.
func ClassifyDisruptionType(explicit, newFlightNumber, newTime string) string {
	explicit = strings.ToLower(strings.TrimSpace(explicit))
	if entity.IsDisruptionType(explicit) {
		return explicit
	}

	hasNumber := strings.TrimSpace(newFlightNumber) != ""
	hasTime := strings.TrimSpace(newTime) != ""

	switch {
	case hasNumber && hasTime:
		return entity.TypeNumberTimeDelay
	case hasNumber:
		return entity.TypeNumberChange
	case hasTime:
		return entity.TypeDelay
	default:
		return ""
	}
}

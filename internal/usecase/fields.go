package usecase

import "irregops-service/pkg/utils"

// fieldAliases enumerates, per output field, the JSON keys a completion
// may use for it, in priority order. Keeping the table explicit replaces
// the older chain-of-fallbacks lookups and makes the resolution order
// reviewable in one place.
var fieldAliases = map[string][]string{
	"airline":         {"airline", "carrier", "airlineName", "airline_name"},
	"flightNumber":    {"flightNumber", "flight_number", "flight_no", "flightNo", "flight"},
	"date":            {"date", "flightDate", "flight_date"},
	"origin":          {"origin", "from", "departure", "departureAirport"},
	"destination":     {"destination", "to", "arrival", "arrivalAirport"},
	"type":            {"type", "disruptionType", "changeType"},
	"oldTime":         {"oldTime", "old_time", "previousTime", "time"},
	"newTime":         {"newTime", "new_time", "updatedTime"},
	"newFlightNumber": {"newFlightNumber", "new_flight_number", "newFlightNo", "newFlight"},
	"newAirline":      {"newAirline", "new_airline", "newCarrier"},
}

// fieldValue resolves one output field from an extracted object through
// its alias list. The first alias carrying a non-empty value wins.
func fieldValue(obj map[string]interface{}, field string) string {
	for _, alias := range fieldAliases[field] {
		if v := utils.StringField(obj, alias); v != "" {
			return v
		}
	}
	return ""
}

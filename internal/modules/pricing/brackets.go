// README: Passenger-bracket resolution against a rate bucket.
package pricing

import (
	"strconv"
	"strings"
)

// maxDefaultVehiclePassengers is the capacity of the base 7-seat vehicle;
// distance rules only apply at or below it.
const maxDefaultVehiclePassengers = 6

// bracketCandidates maps a passenger count to the rate keys to try, in
// priority order. A non-positive count has no candidates.
func bracketCandidates(passengers int) []string {
	switch {
	case passengers <= 0:
		return nil
	case passengers >= 12:
		return []string{"12-14", "14"}
	case passengers >= 8:
		return []string{"8-11", "11"}
	case passengers == 7:
		return []string{"7v", "7"}
	case passengers == 6:
		return []string{"6", "6v"}
	default:
		return []string{strconv.Itoa(passengers)}
	}
}

// usesDefaultVehicle reports whether the trip fits the base 7-seat vehicle.
func usesDefaultVehicle(passengers int) bool {
	return passengers <= maxDefaultVehiclePassengers
}

// resolveRateKey picks the rate key for a request. An explicit preferred key
// wins whenever it exists in the rates. A van preference promotes the first
// candidate carrying a van marker. When no candidate exists in the rates the
// first authored key is used; see DESIGN.md for why that leniency is kept.
func resolveRateKey(rates *VehicleRates, passengers int, preferredKey, preferredVehicle string) (string, bool) {
	if rates.Len() == 0 {
		return "", false
	}
	if preferredKey != "" {
		if _, ok := rates.Get(preferredKey); ok {
			return preferredKey, true
		}
	}
	candidates := bracketCandidates(passengers)
	if strings.EqualFold(preferredVehicle, "van") {
		for _, key := range candidates {
			if !strings.ContainsAny(key, "vV") {
				continue
			}
			if _, ok := rates.Get(key); ok {
				return key, true
			}
		}
	}
	for _, key := range candidates {
		if _, ok := rates.Get(key); ok {
			return key, true
		}
	}
	return rates.Keys()[0], true
}

// README: Quote document and estimate result shapes.
package quote

import (
	"time"

	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

// Estimate sources, cheapest-information first.
const (
	SourceMatrix       = "matrix"
	SourceDistanceRule = "distance_rule"
	SourceGeneric      = "generic"
	SourceNone         = "none"
)

// Estimate is a quick, non-binding price. BaseRate nil with SourceNone means
// no price could be produced at all.
type Estimate struct {
	BaseRate          *float64
	Source            string
	Distance          *types.Distance
	Breakdown         *pricing.Breakdown
	AvailableVehicles []string
}

// Quote is a persisted offer with an expiry, attached to a booking when the
// customer proceeds.
type Quote struct {
	ID                  string             `firestore:"id"`
	Direction           string             `firestore:"direction"`
	Origin              string             `firestore:"origin"`
	Destination         string             `firestore:"destination"`
	Passengers          int                `firestore:"passengers"`
	BaseRate            *float64           `firestore:"baseRate"`
	VehicleKey          string             `firestore:"vehicleKey"`
	AvailableVehicles   []string           `firestore:"availableVehicles"`
	DistanceRuleApplied bool               `firestore:"distanceRuleApplied"`
	Breakdown           *pricing.Breakdown `firestore:"breakdown,omitempty"`
	Currency            string             `firestore:"currency"`
	CreatedAt           time.Time          `firestore:"createdAt"`
	ExpiresAt           time.Time          `firestore:"expiresAt"`
}

// README: Rate matrix types, pricing request/result shapes, and the distance-provider port.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"

	"airporter/internal/types"
)

// Direction is the trip orientation. toAirport and fromAirport are the two
// standard directions; the authored matrix may carry additional custom ones.
type Direction string

const (
	DirectionToAirport   Direction = "toAirport"
	DirectionFromAirport Direction = "fromAirport"
)

// DistanceRuleKey is the reserved slot inside a vehicle-rate bucket that holds
// the bucket's distance rule. It is never a passenger bracket.
const DistanceRuleKey = "distanceRule"

// RuleTarget is the fixed geographic anchor a distance rule measures against,
// typically an airport terminal.
type RuleTarget struct {
	Label string   `json:"label"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
}

// DistanceRule is a formula-based fare: a base fare covering BaseDistanceKm,
// a per-km overage rate, and a fee per passenger beyond the first.
type DistanceRule struct {
	BaseFare               float64    `json:"baseFare"`
	BaseDistanceKm         float64    `json:"baseDistanceKm"`
	PerKmRate              float64    `json:"perKmRate"`
	AdditionalPassengerFee float64    `json:"additionalPassengerFee"`
	Target                 RuleTarget `json:"target"`
}

func (r *DistanceRule) clone() *DistanceRule {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Target.Lat != nil {
		lat := *r.Target.Lat
		cp.Target.Lat = &lat
	}
	if r.Target.Lng != nil {
		lng := *r.Target.Lng
		cp.Target.Lng = &lng
	}
	return &cp
}

// RateEntry is either a flat fare in currency major units or a distance rule.
type RateEntry struct {
	Flat float64
	Rule *DistanceRule
}

func FlatRate(amount float64) RateEntry     { return RateEntry{Flat: amount} }
func RuleRate(rule *DistanceRule) RateEntry { return RateEntry{Rule: rule} }
func (e RateEntry) IsRule() bool            { return e.Rule != nil }

// UnmarshalJSON discriminates the authored value shape once at load time:
// a JSON number is a flat fare, a JSON object is a distance rule.
func (e *RateEntry) UnmarshalJSON(data []byte) error {
	var flat float64
	if err := json.Unmarshal(data, &flat); err == nil {
		*e = FlatRate(flat)
		return nil
	}
	var rule DistanceRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("rate entry is neither a number nor a distance rule: %w", err)
	}
	*e = RuleRate(&rule)
	return nil
}

// Request describes one fare calculation. Addresses and coordinates are only
// consulted when a distance rule applies.
type Request struct {
	Direction          Direction
	Origin             string
	Destination        string
	Passengers         int
	PreferredVehicle   string // "standard" or "van"
	PreferredRateKey   string // forces a specific bracket when present in the rates
	OriginAddress      string
	DestinationAddress string
	OriginLatLng       *types.Point
	DestinationLatLng  *types.Point
}

// Breakdown itemizes a distance-rule fare. Every component is already
// rounded up to the nearest nickel.
type Breakdown struct {
	BaseFare                  float64
	AdditionalPassengerCharge float64
	DistanceCharge            float64
	ExtraKilometerCharge      float64
	Total                     float64
}

// Result is the outcome of a fare calculation. BaseRate is nil exactly when
// no applicable rate or rule was found; callers must treat that as "no price
// available", never as zero.
type Result struct {
	BaseRate            *float64
	VehicleKey          *string
	AvailableVehicles   []string
	DistanceRuleApplied bool
	Distance            *types.Distance
	Breakdown           *Breakdown
}

// DistanceProvider measures driving distance between two waypoints. The
// production implementation is maps.RouteService.
type DistanceProvider interface {
	DrivingDistance(ctx context.Context, origin, destination types.Waypoint) (types.Distance, error)
}

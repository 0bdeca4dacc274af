// README: Pricing orchestrator; matrix lookup, bracket resolution, and distance-rule fares.
package pricing

import (
	"context"
	"log"
	"math"
	"strings"

	"airporter/internal/types"
)

// testRouteLabel is a reserved origin/destination label used by smoke checks.
// When both trip labels normalize to it the matrix is bypassed entirely and
// the fixed testRouteRate is returned.
const (
	testRouteLabel = "test"
	testRouteRate  = 1.0
)

type Service struct {
	matrix   Matrix
	distance DistanceProvider
}

// NewService wires the pricing engine. The matrix must already be the derived
// bidirectional form (BuildBidirectional) and is treated as immutable.
func NewService(matrix Matrix, distance DistanceProvider) *Service {
	return &Service{matrix: matrix, distance: distance}
}

// Calculate resolves the base fare for a trip. It performs at most one
// outbound call (the distance lookup), produces no side effects, and never
// retries; distance-provider errors propagate to the caller untouched.
//
// A route or passenger count the matrix cannot price is not an error: the
// result carries a nil BaseRate and whatever vehicle keys the route does
// offer, so callers can tell "route unknown" from "this count unpriced".
func (s *Service) Calculate(ctx context.Context, req Request) (Result, error) {
	if req.Passengers <= 0 {
		return Result{}, ErrInvalidPassengerCount
	}
	if isTestRoute(req.Origin, req.Destination) {
		rate := testRouteRate
		return Result{BaseRate: &rate, AvailableVehicles: []string{}}, nil
	}

	bucket, ok := s.matrix.Lookup(req.Direction, req.Origin, req.Destination)
	if !ok {
		return Result{AvailableVehicles: []string{}}, nil
	}

	flats, rule := splitRates(bucket)
	available := flats.Keys()
	if available == nil {
		available = []string{}
	}

	ruleApplies := rule != nil && usesDefaultVehicle(req.Passengers) && req.PreferredRateKey == ""
	if ruleApplies {
		return s.distanceRuleFare(ctx, req, rule, available)
	}

	key, ok := resolveRateKey(flats, req.Passengers, req.PreferredRateKey, req.PreferredVehicle)
	if !ok {
		return Result{AvailableVehicles: available}, nil
	}
	entry, _ := flats.Get(key)
	rate := math.Round(entry.Flat)
	return Result{BaseRate: &rate, VehicleKey: &key, AvailableVehicles: available}, nil
}

// splitRates separates a bucket into its flat rates (authored order kept) and
// the optional distance rule stored under the reserved key. Entries whose
// shape contradicts their key are malformed and skipped.
func splitRates(bucket *VehicleRates) (*VehicleRates, *DistanceRule) {
	flats := NewVehicleRates()
	var rule *DistanceRule
	for _, key := range bucket.Keys() {
		entry, _ := bucket.Get(key)
		switch {
		case key == DistanceRuleKey && entry.IsRule():
			rule = entry.Rule
		case key != DistanceRuleKey && !entry.IsRule():
			flats.Set(key, entry)
		}
	}
	return flats, rule
}

// distanceRuleFare measures the driving distance for the trip and prices it
// with the rule's formula.
func (s *Service) distanceRuleFare(ctx context.Context, req Request, rule *DistanceRule, available []string) (Result, error) {
	target, err := ruleTargetPoint(rule)
	if err != nil {
		log.Printf("pricing: rate data defect on %s %s -> %s: %v", req.Direction, req.Origin, req.Destination, err)
		return Result{}, err
	}

	var origin, destination types.Waypoint
	switch req.Direction {
	case DirectionToAirport:
		origin = types.Waypoint{Address: req.OriginAddress, LatLng: req.OriginLatLng}
		if origin.IsZero() {
			return Result{}, ErrOriginAddressRequired
		}
		destination = types.Waypoint{LatLng: target}
	case DirectionFromAirport:
		destination = types.Waypoint{Address: req.DestinationAddress, LatLng: req.DestinationLatLng}
		if destination.IsZero() {
			return Result{}, ErrDestinationAddressRequired
		}
		origin = types.Waypoint{LatLng: target}
	default:
		return Result{}, ErrUnsupportedDirection
	}

	measured, err := s.distance.DrivingDistance(ctx, origin, destination)
	if err != nil {
		return Result{}, err
	}

	breakdown := evaluateDistanceRule(rule, measured.Km, req.Passengers)
	rate := math.Round(breakdown.Total)
	return Result{
		BaseRate:            &rate,
		AvailableVehicles:   available,
		DistanceRuleApplied: true,
		Distance:            &measured,
		Breakdown:           &breakdown,
	}, nil
}

// evaluateDistanceRule applies the fare formula: base fare, a fee per
// passenger beyond the first on the default vehicle, and a per-km charge for
// distance beyond the included kilometres. Each component and the total are
// independently rounded up to the nearest nickel.
func evaluateDistanceRule(rule *DistanceRule, distanceKm float64, passengers int) Breakdown {
	additional := 0
	if usesDefaultVehicle(passengers) && passengers > 1 {
		additional = passengers - 1
	}

	extraKm := distanceKm - rule.BaseDistanceKm
	if extraKm < 0 {
		extraKm = 0
	}

	baseFare := roundUpToNickel(rule.BaseFare)
	passengerCharge := roundUpToNickel(rule.AdditionalPassengerFee * float64(additional))
	distanceCharge := roundUpToNickel(extraKm * rule.PerKmRate)

	return Breakdown{
		BaseFare:                  baseFare,
		AdditionalPassengerCharge: passengerCharge,
		// Older clients read ExtraKilometerCharge, newer ones DistanceCharge;
		// both carry the per-km overage.
		DistanceCharge:       distanceCharge,
		ExtraKilometerCharge: distanceCharge,
		Total:                roundUpToNickel(baseFare + passengerCharge + distanceCharge),
	}
}

func ruleTargetPoint(rule *DistanceRule) (*types.Point, error) {
	if rule.Target.Lat == nil || rule.Target.Lng == nil {
		return nil, ErrMissingTargetCoordinates
	}
	p := types.Point{Lat: *rule.Target.Lat, Lng: *rule.Target.Lng}
	if !p.Valid() {
		return nil, ErrInvalidTargetCoordinates
	}
	return &p, nil
}

func isTestRoute(origin, destination string) bool {
	return normalizeLabel(origin) == testRouteLabel && normalizeLabel(destination) == testRouteLabel
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

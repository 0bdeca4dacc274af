// README: Quote service; matrix-backed quotes with a generic haversine fallback.
package quote

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math"
	"time"

	"airporter/internal/config"
	routemaps "airporter/internal/maps"
	"airporter/internal/modules/pricing"
)

// quoteTTL is how long a persisted quote stays honourable.
const quoteTTL = 48 * time.Hour

var ErrBadRequest = errors.New("bad request")

// Fares is the pricing engine surface the quote service consumes.
type Fares interface {
	Calculate(ctx context.Context, req pricing.Request) (pricing.Result, error)
}

type Service struct {
	fares    Fares
	store    *Store
	fallback config.QuoteFallbackConfig
	currency string
}

func NewService(fares Fares, store *Store, fallback config.QuoteFallbackConfig, currency string) *Service {
	return &Service{fares: fares, store: store, fallback: fallback, currency: currency}
}

// QuickEstimate prices a trip for the public estimate widget. When the rate
// matrix cannot price the route — either a lookup miss or a distance-provider
// failure — it falls back to a generic haversine tariff, which needs both
// endpoints' coordinates. Non-provider pricing errors propagate unchanged.
func (s *Service) QuickEstimate(ctx context.Context, req pricing.Request) (Estimate, error) {
	res, err := s.fares.Calculate(ctx, req)
	if err != nil {
		var routeErr *routemaps.RouteError
		if errors.As(err, &routeErr) {
			if est, ok := s.genericEstimate(req); ok {
				return est, nil
			}
		}
		return Estimate{}, err
	}

	if res.BaseRate == nil {
		if est, ok := s.genericEstimate(req); ok {
			est.AvailableVehicles = res.AvailableVehicles
			return est, nil
		}
		return Estimate{Source: SourceNone, AvailableVehicles: res.AvailableVehicles}, nil
	}

	source := SourceMatrix
	if res.DistanceRuleApplied {
		source = SourceDistanceRule
	}
	return Estimate{
		BaseRate:          res.BaseRate,
		Source:            source,
		Distance:          res.Distance,
		Breakdown:         res.Breakdown,
		AvailableVehicles: res.AvailableVehicles,
	}, nil
}

// genericEstimate prices by straight-line distance when both coordinates are
// known: a base fare covering the included kilometres plus a per-km overage,
// rounded to the whole dollar.
func (s *Service) genericEstimate(req pricing.Request) (Estimate, bool) {
	if req.OriginLatLng == nil || req.DestinationLatLng == nil {
		return Estimate{}, false
	}
	km := haversineKm(req.OriginLatLng.Lat, req.OriginLatLng.Lng,
		req.DestinationLatLng.Lat, req.DestinationLatLng.Lng)
	extraKm := km - s.fallback.IncludedKm
	if extraKm < 0 {
		extraKm = 0
	}
	rate := math.Round(s.fallback.BaseFare + extraKm*s.fallback.PerKmRate)
	return Estimate{BaseRate: &rate, Source: SourceGeneric}, true
}

// CreateQuote runs the pricing engine and persists the result with an expiry.
// Unlike QuickEstimate there is no generic fallback: a quote the business
// cannot honour is not written.
func (s *Service) CreateQuote(ctx context.Context, req pricing.Request) (*Quote, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, ErrBadRequest
	}
	res, err := s.fares.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	q := &Quote{
		ID:                  newID(),
		Direction:           string(req.Direction),
		Origin:              req.Origin,
		Destination:         req.Destination,
		Passengers:          req.Passengers,
		BaseRate:            res.BaseRate,
		AvailableVehicles:   res.AvailableVehicles,
		DistanceRuleApplied: res.DistanceRuleApplied,
		Breakdown:           res.Breakdown,
		Currency:            s.currency,
		CreatedAt:           now,
		ExpiresAt:           now.Add(quoteTTL),
	}
	if res.VehicleKey != nil {
		q.VehicleKey = *res.VehicleKey
	}
	if err := s.store.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	return s.store.Get(ctx, id)
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

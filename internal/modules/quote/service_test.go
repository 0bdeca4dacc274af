package quote

import (
	"context"
	"errors"
	"math"
	"testing"

	"airporter/internal/config"
	routemaps "airporter/internal/maps"
	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

// stubFares is a test double for the pricing engine.
type stubFares struct {
	result pricing.Result
	err    error
}

func (s *stubFares) Calculate(_ context.Context, _ pricing.Request) (pricing.Result, error) {
	return s.result, s.err
}

func fallbackTariff() config.QuoteFallbackConfig {
	return config.QuoteFallbackConfig{BaseFare: 85, IncludedKm: 20, PerKmRate: 2}
}

func coordsRequest() pricing.Request {
	return pricing.Request{
		Direction:         pricing.DirectionToAirport,
		Origin:            "Abbotsford",
		Destination:       "YVR",
		Passengers:        2,
		OriginLatLng:      &types.Point{Lat: 49.0504, Lng: -122.3045},
		DestinationLatLng: &types.Point{Lat: 49.1939, Lng: -123.1844},
	}
}

func TestQuickEstimate_MatrixPrice(t *testing.T) {
	rate := 140.0
	key := "6"
	fares := &stubFares{result: pricing.Result{
		BaseRate:          &rate,
		VehicleKey:        &key,
		AvailableVehicles: []string{"1", "6"},
	}}
	svc := NewService(fares, nil, fallbackTariff(), "CAD")

	est, err := svc.QuickEstimate(context.Background(), coordsRequest())
	if err != nil {
		t.Fatalf("QuickEstimate: %v", err)
	}
	if est.Source != SourceMatrix {
		t.Errorf("source = %s, want %s", est.Source, SourceMatrix)
	}
	if est.BaseRate == nil || *est.BaseRate != 140 {
		t.Errorf("base rate = %v, want 140", est.BaseRate)
	}
}

func TestQuickEstimate_DistanceRuleSource(t *testing.T) {
	rate := 165.0
	fares := &stubFares{result: pricing.Result{
		BaseRate:            &rate,
		DistanceRuleApplied: true,
		Distance:            &types.Distance{Km: 35, Minutes: 42},
	}}
	svc := NewService(fares, nil, fallbackTariff(), "CAD")

	est, err := svc.QuickEstimate(context.Background(), coordsRequest())
	if err != nil {
		t.Fatal(err)
	}
	if est.Source != SourceDistanceRule {
		t.Errorf("source = %s, want %s", est.Source, SourceDistanceRule)
	}
	if est.Distance == nil || est.Distance.Km != 35 {
		t.Errorf("distance = %+v, want 35 km", est.Distance)
	}
}

// A distance-provider failure falls back to the generic haversine tariff.
func TestQuickEstimate_ProviderFailureFallsBack(t *testing.T) {
	fares := &stubFares{err: &routemaps.RouteError{Code: routemaps.CodeNoRouteFound, HTTPStatus: 422, Message: "no route"}}
	svc := NewService(fares, nil, fallbackTariff(), "CAD")

	req := coordsRequest()
	est, err := svc.QuickEstimate(context.Background(), req)
	if err != nil {
		t.Fatalf("fallback should swallow the provider error, got %v", err)
	}
	if est.Source != SourceGeneric {
		t.Fatalf("source = %s, want %s", est.Source, SourceGeneric)
	}

	km := haversineKm(req.OriginLatLng.Lat, req.OriginLatLng.Lng,
		req.DestinationLatLng.Lat, req.DestinationLatLng.Lng)
	want := math.Round(85 + (km-20)*2)
	if est.BaseRate == nil || *est.BaseRate != want {
		t.Errorf("base rate = %v, want %v", est.BaseRate, want)
	}
}

// Without coordinates there is nothing to fall back on; the provider error
// surfaces to the caller.
func TestQuickEstimate_ProviderFailureWithoutCoords(t *testing.T) {
	provErr := &routemaps.RouteError{Code: routemaps.CodeNoRouteFound, HTTPStatus: 422, Message: "no route"}
	fares := &stubFares{err: provErr}
	svc := NewService(fares, nil, fallbackTariff(), "CAD")

	req := coordsRequest()
	req.OriginLatLng = nil
	if _, err := svc.QuickEstimate(context.Background(), req); !errors.Is(err, provErr) {
		t.Errorf("err = %v, want the provider error", err)
	}
}

func TestQuickEstimate_LookupMissFallsBack(t *testing.T) {
	fares := &stubFares{result: pricing.Result{AvailableVehicles: []string{}}}
	svc := NewService(fares, nil, fallbackTariff(), "CAD")

	est, err := svc.QuickEstimate(context.Background(), coordsRequest())
	if err != nil {
		t.Fatal(err)
	}
	if est.Source != SourceGeneric || est.BaseRate == nil {
		t.Errorf("estimate = %+v, want a generic price", est)
	}
}

func TestQuickEstimate_LookupMissWithoutCoords(t *testing.T) {
	fares := &stubFares{result: pricing.Result{AvailableVehicles: []string{"8-11"}}}
	svc := NewService(fares, nil, fallbackTariff(), "CAD")

	req := coordsRequest()
	req.DestinationLatLng = nil
	est, err := svc.QuickEstimate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if est.Source != SourceNone || est.BaseRate != nil {
		t.Errorf("estimate = %+v, want no price", est)
	}
	if len(est.AvailableVehicles) != 1 || est.AvailableVehicles[0] != "8-11" {
		t.Errorf("available vehicles = %v, want [8-11]", est.AvailableVehicles)
	}
}

// Pricing input errors are not provider failures and must propagate.
func TestQuickEstimate_PricingErrorPropagates(t *testing.T) {
	fares := &stubFares{err: pricing.ErrInvalidPassengerCount}
	svc := NewService(fares, nil, fallbackTariff(), "CAD")

	if _, err := svc.QuickEstimate(context.Background(), coordsRequest()); !errors.Is(err, pricing.ErrInvalidPassengerCount) {
		t.Errorf("err = %v, want INVALID_PASSENGER_COUNT", err)
	}
}

func TestCreateQuote_RequiresLabels(t *testing.T) {
	svc := NewService(&stubFares{}, nil, fallbackTariff(), "CAD")
	req := coordsRequest()
	req.Origin = ""
	if _, err := svc.CreateQuote(context.Background(), req); !errors.Is(err, ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 49.1939, lng1: -123.1844,
			lat2: 49.1939, lng2: -123.1844,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "Abbotsford to YVR (~65km)",
			lat1: 49.0504, lng1: -122.3045,
			lat2: 49.1939, lng2: -123.1844,
			wantKm:    66,
			tolerance: 5,
		},
		{
			name: "Vancouver to Toronto (~3360km)",
			lat1: 49.2827, lng1: -123.1207,
			lat2: 43.6532, lng2: -79.3832,
			wantKm:    3360,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(49.0, -122.0, 49.5, -123.0)
	d2 := haversineKm(49.5, -123.0, 49.0, -122.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

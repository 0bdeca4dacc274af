// README: Integration tests for the pricing calculate endpoint.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"airporter/internal/http/handlers"
	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

type stubDistance struct {
	distance types.Distance
	err      error
}

func (s *stubDistance) DrivingDistance(_ context.Context, _, _ types.Waypoint) (types.Distance, error) {
	return s.distance, s.err
}

func buildPricingRouter(t *testing.T, provider pricing.DistanceProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rates := pricing.NewVehicleRates()
	rates.Set("1", pricing.FlatRate(70))
	rates.Set("6", pricing.FlatRate(110))
	authored := pricing.Matrix{
		pricing.DirectionToAirport: {
			"Langley": {"YVR": rates},
		},
	}
	matrix := pricing.BuildBidirectional(authored)

	r := gin.New()
	h := handlers.NewPricingHandler(pricing.NewService(matrix, provider))
	r.POST("/api/pricing/calculate", h.Calculate)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCalculate_FlatRate(t *testing.T) {
	r := buildPricingRouter(t, &stubDistance{})

	w := postJSON(r, "/api/pricing/calculate", map[string]interface{}{
		"direction":   "toAirport",
		"origin":      "Langley",
		"destination": "YVR",
		"passengers":  2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		BaseRate   *float64 `json:"base_rate"`
		VehicleKey *string  `json:"vehicle_key"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.BaseRate == nil || *resp.BaseRate != 70 {
		t.Errorf("base_rate = %v, want 70", resp.BaseRate)
	}
	if resp.VehicleKey == nil || *resp.VehicleKey != "1" {
		t.Errorf("vehicle_key = %v, want 1", resp.VehicleKey)
	}
}

func TestCalculate_UnknownRoute(t *testing.T) {
	r := buildPricingRouter(t, &stubDistance{})

	w := postJSON(r, "/api/pricing/calculate", map[string]interface{}{
		"direction":   "toAirport",
		"origin":      "Chilliwack",
		"destination": "YVR",
		"passengers":  2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		BaseRate          *float64 `json:"base_rate"`
		AvailableVehicles []string `json:"available_vehicles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.BaseRate != nil {
		t.Errorf("base_rate = %v, want nil", *resp.BaseRate)
	}
	if resp.AvailableVehicles == nil || len(resp.AvailableVehicles) != 0 {
		t.Errorf("available_vehicles = %v, want empty list", resp.AvailableVehicles)
	}
}

func TestCalculate_InvalidPassengers(t *testing.T) {
	r := buildPricingRouter(t, &stubDistance{})

	w := postJSON(r, "/api/pricing/calculate", map[string]interface{}{
		"direction":   "toAirport",
		"origin":      "Langley",
		"destination": "YVR",
		"passengers":  0,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != pricing.CodeInvalidPassengerCount {
		t.Errorf("code = %q, want %q", resp.Code, pricing.CodeInvalidPassengerCount)
	}
}

func TestCalculate_BadJSON(t *testing.T) {
	r := buildPricingRouter(t, &stubDistance{})

	req := httptest.NewRequest(http.MethodPost, "/api/pricing/calculate", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

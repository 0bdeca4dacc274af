// README: Pricing handler; direct fare calculation endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

type tripRequest struct {
	Direction          string   `json:"direction"`
	Origin             string   `json:"origin"`
	Destination        string   `json:"destination"`
	Passengers         int      `json:"passengers"`
	PreferredVehicle   string   `json:"preferred_vehicle"`
	PreferredRateKey   string   `json:"preferred_rate_key"`
	OriginAddress      string   `json:"origin_address"`
	DestinationAddress string   `json:"destination_address"`
	OriginLat          *float64 `json:"origin_lat"`
	OriginLng          *float64 `json:"origin_lng"`
	DestinationLat     *float64 `json:"destination_lat"`
	DestinationLng     *float64 `json:"destination_lng"`
}

func (r tripRequest) toPricingRequest() pricing.Request {
	return pricing.Request{
		Direction:          pricing.Direction(r.Direction),
		Origin:             r.Origin,
		Destination:        r.Destination,
		Passengers:         r.Passengers,
		PreferredVehicle:   r.PreferredVehicle,
		PreferredRateKey:   r.PreferredRateKey,
		OriginAddress:      r.OriginAddress,
		DestinationAddress: r.DestinationAddress,
		OriginLatLng:       pointFrom(r.OriginLat, r.OriginLng),
		DestinationLatLng:  pointFrom(r.DestinationLat, r.DestinationLng),
	}
}

func pointFrom(lat, lng *float64) *types.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &types.Point{Lat: *lat, Lng: *lng}
}

type distanceResponse struct {
	Km      float64 `json:"km"`
	Minutes float64 `json:"minutes"`
}

type breakdownResponse struct {
	BaseFare                  float64 `json:"base_fare"`
	AdditionalPassengerCharge float64 `json:"additional_passenger_charge"`
	DistanceCharge            float64 `json:"distance_charge"`
	ExtraKilometerCharge      float64 `json:"extra_kilometer_charge"`
	Total                     float64 `json:"total"`
}

type pricingResponse struct {
	BaseRate            *float64           `json:"base_rate"`
	VehicleKey          *string            `json:"vehicle_key"`
	AvailableVehicles   []string           `json:"available_vehicles"`
	DistanceRuleApplied bool               `json:"distance_rule_applied"`
	Distance            *distanceResponse  `json:"distance,omitempty"`
	Breakdown           *breakdownResponse `json:"breakdown,omitempty"`
}

func toPricingResponse(res pricing.Result) pricingResponse {
	out := pricingResponse{
		BaseRate:            res.BaseRate,
		VehicleKey:          res.VehicleKey,
		AvailableVehicles:   res.AvailableVehicles,
		DistanceRuleApplied: res.DistanceRuleApplied,
	}
	if res.Distance != nil {
		out.Distance = &distanceResponse{Km: res.Distance.Km, Minutes: res.Distance.Minutes}
	}
	if res.Breakdown != nil {
		out.Breakdown = &breakdownResponse{
			BaseFare:                  res.Breakdown.BaseFare,
			AdditionalPassengerCharge: res.Breakdown.AdditionalPassengerCharge,
			DistanceCharge:            res.Breakdown.DistanceCharge,
			ExtraKilometerCharge:      res.Breakdown.ExtraKilometerCharge,
			Total:                     res.Breakdown.Total,
		}
	}
	return out
}

func (h *PricingHandler) Calculate(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.pricing.Calculate(c.Request.Context(), req.toPricingRequest())
	if err != nil {
		writePricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPricingResponse(res))
}

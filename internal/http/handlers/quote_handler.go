// README: Quote handlers for the public estimate widget and persisted quotes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airporter/internal/modules/quote"
)

type QuoteHandler struct {
	quote *quote.Service
}

func NewQuoteHandler(svc *quote.Service) *QuoteHandler {
	return &QuoteHandler{quote: svc}
}

type estimateResponse struct {
	BaseRate          *float64           `json:"base_rate"`
	Source            string             `json:"source"`
	Distance          *distanceResponse  `json:"distance,omitempty"`
	Breakdown         *breakdownResponse `json:"breakdown,omitempty"`
	AvailableVehicles []string           `json:"available_vehicles"`
}

// Estimate is the public quick-quote endpoint; it never requires auth.
func (h *QuoteHandler) Estimate(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	est, err := h.quote.QuickEstimate(c.Request.Context(), req.toPricingRequest())
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	out := estimateResponse{
		BaseRate:          est.BaseRate,
		Source:            est.Source,
		AvailableVehicles: est.AvailableVehicles,
	}
	if est.Distance != nil {
		out.Distance = &distanceResponse{Km: est.Distance.Km, Minutes: est.Distance.Minutes}
	}
	if est.Breakdown != nil {
		out.Breakdown = &breakdownResponse{
			BaseFare:                  est.Breakdown.BaseFare,
			AdditionalPassengerCharge: est.Breakdown.AdditionalPassengerCharge,
			DistanceCharge:            est.Breakdown.DistanceCharge,
			ExtraKilometerCharge:      est.Breakdown.ExtraKilometerCharge,
			Total:                     est.Breakdown.Total,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	q, err := h.quote.CreateQuote(c.Request.Context(), req.toPricingRequest())
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing quote id")
		return
	}
	q, err := h.quote.Get(c.Request.Context(), id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

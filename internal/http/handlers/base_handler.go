// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	routemaps "airporter/internal/maps"
	"airporter/internal/modules/booking"
	"airporter/internal/modules/pricing"
	"airporter/internal/modules/quote"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writePricingError maps the typed pricing/distance errors onto their carried
// HTTP status; anything else is an internal error.
func writePricingError(c *gin.Context, err error) {
	var pricingErr *pricing.Error
	if errors.As(err, &pricingErr) {
		c.JSON(pricingErr.HTTPStatus, errorResponse{Error: pricingErr.Message, Code: pricingErr.Code})
		return
	}
	var routeErr *routemaps.RouteError
	if errors.As(err, &routeErr) {
		c.JSON(routeErr.HTTPStatus, errorResponse{Error: routeErr.Message, Code: routeErr.Code})
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quote.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, quote.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writePricingError(c, err)
	}
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrInvalidState):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrUnpriceable):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writePricingError(c, err)
	}
}

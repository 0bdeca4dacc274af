// README: Booking handlers for create/get/confirm/assign/cancel and payment events.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"airporter/internal/http/middleware"
	"airporter/internal/modules/booking"
	"airporter/internal/modules/pricing"
)

const adminRole = "admin"

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type createBookingReq struct {
	Direction        string    `json:"direction"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	Passengers       int       `json:"passengers"`
	PickupAddress    string    `json:"pickup_address"`
	DropoffAddress   string    `json:"dropoff_address"`
	PickupLat        *float64  `json:"pickup_lat"`
	PickupLng        *float64  `json:"pickup_lng"`
	DropoffLat       *float64  `json:"dropoff_lat"`
	DropoffLng       *float64  `json:"dropoff_lng"`
	PickupTime       time.Time `json:"pickup_time"`
	ContactName      string    `json:"contact_name"`
	ContactPhone     string    `json:"contact_phone"`
	ContactEmail     string    `json:"contact_email"`
	PreferredVehicle string    `json:"preferred_vehicle"`
	PreferredRateKey string    `json:"preferred_rate_key"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.booking.Create(c.Request.Context(), booking.CreateCommand{
		Direction:        pricing.Direction(req.Direction),
		Origin:           req.Origin,
		Destination:      req.Destination,
		Passengers:       req.Passengers,
		PickupAddress:    req.PickupAddress,
		DropoffAddress:   req.DropoffAddress,
		PickupLatLng:     pointFrom(req.PickupLat, req.PickupLng),
		DropoffLatLng:    pointFrom(req.DropoffLat, req.DropoffLng),
		PickupTime:       req.PickupTime,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		CustomerUID:      middleware.CallerUID(c),
		PreferredVehicle: req.PreferredVehicle,
		PreferredRateKey: req.PreferredRateKey,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	b, err := h.booking.Get(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if !h.canAccess(c, b) {
		writeError(c, http.StatusForbidden, "not your booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	b, err := h.booking.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type assignDriverReq struct {
	DriverID string `json:"driver_id"`
}

func (h *BookingHandler) AssignDriver(c *gin.Context) {
	var req assignDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.booking.AssignDriver(c.Request.Context(), c.Param("id"), req.DriverID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	b, err := h.booking.Get(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if !h.canAccess(c, b) {
		writeError(c, http.StatusForbidden, "not your booking")
		return
	}
	var req cancelReq
	_ = c.ShouldBindJSON(&req) // reason is optional
	cancelled, err := h.booking.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

type paymentCompletedReq struct {
	BookingID  string `json:"booking_id"`
	PaymentRef string `json:"payment_ref"`
}

// PaymentCompleted handles the payment provider's completion event. The
// relay in front of this endpoint has already verified the provider
// signature.
func (h *BookingHandler) PaymentCompleted(c *gin.Context) {
	var req paymentCompletedReq
	if err := c.ShouldBindJSON(&req); err != nil || req.BookingID == "" {
		writeError(c, http.StatusBadRequest, "invalid payment event")
		return
	}
	b, err := h.booking.MarkPaid(c.Request.Context(), req.BookingID, req.PaymentRef)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": b.ID, "paid": b.Paid})
}

// canAccess allows admins and the booking's own customer.
func (h *BookingHandler) canAccess(c *gin.Context, b *booking.Booking) bool {
	user, ok := middleware.Caller(c)
	if !ok {
		return false
	}
	return user.HasRole(adminRole) || (b.CustomerUID != "" && b.CustomerUID == user.UID)
}

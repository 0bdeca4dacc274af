// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airporter/internal/http/handlers"
	"airporter/internal/http/middleware"
	"airporter/internal/infra"
	"airporter/internal/modules/booking"
	"airporter/internal/modules/pricing"
	"airporter/internal/modules/quote"
)

type ServerDeps struct {
	Pricing  *pricing.Service
	Quote    *quote.Service
	Booking  *booking.Service
	Verifier infra.TokenVerifier
}

type Server struct {
	pricing  *pricing.Service
	quote    *quote.Service
	booking  *booking.Service
	verifier infra.TokenVerifier
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		pricing:  deps.Pricing,
		quote:    deps.Quote,
		booking:  deps.Booking,
		verifier: deps.Verifier,
	}
}

func (s *Server) Routes() http.Handler {
	router := gin.New()
	router.Use(middleware.Logging(), middleware.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	pricingHandler := handlers.NewPricingHandler(s.pricing)
	quoteHandler := handlers.NewQuoteHandler(s.quote)
	bookingHandler := handlers.NewBookingHandler(s.booking)

	api := router.Group("/api")
	api.POST("/pricing/calculate", pricingHandler.Calculate)
	api.POST("/quotes/estimate", quoteHandler.Estimate)
	api.POST("/payments/completed", bookingHandler.PaymentCompleted)

	authed := api.Group("", middleware.Auth(s.verifier))
	authed.POST("/quotes", quoteHandler.Create)
	authed.GET("/quotes/:id", quoteHandler.Get)
	authed.POST("/bookings", bookingHandler.Create)
	authed.GET("/bookings/:id", bookingHandler.Get)
	authed.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	admin := authed.Group("", middleware.RequireRole("admin"))
	admin.POST("/bookings/:id/confirm", bookingHandler.Confirm)
	admin.POST("/bookings/:id/assign-driver", bookingHandler.AssignDriver)

	return router
}

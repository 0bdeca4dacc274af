// README: Entry point; loads config, wires services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airporter/internal/config"
	httptransport "airporter/internal/http"
	"airporter/internal/infra"
	"airporter/internal/maps"
	"airporter/internal/modules/booking"
	"airporter/internal/modules/pricing"
	"airporter/internal/modules/quote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("AIRPORTER_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	fsClient, err := infra.NewFirestore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer fsClient.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	routeService, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	authored, err := loadAuthoredMatrix(ctx, cfg)
	if err != nil {
		log.Fatalf("rate matrix: %v", err)
	}
	matrix := pricing.BuildBidirectional(authored)

	pricingSvc := pricing.NewService(matrix, routeService)

	quoteStore := quote.NewStore(fsClient)
	quoteSvc := quote.NewService(pricingSvc, quoteStore, cfg.QuoteFallback, cfg.Pricing.Currency)

	var payments booking.PaymentLinker
	if cfg.Payments.LinkEndpoint != "" {
		payments = infra.NewPaymentLinkClient(cfg.Payments.LinkEndpoint)
	}

	bookingStore := booking.NewStore(fsClient)
	counter := booking.NewCounter(redisClient)
	notifier := infra.NewOutboundQueue(redisClient)
	bookingSvc := booking.NewService(bookingStore, pricingSvc, counter, payments, notifier, cfg.Pricing.Currency)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Pricing:  pricingSvc,
		Quote:    quoteSvc,
		Booking:  bookingSvc,
		Verifier: verifier,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// loadAuthoredMatrix prefers the rates file when one is configured, so the
// server can run without Postgres in development.
func loadAuthoredMatrix(ctx context.Context, cfg config.Config) (pricing.Matrix, error) {
	if cfg.Pricing.RatesFile != "" {
		return pricing.LoadMatrixFile(cfg.Pricing.RatesFile)
	}
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	return pricing.NewStore(dbPool).LoadAuthored(ctx)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpLayer "loan-ledger/http"
	"loan-ledger/repository"
	"loan-ledger/service"
)

func main() {
	calcRepo := repository.NewCalculationRepositoryMemory()

	var cache repository.CacheRepository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = repository.NewRedisCache(addr, service.DraftTTL)
		log.Printf("Using Redis draft store at %s", addr)
	} else {
		cache = repository.NewMockCache()
		log.Println("REDIS_ADDR not set, using in-memory draft store")
	}

	draftService := service.NewDraftService(cache)
	ledgerService := service.NewLedgerService(calcRepo, draftService)
	chartService := service.NewChartService()

	ledgerHandler := httpLayer.NewLedgerHandler(ledgerService)
	draftHandler := httpLayer.NewDraftHandler(draftService)
	chartHandler := httpLayer.NewChartHandler(ledgerService, chartService)

	rateLimiter := httpLayer.NewRateLimiter(30, time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/loan/calculate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(ledgerHandler.Calculate),
		),
	)

	mux.Handle(
		"/loan/payments/add",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(draftHandler.AddPayment),
		),
	)

	mux.Handle(
		"/loan/payments/remove",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(draftHandler.RemovePayment),
		),
	)

	mux.Handle(
		"/loan/reset",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(draftHandler.Reset),
		),
	)

	mux.Handle(
		"/loan/chart",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(chartHandler.BalanceChart),
		),
	)

	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Println("🚀 API corriendo en http://localhost:8080")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}

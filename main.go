package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/3dimaging/personal-website-analytics/config"
	"github.com/3dimaging/personal-website-analytics/handler"
	appLogger "github.com/3dimaging/personal-website-analytics/logger"
	"github.com/3dimaging/personal-website-analytics/middleware"
	"github.com/3dimaging/personal-website-analytics/storage"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig()

	// Initialize logger
	appLogger.Initialize(cfg.IsDevelopment())
	log.Info().
		Str("environment", cfg.Environment).
		Msg("Configuration loaded successfully")

	// Open the analytics store
	store, err := storage.Open(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	log.Info().Str("dsn", cfg.DSN()).Msg("Database ready")

	// Create handler with dependency injection
	analyticsHandler := handler.NewAnalyticsHandler(store, cfg)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Register routes
	r.HandleFunc("/", analyticsHandler.Root).Methods("GET")
	r.HandleFunc("/health", analyticsHandler.HealthCheck).Methods("GET")
	r.HandleFunc("/api/track-visit", analyticsHandler.TrackVisit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/track-event", analyticsHandler.TrackEvent).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/analytics", analyticsHandler.GetAnalytics).Methods("GET", "OPTIONS")
	r.HandleFunc("/dashboard", analyticsHandler.Dashboard).Methods("GET")

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}

	log.Info().Msg("Server stopped gracefully")
}

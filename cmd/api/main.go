package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jbslegal/consultation-api/internal/config"
	"github.com/jbslegal/consultation-api/internal/email"
	"github.com/jbslegal/consultation-api/internal/handler/consultation"
	"github.com/jbslegal/consultation-api/internal/handler/health"
	"github.com/jbslegal/consultation-api/internal/repository/memory"
	"github.com/jbslegal/consultation-api/internal/router"
	bookingService "github.com/jbslegal/consultation-api/internal/service/booking"
	"github.com/jbslegal/consultation-api/pkg/logger"
	"github.com/jbslegal/consultation-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.New(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     true,
	})
	log.Logger = appLogger

	// Initialize metrics
	m := metrics.New("consultation", prometheus.DefaultRegisterer)

	// Initialize store and services
	store := memory.NewStore(cfg.BookingRetention)

	emailSvc := email.NewService(email.Config{
		Service:        email.Provider(cfg.EmailService),
		From:           cfg.EmailFrom,
		AdminEmail:     cfg.AdminEmail,
		GmailUser:      cfg.GmailUser,
		GmailPassword:  cfg.GmailPassword,
		SendgridAPIKey: cfg.SendgridAPIKey,
		SESHost:        cfg.SESHost,
		SESUser:        cfg.SESUser,
		SESPassword:    cfg.SESPassword,
		ZohoHost:       cfg.ZohoHost,
		ZohoUser:       cfg.ZohoUser,
		ZohoPassword:   cfg.ZohoPassword,
	}, appLogger, m)

	bookingSvc := bookingService.NewService(store, emailSvc, bookingService.Policy{
		EnforceFutureDate: cfg.EnforceFutureDate,
		CheckSlotConflict: cfg.CheckSlotConflict,
	}, appLogger, m)

	// Initialize handlers
	consultationHandler := consultation.NewHandler(bookingSvc)
	healthHandler := health.NewHandler()

	// Setup router
	routerCfg := router.DefaultConfig()
	routerCfg.RateLimit.RPS = cfg.RateLimitRPS
	routerCfg.RateLimit.Burst = cfg.RateLimitBurst

	r := router.New(routerCfg, consultationHandler, healthHandler)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		appLogger.Info().
			Int("port", cfg.Port).
			Str("email_service", cfg.EmailService).
			Str("admin_email", cfg.AdminEmail).
			Msg("consultation API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

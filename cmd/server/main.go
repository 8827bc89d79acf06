package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medivisit/backend/internal/config"
	"github.com/medivisit/backend/internal/geocode"
	httpapi "github.com/medivisit/backend/internal/http"
	"github.com/medivisit/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "medivisit-backend").Logger()

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DataPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	var geocoder geocode.Geocoder
	if cfg.GeocodeURL != "" {
		geocoder = &geocode.NominatimGeocoder{BaseURL: cfg.GeocodeURL}
		logger.Info().Str("url", cfg.GeocodeURL).Msg("geocoding enabled")
	}

	router := httpapi.Router(cfg, st, geocoder, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}

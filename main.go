package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/isdelr/medapi/internal/api"
	"github.com/isdelr/medapi/internal/config"
	"github.com/isdelr/medapi/internal/database"
	"github.com/isdelr/medapi/internal/logger"
	"github.com/isdelr/medapi/internal/metrics"
	"github.com/isdelr/medapi/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	backend := database.Dialect(cfg.Database.Backend())
	dsn := cfg.Database.DSN()

	// Ensure the directory holding the SQLite file exists
	if backend == database.SQLite && !isMemoryDSN(dsn) {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			log.Fatal().Err(err).Str("path", dsn).Msg("Failed to create database directory")
		}
	}

	// Set up database
	db, err := database.New(context.Background(), backend, dsn)
	if err != nil {
		log.Fatal().Err(err).Str("backend", string(backend)).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	log.Info().Str("backend", string(backend)).Msg("Database schema ready")

	// Set up services
	userService := services.NewUserService(db)
	labResultService := services.NewLabResultService(db, userService)

	// Set up router
	router := api.NewRouter(cfg, metrics.New(db.Pool()), userService, labResultService)

	// Set up server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Str("project", cfg.ProjectName).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

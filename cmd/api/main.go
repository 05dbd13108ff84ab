// Package main is the entry point for the bikeshare statistics API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pkordes/bikeshare-stats/internal/config"
	"github.com/pkordes/bikeshare-stats/internal/handler"
	"github.com/pkordes/bikeshare-stats/internal/metrics"
	"github.com/pkordes/bikeshare-stats/internal/middleware"
	"github.com/pkordes/bikeshare-stats/internal/repo"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A missing .env is fine: the environment alone is a valid configuration.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Row source -------------------------------------------------------
	source, closeSource, err := openRowSource(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open row source", "row_source", cfg.RowSource, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	// --- Services ---------------------------------------------------------
	store := metrics.NewStore()
	stats := service.NewStatsService(source, store, logger)
	server := handler.NewServer(stats, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
	// Recoverer → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetricsHandler(store))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", store.Handler())
	server.Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// Loading a large city file can take seconds, so writes get more room
	// than reads.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "row_source", cfg.RowSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openRowSource returns the row source selected by cfg.RowSource and a func
// releasing its resources.
func openRowSource(ctx context.Context, cfg config.Config) (repo.RowSource, func(), error) {
	if cfg.RowSource != config.RowSourcePostgres {
		slog.Info("reading trips from CSV files", "data_dir", cfg.DataDir)
		return repo.NewCSVSource(cfg.DataDir), func() {}, nil
	}

	pool, err := repo.OpenPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("database connection established")
	return repo.NewTripStore(pool), pool.Close, nil
}

// Package app wires configuration, logging, metrics and the generator for
// the command-line binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	proposalpdf "github.com/diegolsarmond/custom-proposal-maker"
	"github.com/diegolsarmond/custom-proposal-maker/internal/config"
	"github.com/diegolsarmond/custom-proposal-maker/internal/logger"
	"github.com/diegolsarmond/custom-proposal-maker/metrics"
)

// App holds the process-wide dependencies.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Metrics   *metrics.GenerationMetrics
	Generator *proposalpdf.Generator
}

// Overrides are command-line values that win over the environment.
type Overrides struct {
	LogLevel    string
	OutputDir   string
	MetricsAddr string
}

// New loads envFile, applies overrides and builds the generator.
func New(service, envFile string, o Overrides, opts ...proposalpdf.Option) (*App, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	if o.MetricsAddr != "" {
		cfg.MetricsAddr = o.MetricsAddr
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("service", service))

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", cfg.NodeID, err)
	}

	m := metrics.GenerationWithConfig(metrics.Config{
		ServiceName: service,
		Environment: cfg.Environment,
	})

	base := []proposalpdf.Option{
		proposalpdf.WithLogger(log),
		proposalpdf.WithMetrics(m),
		proposalpdf.WithIDNode(node),
		proposalpdf.WithCompanyDefaults(cfg.Company),
		proposalpdf.WithAssetSources(cfg.Assets),
		proposalpdf.WithOutputDir(cfg.OutputDir),
		proposalpdf.WithStationery(cfg.Stationery),
	}
	gen, err := proposalpdf.New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	return &App{Config: cfg, Logger: log, Metrics: m, Generator: gen}, nil
}

// ServeMetrics exposes /metrics on Config.MetricsAddr until ctx is done.
// It returns immediately when no address is configured.
func (a *App) ServeMetrics(ctx context.Context) {
	if a.Config.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              a.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.Logger.Info("serving metrics", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.Logger.Sync()
}

package proposalpdf

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/diegolsarmond/custom-proposal-maker/assets"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
	"github.com/diegolsarmond/custom-proposal-maker/metrics"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// Opener hands a written file to a viewer.
type Opener func(ctx context.Context, path string) error

// Option is a functional option for configuring a Generator via New.
type Option func(*config)

type config struct {
	cache      *assets.Cache
	sources    assets.Sources
	logger     *zap.Logger
	metrics    *metrics.GenerationMetrics
	tracer     trace.TracerProvider
	node       *snowflake.Node
	outputDir  string
	opener     Opener
	stationery string
	company    doctpl.CompanyConfig
	newSurface func() surface.Document
	now        func() time.Time
}

// WithAssets sets the image cache. The process-wide cache is used by
// default.
func WithAssets(c *assets.Cache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// WithAssetSources overrides where individual images are loaded from, keyed
// by assets.Logo, assets.Phone, assets.Location and assets.Globe.
func WithAssetSources(s assets.Sources) Option {
	return func(cfg *config) {
		cfg.sources = cfg.sources.Merge(s)
	}
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.GenerationMetrics) Option {
	return func(cfg *config) {
		cfg.metrics = m
	}
}

// WithTracerProvider sets the provider of the span opened per call. The
// global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		cfg.tracer = tp
	}
}

// WithIDNode sets the snowflake node that issues render ids.
func WithIDNode(n *snowflake.Node) Option {
	return func(cfg *config) {
		cfg.node = n
	}
}

// WithOutputDir sets the directory ModeSave writes to.
func WithOutputDir(dir string) Option {
	return func(cfg *config) {
		cfg.outputDir = dir
	}
}

// WithOpener sets how ModeOpen presents the file.
func WithOpener(o Opener) Option {
	return func(cfg *config) {
		cfg.opener = o
	}
}

// WithStationery draws the first page of the PDF at path behind every
// content page.
func WithStationery(path string) Option {
	return func(cfg *config) {
		cfg.stationery = path
	}
}

// WithCompanyDefaults fills blank company fields of every document.
func WithCompanyDefaults(c doctpl.CompanyConfig) Option {
	return func(cfg *config) {
		cfg.company = c
	}
}

// WithSurfaceFactory replaces the PDF backend.
func WithSurfaceFactory(f func() surface.Document) Option {
	return func(cfg *config) {
		cfg.newSurface = f
	}
}

// WithClock sets the time source used for undated documents and durations.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		cfg.now = now
	}
}

// SystemOpener opens path with the desktop's default PDF viewer.
func SystemOpener(_ context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

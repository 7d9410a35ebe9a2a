// Package proposalpdf renders commercial proposals and service contracts as
// A4 PDF documents.
//
// A Generator carries the shared configuration (image sources, logging,
// metrics, tracing, output directory) and is safe for concurrent use. Each
// call builds its own document, so concurrent generations never share
// drawing state.
//
//	gen, err := proposalpdf.New(proposalpdf.WithOutputDir("out"))
//	if err != nil {
//		return err
//	}
//	res, err := gen.GenerateProposal(ctx, doc, proposalpdf.ModeSave)
package proposalpdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/diegolsarmond/custom-proposal-maker/assets"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
	"github.com/diegolsarmond/custom-proposal-maker/internal/logger"
	"github.com/diegolsarmond/custom-proposal-maker/page"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
)

// Mode selects how a generated document is delivered.
type Mode string

const (
	ModeSave    Mode = "save"
	ModeOpen    Mode = "open"
	ModeBlob    Mode = "blob"
	ModeDataURI Mode = "datauristring"
)

// Document kinds, used in file names, metrics and spans.
const (
	KindProposal = "proposal"
	KindContract = "contract"
)

const (
	tracerName  = "github.com/diegolsarmond/custom-proposal-maker"
	creator     = "proposalpdf"
	dataURIHead = "data:application/pdf;filename=generated.pdf;base64,"
)

// ParseMode validates a mode name. Blank selects ModeSave.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSave, nil
	case ModeSave, ModeOpen, ModeBlob, ModeDataURI:
		return m, nil
	}
	return "", errors.WithMessagef(ErrUnknownMode, "%q", s)
}

// Result describes a delivered document. Which fields are set depends on the
// mode: Path for save and open, Bytes for blob, DataURI for datauristring.
type Result struct {
	Mode     Mode
	FileName string
	Path     string
	Bytes    []byte
	DataURI  string
	RenderID string
	Pages    int
}

// Generator renders documents.
type Generator struct {
	cfg    config
	tracer trace.Tracer
}

// New returns a Generator configured by opts.
func New(opts ...Option) (*Generator, error) {
	cfg := config{
		sources:   assets.DefaultSources(),
		outputDir: ".",
		opener:    SystemOpener,
		newSurface: func() surface.Document {
			return surface.NewPDF()
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cache == nil {
		cfg.cache = assets.Shared()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.GetTracerProvider()
	}
	if cfg.node == nil {
		node, err := snowflake.NewNode(1)
		if err != nil {
			return nil, errors.Wrap(err, "proposalpdf: creating id node")
		}
		cfg.node = node
	}
	return &Generator{cfg: cfg, tracer: cfg.tracer.Tracer(tracerName)}, nil
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
	defaultErr  error
)

// Default returns the process-wide generator used by the package-level
// functions.
func Default() (*Generator, error) {
	defaultOnce.Do(func() {
		defaultGen, defaultErr = New()
	})
	return defaultGen, defaultErr
}

// GenerateProposal renders doc with the default generator.
func GenerateProposal(ctx context.Context, doc *doctpl.ProposalDocument, mode Mode) (*Result, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.GenerateProposal(ctx, doc, mode)
}

// GenerateContract renders doc with the default generator.
func GenerateContract(ctx context.Context, doc *doctpl.ContractDocument, mode Mode) (*Result, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.GenerateContract(ctx, doc, mode)
}

// job is one generation call after the document-specific parts are bound.
type job struct {
	kind     string
	mode     Mode
	fileName string
	meta     surface.Metadata
	render   func(s surface.Surface, background func(surface.Surface)) (*page.Controller, error)
}

// GenerateProposal renders a proposal: cover, introduction and objective,
// pricing, services and observations.
func (g *Generator) GenerateProposal(ctx context.Context, doc *doctpl.ProposalDocument, mode Mode) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	company := doc.Company.Fill(g.cfg.company)
	date := g.dateOf(doc.Date)
	client := doc.Client.DisplayName()

	return g.run(ctx, job{
		kind:     KindProposal,
		mode:     mode,
		fileName: ProposalFileName(doc.Client.Name, date),
		meta: surface.Metadata{
			Title:   joinNonEmpty(" - ", "Proposta Comercial", client),
			Author:  company.Name,
			Subject: "Prestação de Serviço de Tecnologia",
		},
		render: func(s surface.Surface, bg func(surface.Surface)) (*page.Controller, error) {
			return renderProposal(s, doc, company, date, bg)
		},
	})
}

// GenerateContract renders a service contract: details, parties, clauses,
// scope and signatures.
func (g *Generator) GenerateContract(ctx context.Context, doc *doctpl.ContractDocument, mode Mode) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	company := doc.Company.Fill(g.cfg.company)
	date := g.dateOf(doc.Date)
	client := doc.Client.DisplayName()

	return g.run(ctx, job{
		kind:     KindContract,
		mode:     mode,
		fileName: ContractFileName(doc.Number, client, date),
		meta: surface.Metadata{
			Title:   joinNonEmpty(" - ", "Contrato "+doc.Number, client),
			Author:  company.Name,
			Subject: "Contrato de Prestação de Serviços",
		},
		render: func(s surface.Surface, bg func(surface.Surface)) (*page.Controller, error) {
			withCompany := *doc
			withCompany.Company = company
			return renderContract(s, &withCompany, company, date, bg)
		},
	})
}

func (g *Generator) dateOf(d doctpl.Date) doctpl.Date {
	if d.IsZero() {
		return doctpl.DateOf(g.cfg.now())
	}
	return d
}

func (g *Generator) run(ctx context.Context, j job) (*Result, error) {
	mode, err := ParseMode(string(j.mode))
	if err != nil {
		return nil, err
	}

	start := g.cfg.now()
	renderID := g.cfg.node.Generate().String()

	ctx, span := g.tracer.Start(ctx, "proposalpdf.Generate", trace.WithAttributes(
		attribute.String("document.kind", j.kind),
		attribute.String("output.mode", string(mode)),
		attribute.String("render.id", renderID),
	))
	defer span.End()

	log := logger.WithTrace(ctx, g.cfg.logger).With(
		zap.String("render_id", renderID),
		zap.String("kind", j.kind),
		zap.String("mode", string(mode)),
	)

	fail := func(gerr *GenerateError) (*Result, error) {
		g.cfg.metrics.IncFailure(j.kind, gerr.Op)
		span.RecordError(gerr)
		span.SetStatus(codes.Error, gerr.Error())
		log.Error("document generation failed", zap.String("stage", gerr.Op), zap.Error(gerr.Err))
		return nil, gerr
	}

	images, err := g.cfg.cache.LoadAll(ctx, g.cfg.sources)
	if err != nil {
		g.cfg.metrics.AddAssetLoads("error", 1)
		return fail(assetError(err))
	}
	g.cfg.metrics.AddAssetLoads("ok", len(images))

	doc := g.cfg.newSurface()
	for name, png := range images {
		if err := doc.RegisterImage(name, png); err != nil {
			return fail(assetError(err))
		}
	}

	meta := j.meta
	meta.Creator = creator
	meta.Keywords = strings.Join([]string{j.kind, "render:" + renderID}, ", ")
	if ms, ok := doc.(surface.MetadataSetter); ok {
		ms.SetMetadata(meta)
	}

	background, err := g.stationery(doc)
	if err != nil {
		return fail(assetError(err))
	}

	pages, err := j.render(doc, background)
	if err != nil {
		return fail(newGenerateError("layout", err))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return fail(newGenerateError("output", err))
	}

	res := &Result{
		Mode:     mode,
		FileName: j.fileName,
		RenderID: renderID,
		Pages:    doc.PageNo(),
	}
	if err := g.deliver(ctx, res, buf.Bytes()); err != nil {
		return fail(newGenerateError("output", err))
	}

	elapsed := g.cfg.now().Sub(start)
	g.cfg.metrics.ObserveDocument(j.kind, string(mode), res.Pages, elapsed)
	span.SetAttributes(attribute.Int("document.pages", res.Pages))
	log.Info("document generated",
		zap.String("file", res.FileName),
		zap.Int("pages", res.Pages),
		zap.Int("headers", pages.Headers()),
		zap.Int("footers", pages.Footers()),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

// stationery imports the configured background PDF and returns the hook
// that stamps it on every content page.
func (g *Generator) stationery(doc surface.Document) (func(surface.Surface), error) {
	if g.cfg.stationery == "" {
		return nil, nil
	}
	ti, ok := doc.(surface.TemplateImporter)
	if !ok {
		return nil, nil
	}
	id, err := ti.ImportTemplate(g.cfg.stationery)
	if err != nil {
		return nil, errors.Wrap(err, "stationery")
	}
	return func(s surface.Surface) {
		w, h := s.PageSize()
		ti.UseTemplate(id, 0, 0, w, h)
	}, nil
}

func (g *Generator) deliver(ctx context.Context, res *Result, pdf []byte) error {
	switch res.Mode {
	case ModeBlob:
		res.Bytes = pdf
	case ModeDataURI:
		res.DataURI = dataURIHead + base64.StdEncoding.EncodeToString(pdf)
	case ModeSave:
		if err := os.MkdirAll(g.cfg.outputDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
		path, err := diskPath(g.cfg.outputDir, res.FileName)
		if err != nil {
			return err
		}
		res.Path = path
		if err := os.WriteFile(res.Path, pdf, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", res.Path)
		}
	case ModeOpen:
		dir, err := os.MkdirTemp("", "proposalpdf-")
		if err != nil {
			return errors.Wrap(err, "creating temp directory")
		}
		if res.Path, err = diskPath(dir, res.FileName); err != nil {
			return err
		}
		if err := os.WriteFile(res.Path, pdf, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", res.Path)
		}
		if g.cfg.opener == nil {
			return nil
		}
		if err := g.cfg.opener(ctx, res.Path); err != nil {
			return errors.Wrapf(err, "opening %s", res.Path)
		}
	}
	return nil
}

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// diskPath places name inside dir. Path separators in name are replaced so
// that a client name can never select another directory.
func diskPath(dir, name string) (string, error) {
	path := filepath.Join(dir, pathSeparators.Replace(name))
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", name)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("file name %q leaves the output directory", name)
	}
	return path, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

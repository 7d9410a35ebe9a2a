package proposalpdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/diegolsarmond/custom-proposal-maker/assets"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
	"github.com/diegolsarmond/custom-proposal-maker/footer"
	"github.com/diegolsarmond/custom-proposal-maker/metrics"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
	"github.com/diegolsarmond/custom-proposal-maker/surface/surfacetest"
)

var fixedNow = time.Date(2025, time.June, 2, 14, 30, 0, 0, time.UTC)

// newRecorded returns a generator drawing on rec with a private image cache
// and a fixed clock.
func newRecorded(t *testing.T, rec *surfacetest.Recorder, opts ...Option) *Generator {
	t.Helper()
	base := []Option{
		WithAssets(assets.NewCache()),
		WithSurfaceFactory(func() surface.Document { return rec }),
		WithClock(func() time.Time { return fixedNow }),
		WithOutputDir(t.TempDir()),
		WithOpener(func(context.Context, string) error { return nil }),
	}
	g, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return g
}

func TestIconNamesMatchFooter(t *testing.T) {
	assert.Equal(t, footer.IconPhone, assets.Phone)
	assert.Equal(t, footer.IconAddress, assets.Location)
	assert.Equal(t, footer.IconWebsite, assets.Globe)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":              ModeSave,
		"save":          ModeSave,
		"OPEN":          ModeOpen,
		" blob ":        ModeBlob,
		"datauristring": ModeDataURI,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("print")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestGenerateProposalBlob(t *testing.T) {
	rec := surfacetest.New()
	g := newRecorded(t, rec)

	res, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeBlob)
	require.NoError(t, err)

	assert.Equal(t, ModeBlob, res.Mode)
	assert.Equal(t, "Proposta_João_da_Silva_10-03-2024.pdf", res.FileName)
	assert.Equal(t, 4, res.Pages)
	assert.NotEmpty(t, res.RenderID)
	assert.True(t, strings.HasPrefix(string(res.Bytes), "%PDF"))
	assert.Empty(t, res.Path)
	assert.Empty(t, res.DataURI)

	assert.Equal(t, "Quantum Tecnologia", rec.Meta.Author)
	assert.Contains(t, rec.Meta.Title, "João da Silva")
	assert.Contains(t, rec.Meta.Keywords, res.RenderID)
	assert.Equal(t, "proposalpdf", rec.Meta.Creator)
}

func TestGenerateProposalRealPDF(t *testing.T) {
	g, err := New(WithAssets(assets.NewCache()))
	require.NoError(t, err)

	res, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeBlob)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(res.Bytes), "%PDF-"))
	assert.Equal(t, 4, res.Pages)
}

func TestGenerateProposalDataURI(t *testing.T) {
	rec := surfacetest.New()
	g := newRecorded(t, rec)

	res, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeDataURI)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.DataURI, "data:application/pdf;filename=generated.pdf;base64,"))
	assert.Nil(t, res.Bytes)
}

func TestGenerateProposalSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	rec := surfacetest.New()
	g := newRecorded(t, rec, WithOutputDir(dir))

	res, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), "")
	require.NoError(t, err)

	assert.Equal(t, ModeSave, res.Mode)
	assert.Equal(t, filepath.Join(dir, res.FileName), res.Path)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestGenerateProposalOpen(t *testing.T) {
	var opened string
	rec := surfacetest.New()
	g := newRecorded(t, rec, WithOpener(func(_ context.Context, path string) error {
		opened = path
		return nil
	}))

	res, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeOpen)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(filepath.Dir(res.Path)) })

	assert.Equal(t, res.Path, opened)
	assert.Equal(t, res.FileName, filepath.Base(opened))
	_, err = os.Stat(opened)
	assert.NoError(t, err)
}

func TestGenerateOpenerFailure(t *testing.T) {
	rec := surfacetest.New()
	g := newRecorded(t, rec, WithOpener(func(context.Context, string) error {
		return errors.New("no viewer")
	}))

	_, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeOpen)
	var gerr *GenerateError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "output", gerr.Op)
	assert.Contains(t, err.Error(), "no viewer")
}

func TestGenerateUnknownMode(t *testing.T) {
	rec := surfacetest.New()
	g := newRecorded(t, rec)

	_, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), Mode("print"))
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Zero(t, rec.PageNo(), "nothing is drawn for an invalid mode")
}

func TestGenerateNilDocument(t *testing.T) {
	g := newRecorded(t, surfacetest.New())

	_, err := g.GenerateProposal(context.Background(), nil, ModeBlob)
	assert.ErrorIs(t, err, ErrNilDocument)
	_, err = g.GenerateContract(context.Background(), nil, ModeBlob)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestGenerateAssetFailure(t *testing.T) {
	dir := t.TempDir()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, metrics.Config{})
	rec := surfacetest.New()
	g := newRecorded(t, rec,
		WithOutputDir(dir),
		WithMetrics(m),
		WithAssetSources(assets.Sources{assets.Logo: filepath.Join(dir, "missing.png")}),
	)

	res, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeSave)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrAssetLoad)

	var gerr *GenerateError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "assets", gerr.Op)
	assert.Contains(t, err.Error(), "logo")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output is produced")
	assert.Zero(t, rec.PageNo())

	n, err := testutil.GatherAndCount(reg, "proposalpdf_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGenerateStationery(t *testing.T) {
	rec := surfacetest.New()
	g := newRecorded(t, rec, WithStationery("papel.pdf"))

	_, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeBlob)
	require.NoError(t, err)

	var pages []int
	for _, op := range rec.Ops {
		if op.Kind == surfacetest.OpTemplate {
			pages = append(pages, op.Page)
			assert.Equal(t, "papel.pdf", op.Name)
			assert.Equal(t, 210.0, op.W)
		}
	}
	assert.Equal(t, []int{2, 3, 4}, pages, "stationery is drawn behind content pages only")
}

func TestGenerateStationeryFailure(t *testing.T) {
	rec := surfacetest.New()
	rec.FailTemplate = true
	g := newRecorded(t, rec, WithStationery("missing.pdf"))

	_, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeBlob)
	assert.ErrorIs(t, err, ErrAssetLoad)
}

func TestGenerateUndatedUsesClock(t *testing.T) {
	doc := doctpl.SampleProposal()
	doc.Date = doctpl.Date{}
	rec := surfacetest.New()
	g := newRecorded(t, rec)

	res, err := g.GenerateProposal(context.Background(), doc, ModeBlob)
	require.NoError(t, err)
	assert.Equal(t, "Proposta_João_da_Silva_02-06-2025.pdf", res.FileName)
	_, ok := rec.Find("02/06/2025")
	assert.True(t, ok)
}

func TestGenerateCompanyDefaults(t *testing.T) {
	doc := doctpl.SampleProposal()
	doc.Company = doctpl.CompanyConfig{Name: "Acme"}
	rec := surfacetest.New()
	g := newRecorded(t, rec, WithCompanyDefaults(doctpl.CompanyConfig{
		Name:  "Ignored",
		Phone: "(11) 4000-0000",
	}))

	_, err := g.GenerateProposal(context.Background(), doc, ModeBlob)
	require.NoError(t, err)
	assert.Equal(t, "Acme", rec.Meta.Author)
	assert.True(t, rec.Contains("(11) 4000-0000"))
	assert.False(t, rec.Contains("Ignored"))
}

func TestGenerateLogsAndMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := prometheus.NewRegistry()
	rec := surfacetest.New()
	g := newRecorded(t, rec,
		WithLogger(zap.New(core)),
		WithMetrics(metrics.New(reg, metrics.Config{ServiceName: "test", Environment: "ci"})),
	)

	res, err := g.GenerateContract(context.Background(), doctpl.SampleContract(), ModeBlob)
	require.NoError(t, err)

	entries := logs.FilterMessage("document generated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, res.RenderID, fields["render_id"])
	assert.Equal(t, KindContract, fields["kind"])
	assert.Equal(t, "blob", fields["mode"])
	assert.EqualValues(t, res.Pages, fields["pages"])

	expected := `
# HELP proposalpdf_documents_total Documents generated successfully.
# TYPE proposalpdf_documents_total counter
proposalpdf_documents_total{env="ci",kind="contract",mode="blob",service="test"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "proposalpdf_documents_total"))
}

func TestGenerateSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	core, logs := observer.New(zapcore.InfoLevel)
	rec := surfacetest.New()
	g := newRecorded(t, rec, WithTracerProvider(tp), WithLogger(zap.New(core)))

	_, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeBlob)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "proposalpdf.Generate", spans[0].Name())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), fields["trace_id"])

	bad := newRecorded(t, surfacetest.New(), WithTracerProvider(tp),
		WithAssetSources(assets.Sources{assets.Logo: "data:image/png;base64,AAAA"}))
	_, err = bad.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeBlob)
	require.Error(t, err)
	spans = sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestGenerateConcurrent(t *testing.T) {
	g, err := New(
		WithAssets(assets.NewCache()),
		WithSurfaceFactory(func() surface.Document { return surfacetest.New() }),
	)
	require.NoError(t, err)

	const n = 8
	ids := make(chan string, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			res, err := g.GenerateProposal(context.Background(), doctpl.SampleProposal(), ModeBlob)
			if err != nil {
				errs <- err
				return
			}
			ids <- res.RenderID
		}()
	}
	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		select {
		case err := <-errs:
			t.Fatal(err)
		case id := <-ids:
			assert.False(t, seen[id], "render ids are unique")
			seen[id] = true
		}
	}
}

func TestSaveKeepsClientNameInsideOutputDir(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	doc := doctpl.SampleProposal()
	doc.Client.Name = "x/../../escaped"

	g := newRecorded(t, surfacetest.New(), WithOutputDir(out))
	res, err := g.GenerateProposal(context.Background(), doc, ModeSave)
	require.NoError(t, err)

	assert.Equal(t, "Proposta_x/../../escaped_10-03-2024.pdf", res.FileName)
	assert.Equal(t, filepath.Join(out, "Proposta_x_.._.._escaped_10-03-2024.pdf"), res.Path)
	assert.FileExists(t, res.Path)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out", entries[0].Name())
}

func TestOpenKeepsClientNameInsideTempDir(t *testing.T) {
	doc := doctpl.SampleProposal()
	doc.Client.Name = `..\..\escaped`

	var opened string
	g := newRecorded(t, surfacetest.New(), WithOpener(func(_ context.Context, path string) error {
		opened = path
		return nil
	}))
	res, err := g.GenerateProposal(context.Background(), doc, ModeOpen)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(filepath.Dir(res.Path)) })

	assert.Equal(t, res.Path, opened)
	assert.Equal(t, "Proposta_.._.._escaped_10-03-2024.pdf", filepath.Base(res.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(filepath.Dir(res.Path)), "proposalpdf-"))
}

func TestDiskPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	tests := []struct {
		name string
		want string
	}{
		{"Proposta_Ana_10-03-2024.pdf", "Proposta_Ana_10-03-2024.pdf"},
		{"Contrato_CT/7_Ana_10-03-2024.pdf", "Contrato_CT_7_Ana_10-03-2024.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{`a\b`, "a_b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := diskPath(dir, tt.name)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}

	for _, bad := range []string{"", ".", ".."} {
		_, err := diskPath(dir, bad)
		assert.Error(t, err, "name %q", bad)
	}
}

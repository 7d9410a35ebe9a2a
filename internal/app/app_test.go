package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proposalpdf "github.com/diegolsarmond/custom-proposal-maker"
	"github.com/diegolsarmond/custom-proposal-maker/assets"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
	"github.com/diegolsarmond/custom-proposal-maker/surface"
	"github.com/diegolsarmond/custom-proposal-maker/surface/surfacetest"
)

func TestNewAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "app.env")
	require.NoError(t, os.WriteFile(env, []byte("PROPOSAL_LOG_LEVEL=debug\nPROPOSAL_OUTPUT_DIR=/nowhere\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PROPOSAL_LOG_LEVEL")
		os.Unsetenv("PROPOSAL_OUTPUT_DIR")
	})

	out := filepath.Join(dir, "out")
	a, err := New("proposalpdf-test", env, Overrides{OutputDir: out, LogLevel: "warn"},
		proposalpdf.WithAssets(assets.NewCache()),
		proposalpdf.WithSurfaceFactory(func() surface.Document { return surfacetest.New() }),
	)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, out, a.Config.OutputDir)
	assert.Equal(t, "warn", a.Config.LogLevel)
	assert.NotNil(t, a.Metrics)

	res, err := a.Generator.GenerateProposal(context.Background(), doctpl.SampleProposal(), proposalpdf.ModeSave)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "Proposta_João_da_Silva_10-03-2024.pdf"), res.Path)
	assert.FileExists(t, res.Path)
}

func TestNewRejectsBadLogLevel(t *testing.T) {
	_, err := New("proposalpdf-test", filepath.Join(t.TempDir(), "missing.env"), Overrides{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestServeMetricsWithoutAddress(t *testing.T) {
	a, err := New("proposalpdf-test", filepath.Join(t.TempDir(), "missing.env"), Overrides{})
	require.NoError(t, err)
	a.ServeMetrics(context.Background())
}

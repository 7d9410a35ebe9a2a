package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegolsarmond/custom-proposal-maker/assets"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "Quantum Tecnologia", cfg.Company.Name)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.EqualValues(t, 1, cfg.NodeID)
	assert.Empty(t, cfg.Assets)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PROPOSAL_COMPANY_NAME", "Acme")
	t.Setenv("PROPOSAL_COMPANY_WEBSITE", " acme.com.br ")
	t.Setenv("PROPOSAL_OUTPUT_DIR", "/tmp/out")
	t.Setenv("PROPOSAL_LOGO", "/srv/logo.png")
	t.Setenv("PROPOSAL_NODE_ID", "7")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.Company.Name)
	assert.Equal(t, "acme.com.br", cfg.Company.Website)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, "/srv/logo.png", cfg.Assets[assets.Logo])
	assert.EqualValues(t, 7, cfg.NodeID)
}

func TestFromEnvRejectsBadNodeID(t *testing.T) {
	t.Setenv("PROPOSAL_NODE_ID", "abc")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "PROPOSAL_NODE_ID")

	t.Setenv("PROPOSAL_NODE_ID", "2048")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PROPOSAL_COMPANY_PHONE=(11) 4000-0000\nPROPOSAL_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("PROPOSAL_LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("PROPOSAL_COMPANY_PHONE") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "(11) 4000-0000", cfg.Company.Phone)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

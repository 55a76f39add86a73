package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, FormatStyled, cfg.Format)
	assert.Equal(t, time.Minute, cfg.SolverTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.SolverTimeout = -time.Second },
			wantErr: "solverTimeout",
		},
		{
			name:    "negative tolerance",
			mutate:  func(c *Config) { c.Tolerance = -1 },
			wantErr: "tolerance",
		},
		{
			name:    "non-positive sample endowment",
			mutate:  func(c *Config) { c.SampleEndowments = []float64{1, 0} },
			wantErr: "sampleEndowments",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "xml" },
			wantErr: "format",
		},
		{
			name:    "malformed endowment",
			mutate:  func(c *Config) { c.Endowment = "four" },
			wantErr: "endowment",
		},
		{
			name:    "non-positive endowment",
			mutate:  func(c *Config) { c.Endowment = "-4" },
			wantErr: "endowment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEndowmentValue(t *testing.T) {
	cfg := Default()

	_, bound, err := cfg.EndowmentValue()
	require.NoError(t, err)
	assert.False(t, bound)

	cfg.Endowment = "7/2"
	r, bound, err := cfg.EndowmentValue()
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Zero(t, r.Cmp(big.NewRat(7, 2)))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walras.yaml")
	doc := "solverTimeout: 30s\nformat: yaml\nendowment: \"4\"\ntolerance: 1e-6\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.SolverTimeout)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, "4", cfg.Endowment)
	assert.Equal(t, 1e-6, cfg.Tolerance)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().SampleEndowments, cfg.SampleEndowments)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walras.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

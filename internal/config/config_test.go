package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("kaspa:qwallet")

	assert.Equal(t, "kaspa:qwallet", cfg.Wallet.Address)
	assert.Equal(t, "https://api.kaspa.org", cfg.Explorer.BaseURL)
	assert.Equal(t, 30, cfg.Explorer.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Explorer.MaxRetries)
	assert.Equal(t, "2022-01-01", cfg.Explorer.Cutoff)
	assert.Equal(t, "kas-usd-max.csv", cfg.Inputs.PriceCSV)
	assert.Equal(t, -1.0, cfg.Dip.Drop)
	assert.Equal(t, 1.0, cfg.Dip.Rise)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := Default("kaspa:qwallet")
	cfg.Explorer.MaxPages = 42
	cfg.Inputs.LabelsCSV = "my_labels.csv"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	yaml := "wallet:\n  address: kaspa:qpartial\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kaspa:qpartial", cfg.Wallet.Address)
	assert.Empty(t, cfg.Explorer.BaseURL, "absent sections stay zero valued")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("wallet: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

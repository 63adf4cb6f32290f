package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rncernic/asm24/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_MatchesBuiltInLimits(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, 1000, cfg.Limits.MaxSymbols)
	assert.Equal(t, 100, cfg.Limits.MaxMacros)
	assert.Equal(t, 100, cfg.Limits.MaxMacroLines)
	assert.Equal(t, 80, cfg.Limits.MaxLineLength)
	assert.Equal(t, 100, cfg.Layout.BaseAddress)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_OverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asm24.toml")
	body := `
[limits]
max_symbols = 50

[layout]
base_address = 200
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Limits.MaxSymbols)
	assert.Equal(t, 200, cfg.Layout.BaseAddress)
	// Load decodes on top of the defaults, so fields absent from the
	// file keep their default value rather than being zeroed out.
	assert.Equal(t, 100, cfg.Limits.MaxMacros)
}

func TestLoad_MalformedTOMLFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not valid = [toml"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

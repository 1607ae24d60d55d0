package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_url": "postgres://localhost/scores",
		"match_distance_threshold": 0.3,
		"port": 9090
	}`), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/scores", cfg.DatabaseURL)
	assert.Equal(t, 0.3, cfg.MatchDistanceThreshold)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{MatchDistanceThreshold: 0.25, IndustryMatchWindow: 3, Port: 8080}
	assert.NoError(t, cfg.Validate())

	cfg = Config{MatchDistanceThreshold: 2.5}
	assert.Error(t, cfg.Validate())

	cfg = Config{IndustryMatchWindow: -1}
	assert.Error(t, cfg.Validate())

	cfg = Config{WeightagePath: "/does/not/exist.json"}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://primary"}
	defaults := Config{
		DatabaseURL:            "postgres://fallback",
		APIKey:                 "default-key",
		MatchDistanceThreshold: 0.3,
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Set values win; empty ones fall back.
	assert.Equal(t, "postgres://primary", merged.DatabaseURL)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, 0.3, merged.MatchDistanceThreshold)
	assert.Equal(t, 3, merged.IndustryMatchWindow)
}

func TestMergeWithDefaultsBuiltins(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 0.25, merged.MatchDistanceThreshold)
	assert.Equal(t, 3, merged.IndustryMatchWindow)
}

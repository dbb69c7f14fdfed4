package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Engine.VoteCap)
	assert.Equal(t, 10, cfg.Engine.MaxResults)
	assert.Equal(t, "rating-heavy", cfg.Engine.DefaultStrategy)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
dataset:
  path: /data/zomato.csv
engine:
  vote_cap: 500
  max_results: 5
  default_strategy: votes-heavy
strategies:
  balanced:
    rating: 0.6
    votes: 0.4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/zomato.csv", cfg.Dataset.Path)
	assert.Equal(t, 500, cfg.Engine.VoteCap)
	assert.Equal(t, 5, cfg.Engine.MaxResults)
	assert.Equal(t, "votes-heavy", cfg.Engine.DefaultStrategy)
	require.Contains(t, cfg.Strategies, "balanced")
	assert.Equal(t, 0.6, cfg.Strategies["balanced"]["rating"])
}

func TestLoadFromFile_InvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate_ClampsEngineValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.VoteCap = 0
	cfg.Engine.MaxResults = -3

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Engine.VoteCap)
	assert.Equal(t, 10, cfg.Engine.MaxResults)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BISTRO_DATA", "/env/data.csv")
	t.Setenv("BISTRO_LOG_LEVEL", "warn")

	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/data.csv", cfg.Dataset.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnvOverrides_Debug(t *testing.T) {
	t.Setenv("BISTRO_DEBUG", "1")

	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestGetSet_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	for _, key := range ListKeys() {
		_, err := cfg.Get(key)
		require.NoError(t, err, "key %s must be gettable", key)
	}

	require.NoError(t, cfg.Set("engine.vote_cap", "2000"))
	got, err := cfg.Get("engine.vote_cap")
	require.NoError(t, err)
	assert.Equal(t, "2000", got)

	assert.Error(t, cfg.Set("engine.vote_cap", "zero"))
	assert.Error(t, cfg.Set("engine.vote_cap", "0"))
	assert.Error(t, cfg.Set("log.level", "loud"))
	assert.Error(t, cfg.Set("nope.nope", "x"))
	_, err = cfg.Get("nope.nope")
	assert.Error(t, err)
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Dataset.Path = "/saved.csv"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/saved.csv", loaded.Dataset.Path)
}

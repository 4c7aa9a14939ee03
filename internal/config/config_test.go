package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, int64(500), cfg.MaxResults)
	assert.Equal(t, "US", cfg.Region)
	assert.Equal(t, "en", cfg.CaptionLanguage)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, 10.0, cfg.RequestsPerSecond)
	assert.Equal(t, 2.5, cfg.CaptionRPS)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadValidFile(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "key-from-env")

	content := []byte(`
max_results: 100
region: BR
caption_language: pt
output_dir: exports
requests_per_second: 4
caption_requests_per_second: 1
`)
	path := filepath.Join(t.TempDir(), "collector.yml")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(100), cfg.MaxResults)
	assert.Equal(t, "BR", cfg.Region)
	assert.Equal(t, "pt", cfg.CaptionLanguage)
	assert.Equal(t, "exports", cfg.OutputDir)
	assert.Equal(t, 4.0, cfg.RequestsPerSecond)
	assert.Equal(t, 1.0, cfg.CaptionRPS)
	assert.Equal(t, "key-from-env", cfg.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	content := []byte("max_results: -5\n")
	path := filepath.Join(t.TempDir(), "collector.yml")
	require.NoError(t, os.WriteFile(path, content, 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collector.yml")
	require.NoError(t, os.WriteFile(path, []byte("max_results: [oops"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

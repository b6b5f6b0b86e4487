package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAnalyzer_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadAnalyzer(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAnalyzerConfig(), cfg)
	assert.Equal(t, 200, cfg.ArcThreshold)
	assert.Equal(t, 100, cfg.ChunkSize)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, "weighted", cfg.Aggregation)
	assert.Zero(t, cfg.Timeout())
}

func TestLoadAnalyzer_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "litsense.yaml")
	data := []byte("model_path: models/sentiment\nchunk_size: 50\nclean_text: true\ntimeout_secs: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadAnalyzer(path)
	require.NoError(t, err)
	assert.Equal(t, "models/sentiment", cfg.ModelPath)
	assert.Equal(t, 50, cfg.ChunkSize)
	assert.True(t, cfg.Clean)
	assert.Equal(t, 2*time.Second, cfg.Timeout())
	assert.Equal(t, 200, cfg.ArcThreshold, "unset fields fall back to defaults")
	assert.Equal(t, 3, cfg.TopN)
}

func TestLoadAnalyzer_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: [1, 2"), 0o644))

	_, err := LoadAnalyzer(path)
	require.Error(t, err)
}

func TestSaveAnalyzer_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "litsense.yaml")
	want := DefaultAnalyzerConfig()
	want.EmotionKeywordsPath = "keywords.yaml"
	want.Parallelism = 4

	require.NoError(t, SaveAnalyzer(path, want))
	got, err := LoadAnalyzer(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

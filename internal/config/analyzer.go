package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// AnalyzerConfig holds the settings shared by the CLI and the server for
// building a litsense.Analyzer.
type AnalyzerConfig struct {
	ModelPath               string `yaml:"model_path"`
	EmotionKeywordsPath     string `yaml:"emotion_keywords_path"`
	SubjectivityLexiconPath string `yaml:"subjectivity_lexicon_path"`
	ArcThreshold            int    `yaml:"arc_threshold"`
	ChunkSize               int    `yaml:"chunk_size"`
	TopN                    int    `yaml:"top_n"`
	Aggregation             string `yaml:"aggregation"`
	Parallelism             int    `yaml:"parallelism"`
	Clean                   bool   `yaml:"clean_text"`
	DetectLanguage          bool   `yaml:"detect_language"`
	TimeoutSecs             int    `yaml:"timeout_secs"`
}

// Timeout returns the per-analysis deadline, zero when none is set.
func (c AnalyzerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// LoadAnalyzer reads an analyzer config from path. If the file does not exist, returns defaults.
func LoadAnalyzer(path string) (*AnalyzerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultAnalyzerConfig(), nil
		}
		return nil, err
	}
	var cfg AnalyzerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// SaveAnalyzer writes the config to the given path, creating directories as needed.
func SaveAnalyzer(path string, cfg *AnalyzerConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultAnalyzerConfig returns the settings used when no config file exists.
func DefaultAnalyzerConfig() *AnalyzerConfig {
	cfg := &AnalyzerConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AnalyzerConfig) {
	if cfg.ArcThreshold <= 0 {
		cfg.ArcThreshold = 200
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 100
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if cfg.Aggregation == "" {
		cfg.Aggregation = "weighted"
	}
}

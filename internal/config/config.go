// Package config loads the server settings from the environment and the
// analyzer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/tsawler/litsense"
)

type Config struct {
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	RedisURL    string `env:"REDIS_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	ModelPath               string        `env:"MODEL_PATH"`
	EmotionKeywordsPath     string        `env:"EMOTION_KEYWORDS_PATH"`
	SubjectivityLexiconPath string        `env:"SUBJECTIVITY_LEXICON_PATH"`
	ArcThreshold            int           `env:"ARC_THRESHOLD" default:"200"`
	ChunkSize               int           `env:"CHUNK_SIZE" default:"100"`
	TopN                    int           `env:"TOP_N" default:"3"`
	Aggregation             string        `env:"AGGREGATION" default:"weighted"`
	Parallelism             int           `env:"PARALLELISM" default:"0"`
	CleanText               bool          `env:"CLEAN_TEXT" default:"false"`
	DetectLanguage          bool          `env:"DETECT_LANGUAGE" default:"true"`
	AnalysisTimeout         time.Duration `env:"ANALYSIS_TIMEOUT" default:"30s"`

	CacheTTL        time.Duration `env:"CACHE_TTL" default:"24h"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" default:"10"`
	MaxBodySize     string        `env:"MAX_BODY_SIZE" default:"1M"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Analyzer returns the analyzer settings carried by the environment.
func (c *Config) Analyzer() AnalyzerConfig {
	return AnalyzerConfig{
		ModelPath:               c.ModelPath,
		EmotionKeywordsPath:     c.EmotionKeywordsPath,
		SubjectivityLexiconPath: c.SubjectivityLexiconPath,
		ArcThreshold:            c.ArcThreshold,
		ChunkSize:               c.ChunkSize,
		TopN:                    c.TopN,
		Aggregation:             c.Aggregation,
		Parallelism:             c.Parallelism,
		Clean:                   c.CleanText,
		DetectLanguage:          c.DetectLanguage,
		TimeoutSecs:             int(c.AnalysisTimeout / time.Second),
	}
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return errors.New("PORT is required")
	}
	if cfg.ChunkSize < 1 {
		return fmt.Errorf("CHUNK_SIZE must be at least 1, got %d", cfg.ChunkSize)
	}
	if cfg.ArcThreshold < 0 {
		return fmt.Errorf("ARC_THRESHOLD must not be negative, got %d", cfg.ArcThreshold)
	}
	if cfg.TopN < 0 {
		return fmt.Errorf("TOP_N must not be negative, got %d", cfg.TopN)
	}
	if cfg.Parallelism < 0 {
		return fmt.Errorf("PARALLELISM must not be negative, got %d", cfg.Parallelism)
	}
	if _, err := litsense.ParseAggregationMethod(cfg.Aggregation); err != nil {
		return fmt.Errorf("AGGREGATION: %w", err)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_RPS must be positive and RATE_LIMIT_BURST at least 1")
	}
	if cfg.RedisURL != "" && !strings.HasPrefix(cfg.RedisURL, "redis://") && !strings.HasPrefix(cfg.RedisURL, "rediss://") {
		return errors.New("REDIS_URL must start with redis:// or rediss://")
	}
	if cfg.AnalysisTimeout < 0 {
		return errors.New("ANALYSIS_TIMEOUT must not be negative")
	}
	return nil
}

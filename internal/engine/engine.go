// Package engine builds a litsense.Analyzer from analyzer settings.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/config"
	"github.com/tsawler/litsense/internal/metrics"
)

// New builds an Analyzer from cfg. Keyword tables and lexicons named in cfg
// are loaded from disk; a missing sentiment model is logged and the analyzer
// scores with the polarity lexicon. extra options are applied last.
func New(cfg config.AnalyzerConfig, logger *slog.Logger, extra ...litsense.AnalyzerOpt) (*litsense.Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts, err := Options(cfg, logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, litsense.WithStageObserver(metrics.StageObserver()))

	analyzer, err := litsense.NewAnalyzer(append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzer: %w", err)
	}

	logger.Info("Analyzer ready",
		"sentiment_strategy", analyzer.Sentiment().Strategy().String(),
		"emotions", analyzer.Emotion().Table().Len(),
		"arc_threshold", cfg.ArcThreshold,
		"chunk_size", cfg.ChunkSize)
	return analyzer, nil
}

// Options translates cfg into analyzer options without building the analyzer.
func Options(cfg config.AnalyzerConfig, logger *slog.Logger) ([]litsense.AnalyzerOpt, error) {
	aggregation, err := litsense.ParseAggregationMethod(cfg.Aggregation)
	if err != nil {
		return nil, err
	}

	opts := []litsense.AnalyzerOpt{
		litsense.WithLogger(logger),
		litsense.WithArcThreshold(cfg.ArcThreshold),
		litsense.WithChunkSize(cfg.ChunkSize),
		litsense.WithTopN(cfg.TopN),
		litsense.WithAggregation(aggregation),
		litsense.WithParallelism(cfg.Parallelism),
		litsense.WithCleaning(cfg.Clean),
		litsense.WithLanguageDetection(cfg.DetectLanguage),
		litsense.WithTimeout(cfg.Timeout()),
	}

	if cfg.ModelPath != "" {
		opts = append(opts, litsense.UsingModelPath(cfg.ModelPath))
	}

	if cfg.EmotionKeywordsPath != "" {
		table, err := litsense.LoadEmotionKeywords(cfg.EmotionKeywordsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load emotion keywords: %w", err)
		}
		opts = append(opts, litsense.UsingEmotionKeywords(table))
	}

	if cfg.SubjectivityLexiconPath != "" {
		lexicon := litsense.NewSubjectivityLexicon()
		if err := lexicon.LoadExternalLexicon(cfg.SubjectivityLexiconPath, litsense.SupportedLanguages()...); err != nil {
			return nil, fmt.Errorf("failed to load subjectivity lexicon: %w", err)
		}
		opts = append(opts, litsense.UsingSubjectivityLexicon(lexicon))
	}

	return opts, nil
}

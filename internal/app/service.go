package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/domain"
	"github.com/tsawler/litsense/internal/metrics"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// Analyzer is the part of litsense.Analyzer the service uses.
type Analyzer interface {
	AnalyzeComplete(ctx context.Context, text string, textType litsense.TextType) (*litsense.AnalysisResult, error)
	CompareTexts(ctx context.Context, texts []string, labels []string) ([]litsense.Comparison, error)
}

// Service runs analyses and keeps their records. cache and history are
// optional; a nil value disables that layer.
type Service struct {
	analyzer Analyzer
	cache    domain.ResultCache
	history  domain.AnalysisRepository
	clock    clockwork.Clock
	group    singleflight.Group
}

// NewService creates the application layer service.
func NewService(analyzer Analyzer, cache domain.ResultCache, history domain.AnalysisRepository, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		analyzer: analyzer,
		cache:    cache,
		history:  history,
		clock:    clock,
	}
}

// HistoryEnabled reports whether records are persisted.
func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}

// Analyze returns the analysis of text, from the cache when an identical
// request was answered recently. Concurrent identical requests share one
// analysis.
func (s *Service) Analyze(ctx context.Context, text string, textType litsense.TextType) (*domain.Record, error) {
	textType, err := litsense.ParseTextType(string(textType))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		metrics.AnalysesTotal.WithLabelValues(string(textType), "rejected").Inc()
		return nil, &litsense.InsufficientInputError{Stage: litsense.StageStart, Reason: "text is empty"}
	}

	hash := domain.TextHash(textType, text)
	if record := s.cached(ctx, hash); record != nil {
		metrics.AnalysesTotal.WithLabelValues(string(textType), "cached").Inc()
		return record, nil
	}

	// The shared analysis outlives any single caller; the analyzer's own
	// timeout bounds it.
	ch := s.group.DoChan(hash, func() (any, error) {
		return s.analyze(context.WithoutCancel(ctx), hash, text, textType)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		metrics.AnalysesTotal.WithLabelValues(string(textType), "cancelled").Inc()
		return nil, ctx.Err()
	}
	if res.Err != nil {
		metrics.AnalysesTotal.WithLabelValues(string(textType), "error").Inc()
		return nil, res.Err
	}
	metrics.AnalysesTotal.WithLabelValues(string(textType), "success").Inc()

	record := *res.Val.(*domain.Record)
	if res.Shared {
		slog.Debug("Shared in-flight analysis", "analysis_id", record.ID.String())
	}
	return &record, nil
}

func (s *Service) cached(ctx context.Context, hash string) *domain.Record {
	if s.cache == nil {
		return nil
	}
	record, ok, err := s.cache.Get(ctx, hash)
	if err != nil {
		slog.Warn("Result cache lookup failed, analyzing", "hash", hash, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return record
}

func (s *Service) analyze(ctx context.Context, hash, text string, textType litsense.TextType) (*domain.Record, error) {
	result, err := s.analyzer.AnalyzeComplete(ctx, text, textType)
	if err != nil {
		return nil, err
	}

	record := &domain.Record{
		ID:        uuid.New(),
		CreatedAt: s.clock.Now().UTC(),
		TextType:  textType,
		TextHash:  hash,
		Result:    result,
		Summary:   litsense.GenerateSummary(result),
	}

	// Storage is best-effort: the caller still gets the analysis.
	if s.history != nil {
		if err := s.history.Save(ctx, record); err != nil {
			slog.Error("Failed to save analysis", "analysis_id", record.ID.String(), "error", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, hash, record); err != nil {
			slog.Warn("Failed to cache analysis", "analysis_id", record.ID.String(), "error", err)
		}
	}

	slog.Info("Analysis complete",
		"analysis_id", record.ID.String(),
		"text_type", textType,
		"words", result.Features.WordCount,
		"sentiment", result.Sentiment.OverallSentiment,
		"emotion", result.Emotions.PrimaryEmotion)
	return record, nil
}

// Compare profiles texts side by side. Comparisons are not cached.
func (s *Service) Compare(ctx context.Context, texts []string, labels []string) ([]litsense.Comparison, error) {
	return s.analyzer.CompareTexts(ctx, texts, labels)
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	if s.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	return s.history.Get(ctx, id)
}

// Recent returns the newest stored analyses. limit is clamped to
// [1, MaxRecentLimit]; zero or less means DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.Record, error) {
	if s.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	return s.history.Recent(ctx, limit)
}

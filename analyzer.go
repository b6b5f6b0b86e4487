package litsense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// An AnalyzerOpt represents a setting that changes how an Analyzer is built.
//
// For example, it might raise the length at which the emotional arc is tracked:
//
//	a, err := litsense.NewAnalyzer(litsense.WithArcThreshold(500))
type AnalyzerOpt func(a *Analyzer, opts *AnalyzerOpts)

// AnalyzerOpts controls the Analyzer creation process.
type AnalyzerOpts struct {
	ArcThreshold      int                                   // Arc is tracked above this many words
	ChunkSize         int                                   // Words per arc chunk
	TopN              int                                   // Emotions listed in TopEmotions
	Aggregation       AggregationMethod                     // Document sentiment aggregation
	Parallelism       int                                   // Concurrent units per scorer; 0 means GOMAXPROCS
	Clean             bool                                  // If true, run CleanText before scoring
	DetectLanguage    bool                                  // If true, fill Metadata.Language
	Timeout           time.Duration                         // Per-call deadline; 0 means none
	ModelPath         string                                // Directory of a trained classifier
	Model             *Model                                // Trained classifier; wins over ModelPath
	EmotionKeywords   *EmotionKeywordTable                  // Keyword table for the default emotion scorer
	SubjectivityWords *SubjectivityLexicon                  // Lexicon for the default subjectivity scorer
	Observer          func(stage Stage, took time.Duration) // Called after each stage
}

// WithTextProcessor sets the sentence and word splitter shared by the default scorers.
func WithTextProcessor(p TextProcessor) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		a.processor = p
	}
}

// WithSentimentScorer replaces the default sentiment scorer.
func WithSentimentScorer(s *SentimentScorer) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		a.sentiment = s
	}
}

// WithEmotionScorer replaces the default emotion scorer.
func WithEmotionScorer(s *EmotionScorer) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		a.emotion = s
	}
}

// WithSubjectivityScorer replaces the default subjectivity scorer.
func WithSubjectivityScorer(s *SubjectivityScorer) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		a.subjectivity = s
	}
}

// WithArcThreshold sets the word count above which the emotional arc is tracked.
func WithArcThreshold(words int) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.ArcThreshold = words
	}
}

// WithChunkSize sets the number of words per emotional arc chunk.
func WithChunkSize(words int) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.ChunkSize = words
	}
}

// WithTopN sets how many emotions are listed in TopEmotions.
func WithTopN(n int) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.TopN = n
	}
}

// WithAggregation sets how sentence sentiments become the document sentiment.
func WithAggregation(method AggregationMethod) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.Aggregation = method
	}
}

// WithParallelism bounds how many sentences or chunks the default scorers evaluate at once.
func WithParallelism(n int) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.Parallelism = n
	}
}

// WithCleaning can enable or disable (the default) text cleaning before scoring.
func WithCleaning(include bool) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.Clean = include
	}
}

// WithLanguageDetection can enable or disable (the default) language detection.
func WithLanguageDetection(include bool) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.DetectLanguage = include
	}
}

// WithTimeout sets a deadline for every analysis call.
func WithTimeout(timeout time.Duration) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.Timeout = timeout
	}
}

// UsingModel makes the default sentiment scorer model backed.
func UsingModel(model *Model) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.Model = model
	}
}

// UsingModelPath loads the sentiment model from path. A missing model is not
// an error: the analyzer logs it and scores with the polarity lexicon.
func UsingModelPath(path string) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.ModelPath = path
	}
}

// UsingEmotionKeywords sets the keyword table of the default emotion scorer.
func UsingEmotionKeywords(table EmotionKeywordTable) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.EmotionKeywords = &table
	}
}

// UsingSubjectivityLexicon sets the lexicon of the default subjectivity scorer.
func UsingSubjectivityLexicon(lexicon *SubjectivityLexicon) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.SubjectivityWords = lexicon
	}
}

// WithClock sets the clock used for timestamps and stage timings.
func WithClock(clock clockwork.Clock) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		a.clock = clock
	}
}

// WithLogger sets the logger for stage transitions and fallbacks.
func WithLogger(logger *slog.Logger) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		a.logger = logger
	}
}

// WithStageObserver registers fn to receive the duration of every stage.
func WithStageObserver(fn func(stage Stage, took time.Duration)) AnalyzerOpt {
	return func(a *Analyzer, opts *AnalyzerOpts) {
		opts.Observer = fn
	}
}

var defaultAnalyzerOpts = AnalyzerOpts{
	ArcThreshold: 200,
	ChunkSize:    100,
	TopN:         3,
	Aggregation:  Weighted,
}

// An Analyzer runs the complete literary analysis pipeline.
//
// An Analyzer is immutable after NewAnalyzer returns and is safe for
// concurrent use.
type Analyzer struct {
	processor    TextProcessor
	sentiment    *SentimentScorer
	emotion      *EmotionScorer
	subjectivity *SubjectivityScorer
	detector     *LanguageDetector
	clock        clockwork.Clock
	logger       *slog.Logger
	opts         AnalyzerOpts
}

// NewAnalyzer creates an Analyzer according to the user-specified options.
//
// For example,
//
//	a, err := litsense.NewAnalyzer(litsense.UsingModelPath("models/sentiment"))
func NewAnalyzer(opts ...AnalyzerOpt) (*Analyzer, error) {
	a := &Analyzer{}
	base := defaultAnalyzerOpts
	for _, applyOpt := range opts {
		applyOpt(a, &base)
	}

	if base.ChunkSize < 1 {
		return nil, ErrInvalidChunkSize
	}
	if base.ArcThreshold < 0 {
		return nil, fmt.Errorf("arc threshold must not be negative, got %d", base.ArcThreshold)
	}
	if base.TopN < 0 {
		return nil, fmt.Errorf("top emotion count must not be negative, got %d", base.TopN)
	}
	method, err := ParseAggregationMethod(string(base.Aggregation))
	if err != nil {
		return nil, err
	}
	base.Aggregation = method

	if a.clock == nil {
		a.clock = clockwork.NewRealClock()
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.processor == nil {
		if a.processor, err = NewTextProcessor(); err != nil {
			return nil, err
		}
	}

	var scorerOpts []ScorerOpt
	if base.Parallelism > 0 {
		scorerOpts = append(scorerOpts, UsingParallelism(base.Parallelism))
	}

	if a.sentiment == nil {
		if a.sentiment, err = a.defaultSentimentScorer(base); err != nil {
			return nil, err
		}
	}
	if a.emotion == nil {
		table := DefaultEmotionKeywords()
		if base.EmotionKeywords != nil {
			table = *base.EmotionKeywords
		}
		if a.emotion, err = NewEmotionScorer(table, a.processor, scorerOpts...); err != nil {
			return nil, err
		}
	}
	if a.subjectivity == nil {
		a.subjectivity = NewSubjectivityScorer(base.SubjectivityWords, a.processor)
	}
	if base.DetectLanguage {
		a.detector = NewLanguageDetector()
	}

	a.opts = base
	a.logger.Debug("analyzer ready",
		"sentiment_strategy", a.sentiment.Strategy().String(),
		"emotions", a.emotion.Table().Len(),
		"arc_threshold", base.ArcThreshold,
		"chunk_size", base.ChunkSize)
	return a, nil
}

func (a *Analyzer) defaultSentimentScorer(base AnalyzerOpts) (*SentimentScorer, error) {
	cfg := SentimentConfig{Processor: a.processor, Parallelism: base.Parallelism}

	switch {
	case base.Model != nil:
		cfg.Classifier = base.Model
	case base.ModelPath != "":
		model, err := ModelFromDisk(base.ModelPath)
		var unavailable *ModelUnavailableError
		switch {
		case errors.As(err, &unavailable):
			a.logger.Info("sentiment model unavailable, using polarity lexicon", "path", base.ModelPath, "error", err)
		case err != nil:
			return nil, err
		default:
			cfg.Classifier = model
		}
	}

	if cfg.Classifier == nil {
		cfg.Polarity = NewVaderPolarity()
	}
	return NewSentimentScorer(cfg)
}

// Options returns the settings the Analyzer was built with.
func (a *Analyzer) Options() AnalyzerOpts {
	return a.opts
}

// Sentiment returns the sentiment scorer.
func (a *Analyzer) Sentiment() *SentimentScorer {
	return a.sentiment
}

// Emotion returns the emotion scorer.
func (a *Analyzer) Emotion() *EmotionScorer {
	return a.emotion
}

// AnalyzeComplete runs every analysis stage over text and returns the full
// profile. It returns no partial result: a failing stage yields a
// *StageError naming it.
func (a *Analyzer) AnalyzeComplete(ctx context.Context, text string, textType TextType) (*AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InsufficientInputError{Stage: StageStart, Reason: "text is empty"}
	}
	textType, err := ParseTextType(string(textType))
	if err != nil {
		return nil, err
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	started := a.clock.Now()
	input := text
	if a.opts.Clean {
		if input = CleanText(text); input == "" {
			return nil, &InsufficientInputError{Stage: StageStart, Reason: "text is empty after cleaning"}
		}
	}

	result := &AnalysisResult{
		Metadata: Metadata{
			AnalyzedAt: started.UTC(),
			TextType:   textType,
			TextLength: utf8.RuneCountInString(text),
		},
	}
	if a.detector != nil {
		result.Metadata.Language, result.Metadata.LanguageConfidence = a.detector.Detect(input)
	}

	err = a.runStage(ctx, StageFeatures, func(ctx context.Context) error {
		features, err := ExtractFeatures(input, a.processor)
		if err != nil {
			return err
		}
		result.Features = features

		if textType == Poem {
			// Line breaks matter here, so the uncleaned text is used.
			structure, err := AnalyzePoeticStructure(text, a.processor)
			if err != nil {
				return err
			}
			result.PoeticStructure = &structure
		}

		literary, err := AnalyzeLiterary(text, a.processor)
		if err != nil {
			return err
		}
		result.Literary = literary
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = a.runStage(ctx, StageSentiment, func(ctx context.Context) error {
		doc, err := a.sentiment.Aggregate(ctx, input, a.opts.Aggregation)
		if err != nil {
			return err
		}
		result.Sentiment = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = a.runStage(ctx, StageEmotion, func(ctx context.Context) error {
		analysis := a.emotion.Analyze(input)
		analysis.TopEmotions = topN(a.emotion.Rank(analysis.AllEmotions), a.opts.TopN)
		result.Emotions = analysis
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = a.runStage(ctx, StageSubjectivity, func(ctx context.Context) error {
		subj, err := a.subjectivity.Score(input)
		if err != nil {
			return err
		}
		result.Subjectivity = subj
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Features.WordCount > a.opts.ArcThreshold {
		err = a.runStage(ctx, StageArc, func(ctx context.Context) error {
			arc, err := a.emotion.Arc(ctx, input, a.opts.ChunkSize)
			if err != nil {
				return err
			}
			result.EmotionalArc = arc
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	took := a.clock.Since(started)
	a.observe(StageComplete, took)
	a.logger.Debug("analysis complete",
		"text_type", textType,
		"words", result.Features.WordCount,
		"sentiment", result.Sentiment.OverallSentiment,
		"emotion", result.Emotions.PrimaryEmotion,
		"duration", took)
	return result, nil
}

func (a *Analyzer) runStage(ctx context.Context, stage Stage, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return &StageError{Stage: stage, Err: err}
	}

	started := a.clock.Now()
	err := fn(ctx)
	took := a.clock.Since(started)
	a.observe(stage, took)

	if err != nil {
		a.logger.Debug("stage failed", "stage", stage, "error", err)
		return &StageError{Stage: stage, Err: err}
	}
	a.logger.Debug("stage complete", "stage", stage, "duration", took)
	return nil
}

func (a *Analyzer) observe(stage Stage, took time.Duration) {
	if a.opts.Observer != nil {
		a.opts.Observer(stage, took)
	}
}

// CompareTexts scores sentiment, emotions and features of each text side by side.
// labels may be nil, in which case texts are labeled "Text 1", "Text 2", and so on.
func (a *Analyzer) CompareTexts(ctx context.Context, texts []string, labels []string) ([]Comparison, error) {
	if labels == nil {
		labels = make([]string, len(texts))
		for i := range texts {
			labels[i] = fmt.Sprintf("Text %d", i+1)
		}
	}
	if len(labels) != len(texts) {
		return nil, fmt.Errorf("got %d labels for %d texts", len(labels), len(texts))
	}

	comparisons := make([]Comparison, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.opts.Parallelism, 1))
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return &InsufficientInputError{Stage: StageStart, Reason: fmt.Sprintf("%s is empty", labels[i])}
			}
			if a.opts.Clean {
				text = CleanText(text)
			}

			sentiment, err := a.sentiment.Score(text)
			if err != nil {
				return err
			}
			features, err := ExtractFeatures(text, a.processor)
			if err != nil {
				return err
			}
			comparisons[i] = Comparison{
				Label:     labels[i],
				Sentiment: sentiment,
				Emotion:   a.emotion.Analyze(text),
				Features:  features,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return comparisons, nil
}

package litsense

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// compoundThreshold is the distance from zero at which a VADER compound score
// stops being neutral.
const compoundThreshold = 0.05

// SentimentStrategy names how a SentimentScorer scores a text unit.
type SentimentStrategy int

const (
	// LexiconFallback maps polarity lexicon scores to labels.
	LexiconFallback SentimentStrategy = iota
	// ModelBacked asks a trained classifier for label probabilities.
	ModelBacked
)

func (s SentimentStrategy) String() string {
	switch s {
	case ModelBacked:
		return "model"
	case LexiconFallback:
		return "lexicon"
	default:
		return fmt.Sprintf("SentimentStrategy(%d)", int(s))
	}
}

// SentimentConfig configures NewSentimentScorer.
type SentimentConfig struct {
	Classifier  Classifier       // When set, the scorer is model backed
	Polarity    PolarityAnalyzer // Required when Classifier is nil
	Processor   TextProcessor    // Splits documents into sentences
	Parallelism int              // Concurrent sentences; values below 1 mean GOMAXPROCS
}

// SentimentScorer assigns sentiment labels to sentences and documents.
//
// The strategy is fixed at construction. A SentimentScorer is safe for
// concurrent use when its collaborators are.
type SentimentScorer struct {
	strategy   SentimentStrategy
	classifier Classifier
	polarity   PolarityAnalyzer
	processor  TextProcessor
	opts       scorerOpts
}

// NewSentimentScorer selects the scoring strategy from cfg.
func NewSentimentScorer(cfg SentimentConfig) (*SentimentScorer, error) {
	if cfg.Processor == nil {
		return nil, errors.New("sentiment scorer needs a text processor")
	}

	var opts []ScorerOpt
	if cfg.Parallelism > 0 {
		opts = append(opts, UsingParallelism(cfg.Parallelism))
	}
	ss := &SentimentScorer{
		classifier: cfg.Classifier,
		polarity:   cfg.Polarity,
		processor:  cfg.Processor,
		opts:       newScorerOpts(opts),
	}

	switch {
	case cfg.Classifier != nil:
		ss.strategy = ModelBacked
	case cfg.Polarity != nil:
		ss.strategy = LexiconFallback
	default:
		return nil, errors.New("sentiment scorer needs a classifier or a polarity analyzer")
	}
	return ss, nil
}

// Strategy returns the active scoring strategy.
func (ss *SentimentScorer) Strategy() SentimentStrategy {
	return ss.strategy
}

// Score returns the sentiment of a single text unit.
func (ss *SentimentScorer) Score(text string) (SentimentResult, error) {
	if ss.strategy == ModelBacked {
		probs, err := ss.classifier.Predict(text)
		if err != nil {
			return SentimentResult{}, collaboratorFailure("sentiment classifier", err)
		}
		label := probs.Argmax()
		return SentimentResult{Label: label, Confidence: probs.Get(label), Scores: probs}, nil
	}

	scores := ss.polarity.Polarity(text)
	return SentimentResult{
		Label:      labelForCompound(scores.Compound),
		Confidence: confidenceForCompound(scores.Compound),
		Scores: SentimentVector{
			Negative: scores.Negative,
			Neutral:  scores.Neutral,
			Positive: scores.Positive,
		},
	}, nil
}

func labelForCompound(compound float64) SentimentLabel {
	switch {
	case compound >= compoundThreshold:
		return Positive
	case compound <= -compoundThreshold:
		return Negative
	default:
		return Neutral
	}
}

func confidenceForCompound(compound float64) float64 {
	if labelForCompound(compound) == Neutral {
		return 1 - math.Abs(compound)
	}
	return math.Abs(compound)
}

// AnalyzeBySentence scores every sentence of text, in document order.
func (ss *SentimentScorer) AnalyzeBySentence(ctx context.Context, text string) ([]SentenceSentiment, error) {
	sents, err := ss.processor.SplitSentences(text)
	if err != nil {
		return nil, collaboratorFailure("sentence splitter", err)
	}

	results := make([]SentenceSentiment, len(sents))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ss.opts.parallelism)
	for i, sent := range sents {
		i, sent := i, sent
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ss.Score(sent)
			if err != nil {
				return err
			}
			results[i] = SentenceSentiment{Sentence: sent, Label: res.Label, Confidence: res.Confidence}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Aggregate scores text sentence by sentence and combines the results with method.
func (ss *SentimentScorer) Aggregate(ctx context.Context, text string, method AggregationMethod) (DocumentSentiment, error) {
	results, err := ss.AnalyzeBySentence(ctx, text)
	if err != nil {
		return DocumentSentiment{}, err
	}
	return AggregateSentences(results, method)
}

// AggregateSentences combines per-sentence results into a document sentiment.
//
// Weighted sums confidences per label and normalizes by their total; ties go to
// the label that comes first in SentimentLabels. Majority counts votes; ties go
// to the label that appears first in results.
func AggregateSentences(results []SentenceSentiment, method AggregationMethod) (DocumentSentiment, error) {
	if len(results) == 0 {
		return DocumentSentiment{}, &InsufficientInputError{Stage: StageSentiment, Reason: "no sentences to aggregate"}
	}

	doc := DocumentSentiment{
		Method:        method,
		SentenceCount: len(results),
		Sentences:     append([]SentenceSentiment(nil), results...),
	}

	switch method {
	case Weighted:
		doc.Distribution, doc.OverallSentiment = weightedVote(results)
	case Majority:
		doc.Distribution, doc.OverallSentiment = majorityVote(results)
	default:
		return DocumentSentiment{}, fmt.Errorf("%w: %q", ErrUnknownAggregation, method)
	}
	return doc, nil
}

func weightedVote(results []SentenceSentiment) (SentimentVector, SentimentLabel) {
	var sums SentimentVector
	var total float64
	for _, res := range results {
		addTo(&sums, res.Label, res.Confidence)
		total += res.Confidence
	}
	if total == 0 {
		// No confidence anywhere: the distribution stays zero and the
		// enumeration order picks the label.
		return SentimentVector{}, SentimentLabels[0]
	}

	dist := SentimentVector{
		Negative: sums.Negative / total,
		Neutral:  sums.Neutral / total,
		Positive: sums.Positive / total,
	}
	return dist, dist.Argmax()
}

func majorityVote(results []SentenceSentiment) (SentimentVector, SentimentLabel) {
	var counts SentimentVector
	var seen []SentimentLabel
	for _, res := range results {
		if counts.Get(res.Label) == 0 {
			seen = append(seen, res.Label)
		}
		addTo(&counts, res.Label, 1)
	}

	best := seen[0]
	for _, label := range seen[1:] {
		if counts.Get(label) > counts.Get(best) {
			best = label
		}
	}

	n := float64(len(results))
	return SentimentVector{
		Negative: counts.Negative / n,
		Neutral:  counts.Neutral / n,
		Positive: counts.Positive / n,
	}, best
}

func addTo(v *SentimentVector, label SentimentLabel, x float64) {
	switch label {
	case Negative:
		v.Negative += x
	case Neutral:
		v.Neutral += x
	case Positive:
		v.Positive += x
	}
}

package litsense

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ScorerOpt tunes a scorer at construction time.
type ScorerOpt func(opts *scorerOpts)

type scorerOpts struct {
	parallelism int
}

// UsingParallelism bounds how many text units a scorer evaluates at once.
// Values below 1 mean sequential scoring.
func UsingParallelism(n int) ScorerOpt {
	return func(opts *scorerOpts) {
		opts.parallelism = n
	}
}

func newScorerOpts(opts []ScorerOpt) scorerOpts {
	base := scorerOpts{parallelism: runtime.GOMAXPROCS(0)}
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	if base.parallelism < 1 {
		base.parallelism = 1
	}
	return base
}

// EmotionScorer scores text against an emotion keyword table.
//
// It holds no mutable state and is safe for concurrent use.
type EmotionScorer struct {
	table     EmotionKeywordTable
	processor TextProcessor
	opts      scorerOpts
}

// NewEmotionScorer creates a scorer over table. The processor splits words for Arc.
func NewEmotionScorer(table EmotionKeywordTable, processor TextProcessor, opts ...ScorerOpt) (*EmotionScorer, error) {
	if processor == nil {
		return nil, errors.New("emotion scorer needs a text processor")
	}
	if table.Len() == 0 {
		return nil, ErrEmptyKeywordTable
	}
	return &EmotionScorer{
		table:     table,
		processor: processor,
		opts:      newScorerOpts(opts),
	}, nil
}

// Table returns the keyword table the scorer was built with.
func (es *EmotionScorer) Table() EmotionKeywordTable {
	return es.table
}

// Score returns the normalized emotion vector of text.
func (es *EmotionScorer) Score(text string) EmotionVector {
	lower := strings.ToLower(text)

	counts := make([]float64, len(es.table.rows))
	var total float64
	for i, row := range es.table.rows {
		for _, kw := range row.Keywords {
			counts[i] += float64(strings.Count(lower, kw))
		}
		total += counts[i]
	}

	vector := make(EmotionVector, len(es.table.rows))
	for i, row := range es.table.rows {
		if total > 0 {
			vector[row.Emotion] = counts[i] / total
		} else {
			vector[row.Emotion] = 0
		}
	}
	return vector
}

// Dominant returns the highest scoring emotion of v. Ties go to the emotion
// declared first in the table. It returns NoEmotion and false when v is
// undetermined.
func (es *EmotionScorer) Dominant(v EmotionVector) (Emotion, bool) {
	best := NoEmotion
	bestScore := 0.0
	for _, row := range es.table.rows {
		if score := v[row.Emotion]; score > bestScore {
			best = row.Emotion
			bestScore = score
		}
	}
	return best, best != NoEmotion
}

// Rank orders v descending by score, keeping declaration order on ties.
func (es *EmotionScorer) Rank(v EmotionVector) []EmotionScore {
	ranked := make([]EmotionScore, 0, len(es.table.rows))
	for _, row := range es.table.rows {
		ranked = append(ranked, EmotionScore{Emotion: row.Emotion, Score: v[row.Emotion]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopN returns the n highest scoring emotions of text. Zero scores are kept.
func (es *EmotionScorer) TopN(text string, n int) []EmotionScore {
	return topN(es.Rank(es.Score(text)), n)
}

func topN(ranked []EmotionScore, n int) []EmotionScore {
	if n <= 0 {
		return []EmotionScore{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Analyze returns the full emotion profile of text without a top-N ranking.
func (es *EmotionScorer) Analyze(text string) EmotionAnalysis {
	vector := es.Score(text)
	primary, ok := es.Dominant(vector)

	analysis := EmotionAnalysis{
		PrimaryEmotion:    primary,
		Determined:        ok,
		AllEmotions:       vector,
		SecondaryEmotions: EmotionVector{},
	}
	if ok {
		analysis.Confidence = vector[primary]
	}
	for emotion, score := range vector {
		if score > 0 && emotion != primary {
			analysis.SecondaryEmotions[emotion] = score
		}
	}
	return analysis
}

// Arc splits text into chunks of chunkSize words and scores each chunk on its own.
func (es *EmotionScorer) Arc(ctx context.Context, text string, chunkSize int) ([]ArcPoint, error) {
	if chunkSize < 1 {
		return nil, ErrInvalidChunkSize
	}

	words, err := es.processor.SplitWords(text)
	if err != nil {
		return nil, collaboratorFailure("word tokenizer", err)
	}

	chunks, err := ChunksByWordCount(words, chunkSize)
	if err != nil {
		return nil, err
	}

	arc := make([]ArcPoint, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(es.opts.parallelism)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vector := es.Score(chunk.Text())
			primary, _ := es.Dominant(vector)
			arc[i] = ArcPoint{
				Position:       chunk.Position,
				ChunkNumber:    chunk.Index + 1,
				PrimaryEmotion: primary,
				Emotions:       vector,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return arc, nil
}

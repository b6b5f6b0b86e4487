package litsense

import (
	"sync"

	"github.com/jonreiter/govader"
)

// PolarityScores is the VADER-style reading of a text.
type PolarityScores struct {
	Negative float64 // Proportion of negative signal [0, 1]
	Neutral  float64 // Proportion of neutral signal [0, 1]
	Positive float64 // Proportion of positive signal [0, 1]
	Compound float64 // Normalized overall polarity [-1, 1]
}

// PolarityAnalyzer scores the polarity of short texts.
type PolarityAnalyzer interface {
	Polarity(text string) PolarityScores
}

// VaderPolarity is a PolarityAnalyzer backed by the VADER lexicon. It is safe
// for concurrent use.
type VaderPolarity struct {
	sia *govader.SentimentIntensityAnalyzer
	mu  sync.Mutex
}

// NewVaderPolarity loads the VADER lexicon.
func NewVaderPolarity() *VaderPolarity {
	return &VaderPolarity{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the VADER scores of text.
func (v *VaderPolarity) Polarity(text string) PolarityScores {
	v.mu.Lock()
	scores := v.sia.PolarityScores(text)
	v.mu.Unlock()

	return PolarityScores{
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
		Positive: scores.Positive,
		Compound: scores.Compound,
	}
}

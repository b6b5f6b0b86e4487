package litsense

import (
	"strings"
	"testing"
)

// periodProcessor splits sentences on periods and words on whitespace.
type periodProcessor struct {
	sentenceErr error
	wordErr     error
}

func (p periodProcessor) SplitSentences(text string) ([]string, error) {
	if p.sentenceErr != nil {
		return nil, p.sentenceErr
	}
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (p periodProcessor) SplitWords(text string) ([]string, error) {
	if p.wordErr != nil {
		return nil, p.wordErr
	}
	return strings.Fields(text), nil
}

// fakePolarity returns fixed scores per text and zero scores otherwise.
type fakePolarity map[string]PolarityScores

func (f fakePolarity) Polarity(text string) PolarityScores {
	return f[text]
}

type fakeClassifier struct {
	probs map[string]SentimentVector
	err   error
}

func (f fakeClassifier) Predict(text string) (SentimentVector, error) {
	if f.err != nil {
		return SentimentVector{}, f.err
	}
	return f.probs[text], nil
}

func newTestProcessor(t *testing.T) *DefaultTextProcessor {
	t.Helper()
	p, err := NewTextProcessor()
	if err != nil {
		t.Fatalf("NewTextProcessor: %v", err)
	}
	return p
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}

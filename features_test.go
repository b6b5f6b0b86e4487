package litsense

import (
	"errors"
	"testing"
)

func TestExtractFeatures(t *testing.T) {
	tests := []struct {
		text     string
		expected Features
		desc     string
	}{
		{
			"Hello world! How are you? Fine.",
			Features{
				WordCount:         6,
				SentenceCount:     1,
				AvgWordLength:     26.0 / 6,
				AvgSentenceLength: 6,
				PunctuationCount:  3,
				ExclamationCount:  1,
				QuestionCount:     1,
				UniqueWords:       6,
				LexicalDiversity:  1,
			},
			"Mixed punctuation",
		},
		{
			"a a b. c",
			Features{
				WordCount:         4,
				SentenceCount:     2,
				AvgWordLength:     5.0 / 4,
				AvgSentenceLength: 2,
				PunctuationCount:  1,
				UniqueWords:       3,
				LexicalDiversity:  0.75,
			},
			"Punctuation stays attached to words",
		},
		{
			"",
			Features{},
			"Empty text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ExtractFeatures(tt.text, periodProcessor{})
			if err != nil {
				t.Fatalf("ExtractFeatures: %v", err)
			}
			if got.WordCount != tt.expected.WordCount ||
				got.SentenceCount != tt.expected.SentenceCount ||
				got.PunctuationCount != tt.expected.PunctuationCount ||
				got.ExclamationCount != tt.expected.ExclamationCount ||
				got.QuestionCount != tt.expected.QuestionCount ||
				got.UniqueWords != tt.expected.UniqueWords {
				t.Errorf("counts differ\nExpected: %+v\nGot:      %+v", tt.expected, got)
			}
			if !approx(got.AvgWordLength, tt.expected.AvgWordLength) ||
				!approx(got.AvgSentenceLength, tt.expected.AvgSentenceLength) ||
				!approx(got.LexicalDiversity, tt.expected.LexicalDiversity) {
				t.Errorf("averages differ\nExpected: %+v\nGot:      %+v", tt.expected, got)
			}
		})
	}
}

func TestLexicalDiversityCountsRepeats(t *testing.T) {
	got, err := ExtractFeatures("rose rose rose thorn", periodProcessor{})
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	if got.UniqueWords != 2 || !approx(got.LexicalDiversity, 0.5) {
		t.Errorf("expected 2 unique words and diversity 0.5, got %d and %.2f", got.UniqueWords, got.LexicalDiversity)
	}
}

func TestExtractFeaturesWithDefaultProcessor(t *testing.T) {
	got, err := ExtractFeatures("The night was dark. The stars were bright!", newTestProcessor(t))
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	// Punctuation marks are tokens of their own.
	if got.SentenceCount != 2 || got.WordCount != 10 {
		t.Errorf("expected 2 sentences and 10 tokens, got %d and %d", got.SentenceCount, got.WordCount)
	}
	if got.ExclamationCount != 1 || got.PunctuationCount != 2 {
		t.Errorf("unexpected punctuation counts %+v", got)
	}
}

func TestAnalyzePoeticStructure(t *testing.T) {
	tests := []struct {
		text     string
		expected PoeticStructure
		desc     string
	}{
		{
			"Line one\nLine two\n\n   \nLine three\n",
			PoeticStructure{LineCount: 3, StanzaCount: 2, AvgLinesPerStanza: 1.5, TotalWords: 6, AvgWordsPerLine: 2},
			"Two stanzas",
		},
		{
			"\n\nSolitary verse here\n\n",
			PoeticStructure{LineCount: 1, StanzaCount: 1, AvgLinesPerStanza: 1, TotalWords: 3, AvgWordsPerLine: 3},
			"Surrounding blank lines",
		},
		{
			"",
			PoeticStructure{},
			"Empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := AnalyzePoeticStructure(tt.text, periodProcessor{})
			if err != nil {
				t.Fatalf("AnalyzePoeticStructure: %v", err)
			}
			if got.LineCount != tt.expected.LineCount || got.StanzaCount != tt.expected.StanzaCount || got.TotalWords != tt.expected.TotalWords {
				t.Errorf("Expected: %+v\nGot:      %+v", tt.expected, got)
			}
			if !approx(got.AvgLinesPerStanza, tt.expected.AvgLinesPerStanza) || !approx(got.AvgWordsPerLine, tt.expected.AvgWordsPerLine) {
				t.Errorf("Expected: %+v\nGot:      %+v", tt.expected, got)
			}
		})
	}
}

func TestFeatureExtractionFailure(t *testing.T) {
	_, err := ExtractFeatures("text", periodProcessor{wordErr: errors.New("down")})
	var failure *CollaboratorFailure
	if !errors.As(err, &failure) {
		t.Errorf("expected CollaboratorFailure, got %v", err)
	}
}

package litsense

import (
	"math"
	"strings"
)

const (
	negationWindow = 3    // Words before a hit searched for a negation
	modifierWindow = 2    // Words before a hit searched for an intensifier
	negationFactor = -0.5 // Negation reverses and weakens polarity
)

// SubjectivityScorer rates how opinionated a text is and which way it leans.
type SubjectivityScorer struct {
	lexicon   *SubjectivityLexicon
	processor TextProcessor
}

// NewSubjectivityScorer returns a scorer over lexicon. A nil lexicon means the
// built-in English lexicon.
func NewSubjectivityScorer(lexicon *SubjectivityLexicon, processor TextProcessor) *SubjectivityScorer {
	if lexicon == nil {
		lexicon = NewSubjectivityLexicon()
	}
	return &SubjectivityScorer{lexicon: lexicon, processor: processor}
}

// Lexicon returns the lexicon the scorer reads.
func (ss *SubjectivityScorer) Lexicon() *SubjectivityLexicon {
	return ss.lexicon
}

// Score averages polarity and subjectivity over the lexicon words in text.
// A text without lexicon words scores 0 on both.
func (ss *SubjectivityScorer) Score(text string) (Subjectivity, error) {
	words, err := ss.processor.SplitWords(strings.ToLower(text))
	if err != nil {
		return Subjectivity{}, collaboratorFailure("word tokenizer", err)
	}

	var polarity, subjectivity float64
	hits := 0
	for i, word := range words {
		entry, ok := ss.lexicon.Lookup(word)
		if !ok {
			continue
		}

		p, s := entry.Polarity, entry.Subjectivity
		if factor := ss.modifierAt(words, i); factor != 0 {
			p = clamp(p*(1+factor), -1, 1)
			s = clamp(s*(1+factor), 0, 1)
		}
		if ss.negatedAt(words, i) {
			p *= negationFactor
		}

		polarity += p
		subjectivity += s
		hits++
	}

	result := Subjectivity{}
	if hits > 0 {
		result.Polarity = polarity / float64(hits)
		result.Subjectivity = subjectivity / float64(hits)
	}
	result.Assessment = AssessSubjectivity(result.Subjectivity)
	return result, nil
}

// negatedAt reports a negation within negationWindow words before position
// that is not cut off by a clause boundary.
func (ss *SubjectivityScorer) negatedAt(words []string, position int) bool {
	for i := position - 1; i >= 0 && i >= position-negationWindow; i-- {
		if isClauseBoundary(words[i]) {
			return false
		}
		if ss.lexicon.IsNegation(words[i]) || strings.HasSuffix(words[i], "n't") {
			return true
		}
	}
	return false
}

// modifierAt returns the strength of the nearest modifier before position.
func (ss *SubjectivityScorer) modifierAt(words []string, position int) float64 {
	for i := position - 1; i >= 0 && i >= position-modifierWindow; i-- {
		if isClauseBoundary(words[i]) {
			return 0
		}
		if m := ss.lexicon.Modifier(words[i]); m != 0 {
			return m
		}
	}
	return 0
}

var clauseBoundaries = map[string]bool{
	",": true, ";": true, ":": true, ".": true, "!": true, "?": true,
	"but": true, "however": true, "although": true, "yet": true,
}

func isClauseBoundary(word string) bool {
	return clauseBoundaries[word]
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// AssessSubjectivity describes a subjectivity score in words.
func AssessSubjectivity(score float64) string {
	switch {
	case score < 0.3:
		return "Highly objective (factual, analytical)"
	case score < 0.5:
		return "Somewhat objective (balanced perspective)"
	case score < 0.7:
		return "Somewhat subjective (personal opinions present)"
	default:
		return "Highly subjective (emotional, opinionated)"
	}
}

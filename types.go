package litsense

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Emotion is one label of the closed emotion set.
type Emotion string

const (
	Joy      Emotion = "joy"
	Sadness  Emotion = "sadness"
	Anger    Emotion = "anger"
	Fear     Emotion = "fear"
	Surprise Emotion = "surprise"
	Love     Emotion = "love"
	Hope     Emotion = "hope"

	// NoEmotion marks a result whose emotion vector carried no signal.
	NoEmotion Emotion = "none"
)

// EmotionLabels lists the emotion set in declaration order.
var EmotionLabels = []Emotion{Joy, Sadness, Anger, Fear, Surprise, Love, Hope}

// IsValid reports whether e belongs to the closed emotion set.
func (e Emotion) IsValid() bool {
	for _, label := range EmotionLabels {
		if e == label {
			return true
		}
	}
	return false
}

// SentimentLabel represents sentiment categories
type SentimentLabel string

const (
	Negative SentimentLabel = "negative"
	Neutral  SentimentLabel = "neutral"
	Positive SentimentLabel = "positive"
)

// SentimentLabels is the fixed enumeration order used for vectors and tie-breaks.
var SentimentLabels = []SentimentLabel{Negative, Neutral, Positive}

// TextType is the declared kind of literary text.
type TextType string

const (
	Poem    TextType = "poem"
	Book    TextType = "book"
	Story   TextType = "story"
	Essay   TextType = "essay"
	General TextType = "general"
)

// TextTypes lists the accepted text types.
var TextTypes = []TextType{Poem, Book, Story, Essay, General}

// ParseTextType converts s to a TextType. The empty string means General.
func ParseTextType(s string) (TextType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return General, nil
	}
	for _, tt := range TextTypes {
		if string(tt) == s {
			return tt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTextType, s)
}

// TextTypeForPath infers the text type from a file extension.
func TextTypeForPath(path string) TextType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".poem":
		return Poem
	default:
		return General
	}
}

// AggregationMethod selects how sentence results become a document result.
type AggregationMethod string

const (
	Weighted AggregationMethod = "weighted" // Confidence-weighted label sums
	Majority AggregationMethod = "majority" // Plain vote counts
)

// ParseAggregationMethod converts s to an AggregationMethod. The empty string means Weighted.
func ParseAggregationMethod(s string) (AggregationMethod, error) {
	switch AggregationMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", Weighted:
		return Weighted, nil
	case Majority:
		return Majority, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAggregation, s)
	}
}

// EmotionVector maps each emotion of a keyword table to a probability.
//
// The values sum to 1 when any keyword matched. Otherwise every value is 0,
// which means "undetermined" and must not be read as neutral.
type EmotionVector map[Emotion]float64

// Sum returns the total of all values.
func (v EmotionVector) Sum() float64 {
	var total float64
	for _, score := range v {
		total += score
	}
	return total
}

// Undetermined reports whether the vector carries no signal.
func (v EmotionVector) Undetermined() bool {
	for _, score := range v {
		if score != 0 {
			return false
		}
	}
	return true
}

// EmotionScore pairs an emotion with its score.
type EmotionScore struct {
	Emotion Emotion `json:"emotion"`
	Score   float64 `json:"score"`
}

// SentimentVector is the fixed-order (negative, neutral, positive) triple.
type SentimentVector struct {
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
}

// Get returns the component for label.
func (v SentimentVector) Get(label SentimentLabel) float64 {
	switch label {
	case Negative:
		return v.Negative
	case Neutral:
		return v.Neutral
	case Positive:
		return v.Positive
	default:
		return 0
	}
}

// Values returns the components in enumeration order.
func (v SentimentVector) Values() []float64 {
	return []float64{v.Negative, v.Neutral, v.Positive}
}

// SentimentResult is the score of a single text unit.
type SentimentResult struct {
	Label      SentimentLabel  `json:"sentiment"`
	Confidence float64         `json:"confidence"`
	Scores     SentimentVector `json:"scores"`
}

// SentenceSentiment is the score of one sentence, in document order.
type SentenceSentiment struct {
	Sentence   string         `json:"sentence"`
	Label      SentimentLabel `json:"sentiment"`
	Confidence float64        `json:"confidence"`
}

// DocumentSentiment is the aggregated sentiment of a whole text.
type DocumentSentiment struct {
	OverallSentiment SentimentLabel      `json:"overall_sentiment"`
	Distribution     SentimentVector     `json:"distribution"`
	Method           AggregationMethod   `json:"method"`
	SentenceCount    int                 `json:"sentence_count"`
	Sentences        []SentenceSentiment `json:"sentences"`
}

// A Chunk is a fixed-size window of words.
type Chunk struct {
	Index    int      // Zero-based position in the chunk sequence
	Tokens   []string // Words in the chunk
	Position float64  // Index / chunk count, in [0, 1)
}

// Text joins the chunk's tokens with single spaces.
func (c Chunk) Text() string {
	return strings.Join(c.Tokens, " ")
}

// ArcPoint is one reading of the emotional arc.
type ArcPoint struct {
	Position       float64       `json:"position"`
	ChunkNumber    int           `json:"chunk_number"`
	PrimaryEmotion Emotion       `json:"primary_emotion"`
	Emotions       EmotionVector `json:"emotions"`
}

// EmotionAnalysis is the emotion profile of a text.
type EmotionAnalysis struct {
	PrimaryEmotion    Emotion        `json:"primary_emotion"`
	Confidence        float64        `json:"confidence"`
	Determined        bool           `json:"determined"`
	AllEmotions       EmotionVector  `json:"all_emotions"`
	TopEmotions       []EmotionScore `json:"top_emotions"`
	SecondaryEmotions EmotionVector  `json:"secondary_emotions"`
}

// Features holds lexical statistics of a text.
type Features struct {
	WordCount         int     `json:"word_count"`
	SentenceCount     int     `json:"sentence_count"`
	AvgWordLength     float64 `json:"avg_word_length"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	PunctuationCount  int     `json:"punctuation_count"`
	ExclamationCount  int     `json:"exclamation_count"`
	QuestionCount     int     `json:"question_count"`
	UniqueWords       int     `json:"unique_words"`
	LexicalDiversity  float64 `json:"lexical_diversity"`
}

// PoeticStructure holds line and stanza statistics of a poem.
type PoeticStructure struct {
	LineCount         int     `json:"line_count"`
	StanzaCount       int     `json:"stanza_count"`
	AvgLinesPerStanza float64 `json:"avg_lines_per_stanza"`
	TotalWords        int     `json:"total_words"`
	AvgWordsPerLine   float64 `json:"avg_words_per_line"`
}

// Subjectivity is the subjectivity and polarity reading of a text.
type Subjectivity struct {
	Subjectivity float64 `json:"subjectivity"` // 0.0 (objective) to 1.0 (subjective)
	Polarity     float64 `json:"polarity"`     // -1.0 (negative) to 1.0 (positive)
	Assessment   string  `json:"assessment"`
}

// Metadata describes an analysis call.
type Metadata struct {
	AnalyzedAt         time.Time `json:"analyzed_at"`
	TextType           TextType  `json:"text_type"`
	TextLength         int       `json:"text_length"`
	Language           Language  `json:"language,omitempty"`
	LanguageConfidence float64   `json:"language_confidence,omitempty"`
}

// AnalysisResult is the complete profile of one text.
type AnalysisResult struct {
	Metadata        Metadata          `json:"metadata"`
	Features        Features          `json:"features"`
	PoeticStructure *PoeticStructure  `json:"poetic_structure,omitempty"`
	Literary        LiteraryProfile   `json:"literary"`
	Sentiment       DocumentSentiment `json:"sentiment"`
	Emotions        EmotionAnalysis   `json:"emotions"`
	Subjectivity    Subjectivity      `json:"subjectivity"`
	EmotionalArc    []ArcPoint        `json:"emotional_arc,omitempty"`
}

// Comparison is the side-by-side profile of one text in CompareTexts.
type Comparison struct {
	Label     string          `json:"label"`
	Sentiment SentimentResult `json:"sentiment"`
	Emotion   EmotionAnalysis `json:"emotion"`
	Features  Features        `json:"features"`
}

// Stage names a step of the analysis pipeline.
type Stage string

const (
	StageStart        Stage = "start"
	StageFeatures     Stage = "features_extracted"
	StageSentiment    Stage = "sentiment_scored"
	StageEmotion      Stage = "emotion_scored"
	StageSubjectivity Stage = "subjectivity_scored"
	StageArc          Stage = "arc_tracked"
	StageComplete     Stage = "complete"
)

// Argmax returns the label with the largest component. Ties go to the label
// that comes first in SentimentLabels.
func (v SentimentVector) Argmax() SentimentLabel {
	best := SentimentLabels[0]
	for _, label := range SentimentLabels[1:] {
		if v.Get(label) > v.Get(best) {
			best = label
		}
	}
	return best
}

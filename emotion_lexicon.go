package litsense

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmotionKeywords is one row of an emotion keyword table.
type EmotionKeywords struct {
	Emotion  Emotion  `yaml:"emotion"`
	Keywords []string `yaml:"keywords"`
}

// EmotionKeywordTable is an immutable, ordered mapping from emotion to keywords.
//
// The row order is the declaration order used to break ties between emotions.
type EmotionKeywordTable struct {
	rows []EmotionKeywords
}

// emotionKeywordFile is the YAML layout of an external keyword table.
type emotionKeywordFile struct {
	Emotions []EmotionKeywords `yaml:"emotions"`
}

// NewEmotionKeywordTable validates rows and returns a table that owns copies of them.
func NewEmotionKeywordTable(rows ...EmotionKeywords) (EmotionKeywordTable, error) {
	if len(rows) == 0 {
		return EmotionKeywordTable{}, ErrEmptyKeywordTable
	}

	seen := make(map[Emotion]bool, len(rows))
	table := EmotionKeywordTable{rows: make([]EmotionKeywords, 0, len(rows))}
	for _, row := range rows {
		label := Emotion(strings.ToLower(strings.TrimSpace(string(row.Emotion))))
		if !label.IsValid() {
			return EmotionKeywordTable{}, fmt.Errorf("unknown emotion %q in keyword table", row.Emotion)
		}
		if seen[label] {
			return EmotionKeywordTable{}, fmt.Errorf("emotion %q declared twice in keyword table", label)
		}
		seen[label] = true

		keywords := make([]string, 0, len(row.Keywords))
		for _, kw := range row.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		table.rows = append(table.rows, EmotionKeywords{Emotion: label, Keywords: keywords})
	}

	return table, nil
}

// Emotions returns the table's labels in declaration order.
func (t EmotionKeywordTable) Emotions() []Emotion {
	labels := make([]Emotion, len(t.rows))
	for i, row := range t.rows {
		labels[i] = row.Emotion
	}
	return labels
}

// Keywords returns a copy of the keywords declared for e.
func (t EmotionKeywordTable) Keywords(e Emotion) []string {
	for _, row := range t.rows {
		if row.Emotion == e {
			return append([]string(nil), row.Keywords...)
		}
	}
	return nil
}

// Len returns the number of emotions in the table.
func (t EmotionKeywordTable) Len() int {
	return len(t.rows)
}

// LoadEmotionKeywords reads a YAML keyword table from path.
func LoadEmotionKeywords(path string) (EmotionKeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EmotionKeywordTable{}, fmt.Errorf("error reading keyword file: %w", err)
	}
	return ParseEmotionKeywords(data)
}

// ParseEmotionKeywords decodes a YAML keyword table:
//
//	emotions:
//	  - emotion: joy
//	    keywords: [happy, glad]
func ParseEmotionKeywords(data []byte) (EmotionKeywordTable, error) {
	var file emotionKeywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return EmotionKeywordTable{}, fmt.Errorf("error parsing keyword YAML: %w", err)
	}
	return NewEmotionKeywordTable(file.Emotions...)
}

// DefaultEmotionKeywords returns the built-in literary keyword table.
func DefaultEmotionKeywords() EmotionKeywordTable {
	table, err := NewEmotionKeywordTable(defaultEmotionRows...)
	if err != nil {
		panic(err)
	}
	return table
}

var defaultEmotionRows = []EmotionKeywords{
	{Emotion: Joy, Keywords: []string{
		"happy", "joyful", "cheerful", "delighted", "pleased", "glad",
		"merry", "jubilant", "ecstatic", "blissful", "content", "smile",
		"laugh", "bright", "sunshine", "celebration", "love", "peace",
	}},
	{Emotion: Sadness, Keywords: []string{
		"sad", "unhappy", "sorrowful", "melancholy", "gloomy", "depressed",
		"miserable", "tearful", "grief", "mourn", "despair", "heartbroken",
		"lonely", "dark", "tears", "cry", "weep", "sorrow", "loss",
	}},
	{Emotion: Anger, Keywords: []string{
		"angry", "furious", "mad", "enraged", "irritated", "annoyed",
		"frustrated", "hostile", "rage", "wrath", "fury", "outrage",
		"hate", "bitter", "resentment", "storm", "fire", "violent",
	}},
	{Emotion: Fear, Keywords: []string{
		"afraid", "scared", "fearful", "terrified", "frightened", "anxious",
		"worried", "nervous", "panic", "dread", "horror", "terror",
		"nightmare", "shadow", "darkness", "threat", "danger", "tremble",
	}},
	{Emotion: Surprise, Keywords: []string{
		"surprised", "amazed", "astonished", "shocked", "stunned",
		"startled", "unexpected", "sudden", "wonder", "awe",
		"marvel", "bewildered", "extraordinary", "remarkable",
	}},
	{Emotion: Love, Keywords: []string{
		"love", "affection", "adore", "cherish", "devotion", "passion",
		"romance", "tender", "heart", "dear", "beloved", "kiss",
		"embrace", "warmth", "gentle", "care", "sweet",
	}},
	{Emotion: Hope, Keywords: []string{
		"hope", "optimism", "faith", "trust", "believe", "dream",
		"aspire", "wish", "future", "light", "dawn", "promise",
		"courage", "strength", "persevere", "possibility",
	}},
}

package litsense

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// SubjectivityLexicon holds opinion words with their polarity and subjectivity,
// along with the modifiers and negations that change them.
type SubjectivityLexicon struct {
	words     map[string]LexiconEntry
	modifiers map[string]float64
	negations map[string]bool
	mutex     sync.RWMutex
}

// LexiconEntry is the opinion reading of one word.
type LexiconEntry struct {
	Word         string  `json:"word"`
	Polarity     float64 `json:"polarity"`     // -1 to 1
	Subjectivity float64 `json:"subjectivity"` // 0 to 1
}

// ExternalLexicon is the JSON layout of a lexicon file.
type ExternalLexicon struct {
	Languages map[string]LanguageLexicon `json:"languages"`
}

// LanguageLexicon holds the additions for one language.
type LanguageLexicon struct {
	Words        []LexiconEntry  `json:"words,omitempty"`
	Modifiers    []ModifierEntry `json:"modifiers,omitempty"`
	Negations    []string        `json:"negations,omitempty"`
	Intensifiers []string        `json:"intensifiers,omitempty"`
	Diminishers  []string        `json:"diminishers,omitempty"`
}

// ModifierEntry is a modifier word in JSON format. Factor is added to 1 and
// multiplies the next opinion word.
type ModifierEntry struct {
	Word   string  `json:"word"`
	Factor float64 `json:"factor"`
}

// NewSubjectivityLexicon returns the built-in English lexicon.
func NewSubjectivityLexicon() *SubjectivityLexicon {
	sl := &SubjectivityLexicon{
		words:     make(map[string]LexiconEntry, len(englishOpinionWords)),
		modifiers: make(map[string]float64, len(englishModifiers)),
		negations: make(map[string]bool, len(englishNegations)),
	}
	for _, entry := range englishOpinionWords {
		sl.words[entry.Word] = entry
	}
	for word, factor := range englishModifiers {
		sl.modifiers[word] = factor
	}
	for _, word := range englishNegations {
		sl.negations[word] = true
	}
	return sl
}

// LoadExternalLexicon merges the sections of a JSON lexicon file for the
// given languages into sl. No languages means English.
func (sl *SubjectivityLexicon) LoadExternalLexicon(path string, languages ...Language) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading lexicon file: %w", err)
	}
	return sl.MergeJSON(data, languages...)
}

// MergeJSON merges an ExternalLexicon document into sl.
func (sl *SubjectivityLexicon) MergeJSON(data []byte, languages ...Language) error {
	var external ExternalLexicon
	if err := json.Unmarshal(data, &external); err != nil {
		return fmt.Errorf("error parsing lexicon JSON: %w", err)
	}
	if len(languages) == 0 {
		languages = []Language{English}
	}

	sl.mutex.Lock()
	defer sl.mutex.Unlock()
	for _, lang := range languages {
		if section, ok := external.Languages[languageToJSONKey(lang)]; ok {
			sl.merge(section)
		}
	}
	return nil
}

func languageToJSONKey(lang Language) string {
	switch lang {
	case English:
		return "english"
	case Spanish:
		return "spanish"
	case French:
		return "french"
	case German:
		return "german"
	default:
		return strings.ToLower(string(lang))
	}
}

func (sl *SubjectivityLexicon) merge(data LanguageLexicon) {
	for _, entry := range data.Words {
		word := strings.ToLower(strings.TrimSpace(entry.Word))
		if word == "" {
			continue
		}
		sl.words[word] = LexiconEntry{
			Word:         word,
			Polarity:     clamp(entry.Polarity, -1, 1),
			Subjectivity: clamp(entry.Subjectivity, 0, 1),
		}
	}
	for _, modifier := range data.Modifiers {
		sl.modifiers[strings.ToLower(modifier.Word)] = modifier.Factor
	}
	for _, word := range data.Intensifiers {
		sl.modifiers[strings.ToLower(word)] = 0.3
	}
	for _, word := range data.Diminishers {
		sl.modifiers[strings.ToLower(word)] = -0.3
	}
	for _, word := range data.Negations {
		sl.negations[strings.ToLower(word)] = true
	}
}

// Lookup returns the entry for a lowercase word.
func (sl *SubjectivityLexicon) Lookup(word string) (LexiconEntry, bool) {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()
	entry, ok := sl.words[word]
	return entry, ok
}

// Modifier returns the strength of word as a modifier, or 0.
func (sl *SubjectivityLexicon) Modifier(word string) float64 {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()
	return sl.modifiers[word]
}

// IsNegation reports whether word negates what follows it.
func (sl *SubjectivityLexicon) IsNegation(word string) bool {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()
	return sl.negations[word]
}

// Len returns the number of opinion words.
func (sl *SubjectivityLexicon) Len() int {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()
	return len(sl.words)
}

var englishNegations = []string{
	"not", "no", "never", "none", "nobody", "nothing", "neither", "nor",
	"nowhere", "cannot", "without", "n't",
}

var englishModifiers = map[string]float64{
	// Intensifiers
	"very":       0.3,
	"extremely":  0.5,
	"absolutely": 0.5,
	"truly":      0.3,
	"really":     0.3,
	"so":         0.3,
	"too":        0.3,
	"deeply":     0.4,
	"utterly":    0.5,
	"completely": 0.4,
	"most":       0.4,
	"incredibly": 0.5,
	"quite":      0.2,

	// Diminishers
	"slightly": -0.3,
	"somewhat": -0.3,
	"rather":   -0.2,
	"fairly":   -0.1,
	"barely":   -0.5,
	"hardly":   -0.5,
	"scarcely": -0.5,
	"little":   -0.2,
}

var englishOpinionWords = []LexiconEntry{
	// Positive
	{Word: "good", Polarity: 0.7, Subjectivity: 0.6},
	{Word: "great", Polarity: 0.8, Subjectivity: 0.75},
	{Word: "excellent", Polarity: 1.0, Subjectivity: 1.0},
	{Word: "wonderful", Polarity: 1.0, Subjectivity: 1.0},
	{Word: "beautiful", Polarity: 0.85, Subjectivity: 1.0},
	{Word: "lovely", Polarity: 0.5, Subjectivity: 0.75},
	{Word: "happy", Polarity: 0.8, Subjectivity: 1.0},
	{Word: "joyful", Polarity: 0.8, Subjectivity: 0.9},
	{Word: "glad", Polarity: 0.5, Subjectivity: 1.0},
	{Word: "delighted", Polarity: 0.7, Subjectivity: 0.9},
	{Word: "cheerful", Polarity: 0.7, Subjectivity: 0.9},
	{Word: "bright", Polarity: 0.7, Subjectivity: 0.9},
	{Word: "sweet", Polarity: 0.35, Subjectivity: 0.65},
	{Word: "gentle", Polarity: 0.4, Subjectivity: 0.6},
	{Word: "tender", Polarity: 0.3, Subjectivity: 0.6},
	{Word: "warm", Polarity: 0.6, Subjectivity: 0.6},
	{Word: "kind", Polarity: 0.6, Subjectivity: 0.9},
	{Word: "perfect", Polarity: 1.0, Subjectivity: 1.0},
	{Word: "amazing", Polarity: 0.6, Subjectivity: 0.9},
	{Word: "brilliant", Polarity: 0.9, Subjectivity: 1.0},
	{Word: "glorious", Polarity: 0.8, Subjectivity: 1.0},
	{Word: "radiant", Polarity: 0.6, Subjectivity: 0.8},
	{Word: "peaceful", Polarity: 0.5, Subjectivity: 0.7},
	{Word: "calm", Polarity: 0.3, Subjectivity: 0.75},
	{Word: "hopeful", Polarity: 0.6, Subjectivity: 0.8},
	{Word: "fine", Polarity: 0.4, Subjectivity: 0.5},
	{Word: "nice", Polarity: 0.6, Subjectivity: 1.0},
	{Word: "pleasant", Polarity: 0.7, Subjectivity: 0.9},
	{Word: "fair", Polarity: 0.7, Subjectivity: 0.9},
	{Word: "blessed", Polarity: 0.5, Subjectivity: 0.8},
	{Word: "merry", Polarity: 0.6, Subjectivity: 0.8},
	{Word: "fond", Polarity: 0.5, Subjectivity: 0.7},
	{Word: "dear", Polarity: 0.4, Subjectivity: 0.6},
	{Word: "beloved", Polarity: 0.7, Subjectivity: 0.8},
	{Word: "golden", Polarity: 0.3, Subjectivity: 0.5},
	{Word: "sublime", Polarity: 0.8, Subjectivity: 1.0},
	{Word: "magnificent", Polarity: 1.0, Subjectivity: 1.0},
	{Word: "remarkable", Polarity: 0.75, Subjectivity: 0.75},
	{Word: "extraordinary", Polarity: 0.4, Subjectivity: 0.8},
	{Word: "love", Polarity: 0.5, Subjectivity: 0.6},
	{Word: "loving", Polarity: 0.6, Subjectivity: 0.95},
	{Word: "best", Polarity: 1.0, Subjectivity: 0.3},
	{Word: "better", Polarity: 0.5, Subjectivity: 0.5},

	// Negative
	{Word: "bad", Polarity: -0.7, Subjectivity: 0.67},
	{Word: "terrible", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "awful", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "horrible", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "sad", Polarity: -0.5, Subjectivity: 1.0},
	{Word: "unhappy", Polarity: -0.6, Subjectivity: 0.9},
	{Word: "miserable", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "gloomy", Polarity: -0.6, Subjectivity: 0.8},
	{Word: "melancholy", Polarity: -0.4, Subjectivity: 0.8},
	{Word: "lonely", Polarity: -0.5, Subjectivity: 0.9},
	{Word: "dark", Polarity: -0.15, Subjectivity: 0.4},
	{Word: "cold", Polarity: -0.6, Subjectivity: 1.0},
	{Word: "bitter", Polarity: -0.1, Subjectivity: 0.7},
	{Word: "cruel", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "angry", Polarity: -0.5, Subjectivity: 1.0},
	{Word: "furious", Polarity: -0.8, Subjectivity: 1.0},
	{Word: "afraid", Polarity: -0.6, Subjectivity: 0.9},
	{Word: "scared", Polarity: -0.5, Subjectivity: 0.9},
	{Word: "terrified", Polarity: -0.8, Subjectivity: 1.0},
	{Word: "anxious", Polarity: -0.3, Subjectivity: 0.8},
	{Word: "worried", Polarity: -0.4, Subjectivity: 0.8},
	{Word: "ugly", Polarity: -0.7, Subjectivity: 1.0},
	{Word: "wrong", Polarity: -0.5, Subjectivity: 0.9},
	{Word: "poor", Polarity: -0.4, Subjectivity: 0.6},
	{Word: "broken", Polarity: -0.4, Subjectivity: 0.4},
	{Word: "empty", Polarity: -0.1, Subjectivity: 0.5},
	{Word: "weary", Polarity: -0.4, Subjectivity: 0.7},
	{Word: "hopeless", Polarity: -0.8, Subjectivity: 0.9},
	{Word: "wretched", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "grim", Polarity: -0.5, Subjectivity: 0.8},
	{Word: "dreadful", Polarity: -0.9, Subjectivity: 1.0},
	{Word: "stupid", Polarity: -0.8, Subjectivity: 1.0},
	{Word: "boring", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "worst", Polarity: -1.0, Subjectivity: 1.0},
	{Word: "worse", Polarity: -0.4, Subjectivity: 0.6},
	{Word: "hate", Polarity: -0.8, Subjectivity: 0.9},
	{Word: "violent", Polarity: -0.8, Subjectivity: 0.9},

	// Evaluative but neutral
	{Word: "strange", Polarity: -0.05, Subjectivity: 0.15},
	{Word: "quiet", Polarity: 0.0, Subjectivity: 0.5},
	{Word: "silent", Polarity: 0.0, Subjectivity: 0.4},
	{Word: "sudden", Polarity: 0.0, Subjectivity: 0.5},
	{Word: "important", Polarity: 0.4, Subjectivity: 1.0},
	{Word: "interesting", Polarity: 0.5, Subjectivity: 0.5},
	{Word: "certain", Polarity: 0.2, Subjectivity: 0.6},
	{Word: "obvious", Polarity: 0.0, Subjectivity: 0.5},
}

package litsense

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/bbalet/stopwords"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/data"
)

// TextProcessor splits text into sentences and words.
type TextProcessor interface {
	SplitSentences(text string) ([]string, error)
	SplitWords(text string) ([]string, error)
}

// Lemmatizer reduces a word to its dictionary form.
type Lemmatizer interface {
	Lemmatize(word string) string
}

// DefaultTextProcessor segments sentences with a Punkt model trained on
// English and splits words with the rule-based word tokenizer.
type DefaultTextProcessor struct {
	segmenter *sentences.DefaultSentenceTokenizer
	tokenizer *wordTokenizer
}

var (
	punktOnce     sync.Once
	punktTraining *sentences.Storage
	punktErr      error
)

func loadPunktTraining() (*sentences.Storage, error) {
	punktOnce.Do(func() {
		b, err := data.Asset("data/english.json")
		if err != nil {
			punktErr = fmt.Errorf("error loading sentence model: %w", err)
			return
		}
		punktTraining, punktErr = sentences.LoadTraining(b)
	})
	return punktTraining, punktErr
}

// NewTextProcessor builds a DefaultTextProcessor. The word tokenizer accepts the
// same options as NewWordTokenizer.
func NewTextProcessor(opts ...TokenizerOptFunc) (*DefaultTextProcessor, error) {
	training, err := loadPunktTraining()
	if err != nil {
		return nil, err
	}
	return &DefaultTextProcessor{
		segmenter: sentences.NewSentenceTokenizer(training),
		tokenizer: NewWordTokenizer(opts...),
	}, nil
}

// SplitSentences returns the trimmed, non-empty sentences of text in order.
func (p *DefaultTextProcessor) SplitSentences(text string) ([]string, error) {
	var out []string
	for _, s := range p.segmenter.Tokenize(text) {
		if sent := strings.TrimSpace(s.Text); sent != "" {
			out = append(out, sent)
		}
	}
	return out, nil
}

// SplitWords returns the word and punctuation tokens of text in order.
func (p *DefaultTextProcessor) SplitWords(text string) ([]string, error) {
	return p.tokenizer.Words(text), nil
}

var (
	disallowedRE = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:'-]`)
	spaceRunRE   = regexp.MustCompile(`\s+`)
	quoteFolder  = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	)
)

// CleanText normalizes text to NFC, straightens curly quotes, drops characters
// other than letters, digits, whitespace and basic punctuation, and collapses
// runs of whitespace.
func CleanText(text string) string {
	text = norm.NFC.String(text)
	text = quoteFolder.Replace(text)
	text = disallowedRE.ReplaceAllString(text, "")
	text = spaceRunRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// PreprocessOpt configures Preprocess.
type PreprocessOpt func(opts *preprocessOpts)

type preprocessOpts struct {
	clean           bool
	lowercase       bool
	removeStopwords bool
	language        Language
	lemmatizer      Lemmatizer
}

// WithoutLowercase keeps the original casing.
func WithoutLowercase() PreprocessOpt {
	return func(opts *preprocessOpts) {
		opts.lowercase = false
	}
}

// WithStopwordRemoval removes the stop words of lang.
func WithStopwordRemoval(lang Language) PreprocessOpt {
	return func(opts *preprocessOpts) {
		opts.removeStopwords = true
		opts.language = lang
	}
}

// WithLemmatizer reduces every remaining word with l.
func WithLemmatizer(l Lemmatizer) PreprocessOpt {
	return func(opts *preprocessOpts) {
		opts.lemmatizer = l
	}
}

// WithTextCleaning runs CleanText first.
func WithTextCleaning() PreprocessOpt {
	return func(opts *preprocessOpts) {
		opts.clean = true
	}
}

// Preprocess prepares text for keyword-based scoring. By default it only lowercases.
func Preprocess(text string, opts ...PreprocessOpt) string {
	base := preprocessOpts{lowercase: true, language: English}
	for _, applyOpt := range opts {
		applyOpt(&base)
	}

	if base.clean {
		text = CleanText(text)
	}
	if base.lowercase {
		text = strings.ToLower(text)
	}
	if !base.removeStopwords && base.lemmatizer == nil {
		return text
	}

	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		if base.removeStopwords && IsStopword(word, base.language) {
			continue
		}
		if base.lemmatizer != nil {
			word = base.lemmatizer.Lemmatize(word)
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// IsStopword reports whether word is a stop word of lang.
func IsStopword(word string, lang Language) bool {
	if strings.TrimSpace(word) == "" {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(word, string(lang), false)) == ""
}

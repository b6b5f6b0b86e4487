package litsense

import (
	"strings"
	"unicode/utf8"
)

// asciiPunctuation is the set of characters counted as punctuation.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ExtractFeatures computes the lexical statistics of text. Words are the
// processor's tokens, punctuation tokens included.
func ExtractFeatures(text string, processor TextProcessor) (Features, error) {
	sents, err := processor.SplitSentences(text)
	if err != nil {
		return Features{}, collaboratorFailure("sentence splitter", err)
	}
	words, err := processor.SplitWords(text)
	if err != nil {
		return Features{}, collaboratorFailure("word tokenizer", err)
	}

	f := Features{
		WordCount:        len(words),
		SentenceCount:    len(sents),
		ExclamationCount: strings.Count(text, "!"),
		QuestionCount:    strings.Count(text, "?"),
	}

	unique := make(map[string]struct{}, len(words))
	letters := 0
	for _, w := range words {
		letters += utf8.RuneCountInString(w)
		unique[w] = struct{}{}
	}
	f.UniqueWords = len(unique)

	for _, r := range text {
		if r < utf8.RuneSelf && strings.ContainsRune(asciiPunctuation, r) {
			f.PunctuationCount++
		}
	}

	if f.WordCount > 0 {
		f.AvgWordLength = float64(letters) / float64(f.WordCount)
		f.LexicalDiversity = float64(f.UniqueWords) / float64(f.WordCount)
	}
	if f.SentenceCount > 0 {
		f.AvgSentenceLength = float64(f.WordCount) / float64(f.SentenceCount)
	}
	return f, nil
}

// AnalyzePoeticStructure counts the non-blank lines and the stanzas of text.
// Stanzas are runs of non-blank lines separated by blank lines.
func AnalyzePoeticStructure(text string, processor TextProcessor) (PoeticStructure, error) {
	words, err := processor.SplitWords(text)
	if err != nil {
		return PoeticStructure{}, collaboratorFailure("word tokenizer", err)
	}

	ps := PoeticStructure{TotalWords: len(words)}
	inStanza := false
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			inStanza = false
			continue
		}
		ps.LineCount++
		if !inStanza {
			ps.StanzaCount++
			inStanza = true
		}
	}

	if ps.StanzaCount > 0 {
		ps.AvgLinesPerStanza = float64(ps.LineCount) / float64(ps.StanzaCount)
	}
	if ps.LineCount > 0 {
		ps.AvgWordsPerLine = float64(ps.TotalWords) / float64(ps.LineCount)
	}
	return ps, nil
}

package litsense

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Language is an ISO 639-1 language code.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"
)

// SupportedLanguages returns the languages the detector can recognize.
func SupportedLanguages() []Language {
	return []Language{English, Spanish, French, German}
}

// IsSupported reports whether lang is one of SupportedLanguages.
func (lang Language) IsSupported() bool {
	for _, supported := range SupportedLanguages() {
		if lang == supported {
			return true
		}
	}
	return false
}

// ParseLanguage converts a language code to a Language. The empty string means English.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if lang == "" {
		return English, nil
	}
	if !lang.IsSupported() {
		return "", fmt.Errorf("language %q is not supported, supported languages: %v", s, SupportedLanguages())
	}
	return lang, nil
}

// minDetectableLength is the shortest text, in runes, the detector will score.
const minDetectableLength = 10

// LanguageDetector guesses the language of a text from function words,
// trigram frequencies and characteristic letters.
type LanguageDetector struct {
	patterns map[Language]*regexp.Regexp
	ngrams   map[Language]map[string]float64
}

// NewLanguageDetector creates a detector for SupportedLanguages.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		patterns: map[Language]*regexp.Regexp{
			English: regexp.MustCompile(`\b(the|and|that|have|for|not|with|you|this|but|his|from|they)\b`),
			Spanish: regexp.MustCompile(`\b(que|de|no|la|el|es|en|un|por|con|como|para|todo|pero|más)\b`),
			French:  regexp.MustCompile(`\b(le|et|un|il|être|avoir|que|pour|dans|ce|son|une|les|des)\b`),
			German:  regexp.MustCompile(`\b(der|die|und|den|von|zu|das|mit|sich|des|auf|für|ist|im|dem)\b`),
		},
		ngrams: map[Language]map[string]float64{
			English: {
				"the": 0.15, "and": 0.08, "ing": 0.06, "ion": 0.05, "tio": 0.04,
				"ent": 0.03, "ati": 0.03, "for": 0.03, "her": 0.03, "ter": 0.03,
			},
			Spanish: {
				"que": 0.12, "ión": 0.08, "ado": 0.06, "con": 0.05, "ent": 0.04,
				"par": 0.04, "est": 0.04, "ara": 0.03, "del": 0.03, "los": 0.03,
			},
			French: {
				"les": 0.10, "ent": 0.08, "ion": 0.07, "des": 0.06, "que": 0.05,
				"ait": 0.04, "lle": 0.04, "eur": 0.04, "our": 0.03, "ant": 0.03,
			},
			German: {
				"der": 0.12, "und": 0.08, "die": 0.07, "ung": 0.06, "ich": 0.05,
				"ein": 0.04, "sch": 0.04, "den": 0.04, "cht": 0.03, "das": 0.03,
			},
		},
	}
}

// Detect returns the most likely language of text and a confidence in [0, 1].
// Short or unrecognizable texts default to English.
func (ld *LanguageDetector) Detect(text string) (Language, float64) {
	if utf8.RuneCountInString(text) < minDetectableLength {
		return English, 0.5
	}

	text = strings.ToLower(text)
	scores := make(map[Language]float64, len(ld.patterns))

	for lang, pattern := range ld.patterns {
		scores[lang] += float64(len(pattern.FindAllString(text, -1))) * 0.1
	}

	trigrams := extractTrigrams(text)
	for lang, profile := range ld.ngrams {
		for trigram, freq := range trigrams {
			if expected, ok := profile[trigram]; ok {
				scores[lang] += freq * expected
			}
		}
	}

	for lang, score := range scoreCharacters(text) {
		scores[lang] += score
	}

	// Iterate in a fixed order so equal scores resolve the same way every run.
	best, bestScore, total := English, 0.0, 0.0
	for _, lang := range SupportedLanguages() {
		score := scores[lang]
		total += score
		if score > bestScore {
			best, bestScore = lang, score
		}
	}
	if total == 0 {
		return English, 0
	}

	return best, min(bestScore/total, 1.0)
}

func extractTrigrams(text string) map[string]float64 {
	trigrams := make(map[string]float64)
	total := 0

	runes := []rune(text)
	for i := 0; i+3 <= len(runes); i++ {
		if !allLetters(runes[i : i+3]) {
			continue
		}
		trigrams[string(runes[i:i+3])]++
		total++
	}

	for trigram := range trigrams {
		trigrams[trigram] /= float64(total)
	}
	return trigrams
}

func allLetters(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// scoreCharacters rewards letters that are common in one language and rare in the others.
func scoreCharacters(text string) map[Language]float64 {
	scores := make(map[Language]float64)

	counts := make(map[rune]int)
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			counts[r]++
			letters++
		}
	}

	for r, count := range counts {
		freq := float64(count) / float64(letters)

		switch r {
		case 'ñ':
			scores[Spanish] += freq * 10
		case 'ç':
			scores[French] += freq * 8
		case 'ü', 'ö', 'ä', 'ß':
			scores[German] += freq * 8
		case 'w':
			scores[English] += freq * 3
			scores[German] += freq * 2
		case 'k':
			scores[German] += freq * 2
			scores[English] += freq
		case 'j':
			scores[Spanish] += freq * 2
			scores[German] += freq
		}
	}

	return scores
}

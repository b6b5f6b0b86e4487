package litsense

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var rule = strings.Repeat("=", 60)

// GenerateSummary renders result as a human-readable report.
func GenerateSummary(result *AnalysisResult) string {
	// Casers keep state, so each call gets its own.
	titleCaser := cases.Title(language.English)
	upperCaser := cases.Upper(language.English)

	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "LITERARY TEXT ANALYSIS SUMMARY")
	fmt.Fprintln(&b, rule)

	f := result.Features
	fmt.Fprintln(&b, "\nTEXT STATISTICS:")
	fmt.Fprintf(&b, "  • Word count: %d\n", f.WordCount)
	fmt.Fprintf(&b, "  • Sentence count: %d\n", f.SentenceCount)
	fmt.Fprintf(&b, "  • Average sentence length: %.1f words\n", f.AvgSentenceLength)
	fmt.Fprintf(&b, "  • Lexical diversity: %s\n", percent(f.LexicalDiversity, 2))

	if ps := result.PoeticStructure; ps != nil {
		fmt.Fprintln(&b, "\nPOETIC STRUCTURE:")
		fmt.Fprintf(&b, "  • Lines: %d\n", ps.LineCount)
		fmt.Fprintf(&b, "  • Stanzas: %d\n", ps.StanzaCount)
		fmt.Fprintf(&b, "  • Average lines per stanza: %.1f\n", ps.AvgLinesPerStanza)
	}

	if lit := result.Literary; len(lit.Themes) > 0 || len(lit.Devices) > 0 {
		fmt.Fprintln(&b, "\nLITERARY DEVICES AND THEMES:")
		if len(lit.Themes) > 0 {
			fmt.Fprintf(&b, "  • Themes: %s\n", strings.Join(lit.Themes, ", "))
		}
		for _, d := range lit.Devices {
			name := titleCaser.String(strings.ReplaceAll(string(d.Device), "_", " "))
			fmt.Fprintf(&b, "  • %s: %d\n", name, d.Count)
		}
	}

	s := result.Sentiment
	fmt.Fprintln(&b, "\nSENTIMENT ANALYSIS:")
	fmt.Fprintf(&b, "  • Overall sentiment: %s\n", upperCaser.String(string(s.OverallSentiment)))
	fmt.Fprintln(&b, "  • Distribution:")
	for _, label := range SentimentLabels {
		fmt.Fprintf(&b, "      - %s: %s\n", titleCaser.String(string(label)), percent(s.Distribution.Get(label), 1))
	}

	e := result.Emotions
	fmt.Fprintln(&b, "\nEMOTION ANALYSIS:")
	fmt.Fprintf(&b, "  • Primary emotion: %s\n", upperCaser.String(string(e.PrimaryEmotion)))
	fmt.Fprintf(&b, "  • Confidence: %s\n", percent(e.Confidence, 1))
	var detected []EmotionScore
	for _, top := range e.TopEmotions {
		if top.Score > 0 {
			detected = append(detected, top)
		}
	}
	if len(detected) == 0 {
		fmt.Fprintln(&b, "  • Top emotions: none detected")
	} else {
		fmt.Fprintf(&b, "  • Top %d emotions:\n", len(detected))
	}
	for _, top := range detected {
		fmt.Fprintf(&b, "      - %s: %s\n", titleCaser.String(string(top.Emotion)), percent(top.Score, 1))
	}

	subj := result.Subjectivity
	fmt.Fprintln(&b, "\nSUBJECTIVITY:")
	fmt.Fprintf(&b, "  • Score: %.2f\n", subj.Subjectivity)
	fmt.Fprintf(&b, "  • Assessment: %s\n", subj.Assessment)
	fmt.Fprintf(&b, "  • Polarity: %.2f (emotional tone)\n", subj.Polarity)

	if arc := result.EmotionalArc; len(arc) > 0 {
		fmt.Fprintln(&b, "\nEMOTIONAL JOURNEY:")
		fmt.Fprintf(&b, "  • Beginning: %s\n", arc[0].PrimaryEmotion)
		fmt.Fprintf(&b, "  • Middle: %s\n", arc[len(arc)/2].PrimaryEmotion)
		fmt.Fprintf(&b, "  • End: %s\n", arc[len(arc)-1].PrimaryEmotion)
	}

	fmt.Fprint(&b, "\n", rule)
	return b.String()
}

func percent(x float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, x*100)
}

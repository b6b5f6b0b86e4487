package litsense

import (
	"strings"
	"testing"
)

func sampleResult() *AnalysisResult {
	return &AnalysisResult{
		Metadata: Metadata{AnalyzedAt: analyzedAt, TextType: Poem, TextLength: 120},
		Features: Features{WordCount: 24, SentenceCount: 3, AvgSentenceLength: 8, LexicalDiversity: 0.875},
		PoeticStructure: &PoeticStructure{
			LineCount: 6, StanzaCount: 2, AvgLinesPerStanza: 3, TotalWords: 24, AvgWordsPerLine: 4,
		},
		Sentiment: DocumentSentiment{
			OverallSentiment: Positive,
			Distribution:     SentimentVector{Negative: 0.1, Neutral: 0.25, Positive: 0.65},
			Method:           Weighted,
			SentenceCount:    3,
		},
		Emotions: EmotionAnalysis{
			PrimaryEmotion: Hope,
			Confidence:     0.6,
			Determined:     true,
			TopEmotions: []EmotionScore{
				{Emotion: Hope, Score: 0.6},
				{Emotion: Love, Score: 0.4},
				{Emotion: Fear, Score: 0},
			},
		},
		Literary: LiteraryProfile{
			Devices: []DeviceMatch{{Device: ExtendedMetaphor, Count: 1, Examples: []string{"summer's day"}}},
			Themes:  []string{"nature", "time"},
		},
		Subjectivity: Subjectivity{Subjectivity: 0.55, Polarity: 0.32, Assessment: AssessSubjectivity(0.55)},
		EmotionalArc: []ArcPoint{
			{ChunkNumber: 1, PrimaryEmotion: Fear},
			{ChunkNumber: 2, PrimaryEmotion: Sadness},
			{ChunkNumber: 3, PrimaryEmotion: Hope},
		},
	}
}

func TestGenerateSummary(t *testing.T) {
	summary := GenerateSummary(sampleResult())

	expected := []string{
		"LITERARY TEXT ANALYSIS SUMMARY",
		"  • Word count: 24",
		"  • Average sentence length: 8.0 words",
		"  • Lexical diversity: 87.50%",
		"POETIC STRUCTURE:",
		"  • Stanzas: 2",
		"  • Overall sentiment: POSITIVE",
		"      - Negative: 10.0%",
		"      - Positive: 65.0%",
		"  • Primary emotion: HOPE",
		"  • Confidence: 60.0%",
		"  • Top 2 emotions:",
		"LITERARY DEVICES AND THEMES:",
		"  • Themes: nature, time",
		"  • Extended Metaphor: 1",
		"      - Hope: 60.0%",
		"      - Love: 40.0%",
		"  • Score: 0.55",
		"  • Assessment: Somewhat subjective (personal opinions present)",
		"  • Polarity: 0.32 (emotional tone)",
		"  • Beginning: fear",
		"  • Middle: sadness",
		"  • End: hope",
	}
	for _, line := range expected {
		if !strings.Contains(summary, line) {
			t.Errorf("summary is missing %q", line)
		}
	}

	if strings.Contains(summary, "Fear: 0.0%") {
		t.Error("emotions with a zero score should not be listed")
	}

	// Sections appear in a fixed order.
	order := []string{"TEXT STATISTICS:", "POETIC STRUCTURE:", "LITERARY DEVICES AND THEMES:", "SENTIMENT ANALYSIS:", "EMOTION ANALYSIS:", "SUBJECTIVITY:", "EMOTIONAL JOURNEY:"}
	last := -1
	for _, header := range order {
		idx := strings.Index(summary, header)
		if idx <= last {
			t.Errorf("section %q is out of order", header)
		}
		last = idx
	}

	lines := strings.Split(summary, "\n")
	if lines[0] != rule || lines[len(lines)-1] != rule {
		t.Error("summary should be framed by rules")
	}
}

func TestGenerateSummaryOmitsOptionalSections(t *testing.T) {
	result := sampleResult()
	result.PoeticStructure = nil
	result.Literary = LiteraryProfile{}
	result.EmotionalArc = nil

	summary := GenerateSummary(result)
	for _, header := range []string{"POETIC STRUCTURE:", "LITERARY DEVICES AND THEMES:", "EMOTIONAL JOURNEY:"} {
		if strings.Contains(summary, header) {
			t.Errorf("summary should not contain %q", header)
		}
	}
}

func TestGenerateSummaryWithoutEmotions(t *testing.T) {
	result := sampleResult()
	result.Emotions = EmotionAnalysis{
		TopEmotions: []EmotionScore{{Emotion: Joy}, {Emotion: Sadness}, {Emotion: Anger}},
	}

	summary := GenerateSummary(result)
	if !strings.Contains(summary, "  • Top emotions: none detected") {
		t.Error("expected the empty ranking to be reported")
	}
	if strings.Contains(summary, "Top 3 emotions:") {
		t.Error("the header should count only listed emotions")
	}
}

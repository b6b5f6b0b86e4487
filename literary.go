package litsense

import (
	"regexp"
	"strings"
)

// LiteraryDevice names a figure of speech or stylistic marker.
type LiteraryDevice string

const (
	Metaphor           LiteraryDevice = "metaphor"
	Simile             LiteraryDevice = "simile"
	Personification    LiteraryDevice = "personification"
	ArchaicPronouns    LiteraryDevice = "archaic_pronouns"
	RhetoricalQuestion LiteraryDevice = "rhetorical_question"
	ExtendedMetaphor   LiteraryDevice = "extended_metaphor"
)

// DeviceMatch counts one device in a text and keeps the first few phrases
// that matched it.
type DeviceMatch struct {
	Device   LiteraryDevice `json:"device"`
	Count    int            `json:"count"`
	Examples []string       `json:"examples"`
}

// TextStructure flags broad rhetorical features of a text.
type TextStructure struct {
	HasNarration bool `json:"has_narration"`
	HasConflict  bool `json:"has_conflict"`
	HasJudgment  bool `json:"has_judgment"`
}

// LiteraryProfile is the surface reading of a text's devices, themes and
// claims. Matching is pattern based, so it flags candidates rather than
// proving a figure of speech is present.
type LiteraryProfile struct {
	Devices   []DeviceMatch `json:"devices"`
	Themes    []string      `json:"themes"`
	Structure TextStructure `json:"structure"`
	Claims    []string      `json:"claims"`
}

const (
	maxDeviceExamples = 3
	maxClaims         = 6
)

type devicePattern struct {
	device LiteraryDevice
	re     *regexp.Regexp
	keep   func(groups []string) bool
}

var devicePatterns = []devicePattern{
	{
		device: Metaphor,
		re:     regexp.MustCompile(`(?i)\b(?:is|are|was|were) (?:a|an|the) (\w+)`),
		// "was the he" is grammar, not a comparison.
		keep: func(groups []string) bool {
			switch strings.ToLower(groups[1]) {
			case "he", "she", "it", "they":
				return false
			}
			return true
		},
	},
	{device: Simile, re: regexp.MustCompile(`(?i)\b(?:like|as) (?:a|an|the)\b`)},
	{device: Personification, re: regexp.MustCompile(`(?i)\b(?:summer|winter|death|time|nature|love) (?:has|does|can|will|may|must|shall)\b`)},
	{device: ArchaicPronouns, re: regexp.MustCompile(`(?i)\b(?:thee|thou|thy|thine)\b`)},
	{device: RhetoricalQuestion, re: regexp.MustCompile(`(?im)^[ \t]*(?:shall|should|must|may) I\b.*$`)},
	{device: ExtendedMetaphor, re: regexp.MustCompile(`(?i)\b(?:summer|spring|winter|fall|autumn)\b.*?\b(?:day|season|time)\b`)},
}

var themePatterns = []struct {
	theme string
	re    *regexp.Regexp
}{
	{"justice", regexp.MustCompile(`(?i)\b(?:law|laws|court|trial|judge|guilty)\b`)},
	{"race", regexp.MustCompile(`(?i)\b(?:race|racial|black|white|colored)\b`)},
	{"family", regexp.MustCompile(`(?i)\b(?:father|mother|child|children|family)\b`)},
	{"fear", regexp.MustCompile(`(?i)\b(?:fear|afraid|danger)\b`)},
	{"love", regexp.MustCompile(`(?i)\b(?:love|loved|lover|beloved)\b`)},
	{"death", regexp.MustCompile(`(?i)\b(?:death|die|dead|dying|mortal|mortality)\b`)},
	{"time", regexp.MustCompile(`(?i)\b(?:time|eternal|eternity|forever|immortal)\b`)},
	{"beauty", regexp.MustCompile(`(?i)\b(?:beauty|lovely|fair|beautiful|handsome)\b`)},
	{"nature", regexp.MustCompile(`(?i)\b(?:nature|summer|winter|spring|autumn|season|seasons)\b`)},
}

var (
	narrationRE = regexp.MustCompile(`(?i)\b(?:I|he|she|they)\b`)
	conflictRE  = regexp.MustCompile(`(?i)\b(?:but|however|yet|although)\b`)
	judgmentRE  = regexp.MustCompile(`(?i)\b(?:should|must|guilty|innocent|wrong|right)\b`)
	claimRE     = regexp.MustCompile(`(?i)\b(?:is|was|means|shows|proves|because)\b`)
)

// AnalyzeLiterary detects literary devices, themes, rhetorical structure and
// claim-like sentences in text. Slices are nil when nothing was found.
func AnalyzeLiterary(text string, processor TextProcessor) (LiteraryProfile, error) {
	sentences, err := processor.SplitSentences(text)
	if err != nil {
		return LiteraryProfile{}, collaboratorFailure("sentence splitter", err)
	}

	var profile LiteraryProfile
	profile.Devices = detectDevices(text)

	for _, tp := range themePatterns {
		if tp.re.MatchString(text) {
			profile.Themes = append(profile.Themes, tp.theme)
		}
	}

	profile.Structure = TextStructure{
		HasNarration: narrationRE.MatchString(text),
		HasConflict:  conflictRE.MatchString(text),
		HasJudgment:  judgmentRE.MatchString(text),
	}

	for _, s := range sentences {
		if len(profile.Claims) == maxClaims {
			break
		}
		if s = strings.TrimSpace(s); s != "" && claimRE.MatchString(s) {
			profile.Claims = append(profile.Claims, s)
		}
	}
	return profile, nil
}

func detectDevices(text string) []DeviceMatch {
	var devices []DeviceMatch
	for _, dp := range devicePatterns {
		match := DeviceMatch{Device: dp.device}
		for _, groups := range dp.re.FindAllStringSubmatch(text, -1) {
			if dp.keep != nil && !dp.keep(groups) {
				continue
			}
			match.Count++
			if len(match.Examples) < maxDeviceExamples {
				match.Examples = append(match.Examples, strings.TrimSpace(groups[0]))
			}
		}
		if match.Count > 0 {
			devices = append(devices, match)
		}
	}
	return devices
}

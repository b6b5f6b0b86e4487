package litsense

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Token is one word or punctuation mark with its byte offsets in the
// sanitized input.
type Token struct {
	Text  string
	Start int
	End   int
}

type TokenTester func(string) bool

// wordTokenizer splits a sentence into words and punctuation marks.
type wordTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]int
	isUnsplittable TokenTester
}

type TokenizerOptFunc func(*wordTokenizer)

// UsingIsUnsplittable gives a function that reports tokens that must never be split.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// Use the provided special regex for unsplittable tokens.
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.specialRE = x
	}
}

// Use the provided contractions.
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.contractions = x
	}
}

// Use the provided map of emoticons.
func UsingEmoticons(x map[string]int) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.emoticons = x
	}
}

// NewWordTokenizer returns a tokenizer that separates punctuation and
// contractions the way Penn Treebank style tokenizers do.
func NewWordTokenizer(opts ...TokenizerOptFunc) *wordTokenizer {
	tok := &wordTokenizer{
		contractions:   contractions,
		emoticons:      emoticons,
		isUnsplittable: func(_ string) bool { return false },
		prefixes:       prefixes,
		sanitizer:      sanitizer,
		specialRE:      internalRE,
		suffixes:       suffixes,
	}

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, tok.contractions...)

	return tok
}

func addToken(s string, start int, toks []Token) []Token {
	if strings.TrimSpace(s) != "" {
		toks = append(toks, Token{Text: s, Start: start, End: start + len(s)})
	}
	return toks
}

func (t *wordTokenizer) isSpecial(token string) bool {
	_, found := t.emoticons[token]
	return found || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

func (t *wordTokenizer) split(token string, offset int) []Token {
	tokens := []Token{}
	suffs := []Token{}

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			// Emoticons and abbreviations pass through whole.
			tokens = addToken(token, offset, tokens)
			break
		}
		last = utf8.RuneCountInString(token)
		if hasAnyPrefix(token, t.prefixes) {
			// (hello -> [(, hello].
			tokens = addToken(token[:1], offset, tokens)
			token = token[1:]
			offset++
		} else if idx := hasAnyIndex(token, t.splitCases); idx > -1 {
			// don't -> [do, n't].
			// they'll -> [they, 'll].
			tokens = addToken(token[:idx], offset, tokens)
			offset += idx
			token = token[idx:]
		} else if hasAnySuffix(token, t.suffixes) {
			// night. -> [night, .].
			end := len(token) - 1
			suffs = append([]Token{{Text: token[end:], Start: offset + end, End: offset + end + 1}}, suffs...)
			token = token[:end]
		} else {
			tokens = addToken(token, offset, tokens)
			break
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits text into tokens in reading order.
func (t *wordTokenizer) Tokenize(text string) []Token {
	var tokens []Token

	clean := t.sanitizer.Replace(text)
	cache := map[string][]Token{}

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		span := clean[start:end]
		if cached, found := cache[span]; found {
			shift := start - cached[0].Start
			for _, tok := range cached {
				tokens = append(tokens, Token{Text: tok.Text, Start: tok.Start + shift, End: tok.End + shift})
			}
		} else if toks := t.split(span, start); len(toks) > 0 {
			cache[span] = toks
			tokens = append(tokens, toks...)
		}
		start = -1
	}

	for index, r := range clean {
		if unicode.IsSpace(r) {
			flush(index)
		} else if start < 0 {
			start = index
		}
	}
	flush(len(clean))

	return tokens
}

// Words returns only the token texts of text.
func (t *wordTokenizer) Words(text string) []string {
	toks := t.Tokenize(text)
	words := make([]string, len(toks))
	for i, tok := range toks {
		words[i] = tok.Text
	}
	return words
}

func hasAnyPrefix(s string, prefixes []string) bool {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n > len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// hasAnyIndex returns the byte offset in s where the first split case starts,
// ignoring case. A case at the very start of s is not a split point.
func hasAnyIndex(s string, cases []string) int {
	for _, c := range cases {
		if idx := indexFold(s, c); idx > 0 {
			return idx
		}
	}
	return -1
}

// indexFold is a case-insensitive strings.Index. The offset always refers to
// s itself, so it is safe for slicing s.
func indexFold(s, substr string) int {
	for i := range s {
		if hasPrefixFold(s[i:], substr) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		r1, n1 := utf8.DecodeRuneInString(s)
		r2, n2 := utf8.DecodeRuneInString(prefix)
		if unicode.ToLower(r1) != unicode.ToLower(r2) {
			return false
		}
		s, prefix = s[n1:], prefix[n2:]
	}
	return true
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "'ve", "'d", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
var emoticons = map[string]int{
	"(-;":   1,
	"(:":    1,
	"(=":    1,
	"-__-":  1,
	"8-)":   1,
	":(":    1,
	":((":   1,
	":)":    1,
	":))":   1,
	":-(":   1,
	":-)":   1,
	":-/":   1,
	":-D":   1,
	":-p":   1,
	":-|":   1,
	":D":    1,
	":P":    1,
	":'(":   1,
	";)":    1,
	";-)":   1,
	"<3":    1,
	"=(":    1,
	"=)":    1,
	"^_^":   1,
	"o_O":   1,
	"xD":    1,
	"¯\\_(ツ)_/¯": 1,
}

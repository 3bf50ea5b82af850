package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reURL     = regexp.MustCompile(`[a-z][a-z0-9+.-]*://\S+`)
	reEmail   = regexp.MustCompile(`\S+@\S+`)
	reNumber  = regexp.MustCompile(`\b\d+\b`)
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	reToken   = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Normalize cleans raw text for analysis: lowercase, strip URLs, emails and
// isolated numbers, map the remaining punctuation to spaces and collapse
// whitespace. Malformed input degrades to an empty string.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = reURL.ReplaceAllString(text, "")
	text = reEmail.ReplaceAllString(text, "")
	text = reNumber.ReplaceAllString(text, "")
	text = reNonWord.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize splits normalized text into word tokens, preserving order. Tokens
// of length <= 2 and purely numeric tokens are dropped.
func Tokenize(text string) []string {
	raw := reToken.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len([]rune(t)) <= 2 || isDigits(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

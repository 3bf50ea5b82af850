package analyzer

import (
	"sort"
	"strings"
)

const (
	// DefaultMinPhraseLen and DefaultMaxPhraseLen bound n-gram extraction
	// when the caller passes zero values.
	DefaultMinPhraseLen = 2
	DefaultMaxPhraseLen = 5

	minPhraseCount = 2
	maxPhrases     = 50
)

// PhraseCandidate is an n-gram with its exact occurrence count.
type PhraseCandidate struct {
	Phrase string
	Count  int
}

// ExtractPhrases mines contiguous n-grams of each length in [minLen, maxLen]
// from the document, keeps those occurring at least twice and returns the top
// 50 by count descending, ties in first-seen order.
func (a *Analyzer) ExtractPhrases(text string, minLen, maxLen int) []PhraseCandidate {
	if minLen <= 0 {
		minLen = DefaultMinPhraseLen
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxPhraseLen
	}
	tokens := Tokenize(Normalize(text))
	return minePhrases(tokens, minLen, maxLen)
}

func minePhrases(tokens []string, minLen, maxLen int) []PhraseCandidate {
	if maxLen > len(tokens) {
		maxLen = len(tokens)
	}

	counts := make(map[string]int)
	var order []string
	for n := minLen; n <= maxLen; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			phrase := strings.Join(tokens[i:i+n], " ")
			if counts[phrase] == 0 {
				order = append(order, phrase)
			}
			counts[phrase]++
		}
	}

	candidates := make([]PhraseCandidate, 0, len(order))
	for _, phrase := range order {
		if counts[phrase] >= minPhraseCount {
			candidates = append(candidates, PhraseCandidate{Phrase: phrase, Count: counts[phrase]})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Count > candidates[j].Count
	})
	if len(candidates) > maxPhrases {
		candidates = candidates[:maxPhrases]
	}
	return candidates
}

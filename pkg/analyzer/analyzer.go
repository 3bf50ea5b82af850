// Package analyzer implements the Indonesian text analysis core: a
// normalizer/tokenizer, a rule-ordered morphological stemmer with
// phonological restoration, document frequency aggregation and n-gram
// phrase mining. The analyzer is stateless after construction and safe for
// concurrent use.
package analyzer

import "sort"

const topListSize = 20

// Analyzer stems words and aggregates document statistics according to a
// fixed set of affix rules.
type Analyzer struct {
	rules Rules
}

// New creates an analyzer from the given rule tables. A malformed table is
// reported here, never mid-analysis.
func New(rules Rules) (*Analyzer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{rules: rules}, nil
}

// NewDefault creates an analyzer with the production Indonesian rules.
func NewDefault() *Analyzer {
	a, err := New(DefaultRules())
	if err != nil {
		panic(err) // DefaultRules is a fixed literal; this cannot happen
	}
	return a
}

// FrequencyEntry is one row of a ranked frequency list.
type FrequencyEntry struct {
	Text  string
	Count int
}

// AnalysisResult holds the aggregate statistics of one document. It is
// constructed fresh per AnalyzeText call and not mutated afterwards.
type AnalysisResult struct {
	TotalWords    int
	UniqueWords   int
	UniqueStems   int
	WordFrequency map[string]int
	StemFrequency map[string]int
	// StemGroups maps a stem to the surface words that reduced to it, in
	// first-seen order.
	StemGroups map[string][]string
	TopWords   []FrequencyEntry
	TopStems   []FrequencyEntry
}

// AnalyzeText normalizes, tokenizes and stems a whole document and returns
// its frequency statistics. Empty or malformed input yields an empty result.
func (a *Analyzer) AnalyzeText(text string) *AnalysisResult {
	tokens := Tokenize(Normalize(text))

	wordFreq := make(map[string]int, len(tokens))
	stemFreq := make(map[string]int, len(tokens))
	stemGroups := make(map[string][]string)
	wordOrder := make([]string, 0, len(tokens))
	stemOrder := make([]string, 0, len(tokens))

	for _, word := range tokens {
		if wordFreq[word] == 0 {
			wordOrder = append(wordOrder, word)
		}
		wordFreq[word]++

		stem := a.Stem(word)
		if stemFreq[stem] == 0 {
			stemOrder = append(stemOrder, stem)
		}
		stemFreq[stem]++

		if !containsString(stemGroups[stem], word) {
			stemGroups[stem] = append(stemGroups[stem], word)
		}
	}

	return &AnalysisResult{
		TotalWords:    len(tokens),
		UniqueWords:   len(wordFreq),
		UniqueStems:   len(stemFreq),
		WordFrequency: wordFreq,
		StemFrequency: stemFreq,
		StemGroups:    stemGroups,
		TopWords:      topEntries(wordFreq, wordOrder, topListSize),
		TopStems:      topEntries(stemFreq, stemOrder, topListSize),
	}
}

// topEntries ranks a frequency map by count descending; ties keep first-seen
// order via a stable sort over the encounter sequence.
func topEntries(freq map[string]int, order []string, n int) []FrequencyEntry {
	entries := make([]FrequencyEntry, 0, len(order))
	for _, text := range order {
		entries = append(entries, FrequencyEntry{Text: text, Count: freq[text]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

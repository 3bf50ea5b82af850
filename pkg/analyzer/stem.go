package analyzer

import "strings"

const minStemLen = 3

// Stem reduces an Indonesian word to its best-guess root. It strips at most
// one confix pair, or one prefix and one suffix, applying phonological
// restoration after prefix removal. Stemming never fails: when no rule
// produces a root of at least three characters the lowercased input is
// returned unchanged.
func (a *Analyzer) Stem(word string) string {
	word = strings.ToLower(word)
	if len(word) < minStemLen {
		return word
	}
	original := word

	// Known roots are final; affix patterns that happen to match them
	// (ke- in "kerja", ter- in "terima") must not fire.
	if _, ok := a.rules.CommonRoots[word]; ok {
		return word
	}

	// Confix pairs are tried before independent affix stripping and
	// short-circuit on first match, so pair order is a tie-break.
	for _, c := range a.rules.Confixes {
		if !strings.HasPrefix(word, c.Prefix) || !strings.HasSuffix(word, c.Suffix) {
			continue
		}
		middle := word[len(c.Prefix) : len(word)-len(c.Suffix)]
		if len(middle) >= minStemLen && a.isValidStem(middle) {
			return middle
		}
	}

	word = a.stripSuffix(word)
	word = a.stripPrefix(word)

	if len(word) < minStemLen {
		return original
	}
	return word
}

// stripPrefix removes the first matching prefix variant and applies the
// group's phonological restoration. A candidate shorter than three
// characters is rejected and the scan continues with the next variant.
func (a *Analyzer) stripPrefix(word string) string {
	for _, rule := range a.rules.Prefixes {
		for _, variant := range rule.Variants {
			if !strings.HasPrefix(word, variant) {
				continue
			}
			stem := restorePhonology(word[len(variant):], rule.Group)
			if len(stem) >= minStemLen {
				return stem
			}
		}
	}
	return word
}

// stripSuffix removes at most one suffix. The scan stops at the first
// suffix matching the word ending; the strip only happens when the
// remainder stays longer than len(suffix)+2, which keeps short roots such
// as "makan" intact against the -an pattern.
func (a *Analyzer) stripSuffix(word string) string {
	for _, suffix := range a.rules.Suffixes {
		if !strings.HasSuffix(word, suffix) {
			continue
		}
		if len(word)-len(suffix) > len(suffix)+2 {
			return word[:len(word)-len(suffix)]
		}
		return word
	}
	return word
}

// restorePhonology reconstructs the consonant a prefix assimilated away,
// e.g. the p in pukul after mem- stripping. Only a handful of alternations
// are covered; everything else is a deliberate no-op.
func restorePhonology(stem, group string) string {
	if stem == "" {
		return stem
	}
	switch group {
	case "meng":
		// k/g/h and vowel starts keep their surface form.
		return stem
	case "meny":
		if strings.IndexByte("aeiou", stem[0]) >= 0 {
			return "s" + stem
		}
	case "mem":
		if stem[0] == 'm' && len(stem) > 1 {
			return "p" + stem[1:]
		}
	case "men":
		if stem[0] == 'n' && len(stem) > 1 {
			return "t" + stem[1:]
		}
	}
	return stem
}

// isValidStem is the cheap heuristic used by the confix check: a known root,
// or any candidate of three or more characters containing a vowel. False
// positives are accepted in exchange for fully offline operation.
func (a *Analyzer) isValidStem(stem string) bool {
	if len(stem) < minStemLen {
		return false
	}
	if _, ok := a.rules.CommonRoots[stem]; ok {
		return true
	}
	return strings.ContainsAny(stem, "aeiou")
}

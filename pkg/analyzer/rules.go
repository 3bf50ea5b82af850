package analyzer

import (
	"errors"
	"fmt"
)

var (
	ErrNoPrefixRules = errors.New("analyzer: prefix rule table is empty")
	ErrNoSuffixRules = errors.New("analyzer: suffix rule table is empty")
	ErrBadConfix     = errors.New("analyzer: confix pair must have both prefix and suffix")
)

// PrefixRule is one prefix group. Variants are tried in order; Group selects
// the phonological restoration applied after a variant is stripped.
type PrefixRule struct {
	Group    string
	Variants []string
}

// ConfixRule is a circumfix pair stripped as one unit (e.g. ke-...-an).
type ConfixRule struct {
	Prefix string
	Suffix string
}

// Rules holds the affix tables the stemmer runs on. Table order is part of
// the algorithm: prefixes and confixes are evaluated first-match in the order
// given here.
type Rules struct {
	Prefixes    []PrefixRule
	Suffixes    []string
	Confixes    []ConfixRule
	CommonRoots map[string]struct{}
}

// Validate reports a malformed rule table. Called once at analyzer
// construction so a bad table fails fast instead of mid-analysis.
func (r Rules) Validate() error {
	if len(r.Prefixes) == 0 {
		return ErrNoPrefixRules
	}
	if len(r.Suffixes) == 0 {
		return ErrNoSuffixRules
	}
	for i, p := range r.Prefixes {
		if p.Group == "" || len(p.Variants) == 0 {
			return fmt.Errorf("analyzer: prefix rule %d has no group or variants", i)
		}
	}
	for _, s := range r.Suffixes {
		if s == "" {
			return ErrNoSuffixRules
		}
	}
	for _, c := range r.Confixes {
		if c.Prefix == "" || c.Suffix == "" {
			return fmt.Errorf("%w: (%q, %q)", ErrBadConfix, c.Prefix, c.Suffix)
		}
	}
	return nil
}

// DefaultRules returns the production tables for Indonesian.
func DefaultRules() Rules {
	return Rules{
		Prefixes: []PrefixRule{
			// me- variants: meng- before vowels/g/h, men- before c/d/j/t,
			// mem- before b/p/f, meny- before s.
			{Group: "meng", Variants: []string{"meng", "me"}},
			{Group: "men", Variants: []string{"men", "me"}},
			{Group: "mem", Variants: []string{"mem", "me"}},
			{Group: "me", Variants: []string{"me"}},
			{Group: "meny", Variants: []string{"meny", "me"}},
			{Group: "ber", Variants: []string{"ber", "be"}},
			{Group: "bel", Variants: []string{"bel"}},
			{Group: "ter", Variants: []string{"ter"}},
			{Group: "di", Variants: []string{"di"}},
			{Group: "peng", Variants: []string{"peng", "pe"}},
			{Group: "pen", Variants: []string{"pen", "pe"}},
			{Group: "pem", Variants: []string{"pem", "pe"}},
			{Group: "pe", Variants: []string{"pe"}},
			{Group: "peny", Variants: []string{"peny", "pe"}},
			{Group: "pel", Variants: []string{"pel", "pe"}},
			{Group: "per", Variants: []string{"per"}},
			{Group: "se", Variants: []string{"se"}},
			{Group: "ke", Variants: []string{"ke"}},
		},
		Suffixes: []string{"kan", "an", "i", "nya", "lah", "kah"},
		Confixes: []ConfixRule{
			{Prefix: "ke", Suffix: "an"},
			{Prefix: "pe", Suffix: "an"},
			{Prefix: "per", Suffix: "an"},
			{Prefix: "ber", Suffix: "an"},
			{Prefix: "se", Suffix: "nya"},
		},
		CommonRoots: rootSet(
			"makan", "minum", "tidur", "kerja", "jalan", "baca", "tulis",
			"lihat", "dengar", "bicara", "pikir", "rasa", "buat", "beli",
			"jual", "kirim", "terima", "buka", "tutup", "mulai", "akhir",
			"masuk", "keluar", "naik", "turun", "datang", "pergi", "duduk",
			"berdiri", "lari", "terbang", "renang", "main", "bantu", "ajar",
			"belajar", "paham", "tahu", "ingat", "lupa", "cinta", "suka",
			"benci", "takut", "berani", "marah", "sedih", "senang", "bahagia",
		),
	}
}

func rootSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

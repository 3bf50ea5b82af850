package analyzer

import "testing"

func TestExtractPhrasesMinimumCount(t *testing.T) {
	a := NewDefault()
	phrases := a.ExtractPhrases("kopi susu kopi susu", 2, 2)

	var found bool
	for _, p := range phrases {
		if p.Phrase == "kopi susu" {
			found = true
			if p.Count != 2 {
				t.Fatalf("count of %q = %d, want 2", p.Phrase, p.Count)
			}
		}
		if p.Phrase == "susu kopi" {
			t.Fatalf("%q occurs once and must not be reported", p.Phrase)
		}
	}
	if !found {
		t.Fatal("expected phrase \"kopi susu\" in result")
	}
}

func TestExtractPhrasesDefaultsAndOrdering(t *testing.T) {
	a := NewDefault()
	// Zero bounds fall back to the 2..5 defaults.
	text := "pagi hari cerah, pagi hari cerah, pagi hari cerah, siang hari panas, siang hari panas"
	phrases := a.ExtractPhrases(text, 0, 0)
	if len(phrases) == 0 {
		t.Fatal("expected phrases")
	}
	if phrases[0].Phrase != "pagi hari" || phrases[0].Count != 3 {
		t.Fatalf("top phrase = %+v, want {pagi hari 3}", phrases[0])
	}
	for i := 1; i < len(phrases); i++ {
		if phrases[i].Count > phrases[i-1].Count {
			t.Fatalf("phrases not sorted by count: %v", phrases)
		}
	}
}

func TestExtractPhrasesCap(t *testing.T) {
	tokens := make([]string, 0, 240)
	for i := 0; i < 2; i++ {
		for w := 0; w < 120; w++ {
			tokens = append(tokens, wordFor(w))
		}
	}
	got := minePhrases(tokens, 2, 2)
	if len(got) != maxPhrases {
		t.Fatalf("len = %d, want cap %d", len(got), maxPhrases)
	}
}

func TestExtractPhrasesEmptyInput(t *testing.T) {
	a := NewDefault()
	if got := a.ExtractPhrases("", 2, 5); len(got) != 0 {
		t.Fatalf("expected no phrases, got %v", got)
	}
}

func wordFor(i int) string {
	letters := "abcdefghijkl"
	return "kata" + string(letters[i/10]) + string(letters[i%10])
}

package analyzer

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Saya MAKAN nasi.", "saya makan nasi"},
		{"kunjungi https://example.com/halaman sekarang", "kunjungi sekarang"},
		{"hubungi admin@example.com segera", "hubungi segera"},
		{"ada 42 orang", "ada orang"},
		{"satu,dua;tiga!", "satu dua tiga"},
		{"  spasi \t ganda \n banyak ", "spasi ganda banyak"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("saya ke pasar membeli 100 buah apel")
	want := []string{"saya", "pasar", "membeli", "buah", "apel"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}

	if got := Tokenize(""); len(got) != 0 {
		t.Fatalf("Tokenize of empty text = %v, want empty", got)
	}
}

func TestAnalyzeTextEndToEnd(t *testing.T) {
	a := NewDefault()
	res := a.AnalyzeText("Saya makan nasi. Dia memakan nasi.")

	if res.TotalWords != 6 {
		t.Fatalf("TotalWords = %d, want 6", res.TotalWords)
	}
	if res.UniqueWords != 5 {
		t.Fatalf("UniqueWords = %d, want 5", res.UniqueWords)
	}
	if res.WordFrequency["nasi"] != 2 {
		t.Fatalf("word frequency of nasi = %d, want 2", res.WordFrequency["nasi"])
	}

	// makan and memakan must collapse into one stem bucket.
	if res.StemFrequency["makan"] != 2 {
		t.Fatalf("stem frequency of makan = %d, want 2", res.StemFrequency["makan"])
	}
	group := res.StemGroups["makan"]
	want := []string{"makan", "memakan"}
	if !reflect.DeepEqual(group, want) {
		t.Fatalf("StemGroups[makan] = %v, want %v", group, want)
	}
}

func TestAnalyzeTextTopRanking(t *testing.T) {
	a := NewDefault()
	// tiga appears 3x, dua 2x; the singletons tie and must keep encounter order.
	res := a.AnalyzeText("tiga tiga tiga dua dua satu nol")

	wantTop := []FrequencyEntry{
		{Text: "tiga", Count: 3},
		{Text: "dua", Count: 2},
		{Text: "satu", Count: 1},
		{Text: "nol", Count: 1},
	}
	if !reflect.DeepEqual(res.TopWords, wantTop) {
		t.Fatalf("TopWords = %v, want %v", res.TopWords, wantTop)
	}
}

func TestAnalyzeTextEmptyInput(t *testing.T) {
	a := NewDefault()
	res := a.AnalyzeText("!!! ??? ... 123")
	if res.TotalWords != 0 || res.UniqueWords != 0 || res.UniqueStems != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if len(res.TopWords) != 0 || len(res.TopStems) != 0 {
		t.Fatalf("expected empty top lists, got %v / %v", res.TopWords, res.TopStems)
	}
}

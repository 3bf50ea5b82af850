package study

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/prasetio/kosakata/pkg/db"
	"github.com/prasetio/kosakata/pkg/priority"
)

func setupManager(t *testing.T) (*Manager, *sql.DB) {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	conn.SetMaxOpenConns(1)
	if err := db.InitDB(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	m := NewManager(conn, 1)
	m.rng = rand.New(rand.NewSource(1))
	return m, conn
}

func seedWords(t *testing.T, conn *sql.DB, words []db.Word) {
	t.Helper()
	for i := range words {
		if _, err := db.UpsertWord(conn, &words[i]); err != nil {
			t.Fatalf("seed word %q: %v", words[i].Indonesian, err)
		}
	}
}

func sampleWords() []db.Word {
	return []db.Word{
		{Indonesian: "makan", Japanese: "食べる", Stem: "makan", Category: "daily", Frequency: 9, Difficulty: 2},
		{Indonesian: "minum", Japanese: "飲む", Stem: "minum", Category: "daily", Frequency: 7, Difficulty: 2},
		{Indonesian: "pabrik", Japanese: "工場", Stem: "pabrik", Category: "production", Frequency: 5, Difficulty: 2},
		{Indonesian: "mesin", Japanese: "機械", Stem: "mesin", Category: "production", Frequency: 4, Difficulty: 2},
		{Indonesian: "kualitas", Japanese: "品質", Stem: "kualitas", Category: "quality", Frequency: 3, Difficulty: 3},
	}
}

func TestNewSessionFiltersAndCaps(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	s, err := m.NewSession(SessionFilter{Mode: ModeWords, Category: "daily", MaxCards: 1})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if len(s.Cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(s.Cards))
	}
	if got := s.Cards[0].Category; got != "daily" {
		t.Fatalf("category = %q, want daily", got)
	}
}

func TestSessionNavigation(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	s, err := m.NewSession(SessionFilter{Mode: ModeWords})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if len(s.Cards) != 5 {
		t.Fatalf("got %d cards, want 5", len(s.Cards))
	}

	if s.Prev() {
		t.Fatal("Prev must fail on first card")
	}
	if !s.Next() || !s.Prev() {
		t.Fatal("Next then Prev must succeed")
	}
	for s.Next() {
	}
	if _, ok := s.Current(); !ok {
		t.Fatal("Current must be valid on last card")
	}
	if s.Next() {
		t.Fatal("Next must fail past last card")
	}
}

func TestCardSides(t *testing.T) {
	c := Card{Indonesian: "makan", Japanese: "食べる"}
	if c.Front(SideIndonesian) != "makan" || c.Back(SideIndonesian) != "食べる" {
		t.Fatalf("indonesian side wrong: %q / %q", c.Front(SideIndonesian), c.Back(SideIndonesian))
	}
	if c.Front(SideJapanese) != "食べる" || c.Back(SideJapanese) != "makan" {
		t.Fatalf("japanese side wrong: %q / %q", c.Front(SideJapanese), c.Back(SideJapanese))
	}
}

func TestMarkResultUpdatesProgress(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	s, err := m.NewSession(SessionFilter{Mode: ModeWords})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	card, ok := s.Current()
	if !ok {
		t.Fatal("no current card")
	}
	if err := m.MarkResult(s, card, true); err != nil {
		t.Fatalf("mark: %v", err)
	}

	lp, err := db.GetOrCreateProgress(conn, 1, card.Type, card.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if lp.CorrectCount != 1 || lp.Status != priority.StatusLearning {
		t.Fatalf("progress not updated: %+v", lp)
	}

	info := s.Progress()
	if info.Studied != 1 || info.Correct != 1 || info.Accuracy != 100 {
		t.Fatalf("session stats wrong: %+v", info)
	}
}

func TestEndSessionPersistsSummary(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	s, err := m.NewSession(SessionFilter{Mode: ModeWords, MaxCards: 2})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	card, _ := s.Current()
	if err := m.MarkResult(s, card, false); err != nil {
		t.Fatalf("mark: %v", err)
	}

	sum, err := m.EndSession(s)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if sum.CardsStudied != 1 || sum.Correct != 0 || sum.Accuracy != 0 {
		t.Fatalf("summary = %+v", sum)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM study_sessions`).Scan(&count); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 1 {
		t.Fatalf("stored %d sessions, want 1", count)
	}
}

func TestReviewSessionSelectsStrugglingFirst(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	// Word 1: struggling (low accuracy). Word 2: mastered and fresh.
	lp, err := db.GetOrCreateProgress(conn, 1, priority.ItemWord, 1)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	now := time.Now()
	lp.RecordAnswer(false, now)
	lp.RecordAnswer(false, now)
	if err := db.UpdateProgress(conn, lp); err != nil {
		t.Fatalf("update: %v", err)
	}

	lp2, err := db.GetOrCreateProgress(conn, 1, priority.ItemWord, 2)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	lp2.RecordAnswer(true, now)
	lp2.RecordAnswer(true, now)
	lp2.RecordAnswer(true, now)
	if err := db.UpdateProgress(conn, lp2); err != nil {
		t.Fatalf("update: %v", err)
	}

	s, err := m.NewReviewSession()
	if err != nil {
		t.Fatalf("review session: %v", err)
	}
	if len(s.Cards) == 0 {
		t.Fatal("review session empty")
	}
	if s.Cards[0].ID != 1 {
		t.Fatalf("worst card first: got id %d, want 1", s.Cards[0].ID)
	}
	for _, c := range s.Cards {
		if c.ID == 2 && c.Type == priority.ItemWord {
			t.Fatal("mastered fresh word must not need review")
		}
	}
}

func TestEvaluateTyping(t *testing.T) {
	cases := []struct {
		user, correct string
		wantCorrect   bool
	}{
		{"makan", "makan", true},
		{"  Makan ", "makan", true},
		{"makam", "makan", true},  // one typo out of five runes
		{"mkn", "makan", false},   // too far off
		{"minum", "makan", false}, // different word
	}
	for _, tc := range cases {
		got, sim := evaluateTyping(tc.user, tc.correct)
		if got != tc.wantCorrect {
			t.Errorf("evaluateTyping(%q, %q) = %v (sim %.2f), want %v", tc.user, tc.correct, got, sim, tc.wantCorrect)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	if got := similarity("", ""); got != 1 {
		t.Fatalf("empty similarity = %g, want 1", got)
	}
	if got := similarity("abc", "abc"); got != 1 {
		t.Fatalf("identical similarity = %g, want 1", got)
	}
	if got := similarity("abc", "xyz"); got != 0 {
		t.Fatalf("disjoint similarity = %g, want 0", got)
	}
}

func TestNewMultipleChoiceTest(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	ts, err := m.NewMultipleChoiceTest(TestOptions{Count: 3})
	if err != nil {
		t.Fatalf("new test: %v", err)
	}
	if len(ts.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(ts.Questions))
	}
	for _, q := range ts.Questions {
		if len(q.Options) != distractorCount+1 {
			t.Fatalf("question %q has %d options", q.Prompt, len(q.Options))
		}
		found := false
		seen := map[string]bool{}
		for _, o := range q.Options {
			if seen[o] {
				t.Fatalf("duplicate option %q for %q", o, q.Prompt)
			}
			seen[o] = true
			if o == q.CorrectAnswer {
				found = true
			}
		}
		if !found {
			t.Fatalf("correct answer missing from options of %q", q.Prompt)
		}
	}
}

func TestMultipleChoicePadsSmallPool(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords()[:1])

	ts, err := m.NewMultipleChoiceTest(TestOptions{Count: 1})
	if err != nil {
		t.Fatalf("new test: %v", err)
	}
	if len(ts.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(ts.Questions))
	}
	if len(ts.Questions[0].Options) != distractorCount+1 {
		t.Fatalf("options not padded: %v", ts.Questions[0].Options)
	}
}

func TestTypingTestDirections(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	ja, err := m.NewTypingTest(TestOptions{Count: 1, Direction: JapaneseToIndonesian})
	if err != nil {
		t.Fatalf("new test: %v", err)
	}
	q := ja.Questions[0]
	if !q.Typing() {
		t.Fatal("typing test question reports options")
	}
	// ja_to_id: prompt is Japanese, answer Indonesian.
	if q.Prompt == q.CorrectAnswer {
		t.Fatalf("degenerate question: %+v", q)
	}

	id, err := m.NewTypingTest(TestOptions{Count: 1, Direction: IndonesianToJapanese})
	if err != nil {
		t.Fatalf("new test: %v", err)
	}
	q2 := id.Questions[0]
	for _, w := range sampleWords() {
		if q2.Prompt == w.Indonesian && q2.CorrectAnswer != w.Japanese {
			t.Fatalf("answer mismatch: %+v", q2)
		}
	}
}

func TestSubmitAnswerPersists(t *testing.T) {
	m, conn := setupManager(t)
	seedWords(t, conn, sampleWords())

	ts, err := m.NewTypingTest(TestOptions{Count: 2, Direction: JapaneseToIndonesian})
	if err != nil {
		t.Fatalf("new test: %v", err)
	}
	q, ok := ts.Current()
	if !ok {
		t.Fatal("no current question")
	}

	ans, err := m.SubmitAnswer(ts, q.CorrectAnswer, 2.5)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !ans.Correct || ans.Similarity != 1 {
		t.Fatalf("answer = %+v", ans)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM test_results WHERE is_correct = 1`).Scan(&count); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if count != 1 {
		t.Fatalf("stored %d results, want 1", count)
	}

	lp, err := db.GetOrCreateProgress(conn, 1, q.ItemType, q.ItemID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if lp.CorrectCount != 1 {
		t.Fatalf("progress not updated: %+v", lp)
	}

	// Session advanced to the second question.
	if q2, ok := ts.Current(); !ok || q2.ItemID == q.ItemID {
		t.Fatalf("session did not advance: %+v ok=%v", q2, ok)
	}

	sum, err := m.EndTest(ts)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if sum.Answered != 1 || sum.Correct != 1 || sum.Accuracy != 100 {
		t.Fatalf("summary = %+v", sum)
	}
}

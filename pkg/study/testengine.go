package study

import (
	"fmt"
	"strings"
	"time"

	"github.com/prasetio/kosakata/pkg/db"
	"github.com/prasetio/kosakata/pkg/priority"
)

// Test types stored with each result row.
const (
	TestTyping         = "typing"
	TestMultipleChoice = "multiple_choice"
)

// Direction selects which language is the prompt in a typing test.
type Direction string

const (
	JapaneseToIndonesian Direction = "ja_to_id"
	IndonesianToJapanese Direction = "id_to_ja"
)

// TestLevel buckets item difficulty into coarse test levels.
type TestLevel int

const (
	LevelEasy TestLevel = iota + 1
	LevelMedium
	LevelHard
)

// matches reports whether an item difficulty falls inside the level. The
// buckets deliberately overlap so mid-difficulty items appear everywhere.
func (l TestLevel) matches(difficulty int) bool {
	switch l {
	case LevelEasy:
		return difficulty <= 2
	case LevelHard:
		return difficulty >= 3
	default:
		return difficulty >= 2 && difficulty <= 4
	}
}

const (
	noTranslation = "翻訳なし"

	// Typing answers at or above this similarity count as correct.
	similarityThreshold = 0.7

	distractorCount = 3
)

// Question is one prompt in a test session.
type Question struct {
	ItemID        int64
	ItemType      priority.ItemType
	Prompt        string
	CorrectAnswer string
	// Options is non-empty for multiple choice; nil means typing.
	Options    []string
	Category   string
	Difficulty int
}

// Typing reports whether the question expects a typed answer.
func (q Question) Typing() bool { return len(q.Options) == 0 }

// Answer is the evaluated response to one question.
type Answer struct {
	Question     Question
	UserAnswer   string
	Correct      bool
	Similarity   float64
	ResponseTime float64
	AnsweredAt   time.Time
}

// TestSession holds the questions and collected answers of one run.
type TestSession struct {
	Type      string
	Questions []Question
	Answers   []Answer
	StartedAt time.Time

	current int
}

// Current returns the active question, or false when the test is done.
func (ts *TestSession) Current() (Question, bool) {
	if ts.current >= len(ts.Questions) {
		return Question{}, false
	}
	return ts.Questions[ts.current], true
}

// TestOptions configures a new test session.
type TestOptions struct {
	Count    int
	Level    TestLevel
	ItemType priority.ItemType // empty means mixed
	Category string
	// Direction applies to typing tests only; multiple choice always asks
	// Indonesian → Japanese.
	Direction Direction
}

// NewTypingTest builds a typing test from translated vocabulary.
func (m *Manager) NewTypingTest(opts TestOptions) (*TestSession, error) {
	items, err := m.testItems(opts)
	if err != nil {
		return nil, err
	}

	direction := opts.Direction
	if direction == "" {
		direction = JapaneseToIndonesian
	}

	questions := make([]Question, 0, len(items))
	for _, item := range items {
		q := Question{
			ItemID:     item.ID,
			ItemType:   item.Type,
			Category:   item.Category,
			Difficulty: item.Difficulty,
		}
		if direction == JapaneseToIndonesian {
			q.Prompt = orDefault(item.Translation, noTranslation)
			q.CorrectAnswer = item.Content
		} else {
			q.Prompt = item.Content
			q.CorrectAnswer = orDefault(item.Translation, noTranslation)
		}
		questions = append(questions, q)
	}

	return &TestSession{Type: TestTyping, Questions: questions, StartedAt: m.now()}, nil
}

// NewMultipleChoiceTest builds a choice test: Indonesian prompt, Japanese
// options with distractors drawn from the same category first.
func (m *Manager) NewMultipleChoiceTest(opts TestOptions) (*TestSession, error) {
	items, err := m.testItems(opts)
	if err != nil {
		return nil, err
	}
	pool, err := m.answerPool()
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(items))
	for _, item := range items {
		correct := orDefault(item.Translation, noTranslation)
		options := append(m.distractors(item, pool, distractorCount), correct)
		m.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		questions = append(questions, Question{
			ItemID:        item.ID,
			ItemType:      item.Type,
			Prompt:        item.Content,
			CorrectAnswer: correct,
			Options:       options,
			Category:      item.Category,
			Difficulty:    item.Difficulty,
		})
	}

	return &TestSession{Type: TestMultipleChoice, Questions: questions, StartedAt: m.now()}, nil
}

// SubmitAnswer evaluates the answer to the current question, persists the
// result, updates learning progress and advances the session.
func (m *Manager) SubmitAnswer(ts *TestSession, userAnswer string, responseTime float64) (Answer, error) {
	q, ok := ts.Current()
	if !ok {
		return Answer{}, fmt.Errorf("no question left in test")
	}

	ans := Answer{
		Question:     q,
		UserAnswer:   strings.TrimSpace(userAnswer),
		ResponseTime: responseTime,
		AnsweredAt:   m.now(),
	}
	if q.Typing() {
		ans.Correct, ans.Similarity = evaluateTyping(userAnswer, q.CorrectAnswer)
	} else {
		ans.Correct = ans.UserAnswer == strings.TrimSpace(q.CorrectAnswer)
		if ans.Correct {
			ans.Similarity = 1
		}
	}

	ts.Answers = append(ts.Answers, ans)
	ts.current++

	if _, err := db.SaveTestResult(m.conn, db.TestResult{
		UserID:        m.userID,
		TestType:      ts.Type,
		ItemType:      q.ItemType,
		ItemID:        q.ItemID,
		Question:      q.Prompt,
		CorrectAnswer: q.CorrectAnswer,
		UserAnswer:    ans.UserAnswer,
		IsCorrect:     ans.Correct,
		ResponseTime:  responseTime,
		TestedAt:      ans.AnsweredAt,
	}); err != nil {
		return ans, fmt.Errorf("save test result: %w", err)
	}

	lp, err := db.GetOrCreateProgress(m.conn, m.userID, q.ItemType, q.ItemID)
	if err != nil {
		return ans, fmt.Errorf("load progress: %w", err)
	}
	lp.RecordAnswer(ans.Correct, ans.AnsweredAt)
	if err := db.UpdateProgress(m.conn, lp); err != nil {
		return ans, fmt.Errorf("store progress: %w", err)
	}
	return ans, nil
}

// TestSummary is the outcome of a finished test.
type TestSummary struct {
	Type        string
	Total       int
	Answered    int
	Correct     int
	Accuracy    float64
	TotalTime   float64
	AverageTime float64
}

// EndTest summarizes the session and records it as a study session.
func (m *Manager) EndTest(ts *TestSession) (TestSummary, error) {
	sum := TestSummary{Type: ts.Type, Total: len(ts.Questions), Answered: len(ts.Answers)}
	for _, a := range ts.Answers {
		if a.Correct {
			sum.Correct++
		}
		sum.TotalTime += a.ResponseTime
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered) * 100
		sum.AverageTime = sum.TotalTime / float64(sum.Answered)
	}

	_, err := db.SaveStudySession(m.conn, db.StudySession{
		UserID:         m.userID,
		StartedAt:      ts.StartedAt,
		EndedAt:        m.now(),
		TestsTaken:     sum.Answered,
		CorrectAnswers: sum.Correct,
		TotalTime:      sum.TotalTime / 60,
	})
	if err != nil {
		return sum, fmt.Errorf("save session: %w", err)
	}
	return sum, nil
}

// testItems selects translated items matching the options, shuffled and
// capped at opts.Count.
func (m *Manager) testItems(opts TestOptions) ([]priority.LexicalItem, error) {
	if opts.Count <= 0 {
		opts.Count = 10
	}
	if opts.Level == 0 {
		opts.Level = LevelMedium
	}

	var items []priority.LexicalItem
	add := func(item priority.LexicalItem) {
		if item.Translation == "" {
			return
		}
		if opts.Category != "" && item.Category != opts.Category {
			return
		}
		if !opts.Level.matches(item.Difficulty) {
			return
		}
		items = append(items, item)
	}

	if opts.ItemType == "" || opts.ItemType == priority.ItemWord {
		words, err := db.GetAllWords(m.conn, "priority")
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			add(w.Lexical())
		}
	}
	if opts.ItemType == "" || opts.ItemType == priority.ItemPhrase {
		phrases, err := db.GetAllPhrases(m.conn, "priority")
		if err != nil {
			return nil, err
		}
		for _, p := range phrases {
			add(p.Lexical())
		}
	}

	m.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	if len(items) > opts.Count {
		items = items[:opts.Count]
	}
	return items, nil
}

// answerPool returns every translated item, the source for distractors.
func (m *Manager) answerPool() ([]priority.LexicalItem, error) {
	var pool []priority.LexicalItem
	words, err := db.GetAllWords(m.conn, "")
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		if w.Japanese != "" {
			pool = append(pool, w.Lexical())
		}
	}
	phrases, err := db.GetAllPhrases(m.conn, "")
	if err != nil {
		return nil, err
	}
	for _, p := range phrases {
		if p.Japanese != "" {
			pool = append(pool, p.Lexical())
		}
	}
	return pool, nil
}

// distractors picks wrong answers, same category first, then anywhere,
// padding with placeholders when the pool runs dry.
func (m *Manager) distractors(correct priority.LexicalItem, pool []priority.LexicalItem, count int) []string {
	seen := map[string]bool{correct.Translation: true}
	var sameCat, other []string
	for _, item := range pool {
		if item.ID == correct.ID && item.Type == correct.Type {
			continue
		}
		if seen[item.Translation] {
			continue
		}
		seen[item.Translation] = true
		if item.Category == correct.Category {
			sameCat = append(sameCat, item.Translation)
		} else {
			other = append(other, item.Translation)
		}
	}

	m.rng.Shuffle(len(sameCat), func(i, j int) { sameCat[i], sameCat[j] = sameCat[j], sameCat[i] })
	m.rng.Shuffle(len(other), func(i, j int) { other[i], other[j] = other[j], other[i] })

	wrong := append(sameCat, other...)
	if len(wrong) > count {
		wrong = wrong[:count]
	}
	for len(wrong) < count {
		wrong = append(wrong, fmt.Sprintf("選択肢%d", len(wrong)+1))
	}
	return wrong
}

// evaluateTyping compares a typed answer against the expected one. Exact
// matches score 1; otherwise a similarity ratio decides, so small typos
// still pass.
func evaluateTyping(userAnswer, correctAnswer string) (bool, float64) {
	user := strings.ToLower(strings.TrimSpace(userAnswer))
	correct := strings.ToLower(strings.TrimSpace(correctAnswer))
	if user == correct {
		return true, 1
	}
	sim := similarity(user, correct)
	return sim >= similarityThreshold, sim
}

// similarity is 1 minus the normalized Levenshtein distance over runes.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

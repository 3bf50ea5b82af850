package db

import (
	"time"

	"github.com/prasetio/kosakata/pkg/priority"
)

// Word is a vocabulary entry harvested from analyzed text.
type Word struct {
	ID         int64
	Indonesian string
	Japanese   string
	Stem       string
	Category   string
	Frequency  int
	Priority   float64
	Difficulty int // 1-5
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Phrase is a multi-word expression mined from analyzed text or seeded.
type Phrase struct {
	ID         int64
	Indonesian string
	Japanese   string
	Category   string
	Frequency  int
	Priority   float64
	Difficulty int
	WordCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LearningProgress is a learner's record for one word or phrase.
// Zero timestamps map to NULL columns.
type LearningProgress struct {
	ID                 int64
	UserID             int64
	ItemType           priority.ItemType
	ItemID             int64
	Status             priority.Status
	LearningStartedAt  time.Time
	MasteredAt         time.Time
	LastReviewedAt     time.Time
	CorrectCount       int
	IncorrectCount     int
	ConsecutiveCorrect int
	AccuracyRate       float64
	ReviewCount        int
}

// TestResult records one answered test question.
type TestResult struct {
	ID            int64
	UserID        int64
	TestType      string // "typing" or "multiple_choice"
	ItemType      priority.ItemType
	ItemID        int64
	Question      string
	CorrectAnswer string
	UserAnswer    string
	IsCorrect     bool
	ResponseTime  float64 // seconds
	TestedAt      time.Time
}

// StudySession summarizes one completed study run.
type StudySession struct {
	ID             int64
	UserID         int64
	StartedAt      time.Time
	EndedAt        time.Time
	CardsStudied   int
	TestsTaken     int
	CorrectAnswers int
	TotalTime      float64 // minutes
}

// Lexical projects a word into the priority engine's read-only input.
func (w Word) Lexical() priority.LexicalItem {
	return priority.LexicalItem{
		ID:           w.ID,
		Type:         priority.ItemWord,
		Content:      w.Indonesian,
		Translation:  w.Japanese,
		Category:     w.Category,
		Frequency:    w.Frequency,
		BasePriority: w.Priority,
		Difficulty:   w.Difficulty,
	}
}

// Lexical projects a phrase into the priority engine's read-only input.
func (p Phrase) Lexical() priority.LexicalItem {
	return priority.LexicalItem{
		ID:           p.ID,
		Type:         priority.ItemPhrase,
		Content:      p.Indonesian,
		Translation:  p.Japanese,
		Category:     p.Category,
		Frequency:    p.Frequency,
		BasePriority: p.Priority,
		Difficulty:   p.Difficulty,
	}
}

// Snapshot projects the progress record into the priority engine's input.
func (lp LearningProgress) Snapshot() priority.Progress {
	return priority.Progress{
		Status:             lp.Status,
		CorrectCount:       lp.CorrectCount,
		IncorrectCount:     lp.IncorrectCount,
		ConsecutiveCorrect: lp.ConsecutiveCorrect,
		AccuracyRate:       lp.AccuracyRate,
		ReviewCount:        lp.ReviewCount,
		LastReviewedAt:     lp.LastReviewedAt,
	}
}

// RecordAnswer folds one flashcard or test answer into the progress record:
// counters, streak, accuracy, review bookkeeping and the status transition.
func (lp *LearningProgress) RecordAnswer(correct bool, now time.Time) {
	if correct {
		lp.CorrectCount++
		lp.ConsecutiveCorrect++
	} else {
		lp.IncorrectCount++
		lp.ConsecutiveCorrect = 0
	}
	lp.LastReviewedAt = now
	lp.ReviewCount++
	lp.AccuracyRate = lp.Snapshot().Accuracy()

	next := lp.Snapshot().NextStatus()
	if next == priority.StatusLearning && lp.LearningStartedAt.IsZero() {
		lp.LearningStartedAt = now
	}
	if next == priority.StatusMastered && lp.Status != priority.StatusMastered {
		lp.MasteredAt = now
	}
	lp.Status = next
}

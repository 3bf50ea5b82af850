// Package priority computes learning-priority scores for lexical items by
// combining corpus frequency, difficulty and a learner's progress history.
// The engine is pure: every operation takes its inputs explicitly and
// returns fresh results, so it is safe to call concurrently.
package priority

import "time"

// Status is the learning state of an item.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusLearning   Status = "learning"
	StatusMastered   Status = "mastered"
)

// ItemType discriminates words from phrases.
type ItemType string

const (
	ItemWord   ItemType = "word"
	ItemPhrase ItemType = "phrase"
)

// LexicalItem is a word or phrase as supplied by storage. The engine treats
// it as read-only.
type LexicalItem struct {
	ID           int64
	Type         ItemType
	Content      string // Indonesian text
	Translation  string // Japanese gloss
	Category     string
	Frequency    int
	BasePriority float64
	Difficulty   int // 1-5
}

// Progress is a learner's record for one item. A zero Progress means "never
// studied" and scores like a fresh item. Mutation happens in the session
// layer; the engine only reads.
type Progress struct {
	Status             Status
	CorrectCount       int
	IncorrectCount     int
	ConsecutiveCorrect int
	AccuracyRate       float64 // percent
	ReviewCount        int
	LastReviewedAt     time.Time // zero value means never reviewed
}

// Accuracy computes the percentage of correct answers, 0 when nothing has
// been answered yet.
func (p Progress) Accuracy() float64 {
	total := p.CorrectCount + p.IncorrectCount
	if total == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(total) * 100
}

// masteryStreak is the consecutive-correct run that promotes an item to
// mastered.
const masteryStreak = 3

// NextStatus derives the learning status from the recorded performance:
// a streak of three promotes to mastered, any recorded answer means
// learning, an untouched record stays not started.
func (p Progress) NextStatus() Status {
	switch {
	case p.ConsecutiveCorrect >= masteryStreak:
		return StatusMastered
	case p.CorrectCount > 0 || p.IncorrectCount > 0:
		return StatusLearning
	default:
		return StatusNotStarted
	}
}

// Entry pairs an item with its progress record for scoring.
type Entry struct {
	Item     LexicalItem
	Progress Progress
}

// RankedItem is the transient projection returned by list operations: the
// input pair plus the computed learning priority. It is recomputed on every
// query and never persisted.
type RankedItem struct {
	Item             LexicalItem
	Progress         Progress
	LearningPriority float64
}

// Package study runs flashcard and test sessions over the stored vocabulary
// and feeds the results back into learning progress.
package study

import (
	"database/sql"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/prasetio/kosakata/pkg/db"
	"github.com/prasetio/kosakata/pkg/priority"
)

// CardSide selects which language faces the learner first.
type CardSide string

const (
	SideIndonesian CardSide = "indonesian"
	SideJapanese   CardSide = "japanese"
)

// Mode selects which item types a session draws from.
type Mode string

const (
	ModeWords   Mode = "words"
	ModePhrases Mode = "phrases"
	ModeMixed   Mode = "mixed"
)

const reviewSessionCap = 30

// Card is one flashcard with its learner state attached.
type Card struct {
	ID                 int64
	Type               priority.ItemType
	Indonesian         string
	Japanese           string
	Category           string
	Difficulty         int
	Status             priority.Status
	AccuracyRate       float64
	ConsecutiveCorrect int
}

// Front returns the prompt side of the card.
func (c Card) Front(side CardSide) string {
	if side == SideJapanese {
		return c.Japanese
	}
	return c.Indonesian
}

// Back returns the answer side of the card.
func (c Card) Back(side CardSide) string {
	if side == SideJapanese {
		return c.Indonesian
	}
	return c.Japanese
}

// Session is one flashcard run. Navigation is bounded; MarkResult drives
// the stats and progress updates.
type Session struct {
	Side      CardSide
	Cards     []Card
	StartedAt time.Time

	current      int
	cardsStudied int
	correctCount int
}

// Current returns the card facing the learner, or false past either end.
func (s *Session) Current() (Card, bool) {
	if s.current < 0 || s.current >= len(s.Cards) {
		return Card{}, false
	}
	return s.Cards[s.current], true
}

// Next advances to the next card if there is one.
func (s *Session) Next() bool {
	if s.current >= len(s.Cards)-1 {
		return false
	}
	s.current++
	return true
}

// Prev steps back to the previous card if there is one.
func (s *Session) Prev() bool {
	if s.current <= 0 {
		return false
	}
	s.current--
	return true
}

// ProgressInfo is the live session state for display.
type ProgressInfo struct {
	Current   int
	Total     int
	Studied   int
	Correct   int
	Accuracy  float64
	Remaining int
}

// Progress reports where the session stands.
func (s *Session) Progress() ProgressInfo {
	info := ProgressInfo{
		Current:   s.current + 1,
		Total:     len(s.Cards),
		Studied:   s.cardsStudied,
		Correct:   s.correctCount,
		Remaining: len(s.Cards) - s.current - 1,
	}
	if s.cardsStudied > 0 {
		info.Accuracy = float64(s.correctCount) / float64(s.cardsStudied) * 100
	}
	return info
}

// Manager builds sessions and persists their outcomes.
type Manager struct {
	conn   *sql.DB
	userID int64

	// now and rng are swappable for tests.
	now func() time.Time
	rng *rand.Rand
}

// NewManager creates a manager for one learner.
func NewManager(conn *sql.DB, userID int64) *Manager {
	return &Manager{
		conn:   conn,
		userID: userID,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SessionFilter narrows which cards enter a session.
type SessionFilter struct {
	Mode     Mode
	Side     CardSide
	Category string
	Status   priority.Status
	// MaxCards caps the shuffled deck; 0 means 20.
	MaxCards int
}

// NewSession builds a shuffled flashcard session from the stored vocabulary.
func (m *Manager) NewSession(f SessionFilter) (*Session, error) {
	if f.Mode == "" {
		f.Mode = ModeMixed
	}
	if f.Side == "" {
		f.Side = SideIndonesian
	}
	if f.MaxCards <= 0 {
		f.MaxCards = 20
	}

	cards, err := m.loadCards(f.Mode, f.Category, f.Status)
	if err != nil {
		return nil, err
	}

	m.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	if len(cards) > f.MaxCards {
		cards = cards[:f.MaxCards]
	}

	return &Session{Side: f.Side, Cards: cards, StartedAt: m.now()}, nil
}

// NewReviewSession builds a session of items due for review, worst
// performance first, capped at a manageable size.
func (m *Manager) NewReviewSession() (*Session, error) {
	cards, err := m.loadCards(ModeMixed, "", "")
	if err != nil {
		return nil, err
	}

	now := m.now()
	due := cards[:0]
	for _, c := range cards {
		lp, err := db.GetOrCreateProgress(m.conn, m.userID, c.Type, c.ID)
		if err != nil {
			return nil, err
		}
		if priority.NeedsReview(lp.Snapshot(), now) {
			due = append(due, c)
		}
	}

	sortCardsWorstFirst(due)
	if len(due) > reviewSessionCap {
		due = due[:reviewSessionCap]
	}
	return &Session{Side: SideIndonesian, Cards: due, StartedAt: now}, nil
}

// MarkResult records one answer: session stats plus the stored progress row.
func (m *Manager) MarkResult(s *Session, card Card, correct bool) error {
	s.cardsStudied++
	if correct {
		s.correctCount++
	}

	lp, err := db.GetOrCreateProgress(m.conn, m.userID, card.Type, card.ID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	lp.RecordAnswer(correct, m.now())
	if err := db.UpdateProgress(m.conn, lp); err != nil {
		return fmt.Errorf("store progress: %w", err)
	}
	return nil
}

// Summary is the persisted outcome of a finished session.
type Summary struct {
	CardsStudied int
	Correct      int
	TotalCards   int
	Accuracy     float64
	Minutes      float64
	StartedAt    time.Time
	EndedAt      time.Time
}

// EndSession closes the session, persists the summary and returns it.
func (m *Manager) EndSession(s *Session) (Summary, error) {
	ended := m.now()
	sum := Summary{
		CardsStudied: s.cardsStudied,
		Correct:      s.correctCount,
		TotalCards:   len(s.Cards),
		Minutes:      ended.Sub(s.StartedAt).Minutes(),
		StartedAt:    s.StartedAt,
		EndedAt:      ended,
	}
	if s.cardsStudied > 0 {
		sum.Accuracy = float64(s.correctCount) / float64(s.cardsStudied) * 100
	}

	_, err := db.SaveStudySession(m.conn, db.StudySession{
		UserID:         m.userID,
		StartedAt:      sum.StartedAt,
		EndedAt:        sum.EndedAt,
		CardsStudied:   sum.CardsStudied,
		CorrectAnswers: sum.Correct,
		TotalTime:      sum.Minutes,
	})
	if err != nil {
		return sum, fmt.Errorf("save session: %w", err)
	}
	return sum, nil
}

// loadCards pulls words and phrases matching the filters, priority order.
func (m *Manager) loadCards(mode Mode, category string, status priority.Status) ([]Card, error) {
	var cards []Card

	appendCard := func(item priority.LexicalItem) error {
		if category != "" && item.Category != category {
			return nil
		}
		lp, err := db.GetOrCreateProgress(m.conn, m.userID, item.Type, item.ID)
		if err != nil {
			return err
		}
		if status != "" && lp.Status != status {
			return nil
		}
		cards = append(cards, Card{
			ID:                 item.ID,
			Type:               item.Type,
			Indonesian:         item.Content,
			Japanese:           item.Translation,
			Category:           item.Category,
			Difficulty:         item.Difficulty,
			Status:             lp.Status,
			AccuracyRate:       lp.AccuracyRate,
			ConsecutiveCorrect: lp.ConsecutiveCorrect,
		})
		return nil
	}

	if mode == ModeWords || mode == ModeMixed {
		words, err := db.GetAllWords(m.conn, "priority")
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			if err := appendCard(w.Lexical()); err != nil {
				return nil, err
			}
		}
	}
	if mode == ModePhrases || mode == ModeMixed {
		phrases, err := db.GetAllPhrases(m.conn, "priority")
		if err != nil {
			return nil, err
		}
		for _, p := range phrases {
			if err := appendCard(p.Lexical()); err != nil {
				return nil, err
			}
		}
	}
	return cards, nil
}

// sortCardsWorstFirst orders by accuracy, then streak, ascending.
func sortCardsWorstFirst(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].AccuracyRate != cards[j].AccuracyRate {
			return cards[i].AccuracyRate < cards[j].AccuracyRate
		}
		return cards[i].ConsecutiveCorrect < cards[j].ConsecutiveCorrect
	})
}

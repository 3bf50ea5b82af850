package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/prasetio/kosakata/pkg/priority"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx.
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// UpsertWord inserts a word or, on an existing indonesian entry, accumulates
// its frequency and refreshes the derived columns. Empty japanese never
// overwrites an existing translation. Returns the row id.
func UpsertWord(db DBExecutor, w *Word) (int64, error) {
	indonesian := strings.TrimSpace(w.Indonesian)
	if indonesian == "" {
		return 0, fmt.Errorf("word must be non-empty")
	}

	var id int64
	query := `INSERT INTO words (indonesian, japanese, stem, category, frequency, priority, difficulty)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(indonesian)
			  DO UPDATE SET
			    frequency = words.frequency + excluded.frequency,
			    stem = excluded.stem,
			    japanese = COALESCE(NULLIF(excluded.japanese, ''), words.japanese),
			    priority = excluded.priority,
			    updated_at = CURRENT_TIMESTAMP
			  RETURNING id`

	err := db.QueryRow(query, indonesian, w.Japanese, w.Stem, w.Category, w.Frequency, w.Priority, w.Difficulty).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert word: %w", err)
	}
	w.ID = id
	return id, nil
}

// UpsertPhrase mirrors UpsertWord for the phrases table.
func UpsertPhrase(db DBExecutor, p *Phrase) (int64, error) {
	indonesian := strings.TrimSpace(p.Indonesian)
	if indonesian == "" {
		return 0, fmt.Errorf("phrase must be non-empty")
	}
	if p.WordCount == 0 {
		p.WordCount = len(strings.Fields(indonesian))
	}

	var id int64
	query := `INSERT INTO phrases (indonesian, japanese, category, frequency, priority, difficulty, word_count)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(indonesian)
			  DO UPDATE SET
			    frequency = phrases.frequency + excluded.frequency,
			    japanese = COALESCE(NULLIF(excluded.japanese, ''), phrases.japanese),
			    priority = excluded.priority,
			    updated_at = CURRENT_TIMESTAMP
			  RETURNING id`

	err := db.QueryRow(query, indonesian, p.Japanese, p.Category, p.Frequency, p.Priority, p.Difficulty, p.WordCount).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert phrase: %w", err)
	}
	p.ID = id
	return id, nil
}

// orderClause whitelists sortable columns; anything else falls back to id.
func orderClause(orderBy string) string {
	switch orderBy {
	case "frequency", "priority":
		return orderBy + " DESC, id"
	default:
		return "id"
	}
}

// GetAllWords returns every word, ordered by "frequency", "priority" or
// insertion order.
func GetAllWords(db DBExecutor, orderBy string) ([]Word, error) {
	rows, err := db.Query(`SELECT id, indonesian, japanese, stem, category, frequency, priority, difficulty, created_at, updated_at
		FROM words ORDER BY ` + orderClause(orderBy))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Word
	for rows.Next() {
		var w Word
		if err := rows.Scan(&w.ID, &w.Indonesian, &w.Japanese, &w.Stem, &w.Category,
			&w.Frequency, &w.Priority, &w.Difficulty, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// GetAllPhrases returns every phrase, ordered like GetAllWords.
func GetAllPhrases(db DBExecutor, orderBy string) ([]Phrase, error) {
	rows, err := db.Query(`SELECT id, indonesian, japanese, category, frequency, priority, difficulty, word_count, created_at, updated_at
		FROM phrases ORDER BY ` + orderClause(orderBy))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Phrase
	for rows.Next() {
		var p Phrase
		if err := rows.Scan(&p.ID, &p.Indonesian, &p.Japanese, &p.Category,
			&p.Frequency, &p.Priority, &p.Difficulty, &p.WordCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetWordsWithoutTranslation returns words whose japanese column is still empty.
func GetWordsWithoutTranslation(db DBExecutor, limit int) ([]Word, error) {
	rows, err := db.Query(`SELECT id, indonesian, japanese, stem, category, frequency, priority, difficulty, created_at, updated_at
		FROM words WHERE japanese = '' ORDER BY frequency DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Word
	for rows.Next() {
		var w Word
		if err := rows.Scan(&w.ID, &w.Indonesian, &w.Japanese, &w.Stem, &w.Category,
			&w.Frequency, &w.Priority, &w.Difficulty, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpdateWordTranslation sets the japanese gloss of a word.
func UpdateWordTranslation(db DBExecutor, wordID int64, japanese string) error {
	if wordID <= 0 {
		return fmt.Errorf("wordID must be positive")
	}
	_, err := db.Exec(`UPDATE words SET japanese = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, japanese, wordID)
	return err
}

// GetOrCreateProgress returns the learner's progress record for an item,
// inserting a fresh not-started row when none exists.
func GetOrCreateProgress(db DBExecutor, userID int64, itemType priority.ItemType, itemID int64) (LearningProgress, error) {
	lp := LearningProgress{UserID: userID, ItemType: itemType, ItemID: itemID, Status: priority.StatusNotStarted}

	if _, err := db.Exec(`INSERT OR IGNORE INTO learning_progress (user_id, item_type, item_id) VALUES (?, ?, ?)`,
		userID, string(itemType), itemID); err != nil {
		return lp, err
	}

	var status string
	var started, mastered, reviewed sql.NullTime
	err := db.QueryRow(`SELECT id, status, learning_started_at, mastered_at, last_reviewed_at,
			correct_count, incorrect_count, consecutive_correct, accuracy_rate, review_count
		FROM learning_progress WHERE user_id = ? AND item_type = ? AND item_id = ?`,
		userID, string(itemType), itemID).Scan(
		&lp.ID, &status, &started, &mastered, &reviewed,
		&lp.CorrectCount, &lp.IncorrectCount, &lp.ConsecutiveCorrect, &lp.AccuracyRate, &lp.ReviewCount)
	if err != nil {
		return lp, fmt.Errorf("get progress: %w", err)
	}
	lp.Status = priority.Status(status)
	lp.LearningStartedAt = nullableTime(started)
	lp.MasteredAt = nullableTime(mastered)
	lp.LastReviewedAt = nullableTime(reviewed)
	return lp, nil
}

// UpdateProgress persists a mutated progress record.
func UpdateProgress(db DBExecutor, lp LearningProgress) error {
	if lp.ID <= 0 {
		return fmt.Errorf("progress id must be positive")
	}
	_, err := db.Exec(`UPDATE learning_progress SET
			status = ?, learning_started_at = ?, mastered_at = ?, last_reviewed_at = ?,
			correct_count = ?, incorrect_count = ?, consecutive_correct = ?, accuracy_rate = ?, review_count = ?
		WHERE id = ?`,
		string(lp.Status), nullableArg(lp.LearningStartedAt), nullableArg(lp.MasteredAt), nullableArg(lp.LastReviewedAt),
		lp.CorrectCount, lp.IncorrectCount, lp.ConsecutiveCorrect, lp.AccuracyRate, lp.ReviewCount, lp.ID)
	return err
}

// SaveTestResult appends one answered question.
func SaveTestResult(db DBExecutor, r TestResult) (int64, error) {
	res, err := db.Exec(`INSERT INTO test_results
			(user_id, test_type, item_type, item_id, question, correct_answer, user_answer, is_correct, response_time, tested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.TestType, string(r.ItemType), r.ItemID, r.Question, r.CorrectAnswer, r.UserAnswer,
		r.IsCorrect, r.ResponseTime, orNow(r.TestedAt))
	if err != nil {
		return 0, fmt.Errorf("save test result: %w", err)
	}
	return res.LastInsertId()
}

// SaveStudySession appends one completed session summary.
func SaveStudySession(db DBExecutor, s StudySession) (int64, error) {
	res, err := db.Exec(`INSERT INTO study_sessions
			(user_id, started_at, ended_at, cards_studied, tests_taken, correct_answers, total_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, nullableArg(s.StartedAt), nullableArg(s.EndedAt), s.CardsStudied, s.TestsTaken, s.CorrectAnswers, s.TotalTime)
	if err != nil {
		return 0, fmt.Errorf("save study session: %w", err)
	}
	return res.LastInsertId()
}

// Stats is the aggregate learning report.
type Stats struct {
	TotalWords        int
	TotalPhrases      int
	WordsMastered     int
	PhrasesMastered   int
	WordsMasteryRate  float64
	PhraseMasteryRate float64
}

// LearningStats aggregates per-learner totals and mastery rates. Empty
// tables yield zero rates, never a division error.
func LearningStats(db DBExecutor, userID int64) (Stats, error) {
	var s Stats
	if err := db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&s.TotalWords); err != nil {
		return s, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM phrases`).Scan(&s.TotalPhrases); err != nil {
		return s, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM learning_progress WHERE user_id = ? AND item_type = 'word' AND status = 'mastered'`,
		userID).Scan(&s.WordsMastered); err != nil {
		return s, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM learning_progress WHERE user_id = ? AND item_type = 'phrase' AND status = 'mastered'`,
		userID).Scan(&s.PhrasesMastered); err != nil {
		return s, err
	}
	if s.TotalWords > 0 {
		s.WordsMasteryRate = float64(s.WordsMastered) / float64(s.TotalWords) * 100
	}
	if s.TotalPhrases > 0 {
		s.PhraseMasteryRate = float64(s.PhrasesMastered) / float64(s.TotalPhrases) * 100
	}
	return s, nil
}

func nullableTime(t sql.NullTime) time.Time {
	if t.Valid {
		return t.Time
	}
	return time.Time{}
}

// nullableArg returns nil for the zero time so the column stays NULL.
func nullableArg(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

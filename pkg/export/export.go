// Package export writes stored vocabulary and learning statistics to CSV
// files and plain-text reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prasetio/kosakata/pkg/db"
	"github.com/prasetio/kosakata/pkg/priority"
)

// Exporter reads from the store and writes export files.
type Exporter struct {
	conn db.DBExecutor

	// Now is swappable for tests.
	Now func() time.Time
}

// New creates an exporter over the given store.
func New(conn db.DBExecutor) *Exporter {
	return &Exporter{conn: conn, Now: time.Now}
}

// WordsCSV writes every word, priority order, as UTF-8 CSV.
func (e *Exporter) WordsCSV(w io.Writer) error {
	words, err := db.GetAllWords(e.conn, "priority")
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Indonesian", "Japanese", "Stem", "Category", "Frequency", "Priority", "Difficulty", "Created"}); err != nil {
		return err
	}
	for _, word := range words {
		rec := []string{
			strconv.FormatInt(word.ID, 10),
			word.Indonesian,
			word.Japanese,
			word.Stem,
			word.Category,
			strconv.Itoa(word.Frequency),
			strconv.FormatFloat(word.Priority, 'f', 2, 64),
			strconv.Itoa(word.Difficulty),
			word.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PhrasesCSV writes every phrase, priority order, as UTF-8 CSV.
func (e *Exporter) PhrasesCSV(w io.Writer) error {
	phrases, err := db.GetAllPhrases(e.conn, "priority")
	if err != nil {
		return fmt.Errorf("load phrases: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Indonesian", "Japanese", "Category", "Frequency", "Priority", "Difficulty", "WordCount", "Created"}); err != nil {
		return err
	}
	for _, p := range phrases {
		rec := []string{
			strconv.FormatInt(p.ID, 10),
			p.Indonesian,
			p.Japanese,
			p.Category,
			strconv.Itoa(p.Frequency),
			strconv.FormatFloat(p.Priority, 'f', 2, 64),
			strconv.Itoa(p.Difficulty),
			strconv.Itoa(p.WordCount),
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ProgressCSV writes the learner's progress rows for every word.
func (e *Exporter) ProgressCSV(w io.Writer, userID int64) error {
	words, err := db.GetAllWords(e.conn, "priority")
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Indonesian", "Japanese", "Status", "Correct", "Incorrect", "Streak", "Accuracy", "Reviews", "LastReviewed"}); err != nil {
		return err
	}
	for _, word := range words {
		lp, err := db.GetOrCreateProgress(e.conn, userID, priority.ItemWord, word.ID)
		if err != nil {
			return fmt.Errorf("progress for %q: %w", word.Indonesian, err)
		}
		lastReviewed := ""
		if !lp.LastReviewedAt.IsZero() {
			lastReviewed = lp.LastReviewedAt.Format(time.RFC3339)
		}
		rec := []string{
			word.Indonesian,
			word.Japanese,
			string(lp.Status),
			strconv.Itoa(lp.CorrectCount),
			strconv.Itoa(lp.IncorrectCount),
			strconv.Itoa(lp.ConsecutiveCorrect),
			strconv.FormatFloat(lp.AccuracyRate, 'f', 1, 64),
			strconv.Itoa(lp.ReviewCount),
			lastReviewed,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LearningReport writes a Japanese-language summary of the learner's
// progress.
func (e *Exporter) LearningReport(w io.Writer, userID int64) error {
	stats, err := db.LearningStats(e.conn, userID)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	var out []byte
	out = fmt.Appendf(out, "インドネシア語学習レポート\n")
	out = fmt.Appendf(out, "========================================\n\n")
	out = fmt.Appendf(out, "生成日時: %s\n\n", e.Now().Format("2006-01-02 15:04:05"))
	out = fmt.Appendf(out, "学習統計:\n")
	out = fmt.Appendf(out, "- 総単語数: %d\n", stats.TotalWords)
	out = fmt.Appendf(out, "- 総フレーズ数: %d\n", stats.TotalPhrases)
	out = fmt.Appendf(out, "- 習得済み単語: %d\n", stats.WordsMastered)
	out = fmt.Appendf(out, "- 習得済みフレーズ: %d\n", stats.PhrasesMastered)
	out = fmt.Appendf(out, "- 単語習得率: %.1f%%\n", stats.WordsMasteryRate)
	out = fmt.Appendf(out, "- フレーズ習得率: %.1f%%\n", stats.PhraseMasteryRate)

	_, err = w.Write(out)
	return err
}

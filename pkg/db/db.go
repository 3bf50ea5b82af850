// Package db is the SQLite persistence layer: vocabulary, phrases, learner
// progress, test results and study sessions.
package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	indonesian TEXT NOT NULL UNIQUE,
	japanese TEXT NOT NULL DEFAULT '',
	stem TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT 'general',
	frequency INTEGER NOT NULL DEFAULT 0,
	priority REAL NOT NULL DEFAULT 0.0,
	difficulty INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS phrases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	indonesian TEXT NOT NULL UNIQUE,
	japanese TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT 'general',
	frequency INTEGER NOT NULL DEFAULT 0,
	priority REAL NOT NULL DEFAULT 0.0,
	difficulty INTEGER NOT NULL DEFAULT 1,
	word_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS learning_progress (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL DEFAULT 1,
	item_type TEXT NOT NULL,
	item_id INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'not_started',
	learning_started_at TIMESTAMP,
	mastered_at TIMESTAMP,
	last_reviewed_at TIMESTAMP,
	correct_count INTEGER NOT NULL DEFAULT 0,
	incorrect_count INTEGER NOT NULL DEFAULT 0,
	consecutive_correct INTEGER NOT NULL DEFAULT 0,
	accuracy_rate REAL NOT NULL DEFAULT 0.0,
	review_count INTEGER NOT NULL DEFAULT 0,
	UNIQUE(user_id, item_type, item_id)
);

CREATE TABLE IF NOT EXISTS test_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL DEFAULT 1,
	test_type TEXT NOT NULL,
	item_type TEXT NOT NULL,
	item_id INTEGER NOT NULL,
	question TEXT NOT NULL,
	correct_answer TEXT NOT NULL,
	user_answer TEXT NOT NULL DEFAULT '',
	is_correct BOOLEAN NOT NULL DEFAULT 0,
	response_time REAL NOT NULL DEFAULT 0.0,
	tested_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS study_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL DEFAULT 1,
	started_at TIMESTAMP,
	ended_at TIMESTAMP,
	cards_studied INTEGER NOT NULL DEFAULT 0,
	tests_taken INTEGER NOT NULL DEFAULT 0,
	correct_answers INTEGER NOT NULL DEFAULT 0,
	total_time REAL NOT NULL DEFAULT 0.0
);

CREATE INDEX IF NOT EXISTS idx_words_frequency ON words(frequency);
CREATE INDEX IF NOT EXISTS idx_phrases_frequency ON phrases(frequency);
CREATE INDEX IF NOT EXISTS idx_progress_item ON learning_progress(user_id, item_type, item_id)
`

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

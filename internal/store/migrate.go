package store

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent DDL statements run on every Open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		set_name TEXT,
		year INTEGER,
		question_number INTEGER,
		set_identifier TEXT,
		category TEXT,
		image_filename TEXT,
		user_choice TEXT,
		correct_choice TEXT NOT NULL,
		answer_time_secs INTEGER NOT NULL,
		attempted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_user_date
		ON attempts (username, attempted_at DESC)`,
	`CREATE TABLE IF NOT EXISTS invitation_codes (
		code TEXT PRIMARY KEY NOT NULL,
		is_used INTEGER NOT NULL DEFAULT 0,
		generated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		used_by TEXT,
		used_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invitation_codes_unused
		ON invitation_codes (is_used, code)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

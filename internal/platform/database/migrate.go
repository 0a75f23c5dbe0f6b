package database

import (
	"database/sql"
	"fmt"
)

// Schema is applied at startup. Statements are idempotent so repeated boots are safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              UUID PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		role            TEXT NOT NULL DEFAULT 'user',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS challenge_history (
		id                 UUID PRIMARY KEY,
		user_id            UUID NOT NULL REFERENCES users(id),
		topic              TEXT NOT NULL,
		difficulty         TEXT NOT NULL,
		question_type      TEXT NOT NULL,
		question           TEXT NOT NULL,
		user_solution      TEXT NOT NULL,
		score              INT NOT NULL,
		feedback           TEXT NOT NULL,
		passed             BOOLEAN NOT NULL,
		solution           TEXT,
		solution_explanation TEXT,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_challenge_history_user_created
		ON challenge_history (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_challenge_history_user_passed
		ON challenge_history (user_id, passed, difficulty)`,
	`CREATE TABLE IF NOT EXISTS user_achievements (
		id             UUID PRIMARY KEY,
		user_id        UUID NOT NULL REFERENCES users(id),
		achievement_id TEXT NOT NULL,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL,
		icon_name      TEXT NOT NULL,
		earned_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_achievements_user
		ON user_achievements (user_id, achievement_id)`,
}

func Migrate(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every table. Used by tests against a shared database.
func DropSchema(db *sql.DB) error {
	_, err := db.Exec(`
		DROP TABLE IF EXISTS user_preference;
		DROP TABLE IF EXISTS member_vote;
		DROP TABLE IF EXISTS vote;
		DROP TABLE IF EXISTS representative;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

// The schema is shared by PostgreSQL and SQLite, so it sticks to types and
// clauses both understand.
const schema = `
-- Representatives (synced from the legislative data source)
CREATE TABLE IF NOT EXISTS representative (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    chamber TEXT NOT NULL CHECK (chamber IN ('house', 'senate')),
    party TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT '',
    district TEXT NOT NULL DEFAULT '',
    office_start TIMESTAMP,
    image_url TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_representative_state ON representative(state);

-- Roll call votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    congress INTEGER NOT NULL DEFAULT 0,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    chamber TEXT NOT NULL,
    vote_date TIMESTAMP NOT NULL,
    question TEXT NOT NULL DEFAULT '',
    result TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    UNIQUE (congress, bill_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_date ON vote(vote_date);

-- Member positions, one per (representative, vote)
CREATE TABLE IF NOT EXISTS member_vote (
    representative_id TEXT NOT NULL,
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    position TEXT NOT NULL CHECK (position IN ('Yes', 'No', 'Present', 'Not Voting')),
    PRIMARY KEY (representative_id, vote_id)
);

CREATE INDEX IF NOT EXISTS idx_member_vote_vote_id ON member_vote(vote_id);

-- User preferences, one per (user, vote)
CREATE TABLE IF NOT EXISTS user_preference (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    agreement BOOLEAN NOT NULL,
    importance INTEGER NOT NULL CHECK (importance BETWEEN 1 AND 5),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, vote_id)
);

CREATE INDEX IF NOT EXISTS idx_user_preference_user_id ON user_preference(user_id);
`

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The SQL is kept portable across the postgres and sqlite drivers: no
// server-side timestamp defaults (the store writes created_at explicitly)
// and no dialect-specific column types.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Proposed meetup locations
CREATE TABLE IF NOT EXISTS poll_option (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    location TEXT NOT NULL,
    map_url TEXT,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_poll_option_created_by ON poll_option(created_by);

-- One vote per user per option, enforced here rather than in client code
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    option_id TEXT NOT NULL REFERENCES poll_option(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    voter_email TEXT,
    voter_name TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (option_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_option_id ON vote(option_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter_id ON vote(voter_id);
`

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"

	"github.com/danielhkuo/meetup-poll/feed"
)

// Store is the typed data access layer over the two poll tables. Every
// successful mutation publishes a change event so live views reload.
type Store struct {
	db  *sql.DB
	hub *feed.Hub
}

// New creates a Store. hub may be nil when no live feed is needed
// (tests, one-shot tools).
func New(db *sql.DB, hub *feed.Hub) *Store {
	return &Store{db: db, hub: hub}
}

func (s *Store) publish(table, action string) {
	if s.hub != nil {
		s.hub.Publish(table, action)
	}
}

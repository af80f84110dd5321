// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/meetup-poll/feed"
	"github.com/danielhkuo/meetup-poll/models"
)

// ListVotes returns the whole vote table. No filter or pagination: the
// data set stays in the tens-to-hundreds of rows.
func (s *Store) ListVotes() ([]models.Vote, error) {
	rows, err := s.db.Query(`
		SELECT id, option_id, voter_id, voter_email, voter_name, created_at
		FROM vote
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.OptionID, &v.VoterID, &v.VoterEmail,
			&v.VoterName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return votes, nil
}

// CastVote inserts one vote and bumps the option's cached counter in the
// same transaction. A second vote by the same voter on the same option
// trips the unique constraint and is treated as a benign no-op: the
// intent ("I want my vote on this option") is already satisfied.
// Returns whether a row was actually created.
func (s *Store) CastVote(optionID, voterID string, voterEmail, voterName *string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM poll_option WHERE id = $1)
	`, optionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check option: %w", err)
	}
	if !exists {
		return false, ErrOptionNotFound
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO vote (id, option_id, voter_id, voter_email, voter_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New().String(), optionID, voterID, voterEmail, voterName, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			// Already voted; the constraint is the concurrency guard
			// between tabs and users, not an error condition.
			return false, nil
		}
		return false, fmt.Errorf("failed to insert vote: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE poll_option SET vote_count = vote_count + 1 WHERE id = $1
	`, optionID)
	if err != nil {
		return false, fmt.Errorf("failed to update vote counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit vote: %w", err)
	}

	s.publish(models.TableVotes, feed.ActionInsert)
	s.publish(models.TableOptions, feed.ActionUpdate)

	return true, nil
}

// RetractVote deletes the voter's vote on an option and decrements the
// cached counter by the rows removed. Retracting an absent vote succeeds
// without touching anything (idempotent).
func (s *Store) RetractVote(optionID, voterID string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM vote WHERE option_id = $1 AND voter_id = $2
	`, optionID, voterID)
	if err != nil {
		return false, fmt.Errorf("failed to delete vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	_, err = tx.Exec(`
		UPDATE poll_option SET vote_count = vote_count - $1
		WHERE id = $2 AND vote_count >= $1
	`, n, optionID)
	if err != nil {
		return false, fmt.Errorf("failed to update vote counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit retraction: %w", err)
	}

	s.publish(models.TableVotes, feed.ActionDelete)
	s.publish(models.TableOptions, feed.ActionUpdate)

	return true, nil
}

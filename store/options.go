// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/meetup-poll/feed"
	"github.com/danielhkuo/meetup-poll/models"
)

// ListOptions returns all options ordered by the cached vote counter,
// highest first. The cached counter can lag the live tally briefly after
// a vote; display code prefers live counts.
func (s *Store) ListOptions() ([]models.Option, error) {
	rows, err := s.db.Query(`
		SELECT id, name, location, map_url, created_by, created_at, vote_count
		FROM poll_option
		ORDER BY vote_count DESC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.Name, &opt.Location, &opt.MapURL,
			&opt.CreatedBy, &opt.CreatedAt, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return options, nil
}

// GetOption returns one option by id, or ErrOptionNotFound.
func (s *Store) GetOption(optionID string) (models.Option, error) {
	var opt models.Option
	err := s.db.QueryRow(`
		SELECT id, name, location, map_url, created_by, created_at, vote_count
		FROM poll_option
		WHERE id = $1
	`, optionID).Scan(&opt.ID, &opt.Name, &opt.Location, &opt.MapURL,
		&opt.CreatedBy, &opt.CreatedAt, &opt.VoteCount)

	if err == sql.ErrNoRows {
		return models.Option{}, ErrOptionNotFound
	}
	if err != nil {
		return models.Option{}, fmt.Errorf("failed to query option: %w", err)
	}

	return opt, nil
}

// ProposeOption validates and inserts a new option with a zero vote
// counter. Name, location, and map URL are all required non-empty.
func (s *Store) ProposeOption(name, location, mapURL, ownerID string) (models.Option, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	mapURL = strings.TrimSpace(mapURL)

	if name == "" {
		return models.Option{}, &ValidationError{Field: "name", Message: "name is required"}
	}
	if location == "" {
		return models.Option{}, &ValidationError{Field: "location", Message: "location is required"}
	}
	if mapURL == "" {
		return models.Option{}, &ValidationError{Field: "map_url", Message: "map link is required"}
	}

	opt := models.Option{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  location,
		MapURL:    &mapURL,
		CreatedBy: ownerID,
		CreatedAt: time.Now().UTC(),
		VoteCount: 0,
	}

	_, err := s.db.Exec(`
		INSERT INTO poll_option (id, name, location, map_url, created_by, created_at, vote_count)
		VALUES ($1, $2, $3, $4, $5, $6, 0)
	`, opt.ID, opt.Name, opt.Location, opt.MapURL, opt.CreatedBy, opt.CreatedAt)
	if err != nil {
		return models.Option{}, fmt.Errorf("failed to insert option: %w", err)
	}

	s.publish(models.TableOptions, feed.ActionInsert)

	return opt, nil
}

// DeleteOption removes an option. Its votes go with it via the foreign
// key cascade, so a votes change event is published as well.
func (s *Store) DeleteOption(optionID string) error {
	res, err := s.db.Exec(`DELETE FROM poll_option WHERE id = $1`, optionID)
	if err != nil {
		return fmt.Errorf("failed to delete option: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ErrOptionNotFound
	}

	s.publish(models.TableOptions, feed.ActionDelete)
	s.publish(models.TableVotes, feed.ActionDelete)

	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/meetup-poll/models"
)

// Snapshot is the derived view of one (options, votes) state. It is a
// pure function of its inputs and is recomputed in full on every data
// change rather than patched incrementally.
type Snapshot struct {
	// Counts maps option id to its derived vote count. Options with no
	// observed votes carry their cached counter instead, which bridges
	// "votes not yet loaded" and "loaded but zero".
	Counts map[string]int

	TotalVotes   int
	UniqueVoters int

	// UserVotes holds the option ids the current user has voted for.
	UserVotes map[string]bool

	// Leading is the option with the highest derived count, nil when no
	// options exist. Ties go to the option appearing first in the input
	// list.
	Leading *models.Option

	Roster []models.RosterEntry
}

// Compute derives the full tally from raw option and vote rows.
// currentUserID may be empty for anonymous viewers. now anchors the
// relative "voted ago" strings so output is deterministic.
func Compute(options []models.Option, votes []models.Vote, currentUserID string, now time.Time) Snapshot {
	counts := make(map[string]int, len(options))
	for _, v := range votes {
		counts[v.OptionID]++
	}
	for _, opt := range options {
		if _, ok := counts[opt.ID]; !ok {
			counts[opt.ID] = opt.VoteCount
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	voters := make(map[string]bool, len(votes))
	userVotes := make(map[string]bool)
	for _, v := range votes {
		voters[v.VoterID] = true
		if currentUserID != "" && v.VoterID == currentUserID {
			userVotes[v.OptionID] = true
		}
	}

	var leading *models.Option
	best := -1
	for i := range options {
		if c := counts[options[i].ID]; c > best {
			leading = &options[i]
			best = c
		}
	}

	return Snapshot{
		Counts:       counts,
		TotalVotes:   total,
		UniqueVoters: len(voters),
		UserVotes:    userVotes,
		Leading:      leading,
		Roster:       buildRoster(options, votes, now),
	}
}

// CountFor returns the derived count for an option id.
func (s Snapshot) CountFor(optionID string) int {
	return s.Counts[optionID]
}

// Percent returns an option's share of the total, rounded to whole
// percent. Zero total yields zero.
func (s Snapshot) Percent(optionID string) int {
	if s.TotalVotes == 0 {
		return 0
	}
	return int(float64(s.Counts[optionID])/float64(s.TotalVotes)*100 + 0.5)
}

// buildRoster joins votes against option names for the "who voted"
// list, newest first.
func buildRoster(options []models.Option, votes []models.Vote, now time.Time) []models.RosterEntry {
	names := make(map[string]string, len(options))
	for _, opt := range options {
		names[opt.ID] = opt.Name
	}

	roster := make([]models.RosterEntry, 0, len(votes))
	for _, v := range votes {
		optionName, ok := names[v.OptionID]
		if !ok {
			optionName = "Unknown option"
		}

		entry := models.RosterEntry{
			VoteID:      v.ID,
			OptionID:    v.OptionID,
			OptionName:  optionName,
			DisplayName: displayName(v),
			VotedAt:     v.CreatedAt,
			VotedAgo:    humanize.RelTime(v.CreatedAt, now, "ago", "from now"),
		}
		if v.VoterEmail != nil {
			entry.VoterEmail = *v.VoterEmail
		}
		roster = append(roster, entry)
	}

	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].VotedAt.After(roster[j].VotedAt)
	})

	return roster
}

// displayName picks the friendliest available label for a voter:
// recorded name, then email, then a truncated user id.
func displayName(v models.Vote) string {
	if v.VoterName != nil && *v.VoterName != "" {
		return *v.VoterName
	}
	if v.VoterEmail != nil && *v.VoterEmail != "" {
		return *v.VoterEmail
	}
	id := v.VoterID
	if len(id) > 6 {
		id = id[:6]
	}
	return "User " + id
}

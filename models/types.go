// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Table names used by the change feed
const (
	TableOptions = "poll_options"
	TableVotes   = "votes"
)

// Request types

type ProposeOptionRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	MapURL   string `json:"map_url"`
}

// Response types

type ProposeOptionResponse struct {
	Option Option `json:"option"`
}

type CastVoteResponse struct {
	Created bool   `json:"created"`
	Message string `json:"message"`
}

type RetractVoteResponse struct {
	Removed bool   `json:"removed"`
	Message string `json:"message"`
}

type OptionListResponse struct {
	Options []Option `json:"options"`
}

type VoteListResponse struct {
	Votes []Vote `json:"votes"`
}

// Domain types

// Option is a proposed meetup location. VoteCount is the server-maintained
// cached counter; the live tally takes precedence once votes are loaded.
type Option struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	MapURL    *string   `json:"map_url,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	VoteCount int       `json:"vote_count"`
}

// Vote is a (voter, option) endorsement. Voter email and name are
// denormalized at vote time for the roster display.
type Vote struct {
	ID         string    `json:"id"`
	OptionID   string    `json:"option_id"`
	VoterID    string    `json:"voter_id"`
	VoterEmail *string   `json:"voter_email,omitempty"`
	VoterName  *string   `json:"voter_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is the identity asserted by the external identity provider.
// Never persisted by this service.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Poll view types

type OptionView struct {
	Option
	LiveCount int  `json:"live_count"`
	Percent   int  `json:"percent"`
	UserVoted bool `json:"user_voted"`
}

type RosterEntry struct {
	VoteID      string    `json:"vote_id"`
	OptionID    string    `json:"option_id"`
	OptionName  string    `json:"option_name"`
	DisplayName string    `json:"display_name"`
	VoterEmail  string    `json:"voter_email,omitempty"`
	VotedAt     time.Time `json:"voted_at"`
	VotedAgo    string    `json:"voted_ago"`
}

type PollViewResponse struct {
	Options      []OptionView  `json:"options"`
	TotalVotes   int           `json:"total_votes"`
	UniqueVoters int           `json:"unique_voters"`
	Leading      *OptionView   `json:"leading,omitempty"`
	Roster       []RosterEntry `json:"roster"`
	VotingClosed bool          `json:"voting_closed"`
	Countdown    string        `json:"countdown,omitempty"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	LoadedAt     time.Time     `json:"loaded_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

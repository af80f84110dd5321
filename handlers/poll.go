// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/meetup-poll/clock"
	"github.com/danielhkuo/meetup-poll/livesync"
	"github.com/danielhkuo/meetup-poll/middleware"
	"github.com/danielhkuo/meetup-poll/models"
	"github.com/danielhkuo/meetup-poll/session"
	"github.com/danielhkuo/meetup-poll/tally"
)

type PollHandler struct {
	reconciler *livesync.Reconciler
	clock      *clock.Clock
}

func NewPollHandler(r *livesync.Reconciler, c *clock.Clock) *PollHandler {
	return &PollHandler{reconciler: r, clock: c}
}

// GetPoll handles GET /poll. Returns the composed view model: option
// list with live counts, derived tallies, leading option, roster, and
// deadline state. Works for anonymous viewers; a valid session token
// additionally fills the caller's voted flags.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	var userID string
	if user, ok := session.UserFrom(r.Context()); ok {
		userID = user.ID
	}

	snap := h.reconciler.Current()
	t := tally.Compute(snap.Options, snap.Votes, userID, time.Now())

	// Options keep the cached-count storage order even though counts
	// shown are live; the two can disagree briefly after a vote.
	views := make([]models.OptionView, 0, len(snap.Options))
	for _, opt := range snap.Options {
		views = append(views, models.OptionView{
			Option:    opt,
			LiveCount: t.CountFor(opt.ID),
			Percent:   t.Percent(opt.ID),
			UserVoted: t.UserVotes[opt.ID],
		})
	}

	var leading *models.OptionView
	if t.Leading != nil {
		for i := range views {
			if views[i].ID == t.Leading.ID {
				leading = &views[i]
				break
			}
		}
	}

	resp := models.PollViewResponse{
		Options:      views,
		TotalVotes:   t.TotalVotes,
		UniqueVoters: t.UniqueVoters,
		Leading:      leading,
		Roster:       t.Roster,
		VotingClosed: h.clock.Closed(),
		Countdown:    h.clock.Countdown(),
		LoadedAt:     snap.LoadedAt,
	}
	if h.clock.Enforced() {
		d := h.clock.Deadline()
		resp.Deadline = &d
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

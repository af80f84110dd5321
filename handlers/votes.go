// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/meetup-poll/clock"
	"github.com/danielhkuo/meetup-poll/middleware"
	"github.com/danielhkuo/meetup-poll/models"
	"github.com/danielhkuo/meetup-poll/session"
	"github.com/danielhkuo/meetup-poll/store"
)

type VotesHandler struct {
	store *store.Store
	clock *clock.Clock
}

func NewVotesHandler(s *store.Store, c *clock.Clock) *VotesHandler {
	return &VotesHandler{store: s, clock: c}
}

// List handles GET /votes
func (h *VotesHandler) List(w http.ResponseWriter, r *http.Request) {
	votes, err := h.store.ListVotes()
	if err != nil {
		slog.Error("failed to list votes", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteListResponse{Votes: votes})
}

// Cast handles POST /options/{id}/vote. The deadline gate runs before
// any storage work; it is advisory only, so anyone with database
// credentials could still write rows directly.
func (h *VotesHandler) Cast(w http.ResponseWriter, r *http.Request) {
	if h.clock.Closed() {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is closed")
		return
	}

	user, ok := session.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in to continue")
		return
	}

	optionID := r.PathValue("id")
	if optionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option id is required")
		return
	}

	var email, name *string
	if user.Email != "" {
		email = &user.Email
	}
	if user.Name != "" {
		name = &user.Name
	}

	created, err := h.store.CastVote(optionID, user.ID, email, name)
	if err != nil {
		if errors.Is(err, store.ErrOptionNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Option not found")
			return
		}
		slog.Error("failed to cast vote", "error", err, "option_id", optionID, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
		return
	}

	if !created {
		// Second vote on the same option: the intent already holds
		middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
			Created: false,
			Message: "Already voted for this option",
		})
		return
	}

	slog.Info("vote cast", "option_id", optionID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Created: true,
		Message: "Vote recorded",
	})
}

// Retract handles DELETE /options/{id}/vote. Retracting a vote that was
// never cast succeeds quietly.
func (h *VotesHandler) Retract(w http.ResponseWriter, r *http.Request) {
	if h.clock.Closed() {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is closed")
		return
	}

	user, ok := session.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in to continue")
		return
	}

	optionID := r.PathValue("id")
	if optionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option id is required")
		return
	}

	removed, err := h.store.RetractVote(optionID, user.ID)
	if err != nil {
		slog.Error("failed to retract vote", "error", err, "option_id", optionID, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
		return
	}

	message := "No vote to retract"
	if removed {
		message = "Vote retracted"
		slog.Info("vote retracted", "option_id", optionID, "user_id", user.ID)
	}

	middleware.JSONResponse(w, http.StatusOK, models.RetractVoteResponse{
		Removed: removed,
		Message: message,
	})
}

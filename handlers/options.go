// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/meetup-poll/cliparse"
	"github.com/danielhkuo/meetup-poll/middleware"
	"github.com/danielhkuo/meetup-poll/models"
	"github.com/danielhkuo/meetup-poll/session"
	"github.com/danielhkuo/meetup-poll/store"
)

type OptionsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewOptionsHandler(s *store.Store, cfg cliparse.Config) *OptionsHandler {
	return &OptionsHandler{store: s, cfg: cfg}
}

// List handles GET /options
func (h *OptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	options, err := h.store.ListOptions()
	if err != nil {
		slog.Error("failed to list options", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OptionListResponse{Options: options})
}

// Propose handles POST /options
func (h *OptionsHandler) Propose(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in to continue")
		return
	}

	var req models.ProposeOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	opt, err := h.store.ProposeOption(req.Name, req.Location, req.MapURL, user.ID)
	if err != nil {
		if ve, ok := store.AsValidation(err); ok {
			middleware.FieldErrorResponse(w, ve.Field, ve.Message)
			return
		}
		slog.Error("failed to propose option", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
		return
	}

	slog.Info("option proposed", "option_id", opt.ID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.ProposeOptionResponse{Option: opt})
}

// Delete handles DELETE /options/{id}. Only the option's creator may
// delete it, and only when the deployment enables owner deletes at all.
func (h *OptionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.OwnerDelete {
		middleware.ErrorResponse(w, http.StatusForbidden, "Option deletion is disabled")
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

	opt, err := h.store.GetOption(optionID)
	if err != nil {
		if errors.Is(err, store.ErrOptionNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Option not found")
			return
		}
		slog.Error("failed to load option", "error", err, "option_id", optionID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
		return
	}

	if opt.CreatedBy != user.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the creator can delete this option")
		return
	}

	if err := h.store.DeleteOption(optionID); err != nil {
		if errors.Is(err, store.ErrOptionNotFound) {
			// Deleted by someone else between the check and now
			middleware.ErrorResponse(w, http.StatusNotFound, "Option not found")
			return
		}
		slog.Error("failed to delete option", "error", err, "option_id", optionID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
		return
	}

	slog.Info("option deleted", "option_id", optionID, "user_id", user.ID)

	w.WriteHeader(http.StatusNoContent)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/middleware"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/recent"
	"github.com/danielhkuo/repwatch/store"
)

type RecentHandler struct {
	votes  store.VoteStore
	recent recent.Tracker
}

func NewRecentHandler(votes store.VoteStore, tracker recent.Tracker) *RecentHandler {
	return &RecentHandler{votes: votes, recent: tracker}
}

// List handles GET /users/{user}/recent
// Returns the representatives the user viewed last, most recent first.
func (h *RecentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user id is required")
		return
	}

	ids, err := h.recent.List(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, apperrors.Unavailable("failed to list recent views", err))
		return
	}

	reps := []models.Representative{}
	for _, id := range ids {
		rep, err := h.votes.GetRepresentative(r.Context(), id)
		if apperrors.IsNotFound(err) {
			slog.Debug("recent view of unknown representative", "user_id", userID, "representative_id", id)
			continue
		}
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}
		reps = append(reps, rep)
	}

	middleware.JSONResponse(w, http.StatusOK, models.RecentResponse{Representatives: reps})
}

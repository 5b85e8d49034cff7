// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/repwatch/middleware"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/preferences"
)

type PreferenceHandler struct {
	prefs *preferences.Service
}

func NewPreferenceHandler(prefs *preferences.Service) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// List handles GET /users/{user}/preferences
func (h *PreferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.prefs.List(r.Context(), r.PathValue("user"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, prefs)
}

// Set handles POST /users/{user}/preferences
// Creates the rating or overwrites the existing one for the same vote.
func (h *PreferenceHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req models.SetPreferenceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Agreement == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "agreement is required")
		return
	}

	pref, err := h.prefs.Set(r.Context(), r.PathValue("user"), req.VoteID, *req.Agreement, req.Importance)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pref)
}

// Delete handles DELETE /users/{user}/preferences/{vote}
func (h *PreferenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.prefs.Delete(r.Context(), r.PathValue("user"), r.PathValue("vote")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

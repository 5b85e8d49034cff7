// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/repwatch/issues"
	"github.com/danielhkuo/repwatch/middleware"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/recent"
	"github.com/danielhkuo/repwatch/store"
)

// UserHeader optionally identifies the caller on read endpoints.
const UserHeader = "X-User-ID"

// Timeframes accepted by ListVotes.
const (
	TimeframeAll  = "all"
	Timeframe30d  = "30d"
	Timeframe90d  = "90d"
	TimeframeYear = "year"
)

type RepresentativeHandler struct {
	votes      store.VoteStore
	prefs      store.PreferenceStore
	classifier *issues.Classifier
	recent     recent.Tracker
	clock      clockwork.Clock
}

func NewRepresentativeHandler(votes store.VoteStore, prefs store.PreferenceStore, classifier *issues.Classifier, tracker recent.Tracker, clock clockwork.Clock) *RepresentativeHandler {
	return &RepresentativeHandler{votes: votes, prefs: prefs, classifier: classifier, recent: tracker, clock: clock}
}

// List handles GET /representatives?state=&chamber=&party=&name=
func (h *RepresentativeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.RepresentativeFilter{
		State:   strings.TrimSpace(q.Get("state")),
		Chamber: strings.ToLower(strings.TrimSpace(q.Get("chamber"))),
		Party:   strings.TrimSpace(q.Get("party")),
		Name:    strings.TrimSpace(q.Get("name")),
	}

	if filter.Chamber != "" && filter.Chamber != models.ChamberHouse && filter.Chamber != models.ChamberSenate {
		middleware.ErrorResponse(w, http.StatusBadRequest, "chamber must be house or senate")
		return
	}

	reps, err := h.votes.ListRepresentatives(r.Context(), filter)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reps)
}

// Get handles GET /representatives/{id}
// Records a recent view when the caller sends X-User-ID.
func (h *RepresentativeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "representative id is required")
		return
	}

	rep, err := h.votes.GetRepresentative(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if userID := r.Header.Get(UserHeader); userID != "" {
		if err := h.recent.Touch(r.Context(), userID, rep.ID); err != nil {
			// Not fatal: the profile is still served
			slog.Warn("failed to record recent view", "user_id", userID, "representative_id", rep.ID, "error", err)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, rep)
}

// ListVotes handles GET /representatives/{id}/votes?category=&timeframe=
// Returns the member's votes newest first, each with its issue category and
// the caller's own rating when X-User-ID is sent.
func (h *RepresentativeHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "representative id is required")
		return
	}

	q := r.URL.Query()
	timeframe := q.Get("timeframe")
	if timeframe == "" {
		timeframe = TimeframeAll
	}
	cutoff, ok := timeframeCutoff(timeframe, h.clock.Now())
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "timeframe must be one of: all, 30d, 90d, year")
		return
	}

	category := models.IssueCategory(q.Get("category"))
	if category != "" && !slices.Contains(h.classifier.Categories(), category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown category")
		return
	}

	ctx := r.Context()
	if _, err := h.votes.GetRepresentative(ctx, id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	details, err := h.votes.ListMemberVotes(ctx, id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	ratings := map[string]models.UserPreference{}
	if userID := r.Header.Get(UserHeader); userID != "" {
		prefs, err := h.prefs.GetPreferences(ctx, userID)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}
		for _, p := range prefs {
			ratings[p.VoteID] = p
		}
	}

	records := []models.VoteRecord{}
	for _, d := range details {
		if !cutoff.IsZero() && d.Vote.Date.Before(cutoff) {
			continue
		}
		c := h.classifier.Classify(d.Vote.Title, d.Vote.Description)
		if category != "" && c != category {
			continue
		}

		rec := models.VoteRecord{Vote: d.Vote, Position: d.Position, Category: c}
		if p, ok := ratings[d.Vote.ID]; ok {
			rec.Preference = &p
		}
		records = append(records, rec)
	}

	middleware.JSONResponse(w, http.StatusOK, records)
}

// Categories handles GET /categories
func (h *RepresentativeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.CategoriesResponse{
		Categories: h.classifier.Categories(),
	})
}

// timeframeCutoff returns the earliest vote date to include, or the zero
// time for "all". "year" means since January 1 of the current year.
func timeframeCutoff(timeframe string, now time.Time) (time.Time, bool) {
	now = now.UTC()
	switch timeframe {
	case TimeframeAll:
		return time.Time{}, true
	case Timeframe30d:
		return now.AddDate(0, 0, -30), true
	case Timeframe90d:
		return now.AddDate(0, 0, -90), true
	case TimeframeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

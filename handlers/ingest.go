// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/middleware"
	"github.com/danielhkuo/repwatch/models"
)

type IngestHandler struct {
	ingester *ingest.Ingester
}

func NewIngestHandler(ingester *ingest.Ingester) *IngestHandler {
	return &IngestHandler{ingester: ingester}
}

// Members handles POST /ingest/members
// Members are written in order; the first invalid one stops the batch.
func (h *IngestHandler) Members(w http.ResponseWriter, r *http.Request) {
	var req models.IngestMembersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Members) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "members is required")
		return
	}

	for _, m := range req.Members {
		if err := h.ingester.IngestMember(r.Context(), m); err != nil {
			middleware.WriteError(w, r, err)
			return
		}
	}

	slog.Info("members ingested", "count", len(req.Members))
	middleware.JSONResponse(w, http.StatusOK, models.IngestResponse{Members: len(req.Members)})
}

// Votes handles POST /ingest/votes
// Writes one roll call and its positions atomically.
func (h *IngestHandler) Votes(w http.ResponseWriter, r *http.Request) {
	var req models.IngestVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.ingester.IngestVote(r.Context(), req.Vote, req.Positions); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("vote ingested", "vote_id", req.Vote.ID, "positions", len(req.Positions))
	middleware.JSONResponse(w, http.StatusOK, models.IngestResponse{Votes: 1, Positions: len(req.Positions)})
}

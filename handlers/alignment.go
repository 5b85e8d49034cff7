// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/repwatch/alignment"
	"github.com/danielhkuo/repwatch/middleware"
)

type AlignmentHandler struct {
	engine *alignment.Engine
}

func NewAlignmentHandler(engine *alignment.Engine) *AlignmentHandler {
	return &AlignmentHandler{engine: engine}
}

// Get handles GET /users/{user}/alignment/{rep}
// An unknown user or representative yields an all-zero result.
func (h *AlignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	repID := r.PathValue("rep")
	if userID == "" || repID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user and representative ids are required")
		return
	}

	result, err := h.engine.Compute(r.Context(), userID, repID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

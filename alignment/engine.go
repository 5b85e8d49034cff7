// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alignment

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/metrics"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/store"
)

// Engine computes alignment between a user and a representative. It holds
// no mutable state, so one Engine serves any number of concurrent calls.
type Engine struct {
	votes      store.VoteStore
	prefs      store.PreferenceStore
	classifier Classifier
	scale      models.ImportanceScale
	clock      clockwork.Clock
	metrics    *metrics.AlignmentMetrics
}

func NewEngine(votes store.VoteStore, prefs store.PreferenceStore, classifier Classifier, scale models.ImportanceScale, clock clockwork.Clock) *Engine {
	return &Engine{
		votes:      votes,
		prefs:      prefs,
		classifier: classifier,
		scale:      scale,
		clock:      clock,
	}
}

// WithMetrics records computations to m.
func (e *Engine) WithMetrics(m *metrics.AlignmentMetrics) *Engine {
	e.metrics = m
	return e
}

// Scale returns the importance scale results are computed on.
func (e *Engine) Scale() models.ImportanceScale {
	return e.scale
}

// Compute returns the alignment of userID with representativeID.
//
// Unknown ids yield a zero result, not an error. Empty ids are a validation
// error. Store errors are returned as-is.
func (e *Engine) Compute(ctx context.Context, userID, representativeID string) (models.AlignmentResult, error) {
	if userID == "" || representativeID == "" {
		return models.AlignmentResult{}, apperrors.Validation("user id and representative id are required")
	}

	start := e.clock.Now()

	var prefs []models.UserPreference
	var positions []models.MemberVote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prefs, err = e.prefs.GetPreferences(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		positions, err = e.votes.GetPositions(gctx, representativeID)
		return err
	})
	if err := g.Wait(); err != nil {
		e.metrics.Observe(metrics.ResultError, 0, e.clock.Since(start))
		return models.AlignmentResult{}, err
	}

	var meta map[string]models.VoteMeta
	if ids := ScoredVoteIDs(prefs, positions); len(ids) > 0 {
		var err error
		meta, err = e.votes.GetVoteMeta(ctx, ids)
		if err != nil {
			e.metrics.Observe(metrics.ResultError, 0, e.clock.Since(start))
			return models.AlignmentResult{}, err
		}
	}

	// A cancelled request does not publish a result computed from partial reads.
	if err := ctx.Err(); err != nil {
		return models.AlignmentResult{}, err
	}

	result := Aggregate(prefs, positions, meta, e.classifier, e.scale)
	result.UserID = userID
	result.RepresentativeID = representativeID
	result.ComputedAt = e.clock.Now().UTC()

	outcome := metrics.ResultOK
	if result.Overall.Total == 0 {
		outcome = metrics.ResultEmpty
	}
	e.metrics.Observe(outcome, result.Overall.Total, e.clock.Since(start))

	slog.Debug("Alignment computed",
		"user_id", userID,
		"representative_id", representativeID,
		"total", result.Overall.Total,
		"percentage", result.Overall.Percentage,
		"excluded", result.Excluded,
	)

	return result, nil
}

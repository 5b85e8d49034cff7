// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package preferences

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/metrics"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/store"
)

// Service validates and stores user ratings of roll calls.
type Service struct {
	prefs   store.PreferenceStore
	votes   store.VoteStore
	scale   models.ImportanceScale
	metrics *metrics.PreferenceMetrics
}

func NewService(prefs store.PreferenceStore, votes store.VoteStore, scale models.ImportanceScale) *Service {
	return &Service{prefs: prefs, votes: votes, scale: scale}
}

// WithMetrics records writes to m.
func (s *Service) WithMetrics(m *metrics.PreferenceMetrics) *Service {
	s.metrics = m
	return s
}

// Scale returns the importance scale Set validates against.
func (s *Service) Scale() models.ImportanceScale {
	return s.scale
}

// Set creates or overwrites the user's rating of a vote. Identical repeated
// calls leave one record and return equal values. The write is visible to
// every read that starts after Set returns.
func (s *Service) Set(ctx context.Context, userID, voteID string, agreement bool, importance int) (models.UserPreference, error) {
	if userID == "" {
		s.metrics.Upserted("invalid")
		return models.UserPreference{}, apperrors.Validation("user id is required")
	}
	if voteID == "" {
		s.metrics.Upserted("invalid")
		return models.UserPreference{}, apperrors.Validation("vote_id is required")
	}
	if !s.scale.Contains(importance) {
		s.metrics.Upserted("invalid")
		return models.UserPreference{}, apperrors.Validation("importance must be between 1 and %d", s.scale.Max())
	}

	if _, err := s.votes.GetVote(ctx, voteID); err != nil {
		if apperrors.IsNotFound(err) {
			s.metrics.Upserted("invalid")
		} else {
			s.metrics.Upserted("error")
		}
		return models.UserPreference{}, err
	}

	pref, err := s.prefs.Upsert(ctx, models.UserPreference{
		UserID:     userID,
		VoteID:     voteID,
		Agreement:  agreement,
		Importance: importance,
	})
	if err != nil {
		s.metrics.Upserted("error")
		return models.UserPreference{}, fmt.Errorf("upsert preference: %w", err)
	}

	s.metrics.Upserted("ok")
	slog.Info("Preference saved",
		"user_id", userID,
		"vote_id", voteID,
		"agreement", agreement,
		"importance", importance,
	)
	return pref, nil
}

// List returns every rating the user has made, ordered by vote id.
func (s *Service) List(ctx context.Context, userID string) ([]models.UserPreference, error) {
	if userID == "" {
		return nil, apperrors.Validation("user id is required")
	}
	return s.prefs.GetPreferences(ctx, userID)
}

// Get returns one rating, or NotFound.
func (s *Service) Get(ctx context.Context, userID, voteID string) (models.UserPreference, error) {
	if userID == "" || voteID == "" {
		return models.UserPreference{}, apperrors.Validation("user id and vote id are required")
	}
	return s.prefs.GetPreference(ctx, userID, voteID)
}

// Delete removes one rating, or returns NotFound when there is none.
func (s *Service) Delete(ctx context.Context, userID, voteID string) error {
	if userID == "" || voteID == "" {
		return apperrors.Validation("user id and vote id are required")
	}
	if err := s.prefs.DeletePreference(ctx, userID, voteID); err != nil {
		return err
	}

	s.metrics.Deleted()
	slog.Info("Preference deleted", "user_id", userID, "vote_id", voteID)
	return nil
}

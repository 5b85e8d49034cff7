// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/repwatch/models"
)

// VoteStore holds representatives, roll calls and member positions.
type VoteStore interface {
	UpsertRepresentative(ctx context.Context, rep models.Representative) error
	GetRepresentative(ctx context.Context, id string) (models.Representative, error)
	ListRepresentatives(ctx context.Context, filter models.RepresentativeFilter) ([]models.Representative, error)

	// UpsertVote writes a roll call and its position set in one atomic step.
	// Positions from an earlier sync that are missing from the new set are removed.
	UpsertVote(ctx context.Context, vote models.Vote, positions []models.MemberVote) error
	GetVote(ctx context.Context, id string) (models.Vote, error)

	GetPositions(ctx context.Context, representativeID string) ([]models.MemberVote, error)
	GetVoteMeta(ctx context.Context, voteIDs []string) (map[string]models.VoteMeta, error)
	ListMemberVotes(ctx context.Context, representativeID string) ([]models.MemberVoteDetail, error)
}

// PreferenceStore holds user ratings of roll calls.
type PreferenceStore interface {
	// Upsert creates or overwrites the preference for (UserID, VoteID).
	// It is atomic per key: concurrent calls never produce two records.
	Upsert(ctx context.Context, pref models.UserPreference) (models.UserPreference, error)
	GetPreferences(ctx context.Context, userID string) ([]models.UserPreference, error)
	GetPreference(ctx context.Context, userID, voteID string) (models.UserPreference, error)
	DeletePreference(ctx context.Context, userID, voteID string) error
}

// Store is both stores backed by one database.
type Store interface {
	VoteStore
	PreferenceStore
}

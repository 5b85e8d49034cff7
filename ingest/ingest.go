// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/metrics"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/store"
)

// Ingester validates records from a legislative data source and writes
// them to the VoteStore. It is the only producer of representatives, votes
// and positions.
type Ingester struct {
	votes   store.VoteStore
	metrics *metrics.IngestMetrics
}

func NewIngester(votes store.VoteStore) *Ingester {
	return &Ingester{votes: votes}
}

// WithMetrics records ingested and rejected records to m.
func (in *Ingester) WithMetrics(m *metrics.IngestMetrics) *Ingester {
	in.metrics = m
	return in
}

// IngestMember validates and upserts one representative.
func (in *Ingester) IngestMember(ctx context.Context, rep models.Representative) error {
	rep, err := normalizeMember(rep)
	if err != nil {
		in.metrics.Rejected(metrics.KindMember)
		return err
	}

	if err := in.votes.UpsertRepresentative(ctx, rep); err != nil {
		return fmt.Errorf("store member %s: %w", rep.ID, err)
	}
	in.metrics.Ingested(metrics.KindMember, 1)
	return nil
}

// IngestVote validates a roll call and its raw positions and writes them in
// one atomic step. Position spellings such as "Yea" and "Nay" are
// normalized; an unknown spelling or a member listed twice rejects the
// whole roll call.
func (in *Ingester) IngestVote(ctx context.Context, vote models.Vote, records []models.PositionRecord) error {
	vote, err := normalizeVote(vote)
	if err != nil {
		in.metrics.Rejected(metrics.KindVote)
		return err
	}

	positions, err := normalizePositions(vote.ID, records)
	if err != nil {
		in.metrics.Rejected(metrics.KindVote)
		return err
	}

	if err := in.votes.UpsertVote(ctx, vote, positions); err != nil {
		return fmt.Errorf("store vote %s: %w", vote.ID, err)
	}

	in.metrics.Ingested(metrics.KindVote, 1)
	in.metrics.Ingested(metrics.KindPosition, len(positions))
	slog.Debug("Vote ingested", "vote_id", vote.ID, "bill_id", vote.BillID, "positions", len(positions))
	return nil
}

func normalizeMember(rep models.Representative) (models.Representative, error) {
	rep.ID = strings.TrimSpace(rep.ID)
	rep.FirstName = strings.TrimSpace(rep.FirstName)
	rep.LastName = strings.TrimSpace(rep.LastName)
	rep.Chamber = strings.ToLower(strings.TrimSpace(rep.Chamber))
	rep.State = strings.ToUpper(strings.TrimSpace(rep.State))
	rep.Party = strings.TrimSpace(rep.Party)

	if rep.ID == "" {
		return rep, apperrors.Validation("member id is required")
	}
	if rep.FirstName == "" && rep.LastName == "" {
		return rep, apperrors.Validation("member %s has no name", rep.ID)
	}
	if rep.Chamber != models.ChamberHouse && rep.Chamber != models.ChamberSenate {
		return rep, apperrors.Validation("member %s: chamber must be house or senate, got %q", rep.ID, rep.Chamber)
	}
	return rep, nil
}

func normalizeVote(vote models.Vote) (models.Vote, error) {
	vote.ID = strings.TrimSpace(vote.ID)
	vote.BillID = strings.TrimSpace(vote.BillID)
	vote.Title = strings.TrimSpace(vote.Title)
	vote.Chamber = strings.ToLower(strings.TrimSpace(vote.Chamber))
	vote.Result = strings.ToLower(strings.TrimSpace(vote.Result))

	if vote.ID == "" {
		return vote, apperrors.Validation("vote id is required")
	}
	if vote.BillID == "" {
		return vote, apperrors.Validation("vote %s: bill_id is required", vote.ID)
	}
	if vote.Title == "" {
		return vote, apperrors.Validation("vote %s: title is required", vote.ID)
	}
	if vote.Date.IsZero() {
		return vote, apperrors.Validation("vote %s: date is required", vote.ID)
	}
	if vote.Chamber != models.ChamberHouse && vote.Chamber != models.ChamberSenate {
		return vote, apperrors.Validation("vote %s: chamber must be house or senate, got %q", vote.ID, vote.Chamber)
	}
	vote.Date = vote.Date.UTC()
	return vote, nil
}

func normalizePositions(voteID string, records []models.PositionRecord) ([]models.MemberVote, error) {
	seen := make(map[string]bool, len(records))
	positions := make([]models.MemberVote, 0, len(records))

	for _, r := range records {
		memberID := strings.TrimSpace(r.MemberID)
		if memberID == "" {
			return nil, apperrors.Validation("vote %s: position without member_id", voteID)
		}
		if seen[memberID] {
			return nil, apperrors.Validation("vote %s: member %s listed twice", voteID, memberID)
		}
		seen[memberID] = true

		p, ok := models.ParsePosition(r.Position)
		if !ok {
			return nil, apperrors.Validation("vote %s: unknown position %q for member %s", voteID, r.Position, memberID)
		}
		positions = append(positions, models.MemberVote{RepresentativeID: memberID, VoteID: voteID, Position: p})
	}
	return positions, nil
}

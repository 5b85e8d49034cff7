// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/models"
)

// Export is a bundle of members and roll calls as delivered by a
// legislative data source.
type Export struct {
	Members []models.Representative `json:"members"`
	Votes   []ExportVote            `json:"votes"`
}

// ExportVote is a roll call with its raw positions.
type ExportVote struct {
	models.Vote
	Positions []models.PositionRecord `json:"positions"`
}

// Summary counts what an export run wrote and what it skipped.
type Summary struct {
	Members   int      `json:"members"`
	Votes     int      `json:"votes"`
	Positions int      `json:"positions"`
	Rejected  int      `json:"rejected"`
	Errors    []string `json:"errors,omitempty"`
}

// LoadExport decodes an export. Unknown fields are rejected so a schema
// change upstream fails loudly.
func LoadExport(r io.Reader) (Export, error) {
	var e Export
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		return Export{}, fmt.Errorf("decode export: %w", err)
	}
	return e, nil
}

// IngestExport writes every member, then every vote. Invalid records are
// skipped and reported in the Summary. Any other error stops the run and is
// returned together with the counts so far.
func (in *Ingester) IngestExport(ctx context.Context, e Export) (Summary, error) {
	var sum Summary

	reject := func(err error) bool {
		if !apperrors.IsValidation(err) && !isConflict(err) {
			return false
		}
		sum.Rejected++
		sum.Errors = append(sum.Errors, err.Error())
		slog.Warn("Skipping invalid record", "error", err)
		return true
	}

	for _, m := range e.Members {
		if err := in.IngestMember(ctx, m); err != nil {
			if reject(err) {
				continue
			}
			return sum, err
		}
		sum.Members++
	}

	for _, v := range e.Votes {
		if err := in.IngestVote(ctx, v.Vote, v.Positions); err != nil {
			if reject(err) {
				continue
			}
			return sum, err
		}
		sum.Votes++
		sum.Positions += len(v.Positions)
	}

	slog.Info("Export ingested",
		"members", sum.Members,
		"votes", sum.Votes,
		"positions", sum.Positions,
		"rejected", sum.Rejected,
	)
	return sum, nil
}

func isConflict(err error) bool {
	e := apperrors.As(err)
	return e != nil && e.Type == apperrors.TypeConflict
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/models"
)

// metaBatchSize keeps IN lists well under SQLite's parameter limit.
const metaBatchSize = 500

// SQL implements Store on database/sql. Queries use $n placeholders, which
// both lib/pq and modernc.org/sqlite accept.
type SQL struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewSQL(db *sql.DB, clock clockwork.Clock) *SQL {
	return &SQL{db: db, clock: clock}
}

func (s *SQL) UpsertRepresentative(ctx context.Context, rep models.Representative) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO representative (id, first_name, last_name, chamber, party, state, district, office_start, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			chamber = excluded.chamber,
			party = excluded.party,
			state = excluded.state,
			district = excluded.district,
			office_start = excluded.office_start,
			image_url = excluded.image_url
	`, rep.ID, rep.FirstName, rep.LastName, rep.Chamber, rep.Party, rep.State, rep.District, utcPtr(rep.OfficeStart), rep.ImageURL)
	if err != nil {
		return apperrors.Unavailable("failed to upsert representative", err)
	}
	return nil
}

func (s *SQL) GetRepresentative(ctx context.Context, id string) (models.Representative, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, chamber, party, state, district, office_start, image_url
		FROM representative
		WHERE id = $1
	`, id)

	rep, err := scanRepresentative(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Representative{}, apperrors.NotFound("representative %s not found", id)
	}
	if err != nil {
		return models.Representative{}, apperrors.Unavailable("failed to query representative", err)
	}
	return rep, nil
}

func (s *SQL) ListRepresentatives(ctx context.Context, filter models.RepresentativeFilter) ([]models.Representative, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.State != "" {
		where = append(where, "LOWER(state) = "+arg(strings.ToLower(filter.State)))
	}
	if filter.Chamber != "" {
		where = append(where, "chamber = "+arg(strings.ToLower(filter.Chamber)))
	}
	if filter.Party != "" {
		where = append(where, "LOWER(party) = "+arg(strings.ToLower(filter.Party)))
	}
	if filter.Name != "" {
		pattern := "%" + strings.ToLower(filter.Name) + "%"
		where = append(where, fmt.Sprintf("(LOWER(first_name) LIKE %s OR LOWER(last_name) LIKE %s OR LOWER(first_name || ' ' || last_name) LIKE %s)",
			arg(pattern), arg(pattern), arg(pattern)))
	}

	query := `
		SELECT id, first_name, last_name, chamber, party, state, district, office_start, image_url
		FROM representative`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY last_name, first_name, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Unavailable("failed to query representatives", err)
	}
	defer rows.Close()

	reps := []models.Representative{}
	for rows.Next() {
		rep, err := scanRepresentative(rows)
		if err != nil {
			return nil, apperrors.Unavailable("failed to scan representative", err)
		}
		reps = append(reps, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable("failed to query representatives", err)
	}
	return reps, nil
}

func (s *SQL) UpsertVote(ctx context.Context, vote models.Vote, positions []models.MemberVote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Unavailable("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, bill_id, congress, title, description, chamber, vote_date, question, result, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			bill_id = excluded.bill_id,
			congress = excluded.congress,
			title = excluded.title,
			description = excluded.description,
			chamber = excluded.chamber,
			vote_date = excluded.vote_date,
			question = excluded.question,
			result = excluded.result,
			url = excluded.url
	`, vote.ID, vote.BillID, vote.Congress, vote.Title, vote.Description, vote.Chamber,
		vote.Date.UTC(), vote.Question, vote.Result, vote.URL)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("bill %s already has a different roll call in congress %d", vote.BillID, vote.Congress)
		}
		return apperrors.Unavailable("failed to upsert vote", err)
	}

	// The new batch is the vote's whole position set.
	if _, err := tx.ExecContext(ctx, `DELETE FROM member_vote WHERE vote_id = $1`, vote.ID); err != nil {
		return apperrors.Unavailable("failed to replace member votes", err)
	}

	for _, mv := range positions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO member_vote (representative_id, vote_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (representative_id, vote_id) DO UPDATE SET position = excluded.position
		`, mv.RepresentativeID, vote.ID, string(mv.Position))
		if err != nil {
			return apperrors.Unavailable("failed to upsert member vote", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Unavailable("failed to commit vote", err)
	}
	return nil
}

func (s *SQL) GetVote(ctx context.Context, id string) (models.Vote, error) {
	var v models.Vote
	err := s.db.QueryRowContext(ctx, `
		SELECT id, bill_id, congress, title, description, chamber, vote_date, question, result, url
		FROM vote
		WHERE id = $1
	`, id).Scan(&v.ID, &v.BillID, &v.Congress, &v.Title, &v.Description, &v.Chamber,
		&v.Date, &v.Question, &v.Result, &v.URL)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, apperrors.NotFound("vote %s not found", id)
	}
	if err != nil {
		return models.Vote{}, apperrors.Unavailable("failed to query vote", err)
	}
	v.Date = v.Date.UTC()
	return v, nil
}

func (s *SQL) GetPositions(ctx context.Context, representativeID string) ([]models.MemberVote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT representative_id, vote_id, position
		FROM member_vote
		WHERE representative_id = $1
		ORDER BY vote_id
	`, representativeID)
	if err != nil {
		return nil, apperrors.Unavailable("failed to query positions", err)
	}
	defer rows.Close()

	positions := []models.MemberVote{}
	for rows.Next() {
		var mv models.MemberVote
		var position string
		if err := rows.Scan(&mv.RepresentativeID, &mv.VoteID, &position); err != nil {
			return nil, apperrors.Unavailable("failed to scan position", err)
		}
		mv.Position = models.Position(position)
		positions = append(positions, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable("failed to query positions", err)
	}
	return positions, nil
}

func (s *SQL) GetVoteMeta(ctx context.Context, voteIDs []string) (map[string]models.VoteMeta, error) {
	meta := make(map[string]models.VoteMeta, len(voteIDs))

	for start := 0; start < len(voteIDs); start += metaBatchSize {
		end := min(start+metaBatchSize, len(voteIDs))
		batch := voteIDs[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, len(batch))
		for i, id := range batch {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = id
		}

		rows, err := s.db.QueryContext(ctx, `
			SELECT id, vote_date, title, description
			FROM vote
			WHERE id IN (`+strings.Join(placeholders, ", ")+`)
		`, args...)
		if err != nil {
			return nil, apperrors.Unavailable("failed to query vote metadata", err)
		}

		for rows.Next() {
			var id string
			var m models.VoteMeta
			if err := rows.Scan(&id, &m.Date, &m.Title, &m.Description); err != nil {
				rows.Close()
				return nil, apperrors.Unavailable("failed to scan vote metadata", err)
			}
			m.Date = m.Date.UTC()
			meta[id] = m
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, apperrors.Unavailable("failed to query vote metadata", err)
		}
	}

	return meta, nil
}

func (s *SQL) ListMemberVotes(ctx context.Context, representativeID string) ([]models.MemberVoteDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.bill_id, v.congress, v.title, v.description, v.chamber,
		       v.vote_date, v.question, v.result, v.url, mv.position
		FROM member_vote mv
		JOIN vote v ON v.id = mv.vote_id
		WHERE mv.representative_id = $1
		ORDER BY v.vote_date DESC, v.id
	`, representativeID)
	if err != nil {
		return nil, apperrors.Unavailable("failed to query member votes", err)
	}
	defer rows.Close()

	details := []models.MemberVoteDetail{}
	for rows.Next() {
		var d models.MemberVoteDetail
		var position string
		v := &d.Vote
		if err := rows.Scan(&v.ID, &v.BillID, &v.Congress, &v.Title, &v.Description, &v.Chamber,
			&v.Date, &v.Question, &v.Result, &v.URL, &position); err != nil {
			return nil, apperrors.Unavailable("failed to scan member vote", err)
		}
		v.Date = v.Date.UTC()
		d.Position = models.Position(position)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable("failed to query member votes", err)
	}
	return details, nil
}

func (s *SQL) Upsert(ctx context.Context, pref models.UserPreference) (models.UserPreference, error) {
	now := s.clock.Now().UTC()

	var out models.UserPreference
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO user_preference (id, user_id, vote_id, agreement, importance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, vote_id) DO UPDATE SET
			agreement = excluded.agreement,
			importance = excluded.importance,
			updated_at = excluded.updated_at
		RETURNING id, user_id, vote_id, agreement, importance, created_at, updated_at
	`, uuid.NewString(), pref.UserID, pref.VoteID, pref.Agreement, pref.Importance, now, now).Scan(
		&out.ID, &out.UserID, &out.VoteID, &out.Agreement, &out.Importance, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return models.UserPreference{}, apperrors.Unavailable("failed to upsert preference", err)
	}

	out.CreatedAt = out.CreatedAt.UTC()
	out.UpdatedAt = out.UpdatedAt.UTC()
	return out, nil
}

func (s *SQL) GetPreferences(ctx context.Context, userID string) ([]models.UserPreference, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, vote_id, agreement, importance, created_at, updated_at
		FROM user_preference
		WHERE user_id = $1
		ORDER BY vote_id
	`, userID)
	if err != nil {
		return nil, apperrors.Unavailable("failed to query preferences", err)
	}
	defer rows.Close()

	prefs := []models.UserPreference{}
	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return nil, apperrors.Unavailable("failed to scan preference", err)
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable("failed to query preferences", err)
	}
	return prefs, nil
}

func (s *SQL) GetPreference(ctx context.Context, userID, voteID string) (models.UserPreference, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, vote_id, agreement, importance, created_at, updated_at
		FROM user_preference
		WHERE user_id = $1 AND vote_id = $2
	`, userID, voteID)

	p, err := scanPreference(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserPreference{}, apperrors.NotFound("no preference for vote %s", voteID)
	}
	if err != nil {
		return models.UserPreference{}, apperrors.Unavailable("failed to query preference", err)
	}
	return p, nil
}

func (s *SQL) DeletePreference(ctx context.Context, userID, voteID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_preference WHERE user_id = $1 AND vote_id = $2
	`, userID, voteID)
	if err != nil {
		return apperrors.Unavailable("failed to delete preference", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Unavailable("failed to delete preference", err)
	}
	if n == 0 {
		return apperrors.NotFound("no preference for vote %s", voteID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRepresentative(row scanner) (models.Representative, error) {
	var rep models.Representative
	var officeStart sql.NullTime
	err := row.Scan(&rep.ID, &rep.FirstName, &rep.LastName, &rep.Chamber, &rep.Party,
		&rep.State, &rep.District, &officeStart, &rep.ImageURL)
	if err != nil {
		return models.Representative{}, err
	}
	if officeStart.Valid {
		t := officeStart.Time.UTC()
		rep.OfficeStart = &t
	}
	return rep, nil
}

func scanPreference(row scanner) (models.UserPreference, error) {
	var p models.UserPreference
	err := row.Scan(&p.ID, &p.UserID, &p.VoteID, &p.Agreement, &p.Importance, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.UserPreference{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func utcPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// isUniqueViolation matches the unique-constraint messages of both drivers.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

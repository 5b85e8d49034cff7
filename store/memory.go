// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/models"
)

type positionKey struct {
	representativeID string
	voteID           string
}

type preferenceKey struct {
	userID string
	voteID string
}

// Memory implements Store in process. Every instance is independent, so
// tests get a fresh store by calling NewMemory.
type Memory struct {
	mu        sync.RWMutex
	clock     clockwork.Clock
	reps      map[string]models.Representative
	votes     map[string]models.Vote
	bills     map[string]string // congress/bill -> vote id
	positions map[positionKey]models.Position
	prefs     map[preferenceKey]models.UserPreference
}

func NewMemory(clock clockwork.Clock) *Memory {
	return &Memory{
		clock:     clock,
		reps:      make(map[string]models.Representative),
		votes:     make(map[string]models.Vote),
		bills:     make(map[string]string),
		positions: make(map[positionKey]models.Position),
		prefs:     make(map[preferenceKey]models.UserPreference),
	}
}

func (m *Memory) UpsertRepresentative(ctx context.Context, rep models.Representative) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if rep.OfficeStart != nil {
		t := rep.OfficeStart.UTC()
		rep.OfficeStart = &t
	}
	m.reps[rep.ID] = rep
	return nil
}

func (m *Memory) GetRepresentative(ctx context.Context, id string) (models.Representative, error) {
	if err := ctx.Err(); err != nil {
		return models.Representative{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rep, ok := m.reps[id]
	if !ok {
		return models.Representative{}, apperrors.NotFound("representative %s not found", id)
	}
	return copyRepresentative(rep), nil
}

func (m *Memory) ListRepresentatives(ctx context.Context, filter models.RepresentativeFilter) ([]models.Representative, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	name := strings.ToLower(filter.Name)
	reps := []models.Representative{}
	for _, rep := range m.reps {
		if filter.State != "" && !strings.EqualFold(rep.State, filter.State) {
			continue
		}
		if filter.Chamber != "" && !strings.EqualFold(rep.Chamber, filter.Chamber) {
			continue
		}
		if filter.Party != "" && !strings.EqualFold(rep.Party, filter.Party) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(rep.FirstName+" "+rep.LastName), name) {
			continue
		}
		reps = append(reps, copyRepresentative(rep))
	}

	sort.Slice(reps, func(i, j int) bool {
		a, b := reps[i], reps[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return reps, nil
}

func (m *Memory) UpsertVote(ctx context.Context, vote models.Vote, positions []models.MemberVote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	bill := billKey(vote)
	if owner, ok := m.bills[bill]; ok && owner != vote.ID {
		return apperrors.Conflict("bill %s already has a different roll call in congress %d", vote.BillID, vote.Congress)
	}
	if prev, ok := m.votes[vote.ID]; ok {
		delete(m.bills, billKey(prev))
	}

	vote.Date = vote.Date.UTC()
	m.votes[vote.ID] = vote
	m.bills[bill] = vote.ID
	for k := range m.positions {
		if k.voteID == vote.ID {
			delete(m.positions, k)
		}
	}
	for _, mv := range positions {
		m.positions[positionKey{mv.RepresentativeID, vote.ID}] = mv.Position
	}
	return nil
}

func (m *Memory) GetVote(ctx context.Context, id string) (models.Vote, error) {
	if err := ctx.Err(); err != nil {
		return models.Vote{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.votes[id]
	if !ok {
		return models.Vote{}, apperrors.NotFound("vote %s not found", id)
	}
	return v, nil
}

func (m *Memory) GetPositions(ctx context.Context, representativeID string) ([]models.MemberVote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	positions := []models.MemberVote{}
	for k, p := range m.positions {
		if k.representativeID == representativeID {
			positions = append(positions, models.MemberVote{
				RepresentativeID: k.representativeID,
				VoteID:           k.voteID,
				Position:         p,
			})
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].VoteID < positions[j].VoteID })
	return positions, nil
}

func (m *Memory) GetVoteMeta(ctx context.Context, voteIDs []string) (map[string]models.VoteMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	meta := make(map[string]models.VoteMeta, len(voteIDs))
	for _, id := range voteIDs {
		if v, ok := m.votes[id]; ok {
			meta[id] = models.VoteMeta{Date: v.Date, Title: v.Title, Description: v.Description}
		}
	}
	return meta, nil
}

func (m *Memory) ListMemberVotes(ctx context.Context, representativeID string) ([]models.MemberVoteDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	details := []models.MemberVoteDetail{}
	for k, p := range m.positions {
		if k.representativeID != representativeID {
			continue
		}
		v, ok := m.votes[k.voteID]
		if !ok {
			continue
		}
		details = append(details, models.MemberVoteDetail{Vote: v, Position: p})
	}
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i].Vote, details[j].Vote
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID < b.ID
	})
	return details, nil
}

func (m *Memory) Upsert(ctx context.Context, pref models.UserPreference) (models.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return models.UserPreference{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now().UTC()
	key := preferenceKey{pref.UserID, pref.VoteID}

	existing, ok := m.prefs[key]
	if ok {
		existing.Agreement = pref.Agreement
		existing.Importance = pref.Importance
		existing.UpdatedAt = now
		m.prefs[key] = existing
		return existing, nil
	}

	created := models.UserPreference{
		ID:         uuid.NewString(),
		UserID:     pref.UserID,
		VoteID:     pref.VoteID,
		Agreement:  pref.Agreement,
		Importance: pref.Importance,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.prefs[key] = created
	return created, nil
}

func (m *Memory) GetPreferences(ctx context.Context, userID string) ([]models.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefs := []models.UserPreference{}
	for k, p := range m.prefs {
		if k.userID == userID {
			prefs = append(prefs, p)
		}
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].VoteID < prefs[j].VoteID })
	return prefs, nil
}

func (m *Memory) GetPreference(ctx context.Context, userID, voteID string) (models.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return models.UserPreference{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.prefs[preferenceKey{userID, voteID}]
	if !ok {
		return models.UserPreference{}, apperrors.NotFound("no preference for vote %s", voteID)
	}
	return p, nil
}

func (m *Memory) DeletePreference(ctx context.Context, userID, voteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := preferenceKey{userID, voteID}
	if _, ok := m.prefs[key]; !ok {
		return apperrors.NotFound("no preference for vote %s", voteID)
	}
	delete(m.prefs, key)
	return nil
}

func copyRepresentative(rep models.Representative) models.Representative {
	if rep.OfficeStart != nil {
		t := *rep.OfficeStart
		rep.OfficeStart = &t
	}
	return rep
}

func billKey(v models.Vote) string {
	return strconv.Itoa(v.Congress) + "/" + v.BillID
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recent

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// MaxRecent is how many representatives are remembered per user.
const MaxRecent = 5

// recentTTL drops the list of a user who has not viewed anyone in a while.
const recentTTL = 90 * 24 * time.Hour

// Tracker remembers which representatives a user looked at last.
type Tracker interface {
	// Touch records a view of representativeID by userID now.
	Touch(ctx context.Context, userID, representativeID string) error
	// List returns up to MaxRecent representative ids, most recent first.
	List(ctx context.Context, userID string) ([]string, error)
}

type view struct {
	representativeID string
	at               time.Time
}

// Memory is an in-process Tracker.
type Memory struct {
	mu    sync.Mutex
	clock clockwork.Clock
	views map[string][]view // most recent first
}

func NewMemory(clock clockwork.Clock) *Memory {
	return &Memory{clock: clock, views: make(map[string][]view)}
}

func (m *Memory) Touch(ctx context.Context, userID, representativeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := []view{{representativeID: representativeID, at: m.clock.Now()}}
	for _, v := range m.views[userID] {
		if v.representativeID != representativeID {
			list = append(list, v)
		}
	}
	if len(list) > MaxRecent {
		list = list[:MaxRecent]
	}
	m.views[userID] = list
	return nil
}

func (m *Memory) List(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.views[userID]
	if len(list) > 0 && m.clock.Since(list[0].at) > recentTTL {
		delete(m.views, userID)
		list = nil
	}

	ids := make([]string, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.representativeID)
	}
	return ids, nil
}

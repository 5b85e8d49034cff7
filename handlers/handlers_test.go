// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/repwatch/alignment"
	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/issues"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/preferences"
	"github.com/danielhkuo/repwatch/recent"
	"github.com/danielhkuo/repwatch/store"
	"github.com/danielhkuo/repwatch/testutil"
)

type fixture struct {
	clock   *clockwork.FakeClock
	store   *store.Memory
	recent  *recent.Memory
	reps    *RepresentativeHandler
	prefs   *PreferenceHandler
	align   *AlignmentHandler
	visits  *RecentHandler
	ingests *IngestHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testutil.Date(2024, 6, 15))
	st := store.NewMemory(clock)
	tracker := recent.NewMemory(clock)
	classifier := issues.Default()
	scale := models.Scale3

	return &fixture{
		clock:   clock,
		store:   st,
		recent:  tracker,
		reps:    NewRepresentativeHandler(st, st, classifier, tracker, clock),
		prefs:   NewPreferenceHandler(preferences.NewService(st, st, scale)),
		align:   NewAlignmentHandler(alignment.NewEngine(st, st, classifier, scale, clock)),
		visits:  NewRecentHandler(st, tracker),
		ingests: NewIngestHandler(ingest.NewIngester(st)),
	}
}

// seed stores two members and three roll calls spread over the past year.
func (f *fixture) seed(t *testing.T) {
	t.Helper()

	testutil.CreateTestRepresentative(t, f.store, "A000370", "Alma", "Adams", "NC")
	testutil.CreateTestRepresentative(t, f.store, "B001230", "Tammy", "Baldwin", "WI")

	testutil.CreateTestVote(t, f.store, "v1", "Medicare Drug Pricing Act", testutil.Date(2023, 9, 1),
		map[string]models.Position{"A000370": models.PositionYes, "B001230": models.PositionNo})
	testutil.CreateTestVote(t, f.store, "v2", "Climate Action Now Act", testutil.Date(2024, 4, 10),
		map[string]models.Position{"A000370": models.PositionNo})
	testutil.CreateTestVote(t, f.store, "v3", "Border Security Act", testutil.Date(2024, 6, 1),
		map[string]models.Position{"A000370": models.PositionPresent})
}

func withPath(req *http.Request, kv ...string) *http.Request {
	for i := 0; i+1 < len(kv); i += 2 {
		req.SetPathValue(kv[i], kv[i+1])
	}
	return req
}

func TestListRepresentatives(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []string
	}{
		{"all", "", http.StatusOK, []string{"A000370", "B001230"}},
		{"by state", "?state=WI", http.StatusOK, []string{"B001230"}},
		{"by name", "?name=adam", http.StatusOK, []string{"A000370"}},
		{"no match", "?state=TX", http.StatusOK, []string{}},
		{"bad chamber", "?chamber=parliament", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/representatives"+tt.query, nil, nil)
			w := httptest.NewRecorder()
			f.reps.List(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var reps []models.Representative
			testutil.AssertJSON(t, w, &reps)
			ids := []string{}
			for _, r := range reps {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGetRepresentative(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	t.Run("found and recorded", func(t *testing.T) {
		req := withPath(testutil.MakeRequest("GET", "/representatives/A000370", nil,
			map[string]string{UserHeader: "user-1"}), "id", "A000370")
		w := httptest.NewRecorder()
		f.reps.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var rep models.Representative
		testutil.AssertJSON(t, w, &rep)
		assert.Equal(t, "Adams", rep.LastName)

		viewed, err := f.recent.List(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"A000370"}, viewed)
	})

	t.Run("anonymous view is not recorded", func(t *testing.T) {
		req := withPath(testutil.MakeRequest("GET", "/representatives/B001230", nil, nil), "id", "B001230")
		w := httptest.NewRecorder()
		f.reps.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		viewed, err := f.recent.List(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, viewed)
	})

	t.Run("unknown", func(t *testing.T) {
		req := withPath(testutil.MakeRequest("GET", "/representatives/nobody", nil, nil), "id", "nobody")
		w := httptest.NewRecorder()
		f.reps.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestListVotes(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, err := f.prefs.prefs.Set(context.Background(), "user-1", "v2", true, 3)
	require.NoError(t, err)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []string
	}{
		{"all newest first", "", http.StatusOK, []string{"v3", "v2", "v1"}},
		{"explicit all", "?timeframe=all", http.StatusOK, []string{"v3", "v2", "v1"}},
		{"30 days", "?timeframe=30d", http.StatusOK, []string{"v3"}},
		{"90 days", "?timeframe=90d", http.StatusOK, []string{"v3", "v2"}},
		{"this year", "?timeframe=year", http.StatusOK, []string{"v3", "v2"}},
		{"category", "?category=Environment", http.StatusOK, []string{"v2"}},
		{"category and timeframe", "?category=Healthcare&timeframe=year", http.StatusOK, []string{}},
		{"bad timeframe", "?timeframe=decade", http.StatusBadRequest, nil},
		{"bad category", "?category=Sports", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withPath(testutil.MakeRequest("GET", "/representatives/A000370/votes"+tt.query, nil,
				map[string]string{UserHeader: "user-1"}), "id", "A000370")
			w := httptest.NewRecorder()
			f.reps.ListVotes(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var records []models.VoteRecord
			testutil.AssertJSON(t, w, &records)
			ids := []string{}
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("record fields", func(t *testing.T) {
		req := withPath(testutil.MakeRequest("GET", "/representatives/A000370/votes", nil,
			map[string]string{UserHeader: "user-1"}), "id", "A000370")
		w := httptest.NewRecorder()
		f.reps.ListVotes(w, req)

		var records []models.VoteRecord
		testutil.AssertJSON(t, w, &records)
		require.Len(t, records, 3)

		assert.Equal(t, models.PositionPresent, records[0].Position)
		assert.Equal(t, models.IssueImmigration, records[0].Category)
		assert.Nil(t, records[0].Preference)

		require.NotNil(t, records[1].Preference)
		assert.True(t, records[1].Preference.Agreement)
		assert.Equal(t, models.IssueEnvironment, records[1].Category)
	})

	t.Run("unknown representative", func(t *testing.T) {
		req := withPath(testutil.MakeRequest("GET", "/representatives/nobody/votes", nil, nil), "id", "nobody")
		w := httptest.NewRecorder()
		f.reps.ListVotes(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestCategories(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.reps.Categories(w, testutil.MakeRequest("GET", "/categories", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.CategoriesResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Contains(t, resp.Categories, models.IssueHealthcare)
	assert.Equal(t, models.IssueOther, resp.Categories[len(resp.Categories)-1])
}

func TestTimeframeCutoff(t *testing.T) {
	now := testutil.Date(2024, 6, 15)

	tests := []struct {
		timeframe string
		want      string
		ok        bool
	}{
		{TimeframeAll, "0001-01-01", true},
		{Timeframe30d, "2024-05-16", true},
		{Timeframe90d, "2024-03-17", true},
		{TimeframeYear, "2024-01-01", true},
		{"week", "0001-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			got, ok := timeframeCutoff(tt.timeframe, now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

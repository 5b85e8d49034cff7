// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/testutil"
)

func TestSetPreference(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "valid",
			body:       models.SetPreferenceRequest{VoteID: "v1", Agreement: testutil.BoolPtr(true), Importance: 3},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing agreement",
			body:       map[string]any{"vote_id": "v1", "importance": 2},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "importance out of range",
			body:       models.SetPreferenceRequest{VoteID: "v1", Agreement: testutil.BoolPtr(false), Importance: 4},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing vote id",
			body:       models.SetPreferenceRequest{Agreement: testutil.BoolPtr(false), Importance: 1},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown vote",
			body:       models.SetPreferenceRequest{VoteID: "v404", Agreement: testutil.BoolPtr(true), Importance: 1},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withPath(testutil.MakeRequest("POST", "/users/user-1/preferences", tt.body, nil), "user", "user-1")
			w := httptest.NewRecorder()
			f.prefs.Set(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/users/user-1/preferences", bytes.NewBufferString("{"))
		req.SetPathValue("user", "user-1")
		w := httptest.NewRecorder()
		f.prefs.Set(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestSetPreferenceOverwrites(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	set := func(agreement bool, importance int) models.UserPreference {
		t.Helper()
		body := models.SetPreferenceRequest{VoteID: "v1", Agreement: &agreement, Importance: importance}
		req := withPath(testutil.MakeRequest("POST", "/users/user-1/preferences", body, nil), "user", "user-1")
		w := httptest.NewRecorder()
		f.prefs.Set(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var pref models.UserPreference
		testutil.AssertJSON(t, w, &pref)
		return pref
	}

	first := set(true, 1)
	second := set(false, 3)

	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.Agreement)
	assert.Equal(t, 3, second.Importance)

	req := withPath(testutil.MakeRequest("GET", "/users/user-1/preferences", nil, nil), "user", "user-1")
	w := httptest.NewRecorder()
	f.prefs.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var prefs []models.UserPreference
	testutil.AssertJSON(t, w, &prefs)
	require.Len(t, prefs, 1)
	assert.Equal(t, "v1", prefs[0].VoteID)
}

func TestDeletePreference(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, err := f.prefs.prefs.Set(context.Background(), "user-1", "v1", true, 2)
	require.NoError(t, err)

	del := func() *httptest.ResponseRecorder {
		req := withPath(testutil.MakeRequest("DELETE", "/users/user-1/preferences/v1", nil, nil),
			"user", "user-1", "vote", "v1")
		w := httptest.NewRecorder()
		f.prefs.Delete(w, req)
		return w
	}

	testutil.AssertStatus(t, del(), http.StatusNoContent)
	testutil.AssertStatus(t, del(), http.StatusNotFound)
}

func TestGetAlignment(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	ctx := context.Background()
	_, err := f.prefs.prefs.Set(ctx, "user-1", "v1", true, 3)
	require.NoError(t, err)
	_, err = f.prefs.prefs.Set(ctx, "user-1", "v2", true, 1)
	require.NoError(t, err)
	_, err = f.prefs.prefs.Set(ctx, "user-1", "v3", false, 2)
	require.NoError(t, err)

	tests := []struct {
		name      string
		user, rep string
		want      models.Bucket
	}{
		{"scored pair", "user-1", "A000370", models.Bucket{Total: 2, Agree: 1, Disagree: 1, Percentage: 50}},
		{"other member", "user-1", "B001230", models.Bucket{Total: 1, Agree: 0, Disagree: 1, Percentage: 0}},
		{"unknown user", "user-2", "A000370", models.Bucket{}},
		{"unknown representative", "user-1", "nobody", models.Bucket{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withPath(testutil.MakeRequest("GET", "/users/"+tt.user+"/alignment/"+tt.rep, nil, nil),
				"user", tt.user, "rep", tt.rep)
			w := httptest.NewRecorder()
			f.align.Get(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var result models.AlignmentResult
			testutil.AssertJSON(t, w, &result)
			assert.Equal(t, tt.want, result.Overall)
			assert.Equal(t, tt.rep, result.RepresentativeID)
			assert.Len(t, result.ByScale, 3)
		})
	}
}

func TestRecentList(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	ctx := context.Background()
	require.NoError(t, f.recent.Touch(ctx, "user-1", "A000370"))
	f.clock.Advance(1)
	require.NoError(t, f.recent.Touch(ctx, "user-1", "gone"))
	f.clock.Advance(1)
	require.NoError(t, f.recent.Touch(ctx, "user-1", "B001230"))

	req := withPath(testutil.MakeRequest("GET", "/users/user-1/recent", nil, nil), "user", "user-1")
	w := httptest.NewRecorder()
	f.visits.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.RecentResponse
	testutil.AssertJSON(t, w, &resp)
	require.Len(t, resp.Representatives, 2)
	assert.Equal(t, "B001230", resp.Representatives[0].ID)
	assert.Equal(t, "A000370", resp.Representatives[1].ID)
}

func TestIngestEndpoints(t *testing.T) {
	f := newFixture(t)

	t.Run("members", func(t *testing.T) {
		body := models.IngestMembersRequest{Members: []models.Representative{
			{ID: "A000370", FirstName: "Alma", LastName: "Adams", Chamber: "House", Party: "D", State: "nc", District: "12"},
			{ID: "B001230", FirstName: "Tammy", LastName: "Baldwin", Chamber: "senate", Party: "D", State: "WI"},
		}}
		w := httptest.NewRecorder()
		f.ingests.Members(w, testutil.MakeRequest("POST", "/ingest/members", body, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.IngestResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, 2, resp.Members)

		rep, err := f.store.GetRepresentative(context.Background(), "A000370")
		require.NoError(t, err)
		assert.Equal(t, "NC", rep.State)
		assert.Equal(t, models.ChamberHouse, rep.Chamber)
	})

	t.Run("empty members", func(t *testing.T) {
		w := httptest.NewRecorder()
		f.ingests.Members(w, testutil.MakeRequest("POST", "/ingest/members", models.IngestMembersRequest{}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid member", func(t *testing.T) {
		body := models.IngestMembersRequest{Members: []models.Representative{{FirstName: "No", LastName: "Id", Chamber: "house"}}}
		w := httptest.NewRecorder()
		f.ingests.Members(w, testutil.MakeRequest("POST", "/ingest/members", body, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("vote", func(t *testing.T) {
		body := models.IngestVoteRequest{
			Vote: models.Vote{
				ID: "h-118-1", BillID: "hr-1", Congress: 118, Title: "Lower Energy Costs Act",
				Chamber: "house", Date: testutil.Date(2023, 3, 30), Result: "Passed",
			},
			Positions: []models.PositionRecord{{MemberID: "A000370", Position: "Nay"}},
		}
		w := httptest.NewRecorder()
		f.ingests.Votes(w, testutil.MakeRequest("POST", "/ingest/votes", body, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.IngestResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, models.IngestResponse{Votes: 1, Positions: 1}, resp)

		positions, err := f.store.GetPositions(context.Background(), "A000370")
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.Equal(t, models.PositionNo, positions[0].Position)
	})

	t.Run("bad position spelling", func(t *testing.T) {
		body := models.IngestVoteRequest{
			Vote: models.Vote{
				ID: "h-118-2", BillID: "hr-2", Title: "Some Act",
				Chamber: "house", Date: testutil.Date(2023, 4, 1), Result: "failed",
			},
			Positions: []models.PositionRecord{{MemberID: "A000370", Position: "Maybe"}},
		}
		w := httptest.NewRecorder()
		f.ingests.Votes(w, testutil.MakeRequest("POST", "/ingest/votes", body, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

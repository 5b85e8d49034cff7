// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/repwatch/alignment"
	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/issues"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/preferences"
	"github.com/danielhkuo/repwatch/recent"
	"github.com/danielhkuo/repwatch/store"
	"github.com/danielhkuo/repwatch/testutil"
)

// TestFullAlignmentWorkflow tests the complete end-to-end workflow:
// 1. Ingest members
// 2. Ingest roll calls
// 3. Browse a representative
// 4. Rate votes
// 5. Change a rating
// 6. Compute alignment
// 7. Check recent views
func TestFullAlignmentWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	clock := clockwork.NewFakeClockAt(testutil.Date(2024, 6, 15))
	st := store.NewSQL(db, clock)
	tracker := recent.NewMemory(clock)
	classifier := issues.Default()

	ingestHandler := NewIngestHandler(ingest.NewIngester(st))
	repHandler := NewRepresentativeHandler(st, st, classifier, tracker, clock)
	prefHandler := NewPreferenceHandler(preferences.NewService(st, st, models.Scale3))
	alignHandler := NewAlignmentHandler(alignment.NewEngine(st, st, classifier, models.Scale3, clock))
	recentHandler := NewRecentHandler(st, tracker)

	// Step 1: Ingest members
	members := models.IngestMembersRequest{Members: []models.Representative{
		{ID: "A000370", FirstName: "Alma", LastName: "Adams", Chamber: "house", Party: "D", State: "NC", District: "12"},
	}}
	w := httptest.NewRecorder()
	ingestHandler.Members(w, testutil.MakeRequest("POST", "/ingest/members", members, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Ingest members failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 2: Ingest roll calls
	votes := []models.IngestVoteRequest{
		{
			Vote: models.Vote{ID: "h-118-101", BillID: "hr-3", Congress: 118, Title: "Medicare Negotiation Act",
				Chamber: "house", Date: testutil.Date(2024, 2, 1), Result: "passed"},
			Positions: []models.PositionRecord{{MemberID: "A000370", Position: "Yea"}},
		},
		{
			Vote: models.Vote{ID: "h-118-102", BillID: "hr-7", Congress: 118, Title: "Tax Cuts Extension Act",
				Chamber: "house", Date: testutil.Date(2024, 3, 1), Result: "failed"},
			Positions: []models.PositionRecord{{MemberID: "A000370", Position: "Nay"}},
		},
		{
			Vote: models.Vote{ID: "h-118-103", BillID: "hr-9", Congress: 118, Title: "School Lunch Act",
				Chamber: "house", Date: testutil.Date(2024, 4, 1), Result: "passed"},
			Positions: []models.PositionRecord{{MemberID: "A000370", Position: "Not Voting"}},
		},
	}
	for _, v := range votes {
		w = httptest.NewRecorder()
		ingestHandler.Votes(w, testutil.MakeRequest("POST", "/ingest/votes", v, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 2 - Ingest vote %s failed: %d - %s", v.Vote.ID, w.Code, w.Body.String())
		}
	}

	// Step 3: Browse the representative's votes
	headers := map[string]string{UserHeader: "user-1"}
	w = httptest.NewRecorder()
	repHandler.Get(w, withPath(testutil.MakeRequest("GET", "/representatives/A000370", nil, headers), "id", "A000370"))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	repHandler.ListVotes(w, withPath(testutil.MakeRequest("GET", "/representatives/A000370/votes", nil, headers), "id", "A000370"))
	testutil.AssertStatus(t, w, http.StatusOK)
	var records []models.VoteRecord
	testutil.AssertJSON(t, w, &records)
	if len(records) != 3 {
		t.Fatalf("Step 3 - Expected 3 votes, got %d", len(records))
	}

	// Step 4: Rate every vote
	ratings := []models.SetPreferenceRequest{
		{VoteID: "h-118-101", Agreement: testutil.BoolPtr(true), Importance: 3},
		{VoteID: "h-118-102", Agreement: testutil.BoolPtr(false), Importance: 2},
		{VoteID: "h-118-103", Agreement: testutil.BoolPtr(true), Importance: 1},
	}
	for _, rating := range ratings {
		w = httptest.NewRecorder()
		prefHandler.Set(w, withPath(testutil.MakeRequest("POST", "/users/user-1/preferences", rating, nil), "user", "user-1"))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 4 - Rating %s failed: %d - %s", rating.VoteID, w.Code, w.Body.String())
		}
	}

	// Step 5: Change a rating so the tax vote now disagrees
	changed := models.SetPreferenceRequest{VoteID: "h-118-102", Agreement: testutil.BoolPtr(true), Importance: 2}
	w = httptest.NewRecorder()
	prefHandler.Set(w, withPath(testutil.MakeRequest("POST", "/users/user-1/preferences", changed, nil), "user", "user-1"))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 6: Compute alignment
	w = httptest.NewRecorder()
	alignHandler.Get(w, withPath(testutil.MakeRequest("GET", "/users/user-1/alignment/A000370", nil, nil),
		"user", "user-1", "rep", "A000370"))
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.AlignmentResult
	testutil.AssertJSON(t, w, &result)
	if result.Overall != (models.Bucket{Total: 2, Agree: 1, Disagree: 1, Percentage: 50}) {
		t.Errorf("Step 6 - Unexpected overall bucket: %+v", result.Overall)
	}
	if result.ByImportance.High.Agree != 1 || result.ByImportance.Medium.Disagree != 1 {
		t.Errorf("Step 6 - Unexpected importance breakdown: %+v", result.ByImportance)
	}
	if result.ByIssue[models.IssueHealthcare].Agree != 1 || result.ByIssue[models.IssueEconomy].Disagree != 1 {
		t.Errorf("Step 6 - Unexpected issue breakdown: %+v", result.ByIssue)
	}
	if result.Excluded != 1 {
		t.Errorf("Step 6 - Expected 1 excluded vote, got %d", result.Excluded)
	}

	// Step 7: Recent views
	w = httptest.NewRecorder()
	recentHandler.List(w, withPath(testutil.MakeRequest("GET", "/users/user-1/recent", nil, nil), "user", "user-1"))
	testutil.AssertStatus(t, w, http.StatusOK)
	var recentResp models.RecentResponse
	testutil.AssertJSON(t, w, &recentResp)
	if len(recentResp.Representatives) != 1 || recentResp.Representatives[0].ID != "A000370" {
		t.Errorf("Step 7 - Unexpected recent views: %+v", recentResp.Representatives)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/repwatch/cliparse"
	"github.com/danielhkuo/repwatch/db"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/store"
)

// TestDBEnv names the variable that points tests at a Postgres database
// instead of a throwaway SQLite file.
const TestDBEnv = "TEST_DATABASE_URL"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbType, url := db.TypeSQLite, filepath.Join(t.TempDir(), "test.db")
	if pg := os.Getenv(TestDBEnv); pg != "" {
		dbType, url = db.TypePostgres, pg
	}

	conn, err := db.Open(context.Background(), dbType, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	if err := db.DropSchema(conn); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                3318,
		DatabaseType:        cliparse.DatabaseMemory,
		ImportanceScale:     int(models.Scale3),
		LogLevel:            "info",
		LogFormat:           "text",
		PreferenceRateLimit: 1000,
		PreferenceBurst:     1000,
	}
}

// CreateTestRepresentative stores a House member from the given state.
func CreateTestRepresentative(t *testing.T, vs store.VoteStore, id, firstName, lastName, state string) models.Representative {
	t.Helper()

	rep := models.Representative{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Chamber:   models.ChamberHouse,
		Party:     "D",
		State:     state,
		District:  "1",
	}
	if err := vs.UpsertRepresentative(context.Background(), rep); err != nil {
		t.Fatalf("Failed to create test representative: %v", err)
	}
	return rep
}

// CreateTestVote stores a roll call and the given member positions.
// The bill id is derived from the vote id.
func CreateTestVote(t *testing.T, vs store.VoteStore, id, title string, date time.Time, positions map[string]models.Position) models.Vote {
	t.Helper()

	vote := models.Vote{
		ID:       id,
		BillID:   "hr-" + id,
		Congress: 118,
		Title:    title,
		Chamber:  models.ChamberHouse,
		Date:     date.UTC(),
		Question: "On Passage",
		Result:   models.ResultPassed,
	}

	var mvs []models.MemberVote
	for repID, p := range positions {
		mvs = append(mvs, models.MemberVote{RepresentativeID: repID, VoteID: id, Position: p})
	}

	if err := vs.UpsertVote(context.Background(), vote, mvs); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return vote
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// BoolPtr returns a pointer to b, for request bodies with optional fields.
func BoolPtr(b bool) *bool {
	return &b
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

package ingest

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/repwatch/apperrors"
	"github.com/danielhkuo/repwatch/metrics"
	"github.com/danielhkuo/repwatch/models"
	"github.com/danielhkuo/repwatch/store"
	"github.com/danielhkuo/repwatch/testutil"
)

func sampleVote() models.Vote {
	return models.Vote{
		ID:       "h118-2023-209",
		BillID:   "hr-2",
		Congress: 118,
		Title:    "Secure the Border Act of 2023",
		Chamber:  "House",
		Date:     time.Date(2023, time.May, 11, 18, 30, 0, 0, time.UTC),
		Result:   "Passed",
	}
}

func TestIngestMember(t *testing.T) {
	s := store.NewMemory(clockwork.NewFakeClock())
	in := NewIngester(s)
	ctx := context.Background()

	err := in.IngestMember(ctx, models.Representative{ID: " A000370 ", FirstName: "Alma", LastName: "Adams", Chamber: "HOUSE", State: "nc"})
	require.NoError(t, err)

	rep, err := s.GetRepresentative(ctx, "A000370")
	require.NoError(t, err)
	assert.Equal(t, models.ChamberHouse, rep.Chamber)
	assert.Equal(t, "NC", rep.State)

	tests := []struct {
		name string
		rep  models.Representative
	}{
		{"missing id", models.Representative{FirstName: "A", Chamber: "house"}},
		{"missing name", models.Representative{ID: "X1", Chamber: "house"}},
		{"bad chamber", models.Representative{ID: "X1", LastName: "B", Chamber: "parliament"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperrors.IsValidation(in.IngestMember(ctx, tt.rep)))
		})
	}
}

func TestIngestVote_NormalizesPositions(t *testing.T) {
	s := store.NewMemory(clockwork.NewFakeClock())
	m := metrics.NewIngestMetrics(prometheus.NewRegistry())
	in := NewIngester(s).WithMetrics(m)
	ctx := context.Background()

	err := in.IngestVote(ctx, sampleVote(), []models.PositionRecord{
		{MemberID: "A000370", Position: "Nay"},
		{MemberID: "B001291", Position: "Yea"},
		{MemberID: "C001120", Position: "Not Voting"},
		{MemberID: "D000001", Position: "present"},
	})
	require.NoError(t, err)

	v, err := s.GetVote(ctx, "h118-2023-209")
	require.NoError(t, err)
	assert.Equal(t, models.ChamberHouse, v.Chamber)
	assert.Equal(t, models.ResultPassed, v.Result)

	want := map[string]models.Position{
		"A000370": models.PositionNo,
		"B001291": models.PositionYes,
		"C001120": models.PositionNotVoting,
		"D000001": models.PositionPresent,
	}
	for member, p := range want {
		positions, err := s.GetPositions(ctx, member)
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.Equal(t, p, positions[0].Position, member)
	}

	assert.Equal(t, 1.0, promtest.ToFloat64(m.RecordsTotal.WithLabelValues(metrics.KindVote)))
	assert.Equal(t, 4.0, promtest.ToFloat64(m.RecordsTotal.WithLabelValues(metrics.KindPosition)))
}

func TestIngestVote_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Vote)
		records []models.PositionRecord
	}{
		{"missing id", func(v *models.Vote) { v.ID = "" }, nil},
		{"missing bill", func(v *models.Vote) { v.BillID = " " }, nil},
		{"missing title", func(v *models.Vote) { v.Title = "" }, nil},
		{"missing date", func(v *models.Vote) { v.Date = time.Time{} }, nil},
		{"bad chamber", func(v *models.Vote) { v.Chamber = "joint" }, nil},
		{"unknown position", func(*models.Vote) {}, []models.PositionRecord{{MemberID: "A1", Position: "Abstain"}}},
		{"missing member", func(*models.Vote) {}, []models.PositionRecord{{Position: "Yea"}}},
		{"duplicate member", func(*models.Vote) {}, []models.PositionRecord{
			{MemberID: "A1", Position: "Yea"},
			{MemberID: "A1", Position: "Nay"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemory(clockwork.NewFakeClock())
			in := NewIngester(s)

			v := sampleVote()
			tt.mutate(&v)
			err := in.IngestVote(context.Background(), v, tt.records)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)

			_, err = s.GetVote(context.Background(), "h118-2023-209")
			assert.True(t, apperrors.IsNotFound(err), "nothing is written")
		})
	}
}

func TestIngestVote_ResyncOverwrites(t *testing.T) {
	s := store.NewSQL(testutil.SetupTestDB(t), clockwork.NewFakeClock())
	in := NewIngester(s)
	ctx := context.Background()

	require.NoError(t, in.IngestVote(ctx, sampleVote(), []models.PositionRecord{{MemberID: "A1", Position: "Yea"}}))

	v := sampleVote()
	v.Title = "Secure the Border Act"
	require.NoError(t, in.IngestVote(ctx, v, []models.PositionRecord{{MemberID: "A1", Position: "Nay"}}))

	got, err := s.GetVote(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secure the Border Act", got.Title)

	positions, err := s.GetPositions(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, models.PositionNo, positions[0].Position)
}

func TestLoadExport(t *testing.T) {
	f, err := os.Open("testdata/export.json")
	require.NoError(t, err)
	defer f.Close()

	e, err := LoadExport(f)
	require.NoError(t, err)

	assert.Len(t, e.Members, 4)
	require.Len(t, e.Votes, 3)
	assert.Equal(t, "hr-3746", e.Votes[1].BillID)
	assert.Equal(t, "Aye", e.Votes[1].Positions[0].Position)
	require.NotNil(t, e.Members[2].OfficeStart)
}

func TestLoadExport_Invalid(t *testing.T) {
	_, err := LoadExport(strings.NewReader(`{"members": [], "senators": []}`))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = LoadExport(strings.NewReader(`{"members": [`))
	assert.Error(t, err)
}

func TestIngestExport(t *testing.T) {
	f, err := os.Open("testdata/export.json")
	require.NoError(t, err)
	defer f.Close()
	e, err := LoadExport(f)
	require.NoError(t, err)

	s := store.NewMemory(clockwork.NewFakeClock())
	in := NewIngester(s)
	ctx := context.Background()

	sum, err := in.IngestExport(ctx, e)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Members)
	assert.Equal(t, 2, sum.Votes)
	assert.Equal(t, 4, sum.Positions)
	assert.Equal(t, 2, sum.Rejected)
	assert.Len(t, sum.Errors, 2)

	details, err := s.ListMemberVotes(ctx, "A000370")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "h118-2023-250", details[0].Vote.ID)
	assert.Equal(t, models.PositionYes, details[0].Position)
	assert.Equal(t, models.PositionNo, details[1].Position)

	// A second run converges on the same data.
	again, err := in.IngestExport(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, sum, again)
}

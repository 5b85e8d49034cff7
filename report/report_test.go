package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/models"
)

var now = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func sampleRep() models.Representative {
	return models.Representative{ID: "A000370", FirstName: "Alma", LastName: "Adams", Chamber: models.ChamberHouse, Party: "D", State: "NC", District: "12"}
}

func TestMemberLine(t *testing.T) {
	assert.Equal(t, "Alma Adams (D-NC-12, House)", MemberLine(sampleRep()))

	senator := models.Representative{FirstName: "Bernie", LastName: "Sanders", Chamber: models.ChamberSenate, Party: "I", State: "VT"}
	assert.Equal(t, "Bernie Sanders (I-VT, Senate)", MemberLine(senator))
}

func TestVoteLine(t *testing.T) {
	v := models.Vote{
		BillID: "hr-2", Congress: 118, Title: "Secure the Border Act",
		Date: time.Date(2023, time.May, 11, 0, 0, 0, 0, time.UTC), Result: "passed",
	}
	assert.Equal(t, "118th Congress, hr-2: Secure the Border Act (May 11, 2023, passed)", VoteLine(v))

	v.Congress = 0
	v.Result = ""
	assert.Equal(t, "hr-2: Secure the Border Act (May 11, 2023)", VoteLine(v))
}

func TestAlignment(t *testing.T) {
	r := models.AlignmentResult{
		ComputedAt: now.Add(-3 * time.Minute),
		Overall:    models.Bucket{Total: 1200, Agree: 900, Disagree: 300, Percentage: 75},
		ByImportance: models.ImportanceBreakdown{
			High: models.Bucket{Total: 1200, Agree: 900, Disagree: 300, Percentage: 75},
		},
		ByScale: map[int]models.Bucket{1: {}, 2: {}, 3: {Total: 1200, Agree: 900, Disagree: 300, Percentage: 75}},
		ByIssue: map[models.IssueCategory]models.Bucket{
			models.IssueEconomy:    {Total: 200, Agree: 100, Disagree: 100, Percentage: 50},
			models.IssueHealthcare: {Total: 1000, Agree: 800, Disagree: 200, Percentage: 80},
		},
		OverTime: []models.PeriodBucket{
			{Period: "2023-05", Bucket: models.Bucket{Total: 1200, Agree: 900, Disagree: 300, Percentage: 75}},
		},
		Distribution: models.Distribution{StrongAgreement: 900, StrongDisagreement: 300, Neutral: 4},
		Excluded:     4,
	}

	var buf bytes.Buffer
	require.NoError(t, Alignment(&buf, sampleRep(), r, now))
	out := buf.String()

	assert.Contains(t, out, "Alma Adams (D-NC-12, House)")
	assert.Contains(t, out, "Computed 3 minutes ago")
	assert.Contains(t, out, "Overall: 75% aligned on 1,200 scored votes (900 agree, 300 disagree)")
	assert.Contains(t, out, "Skipped: 4")
	assert.Contains(t, out, "May 2023")
	assert.Contains(t, out, "3/3")
	assert.Contains(t, out, "Strong agreement 900")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Healthcare")), bytes.Index(buf.Bytes(), []byte("Economy")),
		"issues are ordered by vote count")
}

func TestAlignment_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Alignment(&buf, sampleRep(), models.AlignmentResult{Excluded: 1}, now))

	assert.Contains(t, buf.String(), "No scored votes yet")
	assert.Contains(t, buf.String(), "1 rated vote skipped")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, ingest.Summary{
		Members: 1, Votes: 2, Positions: 1500, Rejected: 1,
		Errors: []string{"validation: member id is required"},
	}))

	assert.Equal(t,
		"Ingested 1 member, 2 votes and 1,500 positions; rejected 1\n  - validation: member id is required\n",
		buf.String())
}

package models

import (
	"strings"
	"time"
)

// Chamber constants
const (
	ChamberHouse  = "house"
	ChamberSenate = "senate"
)

// Vote result constants
const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)

// Position is how a representative voted on a roll call.
type Position string

const (
	PositionYes       Position = "Yes"
	PositionNo        Position = "No"
	PositionPresent   Position = "Present"
	PositionNotVoting Position = "Not Voting"
)

// Scored reports whether the position takes part in alignment.
// Present and Not Voting say nothing about the representative's stance.
func (p Position) Scored() bool {
	return p == PositionYes || p == PositionNo
}

// ParsePosition normalizes the spellings used by legislative data sources.
func ParsePosition(s string) (Position, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "yea", "aye", "y":
		return PositionYes, true
	case "no", "nay", "n":
		return PositionNo, true
	case "present":
		return PositionPresent, true
	case "not voting", "not_voting", "notvoting", "nv":
		return PositionNotVoting, true
	}
	return "", false
}

// IsAligned is the one place that decides whether a user's opinion matched
// the recorded vote. agreement=true means the user wanted a Yes.
func IsAligned(position Position, agreement bool) bool {
	return (position == PositionYes && agreement) || (position == PositionNo && !agreement)
}

// Tier is the collapsed importance bucket.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Tiers lists every tier in ascending order.
var Tiers = []Tier{TierLow, TierMedium, TierHigh}

// ImportanceScale is the configured range of raw importance values (1..Max).
type ImportanceScale int

const (
	Scale3 ImportanceScale = 3
	Scale5 ImportanceScale = 5
)

// Valid reports whether the scale is one of the supported ranges.
func (s ImportanceScale) Valid() bool {
	return s == Scale3 || s == Scale5
}

// Max returns the highest raw importance value.
func (s ImportanceScale) Max() int {
	return int(s)
}

// Contains reports whether n is a valid raw importance on this scale.
func (s ImportanceScale) Contains(n int) bool {
	return n >= 1 && n <= s.Max()
}

// Tier collapses a raw importance into low/medium/high.
//
//	scale 3: 1 → low, 2 → medium, 3 → high
//	scale 5: 1-2 → low, 3 → medium, 4-5 → high
//
// Values outside the scale are clamped to the nearest tier; callers validate
// with Contains before storing.
func (s ImportanceScale) Tier(n int) Tier {
	if s == Scale5 {
		switch {
		case n <= 2:
			return TierLow
		case n == 3:
			return TierMedium
		default:
			return TierHigh
		}
	}
	switch {
	case n <= 1:
		return TierLow
	case n == 2:
		return TierMedium
	default:
		return TierHigh
	}
}

// IssueCategory is a coarse topical label derived from bill text.
type IssueCategory string

const (
	IssueHealthcare  IssueCategory = "Healthcare"
	IssueEconomy     IssueCategory = "Economy"
	IssueEnvironment IssueCategory = "Environment"
	IssueDefense     IssueCategory = "Defense"
	IssueImmigration IssueCategory = "Immigration"
	IssueEducation   IssueCategory = "Education"
	IssueOther       IssueCategory = "Other"
)

// Request types

type SetPreferenceRequest struct {
	VoteID     string `json:"vote_id"`
	Agreement  *bool  `json:"agreement"`
	Importance int    `json:"importance"`
}

type IngestMembersRequest struct {
	Members []Representative `json:"members"`
}

type IngestVoteRequest struct {
	Vote      Vote             `json:"vote"`
	Positions []PositionRecord `json:"positions"`
}

// PositionRecord is a raw position as delivered by a data source,
// before spelling normalization.
type PositionRecord struct {
	MemberID string `json:"member_id"`
	Position string `json:"position"`
}

// Response types

type IngestResponse struct {
	Members   int `json:"members"`
	Votes     int `json:"votes"`
	Positions int `json:"positions"`
}

type CategoriesResponse struct {
	Categories []IssueCategory `json:"categories"`
}

type RecentResponse struct {
	Representatives []Representative `json:"representatives"`
}

// VoteRecord is a member vote as shown to a user: the roll call, the
// representative's position, its issue and the user's own rating if any.
type VoteRecord struct {
	Vote
	Position   Position        `json:"position"`
	Category   IssueCategory   `json:"category"`
	Preference *UserPreference `json:"user_preference"`
}

// Domain types

type Representative struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Chamber     string     `json:"chamber"`
	Party       string     `json:"party"`
	State       string     `json:"state"`
	District    string     `json:"district,omitempty"`
	OfficeStart *time.Time `json:"office_start,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// FullName returns "First Last".
func (r Representative) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

type RepresentativeFilter struct {
	State   string
	Chamber string
	Party   string
	Name    string
}

type Vote struct {
	ID          string    `json:"id"`
	BillID      string    `json:"bill_id"`
	Congress    int       `json:"congress,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Chamber     string    `json:"chamber"`
	Date        time.Time `json:"date"`
	Question    string    `json:"question,omitempty"`
	Result      string    `json:"result"`
	URL         string    `json:"url,omitempty"`
}

// VoteMeta is the slice of a vote the alignment engine needs.
type VoteMeta struct {
	Date        time.Time
	Title       string
	Description string
}

type MemberVote struct {
	RepresentativeID string   `json:"representative_id"`
	VoteID           string   `json:"vote_id"`
	Position         Position `json:"position"`
}

type MemberVoteDetail struct {
	Vote     Vote
	Position Position
}

type UserPreference struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	VoteID     string    `json:"vote_id"`
	Agreement  bool      `json:"agreement"`
	Importance int       `json:"importance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Alignment result types

// Bucket is the aggregate shape shared by every breakdown.
type Bucket struct {
	Total      int `json:"total"`
	Agree      int `json:"agree"`
	Disagree   int `json:"disagree"`
	Percentage int `json:"percentage"`
}

type ImportanceBreakdown struct {
	Low    Bucket `json:"low"`
	Medium Bucket `json:"medium"`
	High   Bucket `json:"high"`
}

// Get returns the bucket for a tier.
func (b ImportanceBreakdown) Get(t Tier) Bucket {
	switch t {
	case TierLow:
		return b.Low
	case TierMedium:
		return b.Medium
	default:
		return b.High
	}
}

type PeriodBucket struct {
	Period string `json:"period"` // YYYY-MM
	Bucket
}

type Distribution struct {
	StrongAgreement    int `json:"strong_agreement"`
	Agreement          int `json:"agreement"`
	Neutral            int `json:"neutral"`
	Disagreement       int `json:"disagreement"`
	StrongDisagreement int `json:"strong_disagreement"`
}

type AlignmentResult struct {
	UserID           string                   `json:"user_id"`
	RepresentativeID string                   `json:"representative_id"`
	ComputedAt       time.Time                `json:"computed_at"`
	Overall          Bucket                   `json:"overall"`
	ByImportance     ImportanceBreakdown      `json:"by_importance"`
	ByScale          map[int]Bucket           `json:"by_scale"`
	ByIssue          map[IssueCategory]Bucket `json:"by_issue"`
	OverTime         []PeriodBucket           `json:"over_time"`
	Distribution     Distribution             `json:"distribution"`
	Excluded         int                      `json:"excluded"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

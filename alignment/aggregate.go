// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alignment

import (
	"sort"

	"github.com/danielhkuo/repwatch/models"
)

// PeriodUnknown buckets scored votes whose metadata could not be found.
const PeriodUnknown = "unknown"

const periodLayout = "2006-01"

// Classifier assigns an issue category to a vote's text.
type Classifier interface {
	Classify(title, description string) models.IssueCategory
}

// Percentage is round(100*agree/total) with halves rounded up, and 0 when
// total is 0.
func Percentage(agree, total int) int {
	if total == 0 {
		return 0
	}
	return (200*agree + total) / (2 * total)
}

// tally accumulates counts before percentages are fixed.
type tally struct {
	total, agree int
}

func (t *tally) add(aligned bool) {
	t.total++
	if aligned {
		t.agree++
	}
}

func (t tally) bucket() models.Bucket {
	return models.Bucket{
		Total:      t.total,
		Agree:      t.agree,
		Disagree:   t.total - t.agree,
		Percentage: Percentage(t.agree, t.total),
	}
}

// ScoredVoteIDs returns the ids of votes the user rated and the
// representative voted Yes or No on, sorted.
func ScoredVoteIDs(prefs []models.UserPreference, positions []models.MemberVote) []string {
	byVote := positionIndex(positions)

	var ids []string
	for _, p := range prefs {
		if pos, ok := byVote[p.VoteID]; ok && pos.Scored() {
			ids = append(ids, p.VoteID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Aggregate computes every breakdown over the intersection of prefs and
// positions. It is pure: the same inputs always give the same result, and
// it never fails. Votes missing from meta are classified Other and placed in
// PeriodUnknown so that every breakdown still sums to the overall total.
func Aggregate(
	prefs []models.UserPreference,
	positions []models.MemberVote,
	meta map[string]models.VoteMeta,
	classifier Classifier,
	scale models.ImportanceScale,
) models.AlignmentResult {
	byVote := positionIndex(positions)

	var overall tally
	tiers := make(map[models.Tier]*tally, len(models.Tiers))
	for _, t := range models.Tiers {
		tiers[t] = &tally{}
	}
	raw := make(map[int]*tally, scale.Max())
	for n := 1; n <= scale.Max(); n++ {
		raw[n] = &tally{}
	}
	issues := make(map[models.IssueCategory]*tally)
	periods := make(map[string]*tally)

	var dist models.Distribution
	excluded := 0

	for _, p := range prefs {
		pos, ok := byVote[p.VoteID]
		if !ok {
			continue
		}
		if !pos.Scored() {
			excluded++
			dist.Neutral++
			continue
		}

		aligned := models.IsAligned(pos, p.Agreement)
		tier := scale.Tier(p.Importance)

		overall.add(aligned)
		tiers[tier].add(aligned)
		raw[clamp(p.Importance, scale)].add(aligned)

		category := models.IssueOther
		period := PeriodUnknown
		if m, ok := meta[p.VoteID]; ok {
			category = classifier.Classify(m.Title, m.Description)
			period = m.Date.UTC().Format(periodLayout)
		}
		if issues[category] == nil {
			issues[category] = &tally{}
		}
		issues[category].add(aligned)
		if periods[period] == nil {
			periods[period] = &tally{}
		}
		periods[period].add(aligned)

		switch {
		case aligned && tier == models.TierHigh:
			dist.StrongAgreement++
		case aligned:
			dist.Agreement++
		case tier == models.TierHigh:
			dist.StrongDisagreement++
		default:
			dist.Disagreement++
		}
	}

	result := models.AlignmentResult{
		Overall: overall.bucket(),
		ByImportance: models.ImportanceBreakdown{
			Low:    tiers[models.TierLow].bucket(),
			Medium: tiers[models.TierMedium].bucket(),
			High:   tiers[models.TierHigh].bucket(),
		},
		ByScale:      make(map[int]models.Bucket, len(raw)),
		ByIssue:      make(map[models.IssueCategory]models.Bucket, len(issues)),
		OverTime:     make([]models.PeriodBucket, 0, len(periods)),
		Distribution: dist,
		Excluded:     excluded,
	}
	for n, t := range raw {
		result.ByScale[n] = t.bucket()
	}
	for c, t := range issues {
		result.ByIssue[c] = t.bucket()
	}
	for period, t := range periods {
		result.OverTime = append(result.OverTime, models.PeriodBucket{Period: period, Bucket: t.bucket()})
	}
	sort.Slice(result.OverTime, func(i, j int) bool {
		a, b := result.OverTime[i].Period, result.OverTime[j].Period
		if (a == PeriodUnknown) != (b == PeriodUnknown) {
			return b == PeriodUnknown
		}
		return a < b
	})

	return result
}

func positionIndex(positions []models.MemberVote) map[string]models.Position {
	byVote := make(map[string]models.Position, len(positions))
	for _, mv := range positions {
		byVote[mv.VoteID] = mv.Position
	}
	return byVote
}

// clamp keeps importances recorded under a wider scale inside 1..Max.
func clamp(n int, scale models.ImportanceScale) int {
	return min(max(n, 1), scale.Max())
}

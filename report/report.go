// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/models"
)

// Alignment writes a plain-text report of r for rep. now is used for the
// "computed ... ago" line.
func Alignment(w io.Writer, rep models.Representative, r models.AlignmentResult, now time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", MemberLine(rep))
	if !r.ComputedAt.IsZero() {
		fmt.Fprintf(&b, "Computed %s\n", humanize.RelTime(r.ComputedAt, now, "ago", "from now"))
	}
	b.WriteString("\n")

	if r.Overall.Total == 0 {
		b.WriteString("No scored votes yet: rate bills this member voted Yes or No on.\n")
		if r.Excluded > 0 {
			fmt.Fprintf(&b, "%s rated %s skipped (Present or Not Voting).\n",
				humanize.Comma(int64(r.Excluded)), plural(r.Excluded, "vote", "votes"))
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Overall: %d%% aligned on %s scored %s (%s agree, %s disagree)\n",
		r.Overall.Percentage,
		humanize.Comma(int64(r.Overall.Total)), plural(r.Overall.Total, "vote", "votes"),
		humanize.Comma(int64(r.Overall.Agree)), humanize.Comma(int64(r.Overall.Disagree)))
	if r.Excluded > 0 {
		fmt.Fprintf(&b, "Skipped: %s (Present or Not Voting)\n", humanize.Comma(int64(r.Excluded)))
	}

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "\nBy importance\tvotes\tagree\taligned")
	for _, t := range models.Tiers {
		writeRow(tw, string(t), r.ByImportance.Get(t))
	}

	if len(r.ByScale) > 0 {
		fmt.Fprintln(tw, "\nBy rating\tvotes\tagree\taligned")
		for _, n := range sortedKeys(r.ByScale) {
			writeRow(tw, fmt.Sprintf("%d/%d", n, len(r.ByScale)), r.ByScale[n])
		}
	}

	fmt.Fprintln(tw, "\nBy issue\tvotes\tagree\taligned")
	for _, c := range issuesByTotal(r.ByIssue) {
		writeRow(tw, string(c), r.ByIssue[c])
	}

	fmt.Fprintln(tw, "\nOver time\tvotes\tagree\taligned")
	for _, p := range r.OverTime {
		writeRow(tw, periodLabel(p.Period), p.Bucket)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	d := r.Distribution
	fmt.Fprintf(&b, "\nStrong agreement %d, agreement %d, neutral %d, disagreement %d, strong disagreement %d\n",
		d.StrongAgreement, d.Agreement, d.Neutral, d.Disagreement, d.StrongDisagreement)

	_, err := io.WriteString(w, b.String())
	return err
}

// MemberLine formats a representative as "Alma Adams (D-NC-12, House)".
func MemberLine(rep models.Representative) string {
	seat := rep.State
	if rep.District != "" {
		seat += "-" + rep.District
	}
	if rep.Party != "" {
		seat = rep.Party + "-" + seat
	}
	return fmt.Sprintf("%s (%s, %s)", rep.FullName(), seat, chamberLabel(rep.Chamber))
}

// VoteLine formats a roll call as "118th Congress, hr-2: Title (May 11, 2023, passed)".
func VoteLine(v models.Vote) string {
	var b strings.Builder
	if v.Congress > 0 {
		fmt.Fprintf(&b, "%s Congress, ", humanize.Ordinal(v.Congress))
	}
	fmt.Fprintf(&b, "%s: %s (%s", v.BillID, v.Title, v.Date.Format("Jan 2, 2006"))
	if v.Result != "" {
		fmt.Fprintf(&b, ", %s", v.Result)
	}
	b.WriteString(")")
	return b.String()
}

// Summary writes the outcome of an export run.
func Summary(w io.Writer, s ingest.Summary) error {
	_, err := fmt.Fprintf(w, "Ingested %s %s, %s %s and %s %s; rejected %s\n",
		humanize.Comma(int64(s.Members)), plural(s.Members, "member", "members"),
		humanize.Comma(int64(s.Votes)), plural(s.Votes, "vote", "votes"),
		humanize.Comma(int64(s.Positions)), plural(s.Positions, "position", "positions"),
		humanize.Comma(int64(s.Rejected)))
	if err != nil {
		return err
	}
	for _, e := range s.Errors {
		if _, err := fmt.Fprintf(w, "  - %s\n", e); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, label string, b models.Bucket) {
	aligned := "-"
	if b.Total > 0 {
		aligned = fmt.Sprintf("%d%%", b.Percentage)
	}
	fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", label, humanize.Comma(int64(b.Total)), humanize.Comma(int64(b.Agree)), aligned)
}

func sortedKeys(m map[int]models.Bucket) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// issuesByTotal orders categories by vote count, then name.
func issuesByTotal(m map[models.IssueCategory]models.Bucket) []models.IssueCategory {
	cats := make([]models.IssueCategory, 0, len(m))
	for c := range m {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		a, b := m[cats[i]].Total, m[cats[j]].Total
		if a != b {
			return a > b
		}
		return cats[i] < cats[j]
	})
	return cats
}

func periodLabel(period string) string {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return period
	}
	return t.Format("Jan 2006")
}

func chamberLabel(chamber string) string {
	switch chamber {
	case models.ChamberHouse:
		return "House"
	case models.ChamberSenate:
		return "Senate"
	}
	return chamber
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

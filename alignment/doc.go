// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package alignment scores how closely a representative's recorded votes match
a user's stated opinions.

# Scoring Rule

A vote counts only when the user rated it and the representative voted Yes
or No on it. Present and Not Voting are reported as excluded. For each
counted vote:

	aligned = (Yes && agreement) || (No && !agreement)

This is models.IsAligned and nothing else in the codebase decides agreement.

# Breakdowns

Aggregate returns the same Bucket shape for every lens:

  - Overall
  - ByImportance: low/medium/high tiers from the configured ImportanceScale
  - ByScale: one bucket per raw importance 1..Max
  - ByIssue: the issue classifier over vote title and description
  - OverTime: one bucket per YYYY-MM, ascending, with "unknown" last

Each breakdown partitions the counted votes, so its totals sum to
Overall.Total. Distribution splits the same votes by agreement and by
whether the tier is high:

	strong_agreement     aligned, high
	agreement            aligned, low or medium
	disagreement         not aligned, low or medium
	strong_disagreement  not aligned, high
	neutral              rated, but the representative did not vote Yes/No

Percentages are integers rounded half up, and 0 for an empty bucket.

# Engine

Engine.Compute reads preferences and positions concurrently with errgroup,
then fetches metadata for the counted votes in one batch and delegates to
Aggregate. Every call reads the stores fresh, so a preference written by
preferences.Service.Set is visible to the next Compute.
*/
package alignment

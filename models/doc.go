// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Representative: a member of the House or Senate
  - Vote: one roll call on a bill
  - MemberVote: a representative's position on a roll call
  - UserPreference: a user's agreement and importance rating for a roll call
  - VoteMeta: the date/title/description subset used for aggregation

# Alignment Types

  - Bucket: {total, agree, disagree, percentage}
  - ImportanceBreakdown: low, medium, high buckets
  - PeriodBucket: a Bucket for one YYYY-MM period
  - Distribution: strong agreement .. strong disagreement counts
  - AlignmentResult: every lens over one user/representative pair

# Positions

	PositionYes       = "Yes"
	PositionNo        = "No"
	PositionPresent   = "Present"
	PositionNotVoting = "Not Voting"

Only Yes and No are scored. ParsePosition accepts source spellings such as
"Yea", "Nay" and "Aye".

IsAligned is the single rule for agreement:

	aligned = (Yes && agreement) || (No && !agreement)

# Importance

Importance is stored raw on an ImportanceScale of 3 or 5 and collapsed into
a Tier when aggregating:

	scale 3: 1 → low, 2 → medium, 3 → high
	scale 5: 1-2 → low, 3 → medium, 4-5 → high

# Issue Categories

	Healthcare, Economy, Environment, Defense, Immigration, Education, Other
*/
package models

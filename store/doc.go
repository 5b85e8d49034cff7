// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists representatives, roll calls, member positions and user
preferences.

# Interfaces

VoteStore and PreferenceStore are the only collaborators the alignment engine
and the preference service depend on. Store combines them.

# Implementations

SQL runs on any *sql.DB opened by package db. Queries use $n placeholders,
which both lib/pq and modernc.org/sqlite accept, and every write is an
INSERT ... ON CONFLICT ... DO UPDATE so that repeated syncs and repeated
preference submissions converge on one row per key:

	representative  (id)
	vote            (id), unique (congress, bill_id)
	member_vote     (representative_id, vote_id)
	user_preference (user_id, vote_id)

UpsertVote writes the roll call and its position set in one transaction.

Memory keeps everything in maps behind a sync.RWMutex. Writes to one key are
serialized by the lock, and reads return copies.

# Errors

Missing rows are returned as apperrors NotFound. Driver failures are wrapped
as apperrors Unavailable and keep the cause for logging.
*/
package store

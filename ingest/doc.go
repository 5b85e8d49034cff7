// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest loads legislative data into the VoteStore.

Records arrive either one at a time (IngestMember, IngestVote, used by the
POST /ingest/* handlers) or as an export file:

	{
	  "members": [{"id": "A000370", "first_name": "Alma", "last_name": "Adams",
	               "chamber": "house", "party": "D", "state": "NC"}],
	  "votes": [{"id": "h118-2023-221", "bill_id": "hr-2", "congress": 118,
	             "title": "Secure the Border Act", "chamber": "house",
	             "date": "2023-05-11T00:00:00Z", "result": "passed",
	             "positions": [{"member_id": "A000370", "position": "Nay"}]}]
	}

Position spellings are normalized with models.ParsePosition. A roll call and
its positions are written in one atomic UpsertVote, so re-ingesting the same
export converges on the same rows.
*/
package ingest

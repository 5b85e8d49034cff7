// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open selects the driver from the configured database type:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

  - postgres: github.com/lib/pq
  - sqlite:   modernc.org/sqlite (pure Go), single connection, foreign keys on

The "memory" type has no database; callers use store.NewMemory instead.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on both PostgreSQL and SQLite.

# Tables

  - representative: members of Congress, upserted by id
  - vote: roll calls, unique per (congress, bill_id)
  - member_vote: one position per (representative_id, vote_id)
  - user_preference: one rating per (user_id, vote_id)

# Relationships

	vote 1──* member_vote
	vote 1──* user_preference

member_vote does not reference representative: positions may be synced
before the member record arrives.

# Indexes

  - representative.state
  - vote.vote_date
  - member_vote.vote_id
  - user_preference.user_id
*/
package db

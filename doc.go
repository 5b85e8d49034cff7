// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the repwatch command.

repwatch scores how closely a member of Congress votes the way a user would
have. Users rate roll calls (agree or disagree, plus an importance), and the
alignment engine compares those ratings with the member's recorded Yes/No
positions overall, by importance, by issue and month by month.

# Commands

	repwatch serve                       Run the HTTP API
	repwatch ingest export.json          Load members and roll calls
	repwatch align --user U --rep R      Print an alignment report
	repwatch classify "Title" [desc]     Print a bill's issue category

# Configuration

Settings come from flags, then environment variables, then a .env file:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres, sqlite or memory (default: sqlite)
  - DATABASE_URL (-d): connection string or SQLite file path
  - REDIS_URL: recent-view storage; in-memory when unset
  - TAXONOMY_FILE: YAML issue taxonomy; built-in keywords when unset
  - IMPORTANCE_SCALE: 3 or 5 (default: 3)
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output
  - PREFERENCE_RATE_LIMIT, PREFERENCE_BURST: per-IP limit on rating writes

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, rate limiting, JSON helpers
  - alignment: the alignment engine and aggregation
  - preferences: validated rating writes
  - ingest: member and roll call loading
  - issues: keyword issue classifier
  - store: SQL and in-memory persistence
  - recent: recently viewed representatives
  - report: plain-text reports for the CLI
  - metrics: Prometheus collectors
  - apperrors: error categories and HTTP status mapping
  - models: Request/response and domain types
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

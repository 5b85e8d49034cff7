// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands built on cobra bind the same flags to their own flag set:

	flags := cliparse.BindFlags(cmd.PersistentFlags())
	// after cobra parses
	cfg, err := flags.Resolve()

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL or SQLite connection string
  - DatabaseType: postgres, sqlite or memory (default: sqlite)
  - RedisURL: optional; enables the Redis recent-views tracker
  - TaxonomyFile: optional YAML issue taxonomy
  - ImportanceScale: 3 or 5 (default: 3)
  - LogLevel, LogFormat: slog handler settings (default: info, text)
  - PreferenceRateLimit, PreferenceBurst: per-IP limit on preference writes

# CLI Flags

	-p, --port             Server port
	-d, --database-url     Database URL
	-t, --database-type    Database type
	--redis-url            Redis URL
	--taxonomy             Issue taxonomy file
	--importance-scale     Importance scale
	--log-level            Log level
	--log-format           Log format
	--preference-rate      Preference writes per second
	--preference-burst     Preference write burst

# Environment Variables

Flags fall back to environment variables:

	PORT                   → --port
	DATABASE_URL           → --database-url
	DATABASE_TYPE          → --database-type
	REDIS_URL              → --redis-url
	TAXONOMY_FILE          → --taxonomy
	IMPORTANCE_SCALE       → --importance-scale
	LOG_LEVEL              → --log-level
	LOG_FORMAT             → --log-format
	PREFERENCE_RATE_LIMIT  → --preference-rate
	PREFERENCE_BURST       → --preference-burst

A .env file in the working directory is loaded first; it never overrides
variables already set in the environment. CLI flags take precedence over
both.

# Validation

Resolve returns an error when:

  - DATABASE_URL is missing for postgres or sqlite
  - the database type, log format or importance scale is unknown
  - the port or rate limit is out of range
*/
package cliparse

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the repwatch API.

# Handler Types

Each handler is a struct holding the services it needs:

  - RepresentativeHandler: member directory, voting records, categories
  - PreferenceHandler: a user's agreement/importance ratings
  - AlignmentHandler: alignment scores for a user/representative pair
  - RecentHandler: recently viewed representatives
  - IngestHandler: member and roll call loading

Handlers are created via constructor functions:

	repHandler := handlers.NewRepresentativeHandler(st, st, classifier, tracker, clock)
	alignHandler := handlers.NewAlignmentHandler(engine)

# Users

There is no authentication. The user is a path segment on /users/{user}/...
routes; read endpoints accept an optional X-User-ID header, which adds the
caller's own ratings to voting records and records recent views.

# Voting Records

	GET /representatives/{id}/votes?category=Healthcare&timeframe=90d

Votes are listed newest first. timeframe is one of all (default), 30d, 90d
or year, measured from the handler's clock; year means since January 1.

# Errors

Failures are written by middleware.WriteError, which maps apperrors types
to 400, 404, 409, 503 or 500 with a JSON {error} body.
*/
package handlers

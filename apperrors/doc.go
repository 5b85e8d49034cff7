// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperrors provides the error taxonomy shared by the stores, the
services and the HTTP layer.

# Types

	TypeValidation  → 400  malformed input, write not attempted
	TypeNotFound    → 404  unknown entity
	TypeConflict    → 409  colliding write
	TypeUnavailable → 503  storage read/write failed
	TypeInternal    → 500  anything else

Stores wrap driver errors with Unavailable and map sql.ErrNoRows to
NotFound. The alignment engine never creates errors for missing data; it
only propagates what the stores return.

# Usage

	if !scale.Contains(importance) {
		return apperrors.Validation("importance must be between 1 and %d", scale.Max())
	}

	if apperrors.IsNotFound(err) {
		// ...
	}

As converts any error into an *Error for response writing.
*/
package apperrors

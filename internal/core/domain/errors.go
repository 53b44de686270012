package domain

import "errors"

// ============================================================================
// Release Viewer Errors
// ============================================================================

var (
	// ErrLoadSuperseded is returned when a newer load for the same session
	// started while this one was fetching. The stale result is dropped.
	ErrLoadSuperseded = errors.New("load superseded by a newer request")
)

package domain

import "errors"

// Sentinel errors shared across services and handlers. Handlers map these to
// HTTP statuses; anything else is logged and reported as a generic 500.
var (
	// ErrUnauthenticated covers a missing, invalid or expired session, and
	// bad login credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already in use")

	// ErrUpstream covers completion-provider failures: unreachable endpoint,
	// malformed response, or a mid-stream error.
	ErrUpstream = errors.New("completion provider failed")

	// ErrPersistence covers datastore write failures at any stage.
	ErrPersistence = errors.New("datastore write failed")
)

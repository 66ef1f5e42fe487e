package types

import "errors"

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Domain errors surfaced to API callers.
var (
	// ErrNotFound covers absent datasets and records, and bookmarks that are
	// absent or owned by another user. The two bookmark cases are deliberately
	// indistinguishable so existence is never leaked across users.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a duplicate bookmark for the same (user, record).
	ErrConflict = errors.New("already exists")

	// ErrMissingUser signals a blank or absent caller identity.
	ErrMissingUser = errors.New("user identity is required")
)

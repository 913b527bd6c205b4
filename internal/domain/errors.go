package domain

import "errors"

// Business error taxonomy. The usecase layer translates every storage-level
// failure into one of these before it reaches a caller; handlers map them to
// HTTP status codes.
var (
	// ErrValidation marks malformed input. Wrap it with context via fmt.Errorf.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned when creating a user with an email that is
	// already in use. Emails are a global identity key, not tenant-scoped.
	ErrEmailTaken = errors.New("email already taken")

	// ErrAlreadyCheckedIn is returned when a user with an open entry attempts
	// to check in again.
	ErrAlreadyCheckedIn = errors.New("already checked in")

	// ErrNotCheckedIn is returned when a user without an open entry attempts
	// to check out.
	ErrNotCheckedIn = errors.New("not checked in")

	// ErrNotFound covers both a missing entity and an entity belonging to a
	// different tenant. The two cases are deliberately indistinguishable so
	// cross-tenant existence is never observable.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when an authenticated principal lacks the role
	// required for an in-tenant target.
	ErrForbidden = errors.New("forbidden")

	// ErrOpenEntryExists is the storage-level conflict signal raised when an
	// insert would create a second open entry for a user. The usecase layer
	// maps it to ErrAlreadyCheckedIn.
	ErrOpenEntryExists = errors.New("open time entry already exists")
)

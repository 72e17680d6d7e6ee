// Package apperr defines sentinel errors shared across service, API and
// MCP layers so transport code can map domain failures to status codes.
package apperr

import "errors"

var (
	// ErrNotFound reports that a profile, reminder or document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports that a write would clobber a record owned by
	// another identity, e.g. a rename landing on an occupied profile path.
	ErrConflict = errors.New("conflict")
	// ErrInvalid reports malformed caller input such as an unknown
	// priority or an unparseable date.
	ErrInvalid = errors.New("invalid argument")
)

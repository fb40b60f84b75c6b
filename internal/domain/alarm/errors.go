package alarm

import "errors"

var (
	// ErrInvalidInput is returned when a draft has a non-numeric or
	// out-of-range hour or minute. It is raised before any network call.
	ErrInvalidInput = errors.New("invalid alarm input")
	// ErrNotFound is returned by the catalog when an alarm id is unknown.
	ErrNotFound = errors.New("alarm not found")
	// ErrTransient wraps fetch, decode and timeout failures of collaborator calls.
	ErrTransient = errors.New("transient network failure")
)

package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a practice session id is unknown or already finished.
	ErrSessionNotFound = errors.New("practice session not found")
	// ErrRoleNotFound indicates the requested role id is not registered.
	ErrRoleNotFound = errors.New("role not found")
	// ErrCandidateNotFound indicates the candidate has no stored profile.
	ErrCandidateNotFound = errors.New("candidate not found")
)

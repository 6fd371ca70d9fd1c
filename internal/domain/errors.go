package domain

import "errors"

// Sentinel errors surfaced by the pipeline
var (
	// ErrSessionExpired means a selection referenced a missing session
	ErrSessionExpired = errors.New("session expired")

	// ErrNoFileProduced means the engine reported success but no media
	// file was found in the workspace
	ErrNoFileProduced = errors.New("no file produced")
)

// ValidationError rejects a URL before any state is mutated
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// FailureKind is the advisory classification of an engine failure,
// used for user messaging only
type FailureKind string

const (
	FailurePrivate       FailureKind = "private"
	FailureMembersOnly   FailureKind = "members_only"
	FailureAgeRestricted FailureKind = "age_restricted"
	FailureGeneric       FailureKind = "generic"
)

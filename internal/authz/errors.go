package authz

import (
	"errors"
	"fmt"
	"time"

	"github.com/horao-cloud/horao/internal/rbac"
)

// ErrDenied is the sentinel every authorization denial matches.
var ErrDenied = errors.New("authorization denied")

// Failure records the context of a blocked operation at the moment the check
// fails. It is consumed by the caller for audit logging and response mapping
// and is never retried.
type Failure struct {
	// ID uniquely identifies the denial for audit correlation.
	ID string

	// Actor is the identity the check was evaluated for; nil when no
	// session was attached to the context.
	Actor rbac.Actor

	// Namespace is the isolation domain the operation targeted.
	Namespace rbac.Namespace

	// Level is the permission level the operation required.
	Level rbac.Level

	// Operation names the guarded operation.
	Operation string

	// Args is a snapshot of the original call arguments.
	Args any

	// Time is when the check failed.
	Time time.Time
}

// ActorName returns the actor's display name, or "anonymous" when the check
// failed without an authenticated actor.
func (f *Failure) ActorName() string {
	if f.Actor == nil {
		return "anonymous"
	}
	return f.Actor.DisplayName()
}

// DeniedError is the catchable condition a blocked operation fails with. The
// message is minimal; the Failure record carries the detail.
type DeniedError struct {
	Failure Failure
}

// Error returns a minimal message identifying the blocked operation.
func (e *DeniedError) Error() string {
	return fmt.Sprintf("unauthorized access to %s", e.Failure.Operation)
}

// Unwrap matches DeniedError against ErrDenied.
func (e *DeniedError) Unwrap() error {
	return ErrDenied
}

// IsDenied checks whether err is an authorization denial.
func IsDenied(err error) bool {
	return errors.Is(err, ErrDenied)
}

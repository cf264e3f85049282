package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for authentication. ErrNoCredentials is a pass-through
// signal, not a failure: it tells the backend chain to try the next
// mechanism. Every other sentinel is terminal for the request.
var (
	// ErrNoCredentials indicates that no recognized credential was presented.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrCredentialMalformed indicates a credential that could not be decoded.
	ErrCredentialMalformed = errors.New("malformed credentials")

	// ErrInvalidCredentials indicates credentials that failed verification.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrOriginRejected indicates a strict-mode origin allow-list mismatch.
	ErrOriginRejected = errors.New("origin not allowed")

	// ErrTokenInvalid indicates a token that failed structural or
	// cryptographic verification, including expiry and algorithm checks.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrAuthenticationFailed is the umbrella all terminal failures match.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// AuthError is a terminal authentication failure. The client-visible message
// never distinguishes why verification failed; Reason and Cause carry the
// detail for the internal audit log only.
type AuthError struct {
	// Backend names the backend that rejected the request.
	Backend string

	// Origin is the observed network origin of the request.
	Origin string

	// Reason describes the failure for audit logging.
	Reason string

	// Cause is the underlying sentinel or library error.
	Cause error
}

// Error returns a minimal, non-enumerable message.
func (e *AuthError) Error() string {
	if e.Origin != "" {
		return fmt.Sprintf("access not allowed for %s", e.Origin)
	}
	return "access not allowed"
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// Is matches any AuthError against ErrAuthenticationFailed.
func (e *AuthError) Is(target error) bool {
	return errors.Is(target, ErrAuthenticationFailed)
}

// NewAuthError creates a terminal authentication failure.
func NewAuthError(backend, origin, reason string, cause error) *AuthError {
	return &AuthError{
		Backend: backend,
		Origin:  origin,
		Reason:  reason,
		Cause:   cause,
	}
}

// IsAuthError checks whether err is a terminal authentication failure.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

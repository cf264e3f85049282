package auth

import (
	"strings"
)

// Authentication scheme tags recognized in Authorization headers.
const (
	// SchemeBasic is the development basic-credential scheme.
	SchemeBasic = "basic"

	// SchemeBearer is the signed-token scheme used for peer trust.
	SchemeBearer = "bearer"
)

// ParseAuthorization splits an Authorization header into its scheme tag and
// credential value. An empty header yields ErrNoCredentials; a header that is
// present but not of the form "<scheme> <value>" yields ErrCredentialMalformed.
// Scheme matching is the caller's concern: a backend that does not recognize
// the scheme must decline, not reject.
func ParseAuthorization(header string) (scheme, value string, err error) {
	if header == "" {
		return "", "", ErrNoCredentials
	}

	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", "", ErrCredentialMalformed
	}

	return strings.ToLower(parts[0]), parts[1], nil
}

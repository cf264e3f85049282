package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/horao-cloud/horao/internal/rbac"
)

// LocalUser is an identity authenticated against the local credential store.
// Group memberships are resolved into permission bundles by a GroupResolver;
// the mapping itself is configuration, not something this package defines.
type LocalUser struct {
	// Name is the username the actor authenticated as.
	Name string

	// Groups are the group memberships recorded for the user.
	Groups []string
}

// DisplayName returns the username.
func (u *LocalUser) DisplayName() string {
	return u.Name
}

// Authenticated reports that the user has been authenticated.
func (u *LocalUser) Authenticated() bool {
	return true
}

// HasGroup reports whether the user belongs to the given group.
func (u *LocalUser) HasGroup(group string) bool {
	for _, g := range u.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// Peer is a remote node identity established by signed-token verification.
// VerifiedOrigin is always the transport-observed connection origin, never a
// value the remote party supplied; ClaimedID comes from the verified token.
type Peer struct {
	// ClaimedID is the peer identifier claim from the verified token.
	ClaimedID string

	// VerifiedOrigin is the observed network origin of the connection.
	VerifiedOrigin string

	// TokenClaims holds the non-registered claims of the verified token.
	TokenClaims map[string]interface{}
}

// DisplayName returns "origin -> claimed id" for audit logging.
func (p *Peer) DisplayName() string {
	return fmt.Sprintf("%s -> %s", p.VerifiedOrigin, p.ClaimedID)
}

// Authenticated reports that the peer has been authenticated.
func (p *Peer) Authenticated() bool {
	return true
}

// CleanOrigin reports whether the claimed identity matches the observed
// origin. This is a self-consistency signal for audit, not a trust decision.
func (p *Peer) CleanOrigin() bool {
	return p.ClaimedID == p.VerifiedOrigin
}

// Compile-time actor checks.
var (
	_ rbac.Actor = (*LocalUser)(nil)
	_ rbac.Actor = (*Peer)(nil)
)

// Context key type for sessions.
type sessionContextKey struct{}

// ContextWithSession attaches a session to the context.
func ContextWithSession(ctx context.Context, session *rbac.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext extracts the session from the context.
func SessionFromContext(ctx context.Context) (*rbac.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*rbac.Session)
	return session, ok
}

// ErrSessionNotFound is returned when no session is attached to a context.
var ErrSessionNotFound = errors.New("session not found in context")

// SessionFromContextOrError extracts the session from the context or returns
// ErrSessionNotFound.
func SessionFromContextOrError(ctx context.Context) (*rbac.Session, error) {
	session, ok := SessionFromContext(ctx)
	if !ok || session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

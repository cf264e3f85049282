// Package auth provides authentication for the trust core.
//
// Authentication is organized as a chain of backends. Each backend inspects
// the Authorization header of an inbound request and either produces a
// session for an authenticated actor, declines with ErrNoCredentials so the
// next backend can try, or fails terminally with an authentication error.
//
// Two identity variants exist: LocalUser, authenticated by the development
// basic-credential backend in this package, and Peer, produced by the
// signed-token verifier in the peer subpackage.
//
// All backends are stateless; every request is authenticated independently
// and the resulting session is owned by that request alone.
package auth

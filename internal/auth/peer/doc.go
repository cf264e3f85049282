// Package peer implements signed-token trust verification for remote nodes
// that synchronize cluster state.
//
// A peer presents a Bearer token signed with a shared secret. Verification
// first matches the transport-observed origin against a configured allow-list
// of origin substrings, then verifies the token's signature and expiry with a
// single fixed algorithm (HS256, no negotiation). The verified peer identity
// carries the observed origin, never the token's self-reported value.
//
// When the shared secret or the allow-list is absent from configuration the
// verifier declines every request instead of failing open or closed: absent
// configuration means peer authentication is disabled, and another backend
// may still handle the request.
package peer

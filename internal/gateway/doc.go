// Package gateway is the thin HTTP layer that consumes the trust core. Per
// request it runs the authentication backend chain, attaches the resulting
// session to the request context, and lets route-level gates decide whether
// handler logic runs. Handlers themselves are stubs; the business operations
// they stand in for are outside this repository's scope.
package gateway

// Package rbac implements the permission model for the trust core.
//
// The model is deliberately small: a closed set of namespaces (isolation
// domains), an ordered permission level where Write implies Read, named
// immutable bundles mapping namespaces to levels, and a per-request session
// that aggregates the bundles of one authenticated actor.
//
// A session query is satisfied when any of its bundles grants the required
// level for the target namespace. Absence of a grant is always denial; no
// namespace or bundle ever grants access implicitly.
//
// Bundles and the predefined role bundles are constructed once and shared
// read-only across sessions. Sessions are created per request, owned by the
// request-handling context, and discarded when the request completes.
package rbac

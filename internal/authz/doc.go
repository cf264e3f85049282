// Package authz implements the authorization gate: an explicit wrapping
// combinator that guards an operation with a required namespace and
// permission level.
//
// The gate consults the session attached to the request context strictly
// before the wrapped operation runs. A permitted call is a transparent
// pass-through; a blocked call never invokes the operation and fails with a
// *DeniedError carrying the full failure record for audit. Gates compose by
// nesting, each enforcing and denying independently.
//
// For route-level enforcement a gin middleware adapter is provided; both
// forms make the enforcement point visible at the call site.
package authz

// Package records implements the local record store of visadesk: a user
// registry, an application registry and per-user namespaced blobs layered on
// top of a kv.Store.
//
// # Consistency
//
// Applications live in one canonical collection. Each user carries an
// embedded summary of their applications and the logged-in user is mirrored
// into a session snapshot. Both copies are derived: every mutating call
// rebuilds them from the canonical collection and writes all touched keys in
// a single kv.Store.Atomic call, so a failed write leaves every key as it was.
//
// # Errors
//
// Methods return (value, error). Expected failures are *common.Error values
// (validation, duplicate email, not found, invalid credentials). Substrate
// failures are logged and returned as common.Storage errors carrying a
// generic message. common.ResultOf turns either into a Result for the UI.
package records

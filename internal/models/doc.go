// Package models defines the records persisted by the visadesk store: users
// with their embedded application summaries, applications, the session
// snapshot and the per-user namespaced blobs.
package models

// Package scoped keeps a secondary, per-identity key/value store bound to the
// active session identity.
//
// # Overview
//
// Binder owns at most one open Store at a time. Rebind requests are
// asynchronous and coalesced: a worker goroutine applies only the most recent
// target, closing the previous scope's Store before opening the new one.
// Requests for the scope that is already open are no-ops.
//
// Failures never reach the caller of Rebind. They are handed to the injected
// Reporter (LogReporter by default) so the session flow is never blocked on
// the secondary store. Callers that need correctly scoped reads call Wait
// first.
//
// # Backends
//
// SQLiteOpener stores each scope in its own SQLite file under a data
// directory. File names are derived from a BLAKE2b digest of the scope key, so
// e-mail addresses never appear on disk as file names.
package scoped

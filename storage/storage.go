// Package storage defines the durable key-value port the session persists
// through, together with a file-backed implementation for real use and an
// in-memory implementation for tests and embedders.
package storage

// Store is the persistence port for session state. Implementations are a
// best-effort cache: a missing or unreadable entry reads as absent, never as
// an error, so callers can treat any failure as "no prior session".
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

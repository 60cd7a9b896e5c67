// Package storage defines the persistence contract for acronym entries.
package storage

import "context"

// SampleLimit bounds ListKeys and Search result sizes.
const SampleLimit = 10

// Status classifies the outcome of a repository operation.
type Status int

const (
	// StatusOK indicates the operation took effect (or was an idempotent no-op).
	StatusOK Status = iota
	// StatusNoKey indicates the requested key has no stored pairs, or a
	// search matched nothing.
	StatusNoKey
	// StatusNoValues indicates the caller supplied no values, or asked to
	// remove values that are not all present.
	StatusNoValues
)

// String returns the status name for logs and replies.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNoKey:
		return "NO_KEY"
	case StatusNoValues:
		return "NO_VALUES"
	default:
		return "UNKNOWN"
	}
}

// Result is the tagged outcome of one repository call. Values carries the
// payload for read operations and is empty for writes.
type Result struct {
	Status Status
	Values []string
}

// Repository persists key to value-set associations and a synchronized
// full-text index over them.
//
// Validation outcomes (missing key, empty or not-fully-present values) are
// reported through Result.Status. The error return is reserved for
// infrastructure failures: an unreachable store, a failed transaction, or a
// cancelled context. Callers decide whether to retry those.
//
// Add and Remove are each atomic, but nothing serializes two concurrent
// writers of the same key against each other at the application level. A
// Remove that read its subset check before a concurrent Add committed can
// still delete around that Add. Last committed write wins per key; this is
// accepted weak consistency for the chat use case, not something the
// repository papers over with global locks.
type Repository interface {
	// Get returns the full value set stored under key.
	Get(ctx context.Context, key string) (Result, error)
	// ListKeys returns a random sample of at most SampleLimit distinct keys.
	ListKeys(ctx context.Context) (Result, error)
	// Search returns at most SampleLimit distinct keys whose key or values
	// fuzzily match term, best match first, case-insensitively.
	Search(ctx context.Context, term string) (Result, error)
	// Add stores the values not already present for key in one transaction.
	Add(ctx context.Context, key string, values []string) (Result, error)
	// Remove deletes the given values for key, all or nothing.
	Remove(ctx context.Context, key string, values []string) (Result, error)
	// Delete removes every value stored under key.
	Delete(ctx context.Context, key string) (Result, error)
}

// Package store implements the storage gateway: one backend-agnostic CRUD
// surface over two interchangeable backends, an embedded on-disk engine
// (Badger) and a networked engine (SurrealDB). Call sites never learn which
// backend is behind the handle; the choice is made once, from configuration,
// at gateway initialization.
package store

import (
	"context"

	"github.com/ideaboard/ideaboard-server/internal/record"
)

// Row is one stored record: its composite reference plus the JSON document
// body. The body never contains the identity; the two travel together so
// the codec can join them.
type Row struct {
	Ref record.Ref
	Doc []byte
}

// Store is the backend-agnostic CRUD contract.
//
// Create assigns the record identity. List returns all records of a table
// in backend-native order; no ordering guarantee is made across backends.
// Update is a full-content replace by identity. Delete reports not-found
// for unknown identities instead of silently succeeding.
//
// Failure kinds: storage-unavailable when the backend cannot be reached,
// storage-rejected when the backend reports a write error, not-found where
// documented. All errors carry domain codes from internal/errors.
type Store interface {
	Create(ctx context.Context, table string, doc []byte) (Row, error)
	List(ctx context.Context, table string) ([]Row, error)
	Get(ctx context.Context, ref record.Ref) (Row, error)
	Update(ctx context.Context, ref record.Ref, doc []byte) (Row, error)
	Delete(ctx context.Context, ref record.Ref) error
	Close() error
}

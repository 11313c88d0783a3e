package project

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists under the requested name.
var ErrNotFound = errors.New("project not found")

// Storage is the durable key-value engine the persistence layer is built
// on. Records are serialized project snapshots keyed by project name;
// projects are independent keys, so no cross-project locking is needed.
//
// Implementations: SQLiteStorage for the real editor, MemoryStorage for
// tests.
type Storage interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	ListKeys(ctx context.Context) ([]string, error)
}

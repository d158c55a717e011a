package ports

import (
	"context"
	"errors"

	"github.com/aretw0/espalier/pkg/matcher"
)

// ErrRecordNotFound indicates that a store holds no record under the requested name.
var ErrRecordNotFound = errors.New("record not found")

// RecordStore defines the interface for persisting automaton records.
// This allows a matcher to be built once and reused across processes, enabling
// "Build & Reuse" workflows.
type RecordStore interface {
	// Save persists the record under the given name, replacing any previous one.
	Save(ctx context.Context, name string, rec *matcher.Record) error

	// Load retrieves the record stored under the given name.
	// Returns ErrRecordNotFound if no such record exists.
	Load(ctx context.Context, name string) (*matcher.Record, error)

	// Delete removes the record stored under the given name.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored records.
	List(ctx context.Context) ([]string, error)
}

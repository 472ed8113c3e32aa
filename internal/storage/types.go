// Package storage defines the physical, per-collection store interface the
// fan-out and gateway layers are built on.
package storage

import (
	"context"

	"pcbxpress/pkg/model"
)

// Query is the single-collection form of a logical filter: one service
// value, the caller's conditions, and the storage-level sort and fetch bound
// applied before the in-memory merge.
type Query struct {
	// Service restricts the query to documents carrying this service value.
	// Empty means no service restriction.
	Service string

	Conds []model.Condition
	Sort  model.SortSpec

	// Limit bounds how many documents the collection returns. Zero means
	// unbounded.
	Limit int64
}

// CollectionStore is a uniform CRUD surface over named collections. All
// operations are potentially blocking I/O and honor context cancellation.
// Lookups that find nothing return model.ErrNotFound; inserts that lose the
// quote-id race return model.ErrDuplicateQuoteID; any other failure comes
// back wrapped in a model.StorageError.
type CollectionStore interface {
	// Insert persists a new quote, assigning a storage id when absent.
	Insert(ctx context.Context, collection string, q *model.Quote) error

	// Find returns the documents matching the query, sorted and bounded at
	// the storage level.
	Find(ctx context.Context, collection string, query Query) ([]*model.Quote, error)

	// Count returns how many documents match the query.
	Count(ctx context.Context, collection string, query Query) (int64, error)

	// FindByID returns the document with the given storage id.
	FindByID(ctx context.Context, collection string, id string) (*model.Quote, error)

	// UpdateByID applies a partial update to the document with the given id
	// and returns the pre- or post-update document per returnNew.
	UpdateByID(ctx context.Context, collection string, id string, patch map[string]interface{}, returnNew bool) (*model.Quote, error)

	// DeleteByID removes the document with the given id and returns it.
	DeleteByID(ctx context.Context, collection string, id string) (*model.Quote, error)

	// DeleteMany removes every document matching the query and returns the
	// number removed.
	DeleteMany(ctx context.Context, collection string, query Query) (int64, error)

	// EnsureIndexes creates the indexes the core relies on (unique quote_id,
	// created_at) in each listed collection.
	EnsureIndexes(ctx context.Context, collections []string) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

package record

import (
	"context"
)

// Repository is the durable record collection the engine queries.
type Repository interface {
	// Find returns records matching q, ordered by q.Sort and windowed by q.Offset/q.Limit.
	Find(ctx context.Context, q Query) ([]Record, error)
	// Count returns the number of records matching q; order and window are ignored.
	Count(ctx context.Context, q Query) (int, error)

	// Get loads a record by id regardless of owner. Returns ErrNotFound when absent.
	Get(ctx context.Context, id int64) (*Record, error)
	// Create stores rec and fills ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, rec *Record) error
	// CreateBatch stores all records or none.
	CreateBatch(ctx context.Context, recs []*Record) error
	// Update overwrites content, date and tags and refreshes UpdatedAt.
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int64) error
	// DeleteByOwner removes every record of owner and returns how many were removed.
	DeleteByOwner(ctx context.Context, owner string) (int64, error)
}

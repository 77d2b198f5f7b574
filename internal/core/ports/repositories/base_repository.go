package repositories

import (
	"context"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
)

// EntityReader defines read operations shared by every entity repository.
type EntityReader[T any] interface {
	// FindAll returns one page of entities, sorted and paginated per opts, and
	// the size of the whole collection. The page read and the count are
	// separate operations with no consistency guarantee between them.
	FindAll(ctx context.Context, opts *domain.QueryOptions) (domain.PagedResult[T], error)
}

// EntityWriter defines write operations shared by every entity repository.
type EntityWriter[T any] interface {
	// InsertOne persists entity and returns it as stored, including the
	// generated identifier and timestamps.
	InsertOne(ctx context.Context, entity T) (T, error)
}

// Repository combines the generic entity read and write operations.
type Repository[T any] interface {
	EntityReader[T]
	EntityWriter[T]
}

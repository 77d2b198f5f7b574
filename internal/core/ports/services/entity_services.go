package services

import (
	"context"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
)

// EntityBuilder turns caller input D into a complete entity T ready for
// storage. Base fields are left for the repository to assign.
type EntityBuilder[T any, D any] interface {
	CreateEntityFromDTO(ctx context.Context, dto D) (T, error)
}

// EntityReaderSvc defines read operations shared by every entity service.
type EntityReaderSvc[T any] interface {
	// FindAll returns a page of entities and the collection total.
	FindAll(ctx context.Context, opts *domain.QueryOptions) (domain.PagedResult[T], error)
}

// EntityWriterSvc defines write operations shared by every entity service.
type EntityWriterSvc[T any, D any] interface {
	// InsertOne builds an entity from dto and persists it.
	InsertOne(ctx context.Context, dto D) (T, error)
}

// EntitySvcFacade combines the generic entity service operations.
type EntitySvcFacade[T any, D any] interface {
	EntityReaderSvc[T]
	EntityWriterSvc[T, D]
}

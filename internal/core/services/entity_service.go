package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_application_app/internal/core/ports/services"
)

// entityService implements EntitySvcFacade for any record type by combining a
// repository with a builder that turns caller input into a record.
type entityService[T any, D any] struct {
	BaseService
	repo    portsrepo.Repository[T]
	builder portssvc.EntityBuilder[T, D]
}

// NewEntityService creates the generic entity service.
func NewEntityService[T any, D any](repo portsrepo.Repository[T], builder portssvc.EntityBuilder[T, D]) portssvc.EntitySvcFacade[T, D] {
	return &entityService[T, D]{repo: repo, builder: builder}
}

// InsertOne builds a record from dto and stores it.
// TODO: validate dto here once a caller other than the HTTP layer exists; binding tags cover it today.
func (s *entityService[T, D]) InsertOne(ctx context.Context, dto D) (T, error) {
	var zero T

	entity, err := s.builder.CreateEntityFromDTO(ctx, dto)
	if err != nil {
		s.LogError(ctx, err, "Failed to build entity")
		return zero, fmt.Errorf("failed to build entity: %w", err)
	}

	stored, err := s.repo.InsertOne(ctx, entity)
	if err != nil {
		s.LogError(ctx, err, "Failed to store entity")
		return zero, fmt.Errorf("failed to store entity: %w", err)
	}

	return stored, nil
}

// FindAll delegates to the repository.
func (s *entityService[T, D]) FindAll(ctx context.Context, opts *domain.QueryOptions) (domain.PagedResult[T], error) {
	page, err := s.repo.FindAll(ctx, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entities")
		return domain.PagedResult[T]{}, fmt.Errorf("failed to list entities: %w", err)
	}
	s.LogDebug(ctx, "Listed entities", slog.Int("count", len(page.Items)), slog.Int64("total", page.Total))
	return page, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mwarner/tagboard/internal/domain"
	"github.com/mwarner/tagboard/internal/idgen"
	"github.com/mwarner/tagboard/internal/repo"
)

// TagService implements business logic for tag CRUD.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// List returns the team's tags in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TagService) List(ctx context.Context, teamID uuid.UUID) ([]domain.Tag, error) {
	tags, err := s.tags.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

// Create validates and persists a new tag.
// Returns domain.ErrValidation when name or color is empty after
// sanitization, domain.ErrConflict when the team already has a tag with
// that name.
func (s *TagService) Create(ctx context.Context, teamID uuid.UUID, name, color string) (domain.Tag, error) {
	name = domain.Sanitize(name, domain.MaxTagNameLen)
	color = domain.Sanitize(color, domain.MaxColorLen)

	if name == "" {
		return domain.Tag{}, fmt.Errorf("%w: tag name is required", domain.ErrValidation)
	}
	if color == "" {
		return domain.Tag{}, fmt.Errorf("%w: color is required", domain.ErrValidation)
	}

	created, err := s.tags.Create(ctx, domain.Tag{
		ID:     idgen.NewID(),
		TeamID: teamID,
		Name:   name,
		Color:  color,
	})
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", err)
	}
	return created, nil
}

// Update applies a partial update: each field is changed only when it is
// non-empty after sanitization, otherwise it is left as-is.
// Updating a tag that does not exist succeeds and reports found=false;
// this silent success is intentional and callers depend on it.
func (s *TagService) Update(ctx context.Context, tagID uuid.UUID, name, color string) (domain.Tag, bool, error) {
	var namePtr, colorPtr *string
	if v := domain.Sanitize(name, domain.MaxTagNameLen); v != "" {
		namePtr = &v
	}
	if v := domain.Sanitize(color, domain.MaxColorLen); v != "" {
		colorPtr = &v
	}

	tag, found, err := s.tags.Update(ctx, tagID, namePtr, colorPtr)
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("service.TagService.Update: %w", err)
	}
	return tag, found, nil
}

// Delete removes a tag and its card-tag links. Idempotent.
func (s *TagService) Delete(ctx context.Context, tagID uuid.UUID) error {
	if err := s.tags.Delete(ctx, tagID); err != nil {
		return fmt.Errorf("service.TagService.Delete: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mwarner/tagboard/internal/domain"
	"github.com/mwarner/tagboard/internal/idgen"
	"github.com/mwarner/tagboard/internal/repo"
)

// CardTagService implements business logic for card-tag links.
// It holds the tag repo as well because attaching requires verifying the
// tag belongs to the stated team — cross-team tag injection is rejected.
type CardTagService struct {
	cardTags repo.CardTagRepo
	tags     repo.TagRepo
}

// NewCardTagService constructs a CardTagService backed by the provided repos.
func NewCardTagService(cardTags repo.CardTagRepo, tags repo.TagRepo) *CardTagService {
	return &CardTagService{cardTags: cardTags, tags: tags}
}

// List returns the team's card-tag links grouped by card ID. Each card's
// tags keep the repo's creation-time order. Cards with no tags are simply
// absent from the map.
func (s *CardTagService) List(ctx context.Context, teamID uuid.UUID) (map[string][]domain.CardTagView, error) {
	views, err := s.cardTags.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("service.CardTagService.List: %w", err)
	}

	grouped := map[string][]domain.CardTagView{}
	for _, v := range views {
		grouped[v.CardID] = append(grouped[v.CardID], v)
	}
	return grouped, nil
}

// Attach links a tag to a card. Attaching an already-attached tag is a
// successful no-op.
// Returns domain.ErrValidation when cardID is empty or when the tag does
// not belong to teamID.
func (s *CardTagService) Attach(ctx context.Context, teamID uuid.UUID, cardID string, tagID uuid.UUID) error {
	cardID = domain.Sanitize(cardID, domain.MaxCardIDLen)
	if cardID == "" {
		return fmt.Errorf("%w: cardId is required", domain.ErrValidation)
	}

	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: tag does not belong to this team", domain.ErrValidation)
		}
		return fmt.Errorf("service.CardTagService.Attach: %w", err)
	}
	if tag.TeamID != teamID {
		return fmt.Errorf("%w: tag does not belong to this team", domain.ErrValidation)
	}

	err = s.cardTags.Attach(ctx, domain.CardTag{
		ID:     idgen.NewID(),
		TeamID: teamID,
		CardID: cardID,
		TagID:  tagID,
	})
	if err != nil {
		return fmt.Errorf("service.CardTagService.Attach: %w", err)
	}
	return nil
}

// Detach unlinks a tag from a card. The cardID arrives percent-decoded
// from the transport layer. Detaching a nonexistent link succeeds.
func (s *CardTagService) Detach(ctx context.Context, teamID uuid.UUID, cardID string, tagID uuid.UUID) error {
	cardID = domain.Sanitize(cardID, domain.MaxCardIDLen)
	if cardID == "" {
		return fmt.Errorf("%w: cardId is required", domain.ErrValidation)
	}

	if err := s.cardTags.Detach(ctx, teamID, cardID, tagID); err != nil {
		return fmt.Errorf("service.CardTagService.Detach: %w", err)
	}
	return nil
}

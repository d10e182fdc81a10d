package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mwarner/tagboard/internal/domain"
)

// CardTagRepo defines the persistence operations for card-tag links.
type CardTagRepo interface {
	// ListByTeam returns the team's card-tag links joined with tag display
	// fields, ordered by card then by tag creation time.
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.CardTagView, error)

	// Attach inserts a card-tag link. Idempotent — attaching an
	// already-attached tag is a no-op via the uniqueness triple.
	Attach(ctx context.Context, ct domain.CardTag) error

	// Detach removes a card-tag link. Idempotent — detaching a
	// nonexistent link succeeds.
	Detach(ctx context.Context, teamID uuid.UUID, cardID string, tagID uuid.UUID) error
}

// pgCardTagRepo is the Postgres implementation of CardTagRepo.
type pgCardTagRepo struct {
	db db
}

// NewCardTagRepo constructs a CardTagRepo backed by the provided db connection.
func NewCardTagRepo(db db) CardTagRepo {
	return &pgCardTagRepo{db: db}
}

// ListByTeam returns joined card-tag rows grouped naturally by card_id.
func (r *pgCardTagRepo) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.CardTagView, error) {
	const q = `
		SELECT ct.card_id, t.id, t.name, t.color
		FROM card_tags ct
		JOIN tags t ON t.id = ct.tag_id
		WHERE ct.team_id = @team_id
		ORDER BY ct.card_id, t.created_at, t.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"team_id": teamID})
	if err != nil {
		return nil, fmt.Errorf("repo.CardTagRepo.ListByTeam: %w", err)
	}
	defer rows.Close()

	views := []domain.CardTagView{}
	for rows.Next() {
		var (
			v     domain.CardTagView
			tagID pgtype.UUID
		)
		if err := rows.Scan(&v.CardID, &tagID, &v.TagName, &v.TagColor); err != nil {
			return nil, fmt.Errorf("repo.CardTagRepo.ListByTeam: scan: %w", err)
		}
		v.TagID = uuid.UUID(tagID.Bytes)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CardTagRepo.ListByTeam: rows: %w", err)
	}
	return views, nil
}

// Attach inserts a link, ignoring the duplicate triple.
func (r *pgCardTagRepo) Attach(ctx context.Context, ct domain.CardTag) error {
	const q = `
		INSERT INTO card_tags (id, team_id, card_id, tag_id)
		VALUES (@id, @team_id, @card_id, @tag_id)
		ON CONFLICT (team_id, card_id, tag_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":      ct.ID,
		"team_id": ct.TeamID,
		"card_id": ct.CardID,
		"tag_id":  ct.TagID,
	})
	if err != nil {
		return fmt.Errorf("repo.CardTagRepo.Attach: %w", err)
	}
	return nil
}

// Detach removes a link. Zero rows affected is success.
func (r *pgCardTagRepo) Detach(ctx context.Context, teamID uuid.UUID, cardID string, tagID uuid.UUID) error {
	const q = `
		DELETE FROM card_tags
		WHERE team_id = @team_id AND card_id = @card_id AND tag_id = @tag_id`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"team_id": teamID,
		"card_id": cardID,
		"tag_id":  tagID,
	})
	if err != nil {
		return fmt.Errorf("repo.CardTagRepo.Detach: %w", err)
	}
	return nil
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mwarner/tagboard/internal/domain"
)

// TagRepo defines the persistence operations for tags.
type TagRepo interface {
	// ListByTeam returns a team's tags in creation order.
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Tag, error)

	// Create inserts a tag. Returns domain.ErrConflict if the team already
	// has a tag with the same name — the duplicate pre-check and the insert
	// run in one transaction, with the (team_id, name) unique constraint as
	// the final arbiter under concurrency.
	Create(ctx context.Context, tag domain.Tag) (domain.Tag, error)

	// GetByID retrieves a tag by primary key.
	// Returns domain.ErrNotFound if no tag with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error)

	// Update applies a partial update: nil fields are left unchanged.
	// Updating a nonexistent tag is not an error — found=false and a zero
	// Tag are returned. Callers rely on this silent-success behavior.
	Update(ctx context.Context, id uuid.UUID, name, color *string) (tag domain.Tag, found bool, err error)

	// Delete removes a tag and its card-tag links in one transaction.
	// Idempotent — deleting a nonexistent tag succeeds.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// ListByTeam returns tags in creation order. The id tiebreak keeps the
// order deterministic if two tags share a timestamp.
func (r *pgTagRepo) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Tag, error) {
	const q = `
		SELECT id, team_id, name, color, created_at
		FROM tags
		WHERE team_id = @team_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"team_id": teamID})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByTeam: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.ListByTeam: scan: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByTeam: rows: %w", err)
	}
	return tags, nil
}

// Create inserts a tag after checking for a duplicate name in the same
// transaction. Two concurrent creators with the same name can both pass
// the pre-check; the unique constraint rejects the loser and the violation
// is reported as domain.ErrConflict either way.
func (r *pgTagRepo) Create(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	const existsQ = `
		SELECT EXISTS (
			SELECT 1 FROM tags WHERE team_id = @team_id AND name = @name
		)`

	const insertQ = `
		INSERT INTO tags (id, team_id, name, color)
		VALUES (@id, @team_id, @name, @color)
		RETURNING id, team_id, name, color, created_at`

	var created domain.Tag
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, existsQ, pgx.NamedArgs{
			"team_id": tag.TeamID,
			"name":    tag.Name,
		}).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrConflict
		}

		row := tx.QueryRow(ctx, insertQ, pgx.NamedArgs{
			"id":      tag.ID,
			"team_id": tag.TeamID,
			"name":    tag.Name,
			"color":   tag.Color,
		})
		created, err = scanTag(row)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			err = domain.ErrConflict
		}
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Create: %w", err)
	}
	return created, nil
}

// GetByID retrieves a tag by primary key.
func (r *pgTagRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error) {
	const q = `
		SELECT id, team_id, name, color, created_at
		FROM tags
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update applies the provided fields via COALESCE so nil pointers leave
// the column untouched. No row matching the id is silent success.
func (r *pgTagRepo) Update(ctx context.Context, id uuid.UUID, name, color *string) (domain.Tag, bool, error) {
	const q = `
		UPDATE tags
		SET name  = COALESCE(@name, name),
		    color = COALESCE(@color, color)
		WHERE id = @id
		RETURNING id, team_id, name, color, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "name": name, "color": color})
	result, err := scanTag(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Tag{}, false, nil
		}
		return domain.Tag{}, false, fmt.Errorf("repo.TagRepo.Update: %w", err)
	}
	return result, true, nil
}

// Delete removes the tag's card-tag links, then the tag. Zero rows
// affected means the tag was already gone, which is fine.
func (r *pgTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{"id": id}
		if _, err := tx.Exec(ctx, `DELETE FROM card_tags WHERE tag_id = @id`, args); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = @id`, args)
		return err
	})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.Delete: %w", err)
	}
	return nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t      domain.Tag
		id     pgtype.UUID
		teamID pgtype.UUID
	)
	err := s.Scan(&id, &teamID, &t.Name, &t.Color, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.TeamID = uuid.UUID(teamID.Bytes)
	return t, nil
}

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

// TeamRepo defines the persistence operations for teams and their members.
// The service layer depends on this interface, not the Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TeamRepo interface {
	// CreateWithDefaults inserts a team, its owner member, and the seed tags
	// in a single transaction. Readers never observe a team without its
	// owner or default tags.
	CreateWithDefaults(ctx context.Context, team domain.Team, owner domain.Member, tags []domain.Tag) (domain.Team, error)

	// GetByID retrieves a team by primary key.
	// Returns domain.ErrNotFound if no team with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error)

	// GetByInviteCode retrieves a team by its invite code (exact match —
	// callers uppercase the code first).
	// Returns domain.ErrNotFound if no team has that code.
	GetByInviteCode(ctx context.Context, code string) (domain.Team, error)

	// ListByUser returns every team the user is a member of, most recently
	// created first.
	ListByUser(ctx context.Context, userID string) ([]domain.Team, error)

	// ListMembers returns all members of a team ordered by join time.
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error)

	// GetMember retrieves the membership row for (teamID, userID).
	// Returns domain.ErrNotFound if the user is not a member.
	GetMember(ctx context.Context, teamID uuid.UUID, userID string) (domain.Member, error)

	// AddMember inserts a membership row. If the (team_id, user_id) pair
	// already exists the existing row is returned with created=false —
	// the unique constraint makes concurrent double-joins converge on a
	// single row.
	AddMember(ctx context.Context, m domain.Member) (member domain.Member, created bool, err error)

	// CountMembers returns the number of members in a team.
	CountMembers(ctx context.Context, teamID uuid.UUID) (int64, error)

	// RemoveMember deletes the membership row for (teamID, userID).
	// Returns domain.ErrNotFound if the user is not a member.
	RemoveMember(ctx context.Context, teamID uuid.UUID, userID string) error

	// DeleteCascade removes a team and everything it owns in one
	// transaction: card-tag links, tags, members, then the team row.
	DeleteCascade(ctx context.Context, teamID uuid.UUID) error
}

// pgTeamRepo is the Postgres implementation of TeamRepo.
type pgTeamRepo struct {
	db db
}

// NewTeamRepo constructs a TeamRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTeamRepo(db db) TeamRepo {
	return &pgTeamRepo{db: db}
}

// CreateWithDefaults inserts team, owner, and seed tags atomically.
// Seed tags are inserted one at a time so their clock_timestamp() defaults
// advance, preserving seed order under created_at sorting.
func (r *pgTeamRepo) CreateWithDefaults(ctx context.Context, team domain.Team, owner domain.Member, tags []domain.Tag) (domain.Team, error) {
	const insertTeam = `
		INSERT INTO teams (id, name, invite_code)
		VALUES (@id, @name, @invite_code)
		RETURNING id, name, invite_code, created_at`

	const insertMember = `
		INSERT INTO members (id, team_id, user_id, name)
		VALUES (@id, @team_id, @user_id, @name)`

	const insertTag = `
		INSERT INTO tags (id, team_id, name, color)
		VALUES (@id, @team_id, @name, @color)`

	var created domain.Team
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, insertTeam, pgx.NamedArgs{
			"id":          team.ID,
			"name":        team.Name,
			"invite_code": team.InviteCode,
		})
		var err error
		created, err = scanTeam(row)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, insertMember, pgx.NamedArgs{
			"id":      owner.ID,
			"team_id": owner.TeamID,
			"user_id": owner.UserID,
			"name":    owner.Name,
		})
		if err != nil {
			return err
		}

		for _, tag := range tags {
			_, err = tx.Exec(ctx, insertTag, pgx.NamedArgs{
				"id":      tag.ID,
				"team_id": tag.TeamID,
				"name":    tag.Name,
				"color":   tag.Color,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.CreateWithDefaults: %w", err)
	}
	return created, nil
}

// GetByID retrieves a team by primary key.
func (r *pgTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	const q = `
		SELECT id, name, invite_code, created_at
		FROM teams
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByInviteCode retrieves a team by invite code.
func (r *pgTeamRepo) GetByInviteCode(ctx context.Context, code string) (domain.Team, error) {
	const q = `
		SELECT id, name, invite_code, created_at
		FROM teams
		WHERE invite_code = @code`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code})
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.GetByInviteCode: %w", err)
	}
	return result, nil
}

// ListByUser returns the teams a user belongs to, newest first.
func (r *pgTeamRepo) ListByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	const q = `
		SELECT t.id, t.name, t.invite_code, t.created_at
		FROM teams t
		JOIN members m ON m.team_id = t.id
		WHERE m.user_id = @user_id
		ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TeamRepo.ListByUser: scan: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListByUser: rows: %w", err)
	}
	return teams, nil
}

// ListMembers returns a team's members ordered by join time.
func (r *pgTeamRepo) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error) {
	const q = `
		SELECT id, team_id, user_id, name, joined_at
		FROM members
		WHERE team_id = @team_id
		ORDER BY joined_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"team_id": teamID})
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListMembers: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TeamRepo.ListMembers: scan: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListMembers: rows: %w", err)
	}
	return members, nil
}

// GetMember retrieves one membership row.
func (r *pgTeamRepo) GetMember(ctx context.Context, teamID uuid.UUID, userID string) (domain.Member, error) {
	const q = `
		SELECT id, team_id, user_id, name, joined_at
		FROM members
		WHERE team_id = @team_id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"team_id": teamID, "user_id": userID})
	result, err := scanMember(row)
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.TeamRepo.GetMember: %w", err)
	}
	return result, nil
}

// AddMember inserts a membership row, converging on the existing row when
// the (team_id, user_id) unique constraint fires.
func (r *pgTeamRepo) AddMember(ctx context.Context, m domain.Member) (domain.Member, bool, error) {
	const q = `
		INSERT INTO members (id, team_id, user_id, name)
		VALUES (@id, @team_id, @user_id, @name)
		ON CONFLICT (team_id, user_id) DO NOTHING
		RETURNING id, team_id, user_id, name, joined_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":      m.ID,
		"team_id": m.TeamID,
		"user_id": m.UserID,
		"name":    m.Name,
	})
	inserted, err := scanMember(row)
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Member{}, false, fmt.Errorf("repo.TeamRepo.AddMember: %w", err)
	}

	// DO NOTHING returned no row — the membership already exists.
	existing, err := r.GetMember(ctx, m.TeamID, m.UserID)
	if err != nil {
		return domain.Member{}, false, fmt.Errorf("repo.TeamRepo.AddMember: %w", err)
	}
	return existing, false, nil
}

// CountMembers returns the team's member count.
func (r *pgTeamRepo) CountMembers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM members WHERE team_id = @team_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"team_id": teamID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TeamRepo.CountMembers: %w", err)
	}
	return n, nil
}

// RemoveMember deletes one membership row.
func (r *pgTeamRepo) RemoveMember(ctx context.Context, teamID uuid.UUID, userID string) error {
	const q = `DELETE FROM members WHERE team_id = @team_id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"team_id": teamID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TeamRepo.RemoveMember: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TeamRepo.RemoveMember: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteCascade removes a team and everything it owns.
// The foreign keys would cascade from the team delete alone; deleting in
// dependency order keeps the operation valid even without those cascades.
func (r *pgTeamRepo) DeleteCascade(ctx context.Context, teamID uuid.UUID) error {
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{"team_id": teamID}
		for _, q := range []string{
			`DELETE FROM card_tags WHERE team_id = @team_id`,
			`DELETE FROM tags WHERE team_id = @team_id`,
			`DELETE FROM members WHERE team_id = @team_id`,
			`DELETE FROM teams WHERE id = @team_id`,
		} {
			if _, err := tx.Exec(ctx, q, args); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo.TeamRepo.DeleteCascade: %w", err)
	}
	return nil
}

// scanTeam maps a single database row into a domain.Team.
func scanTeam(s scanner) (domain.Team, error) {
	var (
		t  domain.Team
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.InviteCode, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Team{}, domain.ErrNotFound
		}
		return domain.Team{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

// scanMember maps a single database row into a domain.Member.
func scanMember(s scanner) (domain.Member, error) {
	var (
		m      domain.Member
		id     pgtype.UUID
		teamID pgtype.UUID
	)
	err := s.Scan(&id, &teamID, &m.UserID, &m.Name, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, domain.ErrNotFound
		}
		return domain.Member{}, err
	}
	m.ID = uuid.UUID(id.Bytes)
	m.TeamID = uuid.UUID(teamID.Bytes)
	return m, nil
}

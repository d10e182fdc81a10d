// Package service contains the business logic for the tagging service.
// Services sanitize inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mwarner/tagboard/internal/domain"
	"github.com/mwarner/tagboard/internal/idgen"
	"github.com/mwarner/tagboard/internal/repo"
)

// Fallback member display names when the caller does not supply one.
const (
	defaultOwnerName  = "Owner"
	defaultMemberName = "Member"
)

// JoinResult reports the outcome of a join request.
// AlreadyMember is set when the user was a member before the call —
// joining twice is idempotent, not an error.
type JoinResult struct {
	Team          domain.Team
	AlreadyMember bool
}

// LeaveResult reports the outcome of a leave request.
// TeamDeleted is set when the leaving user was the last member: a team
// with zero members is meaningless and is garbage-collected eagerly,
// taking its tags and card-tag links with it.
type LeaveResult struct {
	TeamDeleted bool
}

// TeamService implements business logic for team lifecycle operations.
type TeamService struct {
	teams repo.TeamRepo
}

// NewTeamService constructs a TeamService backed by the provided TeamRepo.
func NewTeamService(teams repo.TeamRepo) *TeamService {
	return &TeamService{teams: teams}
}

// Create validates input, then persists a new team together with its owner
// member and the six default tags in one transaction.
// Returns domain.ErrValidation if name or userID is empty after sanitization.
// An invite-code collision surfaces as a plain store error; the code space
// is large enough that retrying is not worth the complexity.
func (s *TeamService) Create(ctx context.Context, name, userID, userName string) (domain.Team, error) {
	name = domain.Sanitize(name, domain.MaxTeamNameLen)
	userID = domain.Sanitize(userID, domain.MaxUserIDLen)
	userName = domain.Sanitize(userName, domain.MaxUserNameLen)

	if name == "" {
		return domain.Team{}, fmt.Errorf("%w: team name is required", domain.ErrValidation)
	}
	if userID == "" {
		return domain.Team{}, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if userName == "" {
		userName = defaultOwnerName
	}

	team := domain.Team{
		ID:         idgen.NewID(),
		Name:       name,
		InviteCode: idgen.NewInviteCode(),
	}
	owner := domain.Member{
		ID:     idgen.NewID(),
		TeamID: team.ID,
		UserID: userID,
		Name:   userName,
	}
	tags := make([]domain.Tag, 0, len(domain.DefaultTags()))
	for _, d := range domain.DefaultTags() {
		tags = append(tags, domain.Tag{
			ID:     idgen.NewID(),
			TeamID: team.ID,
			Name:   d.Name,
			Color:  d.Color,
		})
	}

	created, err := s.teams.CreateWithDefaults(ctx, team, owner, tags)
	if err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Create: %w", err)
	}
	return created, nil
}

// Join adds the user to the team identified by inviteCode.
// Codes match case-insensitively: they are stored uppercase and the input
// is uppercased before lookup.
// Returns domain.ErrNotFound if no team has that code. Joining a team the
// user already belongs to succeeds with AlreadyMember set.
func (s *TeamService) Join(ctx context.Context, inviteCode, userID, userName string) (JoinResult, error) {
	inviteCode = strings.ToUpper(domain.Sanitize(inviteCode, idgen.InviteCodeLen))
	userID = domain.Sanitize(userID, domain.MaxUserIDLen)
	userName = domain.Sanitize(userName, domain.MaxUserNameLen)

	if inviteCode == "" {
		return JoinResult{}, fmt.Errorf("%w: inviteCode is required", domain.ErrValidation)
	}
	if userID == "" {
		return JoinResult{}, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if userName == "" {
		userName = defaultMemberName
	}

	team, err := s.teams.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return JoinResult{}, fmt.Errorf("service.TeamService.Join: %w", err)
	}

	member := domain.Member{
		ID:     idgen.NewID(),
		TeamID: team.ID,
		UserID: userID,
		Name:   userName,
	}
	_, created, err := s.teams.AddMember(ctx, member)
	if err != nil {
		return JoinResult{}, fmt.Errorf("service.TeamService.Join: %w", err)
	}
	return JoinResult{Team: team, AlreadyMember: !created}, nil
}

// ListForUser returns every team the user is a member of.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TeamService) ListForUser(ctx context.Context, userID string) ([]domain.Team, error) {
	userID = domain.Sanitize(userID, domain.MaxUserIDLen)

	teams, err := s.teams.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TeamService.ListForUser: %w", err)
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	return teams, nil
}

// Details returns a team and its members.
// Returns domain.ErrNotFound if the team does not exist.
func (s *TeamService) Details(ctx context.Context, teamID uuid.UUID) (domain.Team, []domain.Member, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return domain.Team{}, nil, fmt.Errorf("service.TeamService.Details: %w", err)
	}
	members, err := s.teams.ListMembers(ctx, teamID)
	if err != nil {
		return domain.Team{}, nil, fmt.Errorf("service.TeamService.Details: %w", err)
	}
	return team, members, nil
}

// Leave removes the user from the team. When the user is the last member
// the whole team is deleted in cascade order and TeamDeleted is reported.
// Returns domain.ErrNotFound if the user is not a member of the team.
func (s *TeamService) Leave(ctx context.Context, teamID uuid.UUID, userID string) (LeaveResult, error) {
	userID = domain.Sanitize(userID, domain.MaxUserIDLen)
	if userID == "" {
		return LeaveResult{}, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	if _, err := s.teams.GetMember(ctx, teamID, userID); err != nil {
		return LeaveResult{}, fmt.Errorf("service.TeamService.Leave: %w", err)
	}

	count, err := s.teams.CountMembers(ctx, teamID)
	if err != nil {
		return LeaveResult{}, fmt.Errorf("service.TeamService.Leave: %w", err)
	}

	if count == 1 {
		if err := s.teams.DeleteCascade(ctx, teamID); err != nil {
			return LeaveResult{}, fmt.Errorf("service.TeamService.Leave: %w", err)
		}
		return LeaveResult{TeamDeleted: true}, nil
	}

	if err := s.teams.RemoveMember(ctx, teamID, userID); err != nil {
		return LeaveResult{}, fmt.Errorf("service.TeamService.Leave: %w", err)
	}
	return LeaveResult{}, nil
}

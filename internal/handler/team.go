package handler

import (
	"net/http"
	"time"

	"github.com/mwarner/tagboard/internal/domain"
)

// teamJSON is the wire shape of a team. invite_code keeps its snake_case
// name for compatibility with existing clients.
type teamJSON struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"createdAt"`
}

// memberJSON is the wire shape of a team member.
type memberJSON struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

func toTeamJSON(t domain.Team) teamJSON {
	return teamJSON{
		ID:         t.ID.String(),
		Name:       t.Name,
		InviteCode: t.InviteCode,
		CreatedAt:  t.CreatedAt,
	}
}

func toMemberJSON(m domain.Member) memberJSON {
	return memberJSON{
		ID:       m.ID.String(),
		UserID:   m.UserID,
		Name:     m.Name,
		JoinedAt: m.JoinedAt,
	}
}

// createTeam handles POST /api/teams.
func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     looseString `json:"name"`
		UserID   looseString `json:"userId"`
		UserName looseString `json:"userName"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	team, err := s.teams.Create(r.Context(), string(req.Name), string(req.UserID), string(req.UserName))
	if err != nil {
		writeDomainError(w, err, "Team not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"team":    toTeamJSON(team),
		"message": "Team created successfully",
	})
}

// joinTeam handles POST /api/teams/join.
// Joining a team the user already belongs to is idempotent: the second
// call reports success with an "already a member" message.
func (s *Server) joinTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InviteCode looseString `json:"inviteCode"`
		UserID     looseString `json:"userId"`
		UserName   looseString `json:"userName"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.teams.Join(r.Context(), string(req.InviteCode), string(req.UserID), string(req.UserName))
	if err != nil {
		writeDomainError(w, err, "Invalid invite code")
		return
	}

	message := "Joined team successfully"
	if result.AlreadyMember {
		message = "Already a member of this team"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"team":    toTeamJSON(result.Team),
		"message": message,
	})
}

// listTeams handles GET /api/teams/{userID}.
func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userID")

	teams, err := s.teams.ListForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "Teams not found")
		return
	}

	out := make([]teamJSON, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamJSON(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": out})
}

// teamDetails handles GET /api/teams/{teamID}/details.
func (s *Server) teamDetails(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDParam(w, r)
	if !ok {
		return
	}

	team, members, err := s.teams.Details(r.Context(), teamID)
	if err != nil {
		writeDomainError(w, err, "Team not found")
		return
	}

	out := make([]memberJSON, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberJSON(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"team":    toTeamJSON(team),
		"members": out,
	})
}

// leaveTeam handles POST /api/teams/{teamID}/leave.
// When the last member leaves, the whole team is deleted and the response
// carries teamDeleted so clients can drop local state.
func (s *Server) leaveTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		UserID looseString `json:"userId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.teams.Leave(r.Context(), teamID, string(req.UserID))
	if err != nil {
		writeDomainError(w, err, "Not a member of this team")
		return
	}

	resp := map[string]any{
		"success": true,
		"message": "Left team successfully",
	}
	if result.TeamDeleted {
		resp["teamDeleted"] = true
		resp["message"] = "Team deleted (last member left)"
	}
	writeJSON(w, http.StatusOK, resp)
}

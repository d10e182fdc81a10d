// Package handler implements the HTTP handlers for the tagboard API.
// All handlers are methods on Server; they decode JSON, call the service
// layer, and map domain errors to HTTP status codes. Methods are split into
// resource-specific files (team.go, tag.go, cardtag.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwarner/tagboard/internal/domain"
	"github.com/mwarner/tagboard/internal/service"
)

// TeamServicer defines the business operations the team handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TeamServicer interface {
	Create(ctx context.Context, name, userID, userName string) (domain.Team, error)
	Join(ctx context.Context, inviteCode, userID, userName string) (service.JoinResult, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Team, error)
	Details(ctx context.Context, teamID uuid.UUID) (domain.Team, []domain.Member, error)
	Leave(ctx context.Context, teamID uuid.UUID, userID string) (service.LeaveResult, error)
}

// TagServicer defines the business operations the tag handlers depend on.
type TagServicer interface {
	List(ctx context.Context, teamID uuid.UUID) ([]domain.Tag, error)
	Create(ctx context.Context, teamID uuid.UUID, name, color string) (domain.Tag, error)
	Update(ctx context.Context, tagID uuid.UUID, name, color string) (domain.Tag, bool, error)
	Delete(ctx context.Context, tagID uuid.UUID) error
}

// CardTagServicer defines the business operations the card-tag handlers
// depend on.
type CardTagServicer interface {
	List(ctx context.Context, teamID uuid.UUID) (map[string][]domain.CardTagView, error)
	Attach(ctx context.Context, teamID uuid.UUID, cardID string, tagID uuid.UUID) error
	Detach(ctx context.Context, teamID uuid.UUID, cardID string, tagID uuid.UUID) error
}

// Server holds the handler dependencies for all API endpoints.
// Methods live in resource-specific files but all operate on this struct.
type Server struct {
	teams    TeamServicer
	tags     TagServicer
	cardTags CardTagServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(teams TeamServicer, tags TagServicer, cardTags CardTagServicer) *Server {
	return &Server{teams: teams, tags: tags, cardTags: cardTags}
}

// Routes registers every API endpoint on a fresh chi router.
// Mount the result under the site root in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", s.createTeam)
			r.Post("/join", s.joinTeam)
			r.Get("/{userID}", s.listTeams)
			r.Get("/{teamID}/details", s.teamDetails)
			r.Post("/{teamID}/leave", s.leaveTeam)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/{teamID}", s.listTags)
			r.Post("/", s.createTag)
			r.Put("/{tagID}", s.updateTag)
			r.Delete("/{tagID}", s.deleteTag)
		})

		r.Route("/card-tags", func(r chi.Router) {
			r.Get("/{teamID}", s.listCardTags)
			r.Post("/", s.attachTag)
			r.Delete("/{teamID}/{cardID}/{tagID}", s.detachTag)
		})
	})

	return r
}

// urlParam returns the named chi URL parameter.
func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// teamIDParam parses the {teamID} URL parameter. A malformed value writes
// a 400 response and returns ok=false; callers must return immediately.
func teamIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "teamID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid team ID")
		return uuid.Nil, false
	}
	return id, true
}

// tagIDParam parses the {tagID} URL parameter, writing a 400 on failure.
func tagIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tag ID")
		return uuid.Nil, false
	}
	return id, true
}

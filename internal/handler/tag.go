package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mwarner/tagboard/internal/domain"
)

// tagJSON is the wire shape of a tag.
type tagJSON struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTagJSON(t domain.Tag) tagJSON {
	return tagJSON{
		ID:        t.ID.String(),
		TeamID:    t.TeamID.String(),
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

// listTags handles GET /api/tags/{teamID}.
// Tags come back in creation order — a stable display order for clients.
func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDParam(w, r)
	if !ok {
		return
	}

	tags, err := s.tags.List(r.Context(), teamID)
	if err != nil {
		writeDomainError(w, err, "Team not found")
		return
	}

	out := make([]tagJSON, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagJSON(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": out})
}

// createTag handles POST /api/tags.
// A duplicate name within the team is rejected with 400.
func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamID looseString `json:"teamId"`
		Name   looseString `json:"name"`
		Color  looseString `json:"color"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	teamID, err := uuid.Parse(string(req.TeamID))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	tag, err := s.tags.Create(r.Context(), teamID, string(req.Name), string(req.Color))
	if err != nil {
		writeDomainError(w, err, "Team not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"tag": toTagJSON(tag)})
}

// updateTag handles PUT /api/tags/{tagID}.
// The update is partial: omitted or empty fields keep their current value.
// Updating a tag that does not exist still succeeds, returning a null tag —
// intentional behavior that existing clients rely on.
func (s *Server) updateTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := tagIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Name  looseString `json:"name"`
		Color looseString `json:"color"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tag, found, err := s.tags.Update(r.Context(), tagID, string(req.Name), string(req.Color))
	if err != nil {
		writeDomainError(w, err, "Tag not found")
		return
	}

	if !found {
		writeJSON(w, http.StatusOK, map[string]any{"tag": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tag": toTagJSON(tag)})
}

// deleteTag handles DELETE /api/tags/{tagID}. Idempotent.
func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := tagIDParam(w, r)
	if !ok {
		return
	}

	if err := s.tags.Delete(r.Context(), tagID); err != nil {
		writeDomainError(w, err, "Tag not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

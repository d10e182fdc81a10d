package handler

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// cardTagJSON is one tag attached to a card, as listed under its card ID.
type cardTagJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// listCardTags handles GET /api/card-tags/{teamID}.
// The response groups tags by card: {"cardTags": {"card-1": [{id,name,color}, ...]}}.
// Cards with no tags do not appear at all.
func (s *Server) listCardTags(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDParam(w, r)
	if !ok {
		return
	}

	grouped, err := s.cardTags.List(r.Context(), teamID)
	if err != nil {
		writeDomainError(w, err, "Team not found")
		return
	}

	out := map[string][]cardTagJSON{}
	for cardID, views := range grouped {
		tags := make([]cardTagJSON, 0, len(views))
		for _, v := range views {
			tags = append(tags, cardTagJSON{
				ID:    v.TagID.String(),
				Name:  v.TagName,
				Color: v.TagColor,
			})
		}
		out[cardID] = tags
	}
	writeJSON(w, http.StatusOK, map[string]any{"cardTags": out})
}

// attachTag handles POST /api/card-tags.
// The tag must belong to the stated team; attaching an already-attached
// tag is a successful no-op.
func (s *Server) attachTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamID looseString `json:"teamId"`
		CardID looseString `json:"cardId"`
		TagID  looseString `json:"tagId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	teamID, err := uuid.Parse(string(req.TeamID))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	tagID, err := uuid.Parse(string(req.TagID))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tag ID")
		return
	}

	if err := s.cardTags.Attach(r.Context(), teamID, string(req.CardID), tagID); err != nil {
		writeDomainError(w, err, "Tag not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// detachTag handles DELETE /api/card-tags/{teamID}/{cardID}/{tagID}.
// Card IDs are opaque external strings and may arrive percent-encoded in
// the path, so the parameter is decoded before use. Idempotent.
func (s *Server) detachTag(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDParam(w, r)
	if !ok {
		return
	}
	tagID, ok := tagIDParam(w, r)
	if !ok {
		return
	}

	cardID := urlParam(r, "cardID")
	if decoded, err := url.PathUnescape(cardID); err == nil {
		cardID = decoded
	}
	if cardID == "" {
		writeError(w, http.StatusBadRequest, "Missing card ID")
		return
	}

	if err := s.cardTags.Detach(r.Context(), teamID, cardID, tagID); err != nil {
		writeDomainError(w, err, "Card tag not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

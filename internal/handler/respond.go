package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mwarner/tagboard/internal/domain"
)

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes a `{"error": message}` body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a service-layer error to an HTTP response.
// Validation and conflict failures become 400, missing resources 404
// (with the caller-supplied message — the handler is the layer that knows
// what was being looked up), and everything else 500 with a generic body.
// The underlying error detail is logged, never leaked to the client.
func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, unwrapMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusBadRequest, "A tag with this name already exists")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a validation error.
// e.g. "validation error: userId is required" → "userId is required"
func unwrapMessage(err error) string {
	msg := err.Error()
	const prefix = "validation error: "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

// looseString is a JSON string that tolerates sloppy clients: any
// non-string value (number, boolean, null, object, array) decodes to the
// empty string instead of failing the whole request. The empty value then
// trips the same required-field validation as an absent field.
type looseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *looseString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ""
		return nil
	}
	*s = looseString(v)
	return nil
}

// decodeBody decodes the request body into dst, reporting false after
// writing a 400 when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

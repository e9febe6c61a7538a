package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"hotel_portal/internal/adapters/observability"
	"hotel_portal/internal/domain"
)

// result is the body of every admin action: success plus an optional
// message the dashboard shows as a notification.
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func ok(w http.ResponseWriter, resource, action, msg string, data any) {
	observability.ObserveAction(resource, action, "ok")
	writeJSON(w, http.StatusOK, result{Success: true, Message: msg, Data: data})
}

// fail maps an action error to the envelope. Business failures carry their
// own message; anything unexpected is logged and replaced by a generic one.
func fail(w http.ResponseWriter, r *http.Request, resource, action string, err error) {
	if be, isBusiness := domain.AsBusiness(err); isBusiness {
		observability.ObserveAction(resource, action, "rejected")
		writeJSON(w, http.StatusUnprocessableEntity, result{Message: be.Msg})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		observability.ObserveAction(resource, action, "rejected")
		writeJSON(w, http.StatusNotFound, result{Message: capitalize(singular(resource)) + " not found"})
		return
	}
	observability.ObserveAction(resource, action, "error")
	log.Error().Err(err).
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("resource", resource).
		Str("action", action).
		Msg("admin action failed")
	writeJSON(w, http.StatusInternalServerError, result{Message: "Failed to " + action + " " + singular(resource)})
}

func badRequest(w http.ResponseWriter, resource, action, msg string) {
	observability.ObserveAction(resource, action, "rejected")
	writeJSON(w, http.StatusBadRequest, result{Message: msg})
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// singular turns a route resource ("hero-slides") into a noun ("hero slide").
func singular(resource string) string {
	s := strings.ReplaceAll(resource, "-", " ")
	switch {
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "s"):
		return strings.TrimSuffix(s, "s")
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

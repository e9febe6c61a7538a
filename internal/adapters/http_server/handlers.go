package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_portal/internal/app"
	"hotel_portal/internal/domain"
)

type Handlers struct {
	Q            *app.QueryService
	Admin        *app.AdminService
	Reservations *app.ReservationService
	Payments     *app.PaymentService
	Dashboard    *app.DashboardService
	Geocode      *app.GeocodeService // nil when no geocoder is configured
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/navigation", public(h.Q.Navigation, "navigation"))
		r.Get("/properties", public(h.Q.Properties, "properties"))
		r.Get("/properties/{slug}", h.getProperty)
		r.Get("/restaurants", public(h.Q.Restaurants, "restaurants"))
		r.Get("/map", public(h.Q.MapMarkers, "map markers"))
		r.Get("/hero-slides", public(h.Q.HeroSlides, "hero slides"))
		r.Get("/offers", public(h.Q.Offers, "offers"))
		r.Get("/events", public(h.Q.Events, "events"))
	})

	s.mux.Route("/admin/api", func(r chi.Router) {
		r.Use(NoStore)
		h.mountAdmin(r)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers with v, or 304 when the client already holds it.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func public[V any](load func(context.Context) (V, error), what string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := load(r.Context())
		if err != nil {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("public read failed")
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load "+what)
			return
		}
		writeCached(w, r, v)
	}
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	page, err := h.Q.Property(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("public read failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load property")
		return
	}
	writeCached(w, r, page)
}

package transport

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleListVenues serves GET /api/venues?city=
func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.svc.Venues.ListByCity(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, venues)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.svc.Venues.Cities(r.Context())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, cities)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Venues.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, v)
}

// handleListClubs serves GET /api/clubs?q=
func (s *Server) handleListClubs(w http.ResponseWriter, r *http.Request) {
	var (
		clubs any
		err   error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		clubs, err = s.svc.Venues.SearchClubs(r.Context(), q)
	} else {
		clubs, err = s.svc.Venues.ListClubs(r.Context())
	}
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, clubs)
}

func (s *Server) handleGetClub(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Venues.GetClub(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, c)
}

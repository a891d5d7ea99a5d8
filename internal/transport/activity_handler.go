package transport

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/i18n"
)

type createActivityRequest struct {
	Type                string    `json:"type"`
	Title               string    `json:"title"`
	ClubID              *string   `json:"club_id"`
	Location            string    `json:"location"`
	Latitude            *float64  `json:"latitude"`
	Longitude           *float64  `json:"longitude"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	MaxParticipants     int       `json:"max_participants"`
	Fee                 float64   `json:"fee"`
	SkillLevel          string    `json:"skill_level"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
	Images              []string  `json:"images"`
	CreatorParticipates *bool     `json:"creator_participates"`
}

type updateActivityRequest struct {
	Title           *string    `json:"title"`
	Location        *string    `json:"location"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	MaxParticipants *int       `json:"max_participants"`
	Fee             *float64   `json:"fee"`
	SkillLevel      *string    `json:"skill_level"`
	Category        *string    `json:"category"`
	Description     *string    `json:"description"`
	Images          []string   `json:"images"`
}

type activityResponse struct {
	activity.Activity
	SeatsLeft    int   `json:"seats_left"`
	IsRegistered *bool `json:"is_registered,omitempty"`
}

type activityListResponse struct {
	Activities []activityResponse `json:"activities"`
	Total      int                `json:"total"`
	Page       int                `json:"page,omitempty"`
	PageSize   int                `json:"page_size,omitempty"`
}

func toActivityResponse(act activity.Activity) activityResponse {
	return activityResponse{Activity: act, SeatsLeft: act.SeatsLeft()}
}

func toActivityResponses(acts []activity.Activity) []activityResponse {
	out := make([]activityResponse, 0, len(acts))
	for _, act := range acts {
		out = append(out, toActivityResponse(act))
	}
	return out
}

// handleListActivities serves GET /api/activities?type=&date=&page=&page_size=
func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	q := activity.Query{Type: activity.ParseType(r.URL.Query().Get("type"))}
	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err := activity.ParseDate(raw, s.svc.Activities.Location())
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		q.Date = &day
	}

	pg, ok := parsePage(r)
	if !ok {
		writeProblem(w, r, i18n.BadRequest)
		return
	}

	acts, err := s.svc.Activities.ListByType(r.Context(), q)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	start, end := pg.bounds(len(acts))
	writeOK(w, r, http.StatusOK, activityListResponse{
		Activities: toActivityResponses(acts[start:end]),
		Total:      len(acts),
		Page:       pg.Page,
		PageSize:   pg.Size,
	})
}

// handleCountActivities serves GET /api/activities/counts?type=&from=&days=
func (s *Server) handleCountActivities(w http.ResponseWriter, r *http.Request) {
	loc := s.svc.Activities.Location()
	from := time.Now().In(loc)
	if raw := r.URL.Query().Get("from"); raw != "" {
		day, err := activity.ParseDate(raw, loc)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		from = day
	}
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeProblem(w, r, i18n.BadRequest)
			return
		}
		days = n
	}

	counts, err := s.svc.Activities.CountByDate(r.Context(), activity.ParseType(r.URL.Query().Get("type")), from, days)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, counts)
}

// handleGetActivity serves GET /api/activities/{id}
func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	act, err := s.svc.Activities.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := toActivityResponse(*act)
	if userID, ok := UserFromContext(r.Context()); ok {
		registered, err := s.svc.Registrations.IsRegistered(r.Context(), act.ID, userID)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		resp.IsRegistered = &registered
	}
	writeOK(w, r, http.StatusOK, resp)
}

// handleCreateActivity serves POST /api/activities
func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}

	act, err := s.svc.Activities.Create(r.Context(), activity.CreateRequest{
		CreatorID:           userID,
		Type:                activity.ParseType(req.Type),
		Title:               req.Title,
		ClubID:              req.ClubID,
		Location:            req.Location,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		MaxParticipants:     req.MaxParticipants,
		Fee:                 req.Fee,
		SkillLevel:          req.SkillLevel,
		Category:            req.Category,
		Description:         req.Description,
		Images:              req.Images,
		CreatorParticipates: req.CreatorParticipates,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusCreated, toActivityResponse(*act))
}

// handleUpdateActivity serves PUT /api/activities/{id}
func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req updateActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}

	act, err := s.svc.Activities.Update(r.Context(), activity.UpdateRequest{
		ID:              chi.URLParam(r, "id"),
		ActorID:         userID,
		Title:           req.Title,
		Location:        req.Location,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
		Fee:             req.Fee,
		SkillLevel:      req.SkillLevel,
		Category:        req.Category,
		Description:     req.Description,
		Images:          req.Images,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, toActivityResponse(*act))
}

// handleDeleteActivity serves DELETE /api/activities/{id}
func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.svc.Activities.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, nil)
}

func (s *Server) handleCancelActivity(w http.ResponseWriter, r *http.Request) {
	s.transitionActivity(w, r, s.svc.Activities.Cancel)
}

func (s *Server) handleCompleteActivity(w http.ResponseWriter, r *http.Request) {
	s.transitionActivity(w, r, s.svc.Activities.Complete)
}

func (s *Server) transitionActivity(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, actorID string) (*activity.Activity, error)) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	act, err := fn(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, toActivityResponse(*act))
}

// handleMyActivities serves GET /api/activities/my?type=
func (s *Server) handleMyActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var typ *activity.Type
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		t := activity.ParseType(raw)
		typ = &t
	}
	acts, err := s.svc.Activities.ListByCreator(r.Context(), userID, typ)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, toActivityResponses(acts))
}

// handleRegisteredActivities serves GET /api/activities/registered
func (s *Server) handleRegisteredActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	acts, err := s.svc.Activities.ListRegistered(r.Context(), userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, toActivityResponses(acts))
}

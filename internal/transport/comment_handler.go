package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/i18n"
)

type postCommentRequest struct {
	Content string `json:"content"`
	Rating  *int   `json:"rating"`
}

type rateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type commentListResponse struct {
	Comments []comment.Comment `json:"comments"`
	Total    int               `json:"total"`
	Page     int               `json:"page,omitempty"`
	PageSize int               `json:"page_size,omitempty"`
}

type ratingResponse struct {
	comment.RatingSummary
	Mine *comment.Rating `json:"mine,omitempty"`
}

// handleListComments serves GET /api/activities/{id}/comments?page=&page_size=
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	pg, ok := parsePage(r)
	if !ok {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	comments, err := s.svc.Comments.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	start, end := pg.bounds(len(comments))
	writeOK(w, r, http.StatusOK, commentListResponse{
		Comments: comments[start:end],
		Total:    len(comments),
		Page:     pg.Page,
		PageSize: pg.Size,
	})
}

// handlePostComment serves POST /api/activities/{id}/comments
func (s *Server) handlePostComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req postCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	c, err := s.svc.Comments.Post(r.Context(), comment.PostRequest{
		ActivityID: chi.URLParam(r, "id"),
		UserID:     userID,
		Content:    req.Content,
		Rating:     req.Rating,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusCreated, c)
}

// handleDeleteComment serves DELETE /api/comments/{id}
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.svc.Comments.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, nil)
}

// handleRate serves POST /api/activities/{id}/rating
func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req rateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	activityID := chi.URLParam(r, "id")
	if _, err := s.svc.Activities.Get(r.Context(), activityID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	rating, err := s.svc.Comments.Rate(r.Context(), activityID, userID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, rating)
}

// handleRatingSummary serves GET /api/activities/{id}/rating
func (s *Server) handleRatingSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	activityID := chi.URLParam(r, "id")
	summary, err := s.svc.Comments.Summary(r.Context(), activityID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	resp := ratingResponse{RatingSummary: summary}
	mine, err := s.svc.Comments.UserRating(r.Context(), activityID, userID)
	switch {
	case err == nil:
		resp.Mine = mine
	case !errors.Is(err, comment.ErrRatingNotFound):
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, resp)
}

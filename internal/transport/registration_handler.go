package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/i18n"
)

type registrationResponse struct {
	registration.Registration
	PaymentRequired bool    `json:"payment_required"`
	PaymentAmount   float64 `json:"payment_amount,omitempty"`
}

type payRequest struct {
	Method string `json:"payment_method"`
}

// handleRegister serves POST /api/activities/{id}/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	activityID := chi.URLParam(r, "id")

	reg, err := s.svc.Registrations.Register(r.Context(), activityID, userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := registrationResponse{Registration: *reg}
	if act, err := s.svc.Activities.Get(r.Context(), activityID); err == nil && act.Fee > 0 {
		resp.PaymentRequired = true
		resp.PaymentAmount = act.Fee
	}
	writeOK(w, r, http.StatusCreated, resp)
}

// handleCancelRegistration serves DELETE /api/activities/{id}/register
func (s *Server) handleCancelRegistration(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.svc.Registrations.Cancel(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, nil)
}

// handleParticipants serves GET /api/activities/{id}/participants
func (s *Server) handleParticipants(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "id")
	if _, err := s.svc.Activities.Get(r.Context(), activityID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	users, err := s.svc.Registrations.Participants(r.Context(), activityID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, users)
}

// handlePay serves POST /api/registrations/{id}/payment
func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req payRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	method, valid := registration.ParsePaymentMethod(req.Method)
	if !valid {
		writeProblem(w, r, i18n.BadRequest)
		return
	}

	reg, err := s.svc.Registrations.Pay(r.Context(), chi.URLParam(r, "id"), userID, method)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, reg)
}

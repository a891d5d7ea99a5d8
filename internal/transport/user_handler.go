package transport

import (
	"net/http"

	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/i18n"
	"github.com/qiuyou/courtside/internal/remote"
)

type loginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type phoneLoginRequest struct {
	Phone            string `json:"phone"`
	VerificationCode string `json:"verification_code"`
}

type wechatLoginRequest struct {
	OpenID   string `json:"open_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type updateProfileRequest struct {
	Nickname   *string      `json:"nickname"`
	Email      *string      `json:"email"`
	Avatar     *string      `json:"avatar"`
	Gender     *user.Gender `json:"gender"`
	SkillLevel *string      `json:"skill_level"`
	Signature  *string      `json:"signature"`
	WechatID   *string      `json:"wechat_id"`
}

// handleLogin serves POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	sess, err := s.svc.Users.Login(r.Context(), req.Account, req.Password)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, sess)
}

// handleLoginPhone serves POST /api/auth/login/phone
func (s *Server) handleLoginPhone(w http.ResponseWriter, r *http.Request) {
	var req phoneLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	sess, err := s.svc.Remote.LoginPhone(r.Context(), req.Phone, req.VerificationCode)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.acceptSession(w, r, sess)
}

// handleLoginWechat serves POST /api/auth/login/wechat
func (s *Server) handleLoginWechat(w http.ResponseWriter, r *http.Request) {
	var req wechatLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	sess, err := s.svc.Remote.LoginWechat(r.Context(), remote.WechatProfile{
		OpenID:   req.OpenID,
		Nickname: req.Nickname,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.acceptSession(w, r, sess)
}

func (s *Server) acceptSession(w http.ResponseWriter, r *http.Request, sess *user.Session) {
	sess, err := s.svc.Users.Accept(r.Context(), sess)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, sess)
}

// handleSignUp serves POST /api/auth/register
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	sess, err := s.svc.Users.SignUp(r.Context(), user.SignUpRequest{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusCreated, sess)
}

// handleGetProfile serves GET /api/user/profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	u, err := s.svc.Users.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, u)
}

// handleUpdateProfile serves PUT /api/user/profile
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, r, i18n.BadRequest)
		return
	}
	u, err := s.svc.Users.UpdateProfile(r.Context(), user.UpdateProfileRequest{
		ID:         userID,
		Nickname:   req.Nickname,
		Email:      req.Email,
		Avatar:     req.Avatar,
		Gender:     req.Gender,
		SkillLevel: req.SkillLevel,
		Signature:  req.Signature,
		WechatID:   req.WechatID,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeOK(w, r, http.StatusOK, u)
}

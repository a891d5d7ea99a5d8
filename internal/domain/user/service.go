package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/qiuyou/courtside/internal/repository"
)

var phonePattern = regexp.MustCompile(`^1\d{10}$`)

// Service handles accounts and profiles.
type Service struct {
	repo   Repository
	auth   Authenticator
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, auth Authenticator, logger *slog.Logger) *Service {
	return &Service{repo: repo, auth: auth, logger: logger}
}

// SignUpRequest defines account creation inputs.
type SignUpRequest struct {
	Username string
	Password string
	Nickname string
	Phone    string
	Email    string
}

// UpdateProfileRequest defines editable profile fields. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	ID         string
	Nickname   *string
	Email      *string
	Avatar     *string
	Gender     *Gender
	SkillLevel *string
	Signature  *string
	WechatID   *string
}

// ValidateSignUp validates account creation inputs.
func ValidateSignUp(req SignUpRequest) error {
	if strings.TrimSpace(req.Username) == "" || len(req.Password) < 6 {
		return ErrInvalidInput
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return ErrInvalidInput
	}
	return nil
}

// SignUp creates a remote account and mirrors the profile locally.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	if err := ValidateSignUp(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Nickname) == "" {
		req.Nickname = req.Username
	}
	sess, err := s.auth.SignUp(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.mirror(ctx, &sess.User); err != nil {
		return nil, err
	}
	return sess, nil
}

// Login authenticates by username or phone and mirrors the profile locally.
func (s *Service) Login(ctx context.Context, account, password string) (*Session, error) {
	if strings.TrimSpace(account) == "" || password == "" {
		return nil, ErrInvalidInput
	}
	sess, err := s.auth.Login(ctx, strings.TrimSpace(account), password)
	if err != nil {
		return nil, err
	}
	if err := s.mirror(ctx, &sess.User); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("user logged in", "user_id", sess.User.ID)
	}
	return sess, nil
}

// Accept mirrors a session obtained from another login flow (phone code, WeChat).
func (s *Service) Accept(ctx context.Context, sess *Session) (*Session, error) {
	if sess == nil || sess.User.ID == "" {
		return nil, ErrInvalidInput
	}
	if err := s.mirror(ctx, &sess.User); err != nil {
		return nil, err
	}
	return sess, nil
}

// Ensure makes sure a local profile exists for id, creating a bare one if needed.
func (s *Service) Ensure(ctx context.Context, id, nickname string) (*User, error) {
	u, err := s.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	now := time.Now()
	u = &User{ID: id, Username: id, Nickname: nickname, Gender: GenderUnknown, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// UpdateProfile edits the user's own profile.
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	u, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if req.Nickname != nil {
		if strings.TrimSpace(*req.Nickname) == "" {
			return nil, ErrInvalidInput
		}
		u.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}
	if req.Gender != nil {
		switch *req.Gender {
		case GenderMale, GenderFemale, GenderUnknown:
			u.Gender = *req.Gender
		default:
			return nil, ErrInvalidInput
		}
	}
	if req.SkillLevel != nil {
		u.SkillLevel = strings.TrimSpace(*req.SkillLevel)
	}
	if req.Signature != nil {
		u.Signature = *req.Signature
	}
	if req.WechatID != nil {
		u.WechatID = strings.TrimSpace(*req.WechatID)
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}

func (s *Service) mirror(ctx context.Context, u *User) error {
	if u.Gender == "" {
		u.Gender = GenderUnknown
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

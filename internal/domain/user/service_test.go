package user_test

import (
	"context"
	"testing"

	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/repository"
	"github.com/qiuyou/courtside/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateSignUp(t *testing.T) {
	require.NoError(t, user.ValidateSignUp(user.SignUpRequest{Username: "rafa", Password: "secret"}))
	require.NoError(t, user.ValidateSignUp(user.SignUpRequest{Username: "rafa", Password: "secret", Phone: "13912345678"}))
	require.ErrorIs(t, user.ValidateSignUp(user.SignUpRequest{Username: " ", Password: "secret"}), user.ErrInvalidInput)
	require.ErrorIs(t, user.ValidateSignUp(user.SignUpRequest{Username: "rafa", Password: "12345"}), user.ErrInvalidInput)
	require.ErrorIs(t, user.ValidateSignUp(user.SignUpRequest{Username: "rafa", Password: "secret", Phone: "23912345678"}), user.ErrInvalidInput)
}

func TestUserService_SignUpMirrorsProfile(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	auth := &mocks.Authenticator{}

	req := user.SignUpRequest{Username: "rafa", Password: "secret", Nickname: "rafa"}
	auth.On("SignUp", ctx, req).Return(&user.Session{Token: "tok", User: user.User{ID: "u1", Username: "rafa"}}, nil)
	repo.On("Upsert", ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.ID == "u1" && u.Gender == user.GenderUnknown
	})).Return(nil)

	svc := user.NewService(repo, auth, nil)
	sess, err := svc.SignUp(ctx, user.SignUpRequest{Username: "rafa", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "tok", sess.Token)
	auth.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestUserService_LoginFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	auth := &mocks.Authenticator{}
	auth.On("Login", ctx, "rafa", "wrong").Return(nil, user.ErrInvalidCredentials)

	svc := user.NewService(repo, auth, nil)
	_, err := svc.Login(ctx, " rafa ", "wrong")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)

	_, err = svc.Login(ctx, "", "pw")
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestUserService_Ensure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "known").Return(&user.User{ID: "known", Nickname: "K"}, nil)
	repo.On("Get", ctx, "fresh").Return(nil, repository.ErrNotFound)
	repo.On("Upsert", ctx, mock.MatchedBy(func(u *user.User) bool { return u.ID == "fresh" })).Return(nil)

	svc := user.NewService(repo, nil, nil)
	u, err := svc.Ensure(ctx, "known", "ignored")
	require.NoError(t, err)
	require.Equal(t, "K", u.Nickname)

	u, err = svc.Ensure(ctx, "fresh", "Newbie")
	require.NoError(t, err)
	require.Equal(t, "Newbie", u.Nickname)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "u1").Return(&user.User{ID: "u1", Nickname: "old", Gender: user.GenderUnknown}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := user.NewService(repo, nil, nil)
	nick := " Nadal "
	gender := user.GenderMale
	u, err := svc.UpdateProfile(ctx, user.UpdateProfileRequest{ID: "u1", Nickname: &nick, Gender: &gender})
	require.NoError(t, err)
	require.Equal(t, "Nadal", u.Nickname)
	require.Equal(t, user.GenderMale, u.Gender)

	bad := user.Gender("OTHER")
	_, err = svc.UpdateProfile(ctx, user.UpdateProfileRequest{ID: "u1", Gender: &bad})
	require.ErrorIs(t, err, user.ErrInvalidInput)

	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)
	_, err = svc.UpdateProfile(ctx, user.UpdateProfileRequest{ID: "missing"})
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

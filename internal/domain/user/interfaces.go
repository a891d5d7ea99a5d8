package user

import "context"

// Repository provides persistence operations for users.
type Repository interface {
	Upsert(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// Authenticator verifies credentials against the account service.
type Authenticator interface {
	Login(ctx context.Context, account, password string) (*Session, error)
	SignUp(ctx context.Context, req SignUpRequest) (*Session, error)
}

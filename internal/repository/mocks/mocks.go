package mocks

import (
	"context"
	"time"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, act *activity.Activity, creatorSeatID string) error {
	args := m.Called(ctx, act, creatorSeatID)
	return args.Error(0)
}

func (m *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	args := m.Called(ctx, id)
	if act, ok := args.Get(0).(*activity.Activity); ok {
		return act, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Update(ctx context.Context, act *activity.Activity) error {
	args := m.Called(ctx, act)
	return args.Error(0)
}

func (m *ActivityRepository) UpdateStatus(ctx context.Context, id string, status activity.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ActivityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ActivityRepository) ListOpen(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) StartTimes(ctx context.Context, opts activity.ListOptions) ([]time.Time, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]time.Time); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) ListByCreator(ctx context.Context, creatorID string, typ *activity.Type) ([]activity.Activity, error) {
	args := m.Called(ctx, creatorID, typ)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) ListRegistered(ctx context.Context, userID string) ([]activity.Activity, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RegistrationRepository is a mock for registration.Repository.
type RegistrationRepository struct {
	mock.Mock
}

func (m *RegistrationRepository) Register(ctx context.Context, reg *registration.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *RegistrationRepository) Cancel(ctx context.Context, activityID, userID string, at time.Time) (*registration.Registration, error) {
	args := m.Called(ctx, activityID, userID, at)
	if reg, ok := args.Get(0).(*registration.Registration); ok {
		return reg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) Get(ctx context.Context, id string) (*registration.Registration, error) {
	args := m.Called(ctx, id)
	if reg, ok := args.Get(0).(*registration.Registration); ok {
		return reg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) GetActive(ctx context.Context, activityID, userID string) (*registration.Registration, error) {
	args := m.Called(ctx, activityID, userID)
	if reg, ok := args.Get(0).(*registration.Registration); ok {
		return reg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) ListForUser(ctx context.Context, userID string) ([]registration.Registration, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]registration.Registration); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) Participants(ctx context.Context, activityID string) ([]user.User, error) {
	args := m.Called(ctx, activityID)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) UpdatePayment(ctx context.Context, id string, method registration.PaymentMethod, status registration.PaymentStatus) error {
	args := m.Called(ctx, id, method, status)
	return args.Error(0)
}

func (m *RegistrationRepository) ActivityFee(ctx context.Context, activityID string) (float64, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).(float64), args.Error(1)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// Authenticator is a mock for user.Authenticator.
type Authenticator struct {
	mock.Mock
}

func (m *Authenticator) Login(ctx context.Context, account, password string) (*user.Session, error) {
	args := m.Called(ctx, account, password)
	if sess, ok := args.Get(0).(*user.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Authenticator) SignUp(ctx context.Context, req user.SignUpRequest) (*user.Session, error) {
	args := m.Called(ctx, req)
	if sess, ok := args.Get(0).(*user.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

// VenueRepository is a mock for venue.Repository.
type VenueRepository struct {
	mock.Mock
}

func (m *VenueRepository) Create(ctx context.Context, v *venue.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VenueRepository) Get(ctx context.Context, id string) (*venue.Venue, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*venue.Venue); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VenueRepository) ListByCity(ctx context.Context, city string) ([]venue.Venue, error) {
	args := m.Called(ctx, city)
	if list, ok := args.Get(0).([]venue.Venue); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VenueRepository) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VenueRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ClubRepository is a mock for venue.ClubRepository.
type ClubRepository struct {
	mock.Mock
}

func (m *ClubRepository) Create(ctx context.Context, c *venue.Club) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClubRepository) Get(ctx context.Context, id string) (*venue.Club, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*venue.Club); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClubRepository) List(ctx context.Context) ([]venue.Club, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]venue.Club); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClubRepository) SearchByName(ctx context.Context, query string) ([]venue.Club, error) {
	args := m.Called(ctx, query)
	if list, ok := args.Get(0).([]venue.Club); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CommentRepository is a mock for comment.Repository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) Get(ctx context.Context, id string) (*comment.Comment, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*comment.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentRepository) ListByActivity(ctx context.Context, activityID string) ([]comment.Comment, error) {
	args := m.Called(ctx, activityID)
	if list, ok := args.Get(0).([]comment.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RatingRepository is a mock for comment.RatingRepository.
type RatingRepository struct {
	mock.Mock
}

func (m *RatingRepository) Upsert(ctx context.Context, r *comment.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RatingRepository) Get(ctx context.Context, activityID, userID string) (*comment.Rating, error) {
	args := m.Called(ctx, activityID, userID)
	if r, ok := args.Get(0).(*comment.Rating); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RatingRepository) Summary(ctx context.Context, activityID string) (comment.RatingSummary, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).(comment.RatingSummary), args.Error(1)
}

// AuditRepository is a mock for audit.Repository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventPublisher is a mock for the lifecycle event publishers.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

// PaymentGateway is a mock for registration.PaymentGateway.
type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) CreatePayment(ctx context.Context, registrationID, method string, amount float64) (string, error) {
	args := m.Called(ctx, registrationID, method, amount)
	return args.String(0), args.Error(1)
}

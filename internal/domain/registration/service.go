package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/qiuyou/courtside/internal/domain/registration")

// Outcome labels reported to Metrics.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeDuplicate = "duplicate"
	OutcomeFull      = "full"
	OutcomeClosed    = "closed"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Service handles seat bookkeeping for activities.
type Service struct {
	repo     Repository
	payments PaymentGateway
	audit    AuditRecorder
	events   EventPublisher
	metrics  Metrics
	logger   *slog.Logger
}

// NewService creates a new registration service. Every collaborator except
// repo may be nil.
func NewService(
	repo Repository,
	payments PaymentGateway,
	recorder AuditRecorder,
	events EventPublisher,
	metrics Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		payments: payments,
		audit:    recorder,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register claims a seat for the user. The capacity check, counter increment
// and insert are committed together, so occupancy can never pass capacity.
func (s *Service) Register(ctx context.Context, activityID, userID string) (*Registration, error) {
	ctx, span := tracer.Start(ctx, "registration.Register")
	defer span.End()
	span.SetAttributes(attribute.String("activity.id", activityID))

	if strings.TrimSpace(activityID) == "" || strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	reg := &Registration{
		ID:            uuid.NewString(),
		ActivityID:    activityID,
		UserID:        userID,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentUnpaid,
		RegisteredAt:  time.Now(),
	}

	err := s.repo.Register(ctx, reg)
	outcome, mapped := classifyRegisterError(err)
	s.observe(outcome)
	span.SetAttributes(attribute.String("registration.outcome", outcome))
	if mapped != nil {
		span.SetStatus(codes.Error, mapped.Error())
		if outcome == OutcomeError {
			return nil, fmt.Errorf("registering: %w", mapped)
		}
		return nil, mapped
	}

	s.record(ctx, reg, audit.KindRegistrationConfirmed, "seat confirmed")
	s.publish(ctx, "registration.confirmed", reg)
	if s.logger != nil {
		s.logger.Info("registration confirmed", "activity_id", activityID, "user_id", userID, "registration_id", reg.ID)
	}
	return reg, nil
}

func classifyRegisterError(err error) (string, error) {
	switch {
	case err == nil:
		return OutcomeConfirmed, nil
	case errors.Is(err, repository.ErrConflict):
		return OutcomeDuplicate, ErrAlreadyRegistered
	case errors.Is(err, repository.ErrCapacityExhausted):
		return OutcomeFull, ErrActivityFull
	case errors.Is(err, repository.ErrNotOpen):
		return OutcomeClosed, ErrActivityClosed
	case errors.Is(err, repository.ErrNotFound):
		return OutcomeNotFound, ErrActivityNotFound
	case errors.Is(err, repository.ErrInvalidInput):
		return OutcomeInvalid, ErrInvalidInput
	default:
		return OutcomeError, err
	}
}

// Cancel releases the user's seat. The activity counter is recomputed from
// the remaining active registrations in the same transaction.
func (s *Service) Cancel(ctx context.Context, activityID, userID string) error {
	ctx, span := tracer.Start(ctx, "registration.Cancel")
	defer span.End()
	span.SetAttributes(attribute.String("activity.id", activityID))

	if strings.TrimSpace(activityID) == "" || strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}

	reg, err := s.repo.Cancel(ctx, activityID, userID, time.Now())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("cancelling registration: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RegistrationCancelled()
	}
	s.record(ctx, reg, audit.KindRegistrationCancelled, "seat released")
	s.publish(ctx, "registration.cancelled", reg)
	return nil
}

// IsRegistered reports whether the user holds an active seat.
func (s *Service) IsRegistered(ctx context.Context, activityID, userID string) (bool, error) {
	_, err := s.repo.GetActive(ctx, activityID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking registration: %w", err)
	}
	return true, nil
}

// Participants returns users holding an active seat, in registration order.
func (s *Service) Participants(ctx context.Context, activityID string) ([]user.User, error) {
	users, err := s.repo.Participants(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	return users, nil
}

// ListForUser returns the user's active registrations, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Registration, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	regs, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	return regs, nil
}

// Pay charges the activity fee through the payment gateway and marks the
// registration paid.
func (s *Service) Pay(ctx context.Context, registrationID, userID string, method PaymentMethod) (*Registration, error) {
	if _, ok := ParsePaymentMethod(string(method)); !ok {
		return nil, ErrInvalidInput
	}
	reg, err := s.repo.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("getting registration: %w", err)
	}
	if reg.UserID != userID {
		return nil, ErrNotOwner
	}
	if !reg.Active() {
		return nil, ErrRegistrationNotFound
	}
	if reg.PaymentStatus == PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	fee, err := s.repo.ActivityFee(ctx, reg.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("getting activity fee: %w", err)
	}
	if fee > 0 && s.payments != nil {
		if _, err := s.payments.CreatePayment(ctx, reg.ID, string(method), fee); err != nil {
			return nil, fmt.Errorf("creating payment: %w", err)
		}
	}

	if err := s.repo.UpdatePayment(ctx, reg.ID, method, PaymentPaid); err != nil {
		return nil, fmt.Errorf("updating payment: %w", err)
	}
	reg.PaymentMethod = &method
	reg.PaymentStatus = PaymentPaid

	s.record(ctx, reg, audit.KindRegistrationPaid, fmt.Sprintf("paid %.2f via %s", fee, method))
	return reg, nil
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.RegistrationAttempt(outcome)
	}
}

func (s *Service) record(ctx context.Context, reg *Registration, kind audit.Kind, summary string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, &audit.Entry{
		ActivityID: reg.ActivityID,
		UserID:     reg.UserID,
		Kind:       kind,
		Summary:    summary,
		CreatedAt:  time.Now(),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("recording registration audit entry failed", "registration_id", reg.ID, "kind", kind, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, routingKey string, reg *Registration) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, routingKey, reg); err != nil && s.logger != nil {
		s.logger.Warn("publishing registration event failed", "routing_key", routingKey, "registration_id", reg.ID, "error", err)
	}
}

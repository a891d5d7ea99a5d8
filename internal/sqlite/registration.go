package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/repository"
)

const registrationColumns = `
	reg.id, reg.activity_id, reg.user_id, reg.status, reg.payment_method,
	reg.payment_status, reg.registered_at, reg.cancelled_at`

// RegistrationRepository implements registration.Repository for SQLite
type RegistrationRepository struct {
	db *DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register claims a seat and inserts the registration in one transaction.
//
// The seat is claimed by a conditional update that only matches an OPEN
// activity with a free seat, so the counter can never pass capacity. Errors:
// repository.ErrConflict for an existing active registration,
// repository.ErrNotFound for an unknown activity, repository.ErrNotOpen for a
// cancelled or completed activity, repository.ErrCapacityExhausted when full.
func (r *RegistrationRepository) Register(ctx context.Context, reg *registration.Registration) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM registrations
			WHERE activity_id = ? AND user_id = ? AND status <> 'CANCELLED'
		`, reg.ActivityID, reg.UserID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check registration: %w", err)
		}
		if exists > 0 {
			return repository.ErrConflict
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE activities SET
				current_participants = current_participants + 1,
				status = CASE WHEN current_participants + 1 >= max_participants THEN 'FULL' ELSE status END,
				updated_at = ?
			WHERE id = ? AND status = 'OPEN' AND current_participants < max_participants
		`, time.Now().UTC(), reg.ActivityID)
		if err != nil {
			return fmt.Errorf("failed to claim seat: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return whySeatUnavailable(ctx, tx, reg.ActivityID)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO registrations (id, activity_id, user_id, status, payment_method, payment_status, registered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			reg.ID,
			reg.ActivityID,
			reg.UserID,
			reg.Status,
			reg.PaymentMethod,
			reg.PaymentStatus,
			reg.RegisteredAt.UTC(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrConflict
			}
			if isForeignKeyViolation(err) {
				return repository.ErrInvalidInput
			}
			return fmt.Errorf("failed to insert registration: %w", err)
		}
		return nil
	})
}

func whySeatUnavailable(ctx context.Context, tx *sql.Tx, activityID string) error {
	var status string
	err := tx.QueryRowContext(ctx, `SELECT status FROM activities WHERE id = ?`, activityID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get activity status: %w", err)
	}
	if status == "CANCELLED" || status == "COMPLETED" {
		return repository.ErrNotOpen
	}
	return repository.ErrCapacityExhausted
}

// Cancel marks the active registration cancelled and recomputes the activity
// counter from the remaining active registrations, in one transaction.
func (r *RegistrationRepository) Cancel(ctx context.Context, activityID, userID string, at time.Time) (*registration.Registration, error) {
	var reg *registration.Registration
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + registrationColumns + ` FROM registrations reg
			WHERE reg.activity_id = ? AND reg.user_id = ? AND reg.status <> 'CANCELLED'`
		found, err := scanRegistration(tx.QueryRowContext(ctx, query, activityID, userID))
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get registration: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE registrations SET
				status = 'CANCELLED',
				cancelled_at = ?,
				payment_status = CASE WHEN payment_status = 'PAID' THEN 'REFUNDED' ELSE payment_status END
			WHERE id = ?
		`, at.UTC(), found.ID)
		if err != nil {
			return fmt.Errorf("failed to cancel registration: %w", err)
		}

		var live int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM registrations WHERE activity_id = ? AND status <> 'CANCELLED'
		`, activityID).Scan(&live)
		if err != nil {
			return fmt.Errorf("failed to count registrations: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE activities SET
				current_participants = ?,
				status = CASE
					WHEN status IN ('OPEN', 'FULL') THEN
						CASE WHEN ? >= max_participants THEN 'FULL' ELSE 'OPEN' END
					ELSE status
				END,
				updated_at = ?
			WHERE id = ?
		`, live, live, at.UTC(), activityID)
		if err != nil {
			return fmt.Errorf("failed to recount participants: %w", err)
		}

		cancelledAt := at.UTC()
		found.Status = registration.StatusCancelled
		found.CancelledAt = &cancelledAt
		if found.PaymentStatus == registration.PaymentPaid {
			found.PaymentStatus = registration.PaymentRefunded
		}
		reg = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Get retrieves a registration by ID
func (r *RegistrationRepository) Get(ctx context.Context, id string) (*registration.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations reg WHERE reg.id = ?`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// GetActive retrieves the user's non-cancelled registration for an activity
func (r *RegistrationRepository) GetActive(ctx context.Context, activityID, userID string) (*registration.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations reg
		WHERE reg.activity_id = ? AND reg.user_id = ? AND reg.status <> 'CANCELLED'`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, activityID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// ListForUser returns the user's non-cancelled registrations, newest first
func (r *RegistrationRepository) ListForUser(ctx context.Context, userID string) ([]registration.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations reg
		WHERE reg.user_id = ? AND reg.status <> 'CANCELLED'
		ORDER BY reg.registered_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []registration.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return regs, nil
}

// Participants returns users with an active registration, earliest first
func (r *RegistrationRepository) Participants(ctx context.Context, activityID string) ([]user.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		JOIN registrations reg ON reg.user_id = u.id
		WHERE reg.activity_id = ? AND reg.status <> 'CANCELLED'
		ORDER BY reg.registered_at ASC`
	rows, err := r.db.QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return users, nil
}

// UpdatePayment records the payment method and status
func (r *RegistrationRepository) UpdatePayment(ctx context.Context, id string, method registration.PaymentMethod, status registration.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET payment_method = ?, payment_status = ? WHERE id = ?`,
		method, status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return requireRow(result)
}

// ActivityFee returns the fee of an activity
func (r *RegistrationRepository) ActivityFee(ctx context.Context, activityID string) (float64, error) {
	var fee float64
	err := r.db.QueryRowContext(ctx, `SELECT fee FROM activities WHERE id = ?`, activityID).Scan(&fee)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get activity fee: %w", err)
	}
	return fee, nil
}

func scanRegistration(row rowScanner) (*registration.Registration, error) {
	var reg registration.Registration
	var method sql.NullString
	var cancelledAt sql.NullTime
	if err := row.Scan(
		&reg.ID,
		&reg.ActivityID,
		&reg.UserID,
		&reg.Status,
		&method,
		&reg.PaymentStatus,
		&reg.RegisteredAt,
		&cancelledAt,
	); err != nil {
		return nil, err
	}
	if method.Valid {
		m := registration.PaymentMethod(method.String)
		reg.PaymentMethod = &m
	}
	if cancelledAt.Valid {
		reg.CancelledAt = &cancelledAt.Time
	}
	return &reg, nil
}

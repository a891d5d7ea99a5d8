package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/repository"
)

const activityColumns = `
	a.id, a.type, a.title, a.creator_id, a.club_id, a.location, a.latitude, a.longitude,
	a.start_time, a.end_time, a.duration_minutes, a.max_participants, a.current_participants,
	a.fee, a.skill_level, a.category, a.description, a.images, a.creator_participates,
	a.status, a.created_at, a.updated_at`

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new activity. A non-empty creatorSeatID also stores the
// creator's confirmed registration in the same transaction.
func (r *ActivityRepository) Create(ctx context.Context, act *activity.Activity, creatorSeatID string) error {
	images, err := encodeStrings(act.Images)
	if err != nil {
		return err
	}

	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO activities (
				id, type, title, creator_id, club_id, location, latitude, longitude,
				start_time, end_time, duration_minutes, max_participants, current_participants,
				fee, skill_level, category, description, images, creator_participates,
				status, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, query,
			act.ID,
			act.Type,
			act.Title,
			act.CreatorID,
			act.ClubID,
			nullString(act.Location),
			act.Latitude,
			act.Longitude,
			act.StartTime.UTC(),
			act.EndTime.UTC(),
			act.DurationMinutes,
			act.MaxParticipants,
			act.CurrentParticipants,
			act.Fee,
			nullString(act.SkillLevel),
			nullString(act.Category),
			nullString(act.Description),
			images,
			act.CreatorParticipates,
			act.Status,
			act.CreatedAt.UTC(),
			act.UpdatedAt.UTC(),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			if isUniqueViolation(err) {
				return repository.ErrConflict
			}
			return fmt.Errorf("failed to create activity: %w", err)
		}

		if creatorSeatID == "" {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO registrations (id, activity_id, user_id, status, payment_status, registered_at)
			VALUES (?, ?, ?, 'CONFIRMED', 'UNPAID', ?)
		`, creatorSeatID, act.ID, act.CreatorID, act.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to register creator: %w", err)
		}
		return nil
	})
}

// Get retrieves an activity by ID
func (r *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.id = ?`
	act, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return act, nil
}

// Update writes editable fields. Occupancy is never written here; the OPEN/FULL
// status is recomputed against the stored counter and the update is refused
// when the new capacity is below it.
func (r *ActivityRepository) Update(ctx context.Context, act *activity.Activity) error {
	images, err := encodeStrings(act.Images)
	if err != nil {
		return err
	}

	query := `
		UPDATE activities SET
			title = ?, location = ?, start_time = ?, end_time = ?, duration_minutes = ?,
			max_participants = ?, fee = ?, skill_level = ?, category = ?, description = ?,
			images = ?, updated_at = ?,
			status = CASE
				WHEN status IN ('OPEN', 'FULL') THEN
					CASE WHEN current_participants >= ? THEN 'FULL' ELSE 'OPEN' END
				ELSE status
			END
		WHERE id = ? AND current_participants <= ?
	`
	result, err := r.db.ExecContext(ctx, query,
		act.Title,
		nullString(act.Location),
		act.StartTime.UTC(),
		act.EndTime.UTC(),
		act.DurationMinutes,
		act.MaxParticipants,
		act.Fee,
		nullString(act.SkillLevel),
		nullString(act.Category),
		nullString(act.Description),
		images,
		act.UpdatedAt.UTC(),
		act.MaxParticipants,
		act.ID,
		act.MaxParticipants,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.Get(ctx, act.ID); err != nil {
			return err
		}
		return repository.ErrCapacityExhausted
	}
	return nil
}

// UpdateStatus sets the lifecycle status
func (r *ActivityRepository) UpdateStatus(ctx context.Context, id string, status activity.Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE activities SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity status: %w", err)
	}
	return requireRow(result)
}

// Delete removes an activity; registrations, comments and ratings cascade.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return requireRow(result)
}

// ListOpen returns OPEN activities of a type starting in [From, Until), earliest first.
func (r *ActivityRepository) ListOpen(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	where, args := openFilter(opts)
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE ` + where + ` ORDER BY a.start_time ASC`
	return r.query(ctx, query, args...)
}

// StartTimes returns the start times of the activities ListOpen would return.
func (r *ActivityRepository) StartTimes(ctx context.Context, opts activity.ListOptions) ([]time.Time, error) {
	where, args := openFilter(opts)
	rows, err := r.db.QueryContext(ctx, `SELECT a.start_time FROM activities a WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list start times: %w", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var start time.Time
		if err := rows.Scan(&start); err != nil {
			return nil, fmt.Errorf("failed to scan start time: %w", err)
		}
		starts = append(starts, start)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating start times: %w", err)
	}
	return starts, nil
}

// ListByCreator returns a creator's activities, latest start first.
func (r *ActivityRepository) ListByCreator(ctx context.Context, creatorID string, typ *activity.Type) ([]activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.creator_id = ?`
	args := []interface{}{creatorID}
	if typ != nil {
		query += ` AND a.type = ?`
		args = append(args, *typ)
	}
	query += ` ORDER BY a.start_time DESC`
	return r.query(ctx, query, args...)
}

// ListRegistered returns activities the user holds an active registration for.
func (r *ActivityRepository) ListRegistered(ctx context.Context, userID string) ([]activity.Activity, error) {
	query := `SELECT ` + activityColumns + `
		FROM activities a
		JOIN registrations reg ON reg.activity_id = a.id
		WHERE reg.user_id = ? AND reg.status <> 'CANCELLED'
		ORDER BY reg.registered_at DESC`
	return r.query(ctx, query, userID)
}

func openFilter(opts activity.ListOptions) (string, []interface{}) {
	conditions := []string{"a.type = ?", "a.status = 'OPEN'", "a.start_time >= ?"}
	args := []interface{}{opts.Type, opts.From.UTC()}
	if opts.Until != nil {
		conditions = append(conditions, "a.start_time < ?")
		args = append(args, opts.Until.UTC())
	}
	return strings.Join(conditions, " AND "), args
}

func (r *ActivityRepository) query(ctx context.Context, query string, args ...interface{}) ([]activity.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var acts []activity.Activity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		acts = append(acts, *act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return acts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*activity.Activity, error) {
	var act activity.Activity
	var clubID, location, skillLevel, category, description sql.NullString
	var lat, lng sql.NullFloat64
	var images string
	if err := row.Scan(
		&act.ID,
		&act.Type,
		&act.Title,
		&act.CreatorID,
		&clubID,
		&location,
		&lat,
		&lng,
		&act.StartTime,
		&act.EndTime,
		&act.DurationMinutes,
		&act.MaxParticipants,
		&act.CurrentParticipants,
		&act.Fee,
		&skillLevel,
		&category,
		&description,
		&images,
		&act.CreatorParticipates,
		&act.Status,
		&act.CreatedAt,
		&act.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if clubID.Valid {
		act.ClubID = &clubID.String
	}
	if lat.Valid && lng.Valid {
		act.Latitude = &lat.Float64
		act.Longitude = &lng.Float64
	}
	act.Location = location.String
	act.SkillLevel = skillLevel.String
	act.Category = category.String
	act.Description = description.String

	decoded, err := decodeStrings(images)
	if err != nil {
		return nil, err
	}
	act.Images = decoded
	return &act, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

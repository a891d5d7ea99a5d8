package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/repository"
)

// RatingRepository implements comment.RatingRepository for SQLite
type RatingRepository struct {
	db *DB
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert stores a rating, replacing the user's earlier score for the activity.
// On replace the stored row keeps its original ID, which is copied back into rt.
func (r *RatingRepository) Upsert(ctx context.Context, rt *comment.Rating) error {
	query := `
		INSERT INTO ratings (id, activity_id, user_id, score, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(activity_id, user_id) DO UPDATE SET
			score = excluded.score,
			comment = excluded.comment,
			created_at = excluded.created_at
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		rt.ID,
		rt.ActivityID,
		rt.UserID,
		rt.Score,
		nullString(rt.Comment),
		rt.CreatedAt.UTC(),
	).Scan(&rt.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

// Get retrieves the user's rating of an activity
func (r *RatingRepository) Get(ctx context.Context, activityID, userID string) (*comment.Rating, error) {
	var rt comment.Rating
	var remark sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, activity_id, user_id, score, comment, created_at
		FROM ratings WHERE activity_id = ? AND user_id = ?
	`, activityID, userID).Scan(
		&rt.ID,
		&rt.ActivityID,
		&rt.UserID,
		&rt.Score,
		&remark,
		&rt.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	rt.Comment = remark.String
	return &rt, nil
}

// Summary returns the average score and rating count of an activity
func (r *RatingRepository) Summary(ctx context.Context, activityID string) (comment.RatingSummary, error) {
	var sum comment.RatingSummary
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(score), COUNT(*) FROM ratings WHERE activity_id = ?`, activityID,
	).Scan(&avg, &sum.Count)
	if err != nil {
		return comment.RatingSummary{}, fmt.Errorf("failed to summarise ratings: %w", err)
	}
	sum.Average = avg.Float64
	return sum, nil
}

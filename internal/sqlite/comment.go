package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/repository"
)

const commentColumns = `
	id, activity_id, user_id, user_name, user_avatar, content, rating, created_at, updated_at`

// CommentRepository implements comment.Repository for SQLite
type CommentRepository struct {
	db *DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `INSERT INTO comments (` + commentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ActivityID,
		c.UserID,
		c.UserName,
		nullString(c.UserAvatar),
		c.Content,
		c.Rating,
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Get retrieves a comment by ID
func (r *CommentRepository) Get(ctx context.Context, id string) (*comment.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireRow(result)
}

// ListByActivity returns an activity's comments, newest first
func (r *CommentRepository) ListByActivity(ctx context.Context, activityID string) ([]comment.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE activity_id = ? ORDER BY created_at DESC`, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

func scanComment(row rowScanner) (*comment.Comment, error) {
	var c comment.Comment
	var avatar sql.NullString
	var rating sql.NullInt64
	if err := row.Scan(
		&c.ID,
		&c.ActivityID,
		&c.UserID,
		&c.UserName,
		&avatar,
		&c.Content,
		&rating,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.UserAvatar = avatar.String
	if rating.Valid {
		score := int(rating.Int64)
		c.Rating = &score
	}
	return &c, nil
}

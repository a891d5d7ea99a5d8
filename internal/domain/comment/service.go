package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/qiuyou/courtside/internal/repository"
)

// Service handles comments and ratings on activities.
type Service struct {
	comments Repository
	ratings  RatingRepository
	authors  Authors
	logger   *slog.Logger
}

// NewService creates a new comment service.
func NewService(comments Repository, ratings RatingRepository, authors Authors, logger *slog.Logger) *Service {
	return &Service{comments: comments, ratings: ratings, authors: authors, logger: logger}
}

// PostRequest defines comment inputs.
type PostRequest struct {
	ActivityID string
	UserID     string
	Content    string
	Rating     *int
}

// Post stores a sanitized comment with the author's current display name.
func (s *Service) Post(ctx context.Context, req PostRequest) (*Comment, error) {
	if strings.TrimSpace(req.ActivityID) == "" || strings.TrimSpace(req.UserID) == "" {
		return nil, ErrInvalidInput
	}
	content := SanitizeContent(req.Content)
	if content == "" || utf8.RuneCountInString(content) > MaxContentLength {
		return nil, ErrInvalidInput
	}
	if req.Rating != nil && !validScore(*req.Rating) {
		return nil, ErrInvalidScore
	}

	author, err := s.authors.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolving author: %w", err)
	}

	now := time.Now()
	c := &Comment{
		ID:         uuid.NewString(),
		ActivityID: req.ActivityID,
		UserID:     req.UserID,
		UserName:   author.Nickname,
		UserAvatar: author.Avatar,
		Content:    content,
		Rating:     req.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return c, nil
}

// List returns an activity's comments, newest first.
func (s *Service) List(ctx context.Context, activityID string) ([]Comment, error) {
	comments, err := s.comments.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Delete removes a comment written by the actor.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	c, err := s.comments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("getting comment: %w", err)
	}
	if c.UserID != actorID {
		return ErrNotAuthor
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

// Rate records the user's score for an activity, replacing an earlier one.
func (s *Service) Rate(ctx context.Context, activityID, userID string, score int, remark string) (*Rating, error) {
	if strings.TrimSpace(activityID) == "" || strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	if !validScore(score) {
		return nil, ErrInvalidScore
	}
	r := &Rating{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		Score:      score,
		Comment:    SanitizeContent(remark),
		CreatedAt:  time.Now(),
	}
	if err := s.ratings.Upsert(ctx, r); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("rating activity: %w", err)
	}
	return r, nil
}

// Summary returns the average score and number of ratings.
func (s *Service) Summary(ctx context.Context, activityID string) (RatingSummary, error) {
	sum, err := s.ratings.Summary(ctx, activityID)
	if err != nil {
		return RatingSummary{}, fmt.Errorf("summarising ratings: %w", err)
	}
	return sum, nil
}

// UserRating returns the user's own rating of an activity.
func (s *Service) UserRating(ctx context.Context, activityID, userID string) (*Rating, error) {
	r, err := s.ratings.Get(ctx, activityID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("getting rating: %w", err)
	}
	return r, nil
}

func validScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

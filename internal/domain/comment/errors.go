package comment

import "errors"

var (
	// ErrCommentNotFound indicates the comment doesn't exist.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrRatingNotFound indicates the user has not rated the activity.
	ErrRatingNotFound = errors.New("rating not found")
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput indicates invalid input for comment operations.
	ErrInvalidInput = errors.New("invalid comment input")
	// ErrInvalidScore indicates a rating outside 1..5.
	ErrInvalidScore = errors.New("rating must be between 1 and 5")
	// ErrNotAuthor indicates the comment belongs to another user.
	ErrNotAuthor = errors.New("only the author can delete this comment")
)

package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/domain/venue"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

var (
	_ activity.Repository      = (*ActivityRepository)(nil)
	_ registration.Repository  = (*RegistrationRepository)(nil)
	_ user.Repository          = (*UserRepository)(nil)
	_ venue.Repository         = (*VenueRepository)(nil)
	_ venue.ClubRepository     = (*ClubRepository)(nil)
	_ comment.Repository       = (*CommentRepository)(nil)
	_ comment.RatingRepository = (*RatingRepository)(nil)
	_ audit.Repository         = (*AuditRepository)(nil)
)

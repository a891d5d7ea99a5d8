package mcp

import (
	"errors"
	"fmt"

	"github.com/qiuyou/courtside/internal/i18n"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var codeNames = map[int]string{
	i18n.CodeInvalidInput:   "INVALID_INPUT",
	i18n.CodeUnauthorized:   "UNAUTHORIZED",
	i18n.CodeBadCredentials: "BAD_CREDENTIALS",
	i18n.CodeForbidden:      "FORBIDDEN",
	i18n.CodeNotFound:       "NOT_FOUND",
	i18n.CodeConflict:       "CONFLICT",
	i18n.CodeActivityFull:   "ACTIVITY_FULL",
	i18n.CodeActivityClosed: "ACTIVITY_CLOSED",
	i18n.CodeInvalidState:   "INVALID_STATE",
	i18n.CodeTimeout:        "TIMEOUT",
}

var recoveryHints = map[int]string{
	i18n.CodeNotFound:       "Check the ID with list_activities",
	i18n.CodeActivityFull:   "Pick another activity or wait for a seat to free up",
	i18n.CodeActivityClosed: "The activity was cancelled or completed",
	i18n.CodeInvalidState:   "Only open activities can be cancelled or completed",
	i18n.CodeForbidden:      "Only the owner can do this",
}

// MapError maps domain errors to MCP error codes. Unrecognized errors
// return nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	p := i18n.Describe(err)
	name, ok := codeNames[p.Code]
	if !ok {
		return nil
	}
	return &APIError{
		Code:         name,
		Message:      p.Message(i18n.English),
		Details:      err.Error(),
		RecoveryHint: recoveryHints[p.Code],
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

var errUnknownTool = errors.New("unknown tool")

package i18n

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/text/language"

	"github.com/qiuyou/courtside/internal/auth"
	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/qiuyou/courtside/internal/remote"
	"github.com/qiuyou/courtside/internal/repository"
)

// Business codes carried in response envelopes.
const (
	CodeOK             = 0
	CodeInvalidInput   = 40000
	CodeUnauthorized   = 40100
	CodeBadCredentials = 40101
	CodeForbidden      = 40300
	CodeNotFound       = 40400
	CodeConflict       = 40900
	CodeActivityFull   = 40901
	CodeActivityClosed = 40902
	CodeInvalidState   = 40903
	CodeRateLimited    = 42900
	CodeInternal       = 50000
	CodeTimeout        = 50400
)

// Problem describes how an error is presented to a caller.
type Problem struct {
	Status int
	Code   int
	Key    string
}

// Message renders the problem in the given language.
func (p Problem) Message(tag language.Tag) string {
	return Text(tag, p.Key)
}

type rule struct {
	target  error
	problem Problem
}

var rules = []rule{
	{activity.ErrActivityNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyActivityNotFound}},
	{registration.ErrActivityNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyActivityNotFound}},
	{comment.ErrActivityNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyActivityNotFound}},
	{registration.ErrRegistrationNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyRegistrationNotFound}},
	{user.ErrUserNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyUserNotFound}},
	{comment.ErrCommentNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyCommentNotFound}},
	{comment.ErrRatingNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyRatingNotFound}},
	{venue.ErrVenueNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyVenueNotFound}},
	{venue.ErrClubNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyClubNotFound}},
	{remote.ErrPaymentNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyPaymentNotFound}},
	{repository.ErrNotFound, Problem{http.StatusNotFound, CodeNotFound, KeyNotFound}},

	{registration.ErrAlreadyRegistered, Problem{http.StatusConflict, CodeConflict, KeyAlreadyRegistered}},
	{registration.ErrAlreadyPaid, Problem{http.StatusConflict, CodeConflict, KeyAlreadyPaid}},
	{user.ErrAccountExists, Problem{http.StatusConflict, CodeConflict, KeyAccountExists}},
	{registration.ErrActivityFull, Problem{http.StatusConflict, CodeActivityFull, KeyActivityFull}},
	{registration.ErrActivityClosed, Problem{http.StatusConflict, CodeActivityClosed, KeyActivityClosed}},
	{activity.ErrInvalidTransition, Problem{http.StatusConflict, CodeInvalidState, KeyInvalidTransition}},

	{activity.ErrNotCreator, Problem{http.StatusForbidden, CodeForbidden, KeyNotCreator}},
	{comment.ErrNotAuthor, Problem{http.StatusForbidden, CodeForbidden, KeyNotAuthor}},
	{registration.ErrNotOwner, Problem{http.StatusForbidden, CodeForbidden, KeyNotOwner}},

	{user.ErrInvalidCredentials, Problem{http.StatusUnauthorized, CodeBadCredentials, KeyInvalidCredentials}},
	{auth.ErrMissingToken, Problem{http.StatusUnauthorized, CodeUnauthorized, KeyUnauthorized}},
	{auth.ErrInvalidToken, Problem{http.StatusUnauthorized, CodeUnauthorized, KeyUnauthorized}},

	{activity.ErrInvalidTimeWindow, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidTimeWindow}},
	{activity.ErrInvalidCapacity, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidCapacity}},
	{comment.ErrInvalidScore, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidScore}},
	{remote.ErrInvalidCode, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidCode}},
	{remote.ErrInvalidImage, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidImage}},
	{remote.ErrInvalidAmount, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}},
	{activity.ErrInvalidInput, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}},
	{registration.ErrInvalidInput, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}},
	{user.ErrInvalidInput, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}},
	{comment.ErrInvalidInput, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}},
	{venue.ErrInvalidInput, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}},
	{repository.ErrInvalidInput, Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}},

	{context.DeadlineExceeded, Problem{http.StatusGatewayTimeout, CodeTimeout, KeyTimeout}},
}

var (
	// RateLimited is the problem reported when a caller is throttled.
	RateLimited = Problem{http.StatusTooManyRequests, CodeRateLimited, KeyRateLimited}
	// BadRequest is reported for undecodable requests.
	BadRequest = Problem{http.StatusBadRequest, CodeInvalidInput, KeyInvalidInput}
	// Unauthorized is reported when no user could be resolved.
	Unauthorized = Problem{http.StatusUnauthorized, CodeUnauthorized, KeyUnauthorized}
	// Internal is reported for anything unrecognized.
	Internal = Problem{http.StatusInternalServerError, CodeInternal, KeyInternal}
)

// Describe maps an error to its presentation. Unknown errors are internal.
func Describe(err error) Problem {
	for _, r := range rules {
		if errors.Is(err, r.target) {
			return r.problem
		}
	}
	return Internal
}

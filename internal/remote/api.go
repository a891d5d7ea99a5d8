// Package remote is the account and payment service the app talks to.
//
// Only an in-process Mock exists; it simulates network latency so callers
// exercise the same cancellation paths a real client would.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/qiuyou/courtside/internal/domain/user"
)

var (
	// ErrPaymentNotFound indicates an unknown payment ID.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInvalidImage indicates an upload with an unsupported type or size.
	ErrInvalidImage = errors.New("unsupported image")
	// ErrInvalidCode indicates a malformed verification code.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrInvalidAmount indicates a non-positive payment amount.
	ErrInvalidAmount = errors.New("invalid payment amount")
)

// PaymentState is the lifecycle of a remote payment.
type PaymentState string

const (
	PaymentPending   PaymentState = "PENDING"
	PaymentSucceeded PaymentState = "SUCCEEDED"
)

// Payment is a payment order created on the remote side.
type Payment struct {
	ID             string       `json:"id"`
	RegistrationID string       `json:"registration_id"`
	Method         string       `json:"method"`
	Amount         float64      `json:"amount"`
	State          PaymentState `json:"state"`
	CreatedAt      time.Time    `json:"created_at"`
}

// WechatProfile is what the WeChat authorization step hands back.
type WechatProfile struct {
	OpenID   string `json:"open_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// API is the remote contract: accounts, payments and uploads.
type API interface {
	Login(ctx context.Context, account, password string) (*user.Session, error)
	SignUp(ctx context.Context, req user.SignUpRequest) (*user.Session, error)
	LoginPhone(ctx context.Context, phone, code string) (*user.Session, error)
	LoginWechat(ctx context.Context, profile WechatProfile) (*user.Session, error)
	CreatePayment(ctx context.Context, registrationID, method string, amount float64) (string, error)
	PaymentStatus(ctx context.Context, paymentID string) (*Payment, error)
	UploadImage(ctx context.Context, filename string, size int64) (string, error)
}

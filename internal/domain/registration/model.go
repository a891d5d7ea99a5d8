package registration

import (
	"strings"
	"time"
)

// Status is the state of a user's claim on a seat.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// PaymentMethod identifies how a fee is paid.
type PaymentMethod string

const (
	PaymentWechat PaymentMethod = "WECHAT"
	PaymentAlipay PaymentMethod = "ALIPAY"
	PaymentBank   PaymentMethod = "BANK"
)

// ParsePaymentMethod validates a payment method label.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case PaymentWechat, PaymentAlipay, PaymentBank:
		return m, true
	}
	return "", false
}

// PaymentStatus tracks the fee of a registration.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Registration links a user to one seat in an activity.
type Registration struct {
	ID            string         `json:"id"`
	ActivityID    string         `json:"activity_id"`
	UserID        string         `json:"user_id"`
	Status        Status         `json:"status"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	RegisteredAt  time.Time      `json:"registered_at"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
}

// Active reports whether the registration still holds a seat.
func (r *Registration) Active() bool {
	return r.Status != StatusCancelled
}

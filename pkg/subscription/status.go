package subscription

import (
	"strings"
	"time"
)

// Status is the derived subscription status. Exactly one holds at a time.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusCanceled Status = "canceled"
	StatusInactive Status = "inactive"
	StatusError    Status = "error"
)

// Profile is the subscription part of a row in the profiles table.
type Profile struct {
	UserID               string     `json:"user_id"`
	Status               string     `json:"subscription_status"`
	ExpiresAt            *time.Time `json:"subscription_expires_at,omitempty"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id,omitempty"`
}

// State is a snapshot of a user's subscription.
type State struct {
	Status               Status     `json:"status"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
	IsActive             bool       `json:"is_active"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id,omitempty"`
	Err                  error      `json:"-"`
}

// Loading is the state before the first lookup resolves.
func Loading() State { return State{Status: StatusLoading} }

// Inactive is the state of a user without a subscription.
func Inactive() State { return State{Status: StatusInactive} }

// Failed is the state after a lookup error.
func Failed(err error) State { return State{Status: StatusError, Err: err} }

// ParseStatus maps a stored status string onto a Status. Unknown values are
// inactive.
func ParseStatus(stored string) Status {
	switch strings.ToLower(strings.TrimSpace(stored)) {
	case "active":
		return StatusActive
	case "pending":
		return StatusPending
	case "canceled", "cancelled":
		return StatusCanceled
	default:
		return StatusInactive
	}
}

// Derive computes the state of p at now. A nil profile is inactive.
// IsActive requires a stored "active" status and either no expiration or
// one strictly after now, so an expired active row keeps StatusActive but
// is not IsActive.
func Derive(p *Profile, now time.Time) State {
	if p == nil {
		return Inactive()
	}
	status := ParseStatus(p.Status)
	return State{
		Status:               status,
		ExpiresAt:            p.ExpiresAt,
		IsActive:             status == StatusActive && (p.ExpiresAt == nil || p.ExpiresAt.After(now)),
		StripeCustomerID:     p.StripeCustomerID,
		StripeSubscriptionID: p.StripeSubscriptionID,
	}
}

// Equal compares the observable parts of two states. Errors are compared
// by message.
func (s State) Equal(o State) bool {
	if s.Status != o.Status || s.IsActive != o.IsActive ||
		s.StripeCustomerID != o.StripeCustomerID || s.StripeSubscriptionID != o.StripeSubscriptionID {
		return false
	}
	if (s.ExpiresAt == nil) != (o.ExpiresAt == nil) {
		return false
	}
	if s.ExpiresAt != nil && !s.ExpiresAt.Equal(*o.ExpiresAt) {
		return false
	}
	if (s.Err == nil) != (o.Err == nil) {
		return false
	}
	return s.Err == nil || s.Err.Error() == o.Err.Error()
}

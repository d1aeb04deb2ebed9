package billing

import "context"

// Customer is a provider customer record.
type Customer struct {
	ID    string
	Email string
}

// Subscription is a provider subscription record.
type Subscription struct {
	ID         string
	CustomerID string
	Status     string
}

// Gateway is the payment provider port.
type Gateway interface {
	// FindCustomerByEmail returns the first customer with the given email,
	// or nil, nil when there is none.
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	// FindActiveSubscription returns one active subscription of the
	// customer, or nil, nil when there is none.
	FindActiveSubscription(ctx context.Context, customerID string) (*Subscription, error)
	// Name identifies the provider in logs and metrics.
	Name() string
}

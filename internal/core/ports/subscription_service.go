package ports

import (
	"context"
	"time"
)

// Plan describes a purchasable subscription tier.
type Plan struct {
	ID       string
	Name     string
	Amount   int64 // minor currency units
	Currency string
	Duration time.Duration
}

// OrderResult is returned after creating a payment order with the gateway.
type OrderResult struct {
	OrderID  string
	Amount   int64
	Currency string
	KeyID    string
}

// VerifyPaymentInput carries the gateway callback fields needed to confirm a
// payment and activate the subscription.
type VerifyPaymentInput struct {
	UserID    string
	PlanID    string
	OrderID   string
	PaymentID string
	Signature string
}

// SubscriptionStatus is the read-side billing state of a user.
type SubscriptionStatus struct {
	Plan    string
	EndDate time.Time
	Active  bool
}

// SubscriptionService handles plan listing, order creation, and payment
// verification. The payment protocol itself lives behind PaymentGateway.
type SubscriptionService interface {
	Plans() []Plan
	CreateOrder(ctx context.Context, userID, planID string) (*OrderResult, error)
	VerifyPayment(ctx context.Context, input VerifyPaymentInput) (*SubscriptionStatus, error)
	Status(ctx context.Context, userID string) (*SubscriptionStatus, error)
}

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillforge/lms-platform/internal/api/metrics"
	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// plans are fixed tiers; amounts are in minor currency units (paise).
var plans = []ports.Plan{
	{ID: "monthly", Name: "Monthly", Amount: 49900, Currency: "INR", Duration: 30 * 24 * time.Hour},
	{ID: "quarterly", Name: "Quarterly", Amount: 129900, Currency: "INR", Duration: 90 * 24 * time.Hour},
	{ID: "yearly", Name: "Yearly", Amount: 449900, Currency: "INR", Duration: 365 * 24 * time.Hour},
}

// SubscriptionService creates payment orders and activates subscriptions once
// the gateway confirms the payment signature.
type SubscriptionService struct {
	users   ports.UserRepository
	gateway ports.PaymentGateway
	log     zerolog.Logger
}

func NewSubscriptionService(users ports.UserRepository, gateway ports.PaymentGateway, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{users: users, gateway: gateway, log: log}
}

func (s *SubscriptionService) Plans() []ports.Plan {
	out := make([]ports.Plan, len(plans))
	copy(out, plans)
	return out
}

func planByID(id string) (ports.Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return ports.Plan{}, false
}

func (s *SubscriptionService) CreateOrder(ctx context.Context, userID, planID string) (*ports.OrderResult, error) {
	plan, ok := planByID(planID)
	if !ok {
		return nil, domain.ErrUnknownPlan
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("sub_%s_%s", plan.ID, user.ID)
	orderID, err := s.gateway.CreateOrder(ctx, plan.Amount, plan.Currency, receipt)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("plan", planID).Msg("order creation failed")
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("plan", planID).Str("order_id", orderID).Msg("payment order created")
	return &ports.OrderResult{
		OrderID:  orderID,
		Amount:   plan.Amount,
		Currency: plan.Currency,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

func (s *SubscriptionService) VerifyPayment(ctx context.Context, input ports.VerifyPaymentInput) (*ports.SubscriptionStatus, error) {
	plan, ok := planByID(input.PlanID)
	if !ok {
		return nil, domain.ErrUnknownPlan
	}

	if !s.gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		s.log.Warn().Str("user_id", input.UserID).Str("order_id", input.OrderID).Msg("payment signature rejected")
		return nil, domain.ErrPaymentInvalid
	}

	now := time.Now().UTC()
	sub := domain.Subscription{
		Plan:      plan.ID,
		StartDate: now,
		EndDate:   now.Add(plan.Duration),
	}
	if err := s.users.UpdateSubscription(ctx, input.UserID, sub); err != nil {
		return nil, err
	}

	metrics.SubscriptionsActivatedTotal.WithLabelValues(plan.ID).Inc()
	s.log.Info().Str("user_id", input.UserID).Str("plan", plan.ID).Time("until", sub.EndDate).Msg("subscription activated")
	return &ports.SubscriptionStatus{Plan: sub.Plan, EndDate: sub.EndDate, Active: true}, nil
}

func (s *SubscriptionService) Status(ctx context.Context, userID string) (*ports.SubscriptionStatus, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub := user.Subscription
	return &ports.SubscriptionStatus{
		Plan:    sub.Plan,
		EndDate: sub.EndDate,
		Active:  sub.ActiveAt(time.Now().UTC()),
	}, nil
}

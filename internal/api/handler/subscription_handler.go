package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillforge/lms-platform/internal/core/ports"
)

// SubscriptionHandler handles plan listing, order creation, and payment
// verification callbacks.
type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type createOrderRequest struct {
	Plan string `json:"plan" validate:"required"`
}

type verifyPaymentRequest struct {
	Plan              string `json:"plan"              validate:"required"`
	RazorpayOrderID   string `json:"razorpayOrderId"   validate:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature" validate:"required"`
}

type orderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

type subscriptionStatusResponse struct {
	Plan    string `json:"plan,omitempty"`
	EndDate string `json:"endDate,omitempty"`
	Active  bool   `json:"active"`
}

// Plans handles GET /subscription/plans.
//
// @Summary      List subscription plans
// @Tags         subscription
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /subscription/plans [get]
func (h *SubscriptionHandler) Plans(c echo.Context) error {
	type planItem struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Days     int    `json:"days"`
	}
	plans := h.service.Plans()
	items := make([]planItem, 0, len(plans))
	for _, p := range plans {
		items = append(items, planItem{
			ID:       p.ID,
			Name:     p.Name,
			Amount:   p.Amount,
			Currency: p.Currency,
			Days:     int(p.Duration.Hours() / 24),
		})
	}
	return c.JSON(http.StatusOK, envelope(items))
}

// CreateOrder handles POST /subscription/order.
//
// @Summary      Create a payment order for a plan
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Plan selection"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Router       /subscription/order [post]
func (h *SubscriptionHandler) CreateOrder(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.Request().Context(), user.ID, req.Plan)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope(orderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    order.KeyID,
	}))
}

// VerifyPayment handles POST /subscription/verify. A valid signature
// activates the plan for the authenticated user.
//
// @Summary      Verify a payment and activate the subscription
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyPaymentRequest  true  "Gateway callback fields"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Router       /subscription/verify [post]
func (h *SubscriptionHandler) VerifyPayment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := h.service.VerifyPayment(c.Request().Context(), ports.VerifyPaymentInput{
		UserID:    user.ID,
		PlanID:    req.Plan,
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toStatusResponse(status)))
}

// Status handles GET /subscription/status.
//
// @Summary      Get the authenticated user's subscription state
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /subscription/status [get]
func (h *SubscriptionHandler) Status(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	status, err := h.service.Status(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toStatusResponse(status)))
}

func toStatusResponse(s *ports.SubscriptionStatus) subscriptionStatusResponse {
	resp := subscriptionStatusResponse{Plan: s.Plan, Active: s.Active}
	if !s.EndDate.IsZero() {
		resp.EndDate = s.EndDate.UTC().Format(time.RFC3339)
	}
	return resp
}

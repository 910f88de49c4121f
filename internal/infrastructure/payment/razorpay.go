// Package payment adapts the Razorpay gateway behind the PaymentGateway port.
// Order creation and signature verification are the only operations the core
// needs; the payment protocol itself stays with the provider.
package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

type Gateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

func NewGateway(keyID, secret string) *Gateway {
	return &Gateway{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

// CreateOrder creates a gateway order and returns its id. Amount is in minor
// currency units.
func (g *Gateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order create: missing order id in response")
	}
	return id, nil
}

// VerifySignature checks the HMAC signature Razorpay attaches to a completed
// payment against the order/payment pair.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.secret)
}

func (g *Gateway) KeyID() string {
	return g.keyID
}

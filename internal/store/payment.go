package store

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// CreatePaymentIntent asks the platform for a provider intent covering the
// order total. The amount is converted to minor currency units here and
// nowhere else.
func (c *Client) CreatePaymentIntent(ctx context.Context, total decimal.Decimal, orderID, customerEmail string) (*models.PaymentIntent, error) {
	body := map[string]any{
		"amount":        total.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		"currency":      "usd",
		"orderId":       orderID,
		"customerEmail": customerEmail,
	}

	var intent models.PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payment/create-payment-intent", "", body, &intent, "Failed to create payment intent"); err != nil {
		return nil, err
	}
	return &intent, nil
}

package store

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// CreateOrder submits a fully-resolved draft. The platform assigns the
// orderId; a failure comes back with the server's message verbatim and is
// never retried here.
func (c *Client) CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/checkout", "", draft, &order, "Failed to create order"); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePaymentStatus marks an order paid or unpaid. This is best-effort
// bookkeeping: once the provider has reported a successful charge, callers
// log a failure here and move on.
func (c *Client) UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string) error {
	body := map[string]string{"paymentStatus": paymentStatus}
	return c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/payment-status", "", body, nil, "Failed to update payment status")
}

// OrderByID fetches a single order.
func (c *Client) OrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/checkout/"+url.PathEscape(orderID), "", nil, &order, "Failed to fetch order"); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrdersByCustomer looks up orders by the email or phone number they were
// placed with.
func (c *Client) OrdersByCustomer(ctx context.Context, contact string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/checkout/customer/"+url.PathEscape(contact), "", nil, &orders, "Failed to fetch orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.stripe.com"

// Card is the card input collected from the payment form. It goes straight
// to the provider; it is never sent to the platform API.
type Card struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// BillingDetails are derived from the order's sender.
type BillingDetails struct {
	Name  string
	Email string
	Phone string
}

// Intent is the provider's view of the payment after a confirmation attempt.
type Intent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ProviderError is an error reported by the payment provider. Card errors
// (declines, bad numbers) let the user try another card; anything else is the
// provider or the network misbehaving.
type ProviderError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Declined() bool {
	return e.Type == "card_error"
}

// Client confirms card payments directly with the provider using the
// publishable key plus the intent's client secret, the same two integration
// points the hosted card widget uses.
type Client struct {
	PublishableKey string
	APIBase        string
	HTTP           *http.Client

	mockMode bool
}

func NewClient(publishableKey string, mockMode bool) *Client {
	return &Client{
		PublishableKey: publishableKey,
		APIBase:        defaultAPIBase,
		HTTP:           &http.Client{Timeout: 30 * time.Second},
		mockMode:       mockMode,
	}
}

// intentIDFromSecret extracts the intent id, the prefix of a client secret
// shaped like pi_123_secret_456.
func intentIDFromSecret(clientSecret string) (string, error) {
	i := strings.Index(clientSecret, "_secret_")
	if !strings.HasPrefix(clientSecret, "pi_") || i < 0 {
		return "", &ProviderError{Type: "invalid_request_error", Message: "Malformed payment intent client secret."}
	}
	return clientSecret[:i], nil
}

// ConfirmCardPayment submits the card against the intent and waits for the
// synchronous result. It returns the intent on success or a *ProviderError
// describing the refusal.
func (c *Client) ConfirmCardPayment(ctx context.Context, clientSecret string, card Card, billing BillingDetails) (*Intent, error) {
	if c.mockMode {
		return c.mockConfirm(clientSecret, card)
	}

	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("key", c.PublishableKey)
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", card.ExpMonth)
	form.Set("payment_method_data[card][exp_year]", card.ExpYear)
	form.Set("payment_method_data[card][cvc]", card.CVC)
	form.Set("payment_method_data[billing_details][name]", billing.Name)
	form.Set("payment_method_data[billing_details][email]", billing.Email)
	form.Set("payment_method_data[billing_details][phone]", billing.Phone)

	endpoint := strings.TrimRight(c.APIBase, "/") + "/v1/payment_intents/" + intentID + "/confirm"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Intent
		Error *ProviderError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	if payload.Error != nil {
		return nil, payload.Error
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{Type: "api_error", Message: fmt.Sprintf("Payment provider returned status %d.", resp.StatusCode)}
	}

	return &Intent{ID: payload.ID, Status: payload.Status}, nil
}

// mockConfirm lets the flow run end to end without provider keys. The
// standard decline test number declines; everything else succeeds.
func (c *Client) mockConfirm(clientSecret string, card Card) (*Intent, error) {
	if card.Number == "4000000000000002" {
		return nil, &ProviderError{Type: "card_error", Code: "card_declined", Message: "Your card was declined."}
	}
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}
	return &Intent{ID: intentID, Status: "succeeded"}, nil
}

package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCard() Card {
	return Card{Number: "4242424242424242", ExpMonth: "12", ExpYear: "2030", CVC: "123"}
}

func testBilling() BillingDetails {
	return BillingDetails{Name: "Nuwan Perera", Email: "nuwan@example.com", Phone: "+94771234567"}
}

func newTestClient(apiBase string) *Client {
	c := NewClient("pk_test_123", false)
	c.APIBase = apiBase
	return c
}

func TestConfirmCardPayment_Succeeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_123/confirm", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pk_test_123", r.PostForm.Get("key"))
		assert.Equal(t, "pi_123_secret_456", r.PostForm.Get("client_secret"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_data[type]"))
		assert.Equal(t, "4242424242424242", r.PostForm.Get("payment_method_data[card][number]"))
		assert.Equal(t, "Nuwan Perera", r.PostForm.Get("payment_method_data[billing_details][name]"))
		assert.Equal(t, "+94771234567", r.PostForm.Get("payment_method_data[billing_details][phone]"))

		json.NewEncoder(w).Encode(map[string]string{"id": "pi_123", "status": "succeeded"})
	}))
	defer srv.Close()

	intent, err := newTestClient(srv.URL).ConfirmCardPayment(context.Background(), "pi_123_secret_456", testCard(), testBilling())
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
	assert.Equal(t, "pi_123", intent.ID)
}

func TestConfirmCardPayment_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"type":    "card_error",
				"code":    "card_declined",
				"message": "Your card was declined.",
			},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConfirmCardPayment(context.Background(), "pi_123_secret_456", testCard(), testBilling())
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Declined())
	assert.Equal(t, "Your card was declined.", pe.Message)
}

func TestConfirmCardPayment_NonCardErrorIsNotDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "api_error", "message": "Something went wrong."},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConfirmCardPayment(context.Background(), "pi_123_secret_456", testCard(), testBilling())
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.Declined())
}

func TestConfirmCardPayment_MalformedClientSecret(t *testing.T) {
	_, err := newTestClient("http://unused").ConfirmCardPayment(context.Background(), "not-a-secret", testCard(), testBilling())

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.Declined())
}

func TestMockMode(t *testing.T) {
	c := NewClient("", true)

	intent, err := c.ConfirmCardPayment(context.Background(), "pi_mock_secret_1", testCard(), testBilling())
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)

	declined := testCard()
	declined.Number = "4000000000000002"
	_, err = c.ConfirmCardPayment(context.Background(), "pi_mock_secret_1", declined, testBilling())

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Declined())
}

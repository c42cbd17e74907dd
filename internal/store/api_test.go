package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

func draftFixture() models.OrderDraft {
	return models.OrderDraft{
		DeliveryTime: models.DeliveryNow,
		Sender: models.Party{
			Title: "Mr", FirstName: "Nuwan", LastName: "Perera",
			Code: "+94", Mobile: "771234567", Email: "nuwan@example.com",
		},
		SameAsSender:  true,
		Address:       models.Address{Location: "Colombo", Details: "12 Galle Road"},
		PaymentMethod: models.PaymentMethodOnline,
		CartTotal:     decimal.NewFromFloat(35.97),
		TermsAgreed:   true,
	}
}

func TestCreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft models.OrderDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "nuwan@example.com", draft.Sender.Email)
		assert.True(t, draft.CartTotal.Equal(decimal.NewFromFloat(35.97)))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"orderId":       "ORD-1001",
				"sender":        draft.Sender,
				"paymentMethod": draft.PaymentMethod,
				"paymentStatus": models.PaymentStatusUnpaid,
			},
		})
	}))
	defer srv.Close()

	order, err := NewClient(srv.URL).CreateOrder(context.Background(), draftFixture())
	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", order.OrderID)
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
}

func TestCreateOrder_ServerMessageSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Restaurant is closed right now"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateOrder(context.Background(), draftFixture())
	require.Error(t, err)
	assert.Equal(t, "Restaurant is closed right now", err.Error())
}

func TestCreateOrder_NonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateOrder(context.Background(), draftFixture())
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 502", err.Error())
}

func TestCreatePaymentIntent_ConvertsToCents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment/create-payment-intent", r.URL.Path)

		var body struct {
			Amount        int64  `json:"amount"`
			Currency      string `json:"currency"`
			OrderID       string `json:"orderId"`
			CustomerEmail string `json:"customerEmail"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(3957), body.Amount)
		assert.Equal(t, "usd", body.Currency)
		assert.Equal(t, "ORD-1001", body.OrderID)
		assert.Equal(t, "nuwan@example.com", body.CustomerEmail)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"clientSecret": "pi_123_secret_456"},
		})
	}))
	defer srv.Close()

	intent, err := NewClient(srv.URL).CreatePaymentIntent(context.Background(), decimal.NewFromFloat(39.57), "ORD-1001", "nuwan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", intent.ClientSecret)
}

func TestUpdatePaymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/ORD-1001/payment-status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.PaymentStatusPaid, body["paymentStatus"])

		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdatePaymentStatus(context.Background(), "ORD-1001", models.PaymentStatusPaid)
	assert.NoError(t, err)
}

func TestMenuItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/menu", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"_id": "m1", "name": "Kottu", "price": 12.99, "available": true},
				{"_id": "m2", "name": "String Hoppers", "price": 9.99, "available": true},
			},
		})
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).MenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Kottu", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.NewFromFloat(12.99)))
}

func TestOrdersByCustomer_EscapesContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/customer/nuwan@example.com", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"orderId": "ORD-1001"}},
		})
	}))
	defer srv.Close()

	orders, err := NewClient(srv.URL).OrdersByCustomer(context.Background(), "nuwan@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-1001", orders[0].OrderID)
}

func TestProfile_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"id": "u1", "name": "Nuwan", "email": "nuwan@example.com"},
		})
	}))
	defer srv.Close()

	user, err := NewClient(srv.URL).Profile(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "nuwan@example.com", user.Email)
}

func TestLogin_FlatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Login successful", "token": "tok-123",
			"username": "nuwan", "email": "nuwan@example.com",
		})
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Login(context.Background(), "nuwan", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
}

func TestLogin_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "nuwan", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

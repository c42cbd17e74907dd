package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"github.com/jawa0111/horeo-foodapp/internal/checkout"
	"github.com/jawa0111/horeo-foodapp/internal/models"
	"github.com/jawa0111/horeo-foodapp/internal/payment"
)

// PaymentAPI is the slice of the platform client the payment page needs.
type PaymentAPI interface {
	CreatePaymentIntent(ctx context.Context, total decimal.Decimal, orderID, email string) (*models.PaymentIntent, error)
	UpdatePaymentStatus(ctx context.Context, orderID, status string) error
}

// CardConfirmer submits card details against a payment intent.
type CardConfirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, card payment.Card, billing payment.BillingDetails) (*payment.Intent, error)
}

type PaymentHandler struct {
	API          PaymentAPI
	Payments     CardConfirmer
	Attempts     checkout.AttemptStore
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// loadAttempt resolves the attempt referenced by the request. A missing or
// unknown attempt sends the visitor back to checkout.
func (h *PaymentHandler) loadAttempt(w http.ResponseWriter, r *http.Request) *checkout.Attempt {
	id := r.URL.Query().Get("attempt")
	if id == "" {
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return nil
	}
	attempt, err := h.Attempts.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, checkout.ErrAttemptNotFound) {
			slog.Error("Failed to load checkout attempt", "attempt", id, "error", err)
		}
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return nil
	}
	return attempt
}

// Page initializes the payment intent on first visit and renders the card
// form. Reloads reuse the stored intent instead of creating another one.
func (h *PaymentHandler) Page(w http.ResponseWriter, r *http.Request) {
	attempt := h.loadAttempt(w, r)
	if attempt == nil {
		return
	}

	if attempt.Flow.State == checkout.StateIdle {
		if err := attempt.Flow.Apply(checkout.EventStart); err != nil {
			slog.Error("Payment flow transition failed", "attempt", attempt.ID, "error", err)
			http.Redirect(w, r, "/checkout", http.StatusSeeOther)
			return
		}
		intent, err := h.API.CreatePaymentIntent(r.Context(), attempt.Total, attempt.Order.OrderID, attempt.Order.Sender.Email)
		if err != nil {
			slog.Error("Payment intent creation failed", "orderId", attempt.Order.OrderID, "error", err)
			attempt.Flow.Fail(checkout.EventIntentFailed, err.Error(), true)
		} else {
			attempt.ClientSecret = intent.ClientSecret
			attempt.Flow.Apply(checkout.EventIntentReady)
		}
		if err := h.Attempts.Save(r.Context(), attempt); err != nil {
			slog.Error("Failed to save checkout attempt", "attempt", attempt.ID, "error", err)
		}
	}

	h.render(w, r, attempt)
}

// Confirm submits the card form against the stored intent and, on success,
// reports the payment back to the platform before redirecting to the
// confirmation page.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	attempt := h.loadAttempt(w, r)
	if attempt == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		attempt.Flow.Reason = "Invalid form data."
		h.render(w, r, attempt)
		return
	}

	if err := attempt.Flow.Apply(checkout.EventSubmit); err != nil {
		attempt.Flow.Reason = "Payment is not ready to submit."
		h.render(w, r, attempt)
		return
	}

	card := payment.Card{
		Number:   strings.ReplaceAll(r.FormValue("cardNumber"), " ", ""),
		ExpMonth: r.FormValue("expMonth"),
		ExpYear:  r.FormValue("expYear"),
		CVC:      r.FormValue("cvc"),
	}
	sender := attempt.Order.Sender
	billing := payment.BillingDetails{
		Name:  sender.FirstName + " " + sender.LastName,
		Email: sender.Email,
		Phone: sender.Code + sender.Mobile,
	}

	intent, err := h.Payments.ConfirmCardPayment(r.Context(), attempt.ClientSecret, card, billing)
	if err != nil {
		msg := "Payment failed. Please try again."
		var pe *payment.ProviderError
		if errors.As(err, &pe) {
			msg = pe.Message
		}
		slog.Warn("Card confirmation failed", "orderId", attempt.Order.OrderID, "error", err)
		attempt.Flow.Fail(checkout.EventConfirmFailed, msg, false)
		if err := h.Attempts.Save(r.Context(), attempt); err != nil {
			slog.Error("Failed to save checkout attempt", "attempt", attempt.ID, "error", err)
		}
		h.render(w, r, attempt)
		return
	}

	if intent.Status != "succeeded" {
		slog.Warn("Payment not completed", "orderId", attempt.Order.OrderID, "status", intent.Status)
		attempt.Flow.Fail(checkout.EventConfirmFailed, "Payment failed. Please try again.", false)
		if err := h.Attempts.Save(r.Context(), attempt); err != nil {
			slog.Error("Failed to save checkout attempt", "attempt", attempt.ID, "error", err)
		}
		h.render(w, r, attempt)
		return
	}

	// Best effort; the charge already went through, so a failure here must
	// not block the confirmation page.
	if err := h.API.UpdatePaymentStatus(r.Context(), attempt.Order.OrderID, models.PaymentStatusPaid); err != nil {
		slog.Error("Failed to update payment status", "orderId", attempt.Order.OrderID, "error", err)
	}

	attempt.Order.PaymentStatus = models.PaymentStatusPaid
	attempt.Flow.Apply(checkout.EventConfirmed)
	if err := h.Attempts.Save(r.Context(), attempt); err != nil {
		slog.Error("Failed to save checkout attempt", "attempt", attempt.ID, "error", err)
	}
	slog.Info("Payment succeeded", "orderId", attempt.Order.OrderID)
	http.Redirect(w, r, "/order-confirmation?attempt="+attempt.ID, http.StatusSeeOther)
}

func (h *PaymentHandler) render(w http.ResponseWriter, r *http.Request, attempt *checkout.Attempt) {
	tmpl := h.Templates.Get("payment.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	state := attempt.Flow.State
	showCardForm := state == checkout.StateReady ||
		state == checkout.StateSubmitting ||
		(state == checkout.StateFailed && !attempt.Flow.Fatal)
	data := map[string]interface{}{
		"Attempt":      attempt,
		"Order":        attempt.Order,
		"Total":        attempt.Total,
		"Error":        attempt.Flow.Reason,
		"ShowCardForm": showCardForm,
		"CsrfField":    csrf.TemplateField(r),
	}
	tmpl.Execute(w, data)
}

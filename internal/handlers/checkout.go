package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/jawa0111/horeo-foodapp/internal/cart"
	"github.com/jawa0111/horeo-foodapp/internal/checkout"
	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// CheckoutAPI is the slice of the platform client checkout needs.
type CheckoutAPI interface {
	CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error)
}

// UserResolver reports who is signed in, if anyone.
type UserResolver interface {
	CurrentUser(ctx context.Context, session *sessions.Session) *models.User
}

type CheckoutHandler struct {
	API          CheckoutAPI
	Auth         UserResolver
	Attempts     checkout.AttemptStore
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Form renders the checkout page with the cart summary and the service
// charge applied.
func (h *CheckoutHandler) Form(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	basket := cart.FromSession(session)
	if basket.IsEmpty() {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	draft := models.OrderDraft{
		DeliveryTime:  models.DeliveryNow,
		SameAsSender:  true,
		PaymentMethod: models.PaymentMethodOnline,
	}
	draft.Sender.Code = "+94"
	draft.Address.Location = "Colombo"
	if user := h.Auth.CurrentUser(r.Context(), session); user != nil {
		draft.Sender.Email = user.Email
	}

	session.Save(r, w)
	h.render(w, r, basket, draft, "", false)
}

// Submit drives order creation: login gate, validation, the create-order
// call, then the branch on payment method.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	basket := cart.FromSession(session)
	if basket.IsEmpty() {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	draft := draftFromForm(r)
	draft.CartTotal = basket.Total()

	user := h.Auth.CurrentUser(r.Context(), session)
	session.Save(r, w) // CurrentUser may have dropped a stale token

	// Blocking gate: signing in abandons this submission with a return path;
	// continuing as guest resubmits the same form with the guest flag set.
	if user == nil && r.FormValue("guest") != "1" {
		h.render(w, r, basket, draft, "", true)
		return
	}

	if msg := checkout.Validate(draft); msg != "" {
		h.render(w, r, basket, draft, msg, false)
		return
	}

	resolved := checkout.Resolve(draft)
	order, err := h.API.CreateOrder(r.Context(), resolved)
	if err != nil {
		// Server message verbatim; no automatic retry.
		slog.Error("Order submission failed", "error", err)
		h.render(w, r, basket, draft, err.Error(), false)
		return
	}
	slog.Info("Order created", "orderId", order.OrderID, "paymentMethod", resolved.PaymentMethod)

	attempt := checkout.NewAttempt(*order, basket.GrandTotal(), basket.Total())
	if err := h.Attempts.Save(r.Context(), attempt); err != nil {
		slog.Error("Failed to save checkout attempt", "orderId", order.OrderID, "error", err)
		h.render(w, r, basket, draft, "Failed to place order. Please try again.", false)
		return
	}

	if resolved.PaymentMethod == models.PaymentMethodOnline {
		http.Redirect(w, r, "/payment?attempt="+attempt.ID, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/order-confirmation?attempt="+attempt.ID, http.StatusSeeOther)
}

func (h *CheckoutHandler) render(w http.ResponseWriter, r *http.Request, basket *cart.Cart, draft models.OrderDraft, errMsg string, showLoginGate bool) {
	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Cart":          basket,
		"Draft":         draft,
		"CartTotal":     basket.Total(),
		"ServiceCharge": basket.ServiceCharge(),
		"Total":         basket.GrandTotal(),
		"Error":         errMsg,
		"ShowLoginGate": showLoginGate,
		"CsrfField":     csrf.TemplateField(r),
	}
	tmpl.Execute(w, data)
}

func draftFromForm(r *http.Request) models.OrderDraft {
	draft := models.OrderDraft{
		DeliveryTime: r.FormValue("deliveryTime"),
		Sender: models.Party{
			Title:     r.FormValue("sender.title"),
			FirstName: r.FormValue("sender.firstName"),
			LastName:  r.FormValue("sender.lastName"),
			Code:      r.FormValue("sender.code"),
			Mobile:    r.FormValue("sender.mobile"),
			Email:     r.FormValue("sender.email"),
		},
		SameAsSender: r.FormValue("sameAsSender") == "on",
		Recipient: models.Party{
			Title:     r.FormValue("recipient.title"),
			FirstName: r.FormValue("recipient.firstName"),
			LastName:  r.FormValue("recipient.lastName"),
			Code:      r.FormValue("recipient.code"),
			Mobile:    r.FormValue("recipient.mobile"),
		},
		Address: models.Address{
			Location:     r.FormValue("address.location"),
			Details:      r.FormValue("address.details"),
			Instructions: r.FormValue("address.instructions"),
		},
		PaymentMethod: r.FormValue("paymentMethod"),
		TermsAgreed:   r.FormValue("termsAgreed") == "on",
	}

	if draft.DeliveryTime == "" {
		draft.DeliveryTime = models.DeliveryNow
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = models.PaymentMethodOnline
	}
	if draft.Sender.Code == "" {
		draft.Sender.Code = "+94"
	}
	if draft.Recipient.Code == "" {
		draft.Recipient.Code = "+94"
	}
	if draft.Address.Location == "" {
		draft.Address.Location = "Colombo"
	}
	return draft
}

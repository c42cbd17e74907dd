package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/jawa0111/horeo-foodapp/internal/checkout"
)

type ConfirmationHandler struct {
	Attempts     checkout.AttemptStore
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Show renders the order confirmation. An unknown or missing attempt renders
// the not-found variant of the page rather than redirecting, so a stale
// bookmark still gets a sensible answer. The cart is left alone either way.
func (h *ConfirmationHandler) Show(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("confirmation.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	id := r.URL.Query().Get("attempt")
	if id == "" {
		tmpl.Execute(w, map[string]interface{}{"NotFound": true})
		return
	}

	attempt, err := h.Attempts.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, checkout.ErrAttemptNotFound) {
			slog.Error("Failed to load checkout attempt", "attempt", id, "error", err)
		}
		tmpl.Execute(w, map[string]interface{}{"NotFound": true})
		return
	}

	tmpl.Execute(w, map[string]interface{}{
		"Order":   attempt.Order,
		"OrderID": attempt.Order.OrderID,
		"Total":   attempt.Total,
	})
}

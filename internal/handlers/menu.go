package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/jawa0111/horeo-foodapp/internal/cart"
	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// MenuAPI is the slice of the platform client the menu page needs.
type MenuAPI interface {
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
}

type MenuHandler struct {
	API          MenuAPI
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Index renders the menu with the cart alongside it.
func (h *MenuHandler) Index(w http.ResponseWriter, r *http.Request) {
	items, err := h.API.MenuItems(r.Context())
	if err != nil {
		slog.Error("Failed to fetch menu", "error", err)
		http.Error(w, "Error fetching menu", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("menu.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	basket := cart.FromSession(session)
	data := map[string]interface{}{
		"Items":     items,
		"Cart":      basket,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/jawa0111/horeo-foodapp/internal/auth"
	"github.com/jawa0111/horeo-foodapp/internal/models"
	"github.com/jawa0111/horeo-foodapp/internal/store"
)

// AuthAPI is the slice of the platform client the auth pages need.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*store.LoginResult, error)
	OrdersByCustomer(ctx context.Context, contact string) ([]models.Order, error)
}

type AuthHandler struct {
	API          AuthAPI
	Auth         UserResolver
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// LoginGet renders the sign-in form. The from parameter is echoed back so a
// successful login returns the visitor to where they came from.
func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"From":      r.URL.Query().Get("from"),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// LoginPost exchanges credentials for a token via the platform and stores it
// in the session.
func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := r.FormValue("username")
	password := r.FormValue("password")
	from := r.FormValue("from")

	result, err := h.API.Login(r.Context(), username, password)
	if err != nil {
		slog.Warn("Login failed", "username", username, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		target := "/login"
		if from != "" {
			target += "?from=" + from
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	auth.SetToken(session, result.Token)
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back, " + result.Username + "!"})
	session.Save(r, w)

	// Only relative return paths; anything else goes home.
	if !strings.HasPrefix(from, "/") {
		from = "/"
	}
	http.Redirect(w, r, from, http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	auth.ClearToken(session)
	session.AddFlash(FlashMessage{Type: "success", Message: "You have been signed out."})
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// MyOrders lists past orders for a contact number or email.
func (h *AuthHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("my_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	user := h.Auth.CurrentUser(r.Context(), session)
	session.Save(r, w)

	contact := r.URL.Query().Get("contact")
	if contact == "" && user != nil {
		contact = user.Email
	}

	data := map[string]interface{}{
		"Contact":   contact,
		"User":      user,
		"CsrfField": csrf.TemplateField(r),
	}

	if contact != "" {
		orders, err := h.API.OrdersByCustomer(r.Context(), contact)
		if err != nil {
			slog.Error("Failed to fetch orders", "contact", contact, "error", err)
			data["Error"] = err.Error()
		} else {
			data["Orders"] = orders
		}
	}

	tmpl.Execute(w, data)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"github.com/jawa0111/horeo-foodapp/internal/cart"
	"github.com/jawa0111/horeo-foodapp/internal/models"
)

type CartHandler struct {
	SessionStore *sessions.CookieStore
}

// Add puts one unit of a menu item in the session cart. The item identity
// rides in the form; totals shown from it are display-only, the platform
// prices the order at checkout.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	name := r.FormValue("name")
	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil || id == "" || name == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid item."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	basket := cart.FromSession(session)
	basket.Add(models.MenuItem{ID: id, Name: name, Price: price})
	basket.Save(session)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Update sets a line's quantity. Values below 1 clamp to 1; removing a line
// goes through Remove only.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid quantity."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	basket := cart.FromSession(session)
	basket.SetQuantity(r.FormValue("id"), quantity)
	basket.Save(session)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	basket := cart.FromSession(session)
	basket.Remove(r.FormValue("id"))
	basket.Save(session)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

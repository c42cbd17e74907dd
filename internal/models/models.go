package models

import (
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"
)

// Payment status values are owned by the platform API; the client only ever
// echoes them back.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

const (
	DeliveryNow   = "now"
	DeliveryLater = "later"
)

type MenuItem struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image"`
	Available   bool            `json:"available"`
}

// CartLine is one menu item in the session cart. Quantity never drops below
// 1; a line only disappears via an explicit remove.
type CartLine struct {
	ItemID    string          `json:"itemId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Party identifies the sender or the recipient of an order. Recipients carry
// no email address.
type Party struct {
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Code      string `json:"code"` // dialing country code, e.g. "+94"
	Mobile    string `json:"mobile"`
	Email     string `json:"email,omitempty"`
}

type Address struct {
	Location     string `json:"location"`
	Details      string `json:"details"`
	Instructions string `json:"instructions"`
}

// OrderDraft is the checkout form as submitted, before the platform has
// assigned anything. It exists only in memory between validation and the
// create-order call.
type OrderDraft struct {
	DeliveryTime  string          `json:"deliveryTime"`
	Sender        Party           `json:"sender"`
	SameAsSender  bool            `json:"sameAsSender"`
	Recipient     Party           `json:"recipient"`
	Address       Address         `json:"address"`
	PaymentMethod string          `json:"paymentMethod"`
	CartTotal     decimal.Decimal `json:"cartTotal"`
	TermsAgreed   bool            `json:"termsAgreed"`
}

// Order is the platform's record of a placed order. The orderId and echoed
// fields are all the client reads back; totals and payment status stay
// server-owned.
type Order struct {
	OrderID       string          `json:"orderId"`
	DeliveryTime  string          `json:"deliveryTime"`
	Sender        Party           `json:"sender"`
	Recipient     Party           `json:"recipient"`
	Address       Address         `json:"address"`
	PaymentMethod string          `json:"paymentMethod"`
	CartTotal     decimal.Decimal `json:"cartTotal"`
	PaymentStatus string          `json:"paymentStatus"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
}

// PaymentIntent is provider-scoped: the client secret is opaque, single-use
// and time-limited.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

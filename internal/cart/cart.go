package cart

import (
	"encoding/gob"

	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// Register cart lines for gob encoding (used by sessions)
func init() {
	gob.Register([]models.CartLine{})
}

const sessionValueKey = "cart"

// Cart holds the session-local selection. It has no side effects beyond its
// own lines; pricing authority stays with the platform API.
type Cart struct {
	Lines []models.CartLine
}

// FromSession loads the cart stored in the session, or an empty one.
func FromSession(session *sessions.Session) *Cart {
	if lines, ok := session.Values[sessionValueKey].([]models.CartLine); ok {
		return &Cart{Lines: lines}
	}
	return &Cart{}
}

// Save writes the cart back into the session values. The caller still owns
// session.Save.
func (c *Cart) Save(session *sessions.Session) {
	session.Values[sessionValueKey] = c.Lines
}

// Add puts one unit of the item in the cart, incrementing the quantity if a
// line for it already exists.
func (c *Cart) Add(item models.MenuItem) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, models.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
}

// SetQuantity updates a line's quantity, flooring at 1. Decrementing below 1
// is a no-op; lines only go away through Remove.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(itemID string) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Total is the sum of unit price times quantity over all lines, to two
// decimal places.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.Round(2)
}

// ServiceCharge is the 10% fee shown at checkout-summary time.
func (c *Cart) ServiceCharge() decimal.Decimal {
	return c.Total().Mul(decimal.NewFromFloat(0.1)).Round(2)
}

// GrandTotal is the cart total plus the service charge; this is the amount
// an online payment is taken for.
func (c *Cart) GrandTotal() decimal.Decimal {
	return c.Total().Add(c.ServiceCharge())
}

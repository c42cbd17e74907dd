package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

func item(id, name string, price float64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, Price: decimal.NewFromFloat(price)}
}

func TestAdd_NewAndExistingLines(t *testing.T) {
	c := &Cart{}

	c.Add(item("1", "Kottu", 12.99))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	// Adding the same item again bumps quantity instead of adding a line.
	c.Add(item("1", "Kottu", 12.99))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)

	c.Add(item("2", "String Hoppers", 9.99))
	require.Len(t, c.Lines, 2)
}

func TestSetQuantity_FloorsAtOne(t *testing.T) {
	c := &Cart{}
	c.Add(item("1", "Kottu", 12.99))

	c.SetQuantity("1", 0)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c.SetQuantity("1", -3)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c.SetQuantity("1", 5)
	assert.Equal(t, 5, c.Lines[0].Quantity)

	// Unknown id is a no-op.
	c.SetQuantity("nope", 4)
	require.Len(t, c.Lines, 1)
}

func TestRemove_DeletesUnconditionally(t *testing.T) {
	c := &Cart{}
	c.Add(item("1", "Kottu", 12.99))
	c.Add(item("2", "String Hoppers", 9.99))

	c.Remove("1")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "2", c.Lines[0].ItemID)

	c.Remove("2")
	assert.True(t, c.IsEmpty())
}

func TestTotal_MatchesLineSum(t *testing.T) {
	c := &Cart{}
	c.Add(item("1", "Kottu", 12.99))
	c.Add(item("1", "Kottu", 12.99))
	c.Add(item("2", "String Hoppers", 9.99))

	assert.Equal(t, "35.97", c.Total().StringFixed(2))
	assert.Equal(t, "3.60", c.ServiceCharge().StringFixed(2))
	assert.Equal(t, "39.57", c.GrandTotal().StringFixed(2))
	assert.Equal(t, 3, c.ItemCount())
}

func TestTotal_InsensitiveToInsertionAndRemovalOrder(t *testing.T) {
	a := &Cart{}
	a.Add(item("1", "Kottu", 12.99))
	a.Add(item("2", "String Hoppers", 9.99))
	a.Add(item("3", "Watalappan", 4.50))
	a.Remove("3")

	b := &Cart{}
	b.Add(item("3", "Watalappan", 4.50))
	b.Add(item("2", "String Hoppers", 9.99))
	b.Add(item("1", "Kottu", 12.99))
	b.Remove("3")

	assert.True(t, a.Total().Equal(b.Total()))
}

func TestTotal_EmptyCart(t *testing.T) {
	c := &Cart{}
	assert.Equal(t, "0.00", c.Total().StringFixed(2))
	assert.True(t, c.IsEmpty())
}

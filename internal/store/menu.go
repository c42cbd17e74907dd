package store

import (
	"context"
	"net/http"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// MenuItems fetches the public menu.
func (c *Client) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu", "", nil, &items, "Failed to fetch menu"); err != nil {
		return nil, err
	}
	return items, nil
}

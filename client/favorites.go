package client

import (
	"context"
	"fmt"
	"net/http"

	"buckler/models"
)

// ListFavorites fetches the current user's wishlist.
func (c *Client) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := c.do(ctx, http.MethodGet, "/api/v1/shared/favorites", nil, &favorites, requestOptions{})
	return favorites, err
}

// AddFavorite adds a listing to the wishlist.
func (c *Client) AddFavorite(ctx context.Context, itemID string, itemType models.ItemType) error {
	body := map[string]any{"item_id": itemID, "item_type": itemType}
	return c.do(ctx, http.MethodPost, "/api/v1/shared/favorites", body, nil, requestOptions{})
}

// RemoveFavorite removes a listing from the wishlist. The backend exposes
// removal as a GET on a /delete path; kept as-is to match the contract.
func (c *Client) RemoveFavorite(ctx context.Context, itemID string, itemType models.ItemType) error {
	path := fmt.Sprintf("/api/v1/shared/favorites/%s/%s/delete", itemID, itemType)
	return c.do(ctx, http.MethodGet, path, nil, nil, requestOptions{})
}

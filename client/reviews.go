package client

import (
	"context"
	"net/http"

	"buckler/models"
)

// CreateReview publishes a review for a listing.
func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest) (models.Review, error) {
	var review models.Review
	err := c.do(ctx, http.MethodPost, "/api/v1/reviews", req, &review, requestOptions{})
	return review, err
}

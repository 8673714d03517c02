package client

import (
	"context"
	"net/http"
	"net/url"

	"buckler/models"
)

// SearchTours runs a filtered tour search.
func (c *Client) SearchTours(ctx context.Context, filter models.TourSearchFilter) ([]models.TourPackage, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}

	var tours []models.TourPackage
	err := c.do(ctx, http.MethodGet, "/api/v1/tours/search", nil, &tours, requestOptions{query: q})
	return tours, err
}

// GetTour fetches a tour by id.
func (c *Client) GetTour(ctx context.Context, id string) (models.TourPackage, error) {
	var tour models.TourPackage
	err := c.do(ctx, http.MethodGet, "/api/v1/tours/"+id, nil, &tour, requestOptions{})
	return tour, err
}

// FeaturedTours fetches the curated landing-page tours.
func (c *Client) FeaturedTours(ctx context.Context) ([]models.TourPackage, error) {
	var tours []models.TourPackage
	err := c.do(ctx, http.MethodGet, "/api/v1/tours/featured", nil, &tours, requestOptions{})
	return tours, err
}

// TourCategories lists the tour categories. Slow-changing; cached long.
func (c *Client) TourCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.do(ctx, http.MethodGet, "/api/v1/tours/categories", nil, &categories, requestOptions{})
	return categories, err
}

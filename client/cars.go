package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"buckler/models"
)

// SearchVehicles runs a filtered vehicle search.
func (c *Client) SearchVehicles(ctx context.Context, filter models.VehicleSearchFilter) ([]models.Vehicle, error) {
	q := url.Values{}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.Make != "" {
		q.Set("make", filter.Make)
	}
	if filter.MaxRate > 0 {
		q.Set("max_rate", strconv.FormatFloat(filter.MaxRate, 'f', -1, 64))
	}

	var vehicles []models.Vehicle
	err := c.do(ctx, http.MethodGet, "/api/v1/cars/search", nil, &vehicles, requestOptions{query: q})
	return vehicles, err
}

// GetVehicle fetches a vehicle by id.
func (c *Client) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	var vehicle models.Vehicle
	err := c.do(ctx, http.MethodGet, "/api/v1/cars/"+id, nil, &vehicle, requestOptions{})
	return vehicle, err
}

// FeaturedVehicles fetches the curated landing-page vehicles.
func (c *Client) FeaturedVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := c.do(ctx, http.MethodGet, "/api/v1/cars/featured", nil, &vehicles, requestOptions{})
	return vehicles, err
}

// VehicleAvailability asks whether a vehicle is free for the date range.
func (c *Client) VehicleAvailability(ctx context.Context, id string, pickup, ret time.Time) (models.AvailabilityResponse, error) {
	q := url.Values{}
	q.Set("pickup_date", pickup.Format(dateLayout))
	q.Set("return_date", ret.Format(dateLayout))

	var resp models.AvailabilityResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/cars/%s/availability", id), nil, &resp, requestOptions{query: q})
	return resp, err
}

// CreateRental submits a completed rental draft.
func (c *Client) CreateRental(ctx context.Context, draft models.RentalDraft) (models.Rental, error) {
	var rental models.Rental
	err := c.do(ctx, http.MethodPost, "/api/v1/cars/rentals", draft, &rental, requestOptions{})
	return rental, err
}

// MyRentals lists the current user's rentals.
func (c *Client) MyRentals(ctx context.Context) ([]models.Rental, error) {
	var rentals []models.Rental
	err := c.do(ctx, http.MethodGet, "/api/v1/cars/rentals/mine", nil, &rentals, requestOptions{})
	return rentals, err
}

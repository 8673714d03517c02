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

const dateLayout = "2006-01-02"

// SearchBnbs runs a filtered BnB search.
func (c *Client) SearchBnbs(ctx context.Context, filter models.BnbSearchFilter) ([]models.BnbListing, error) {
	q := url.Values{}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.Guests > 0 {
		q.Set("guests", strconv.Itoa(filter.Guests))
	}
	if filter.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}

	var listings []models.BnbListing
	err := c.do(ctx, http.MethodGet, "/api/v1/bnb/search", nil, &listings, requestOptions{query: q})
	return listings, err
}

// GetBnb fetches a listing by id.
func (c *Client) GetBnb(ctx context.Context, id string) (models.BnbListing, error) {
	var listing models.BnbListing
	err := c.do(ctx, http.MethodGet, "/api/v1/bnb/"+id, nil, &listing, requestOptions{})
	return listing, err
}

// FeaturedBnbs fetches the curated landing-page listings.
func (c *Client) FeaturedBnbs(ctx context.Context) ([]models.BnbListing, error) {
	var listings []models.BnbListing
	err := c.do(ctx, http.MethodGet, "/api/v1/bnb/featured", nil, &listings, requestOptions{})
	return listings, err
}

// BnbAvailability asks whether a listing is open for the date range and party.
func (c *Client) BnbAvailability(ctx context.Context, id string, checkIn, checkOut time.Time, guests int) (models.AvailabilityResponse, error) {
	q := url.Values{}
	q.Set("check_in", checkIn.Format(dateLayout))
	q.Set("check_out", checkOut.Format(dateLayout))
	q.Set("guests", strconv.Itoa(guests))

	var resp models.AvailabilityResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/bnb/%s/availability", id), nil, &resp, requestOptions{query: q})
	return resp, err
}

// CreateBooking submits a completed booking draft.
func (c *Client) CreateBooking(ctx context.Context, draft models.BookingDraft) (models.Booking, error) {
	var booking models.Booking
	err := c.do(ctx, http.MethodPost, "/api/v1/bnb/bookings", draft, &booking, requestOptions{})
	return booking, err
}

// MyBookings lists the current user's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.do(ctx, http.MethodGet, "/api/v1/bnb/bookings/mine", nil, &bookings, requestOptions{})
	return bookings, err
}

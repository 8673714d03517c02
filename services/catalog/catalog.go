// Package catalog is the cached read layer the pages compose: per-domain
// reads with the staleness window matched to how fast the data moves.
// Categories and featured sets barely change and cache long; searches and
// availability are short-lived; user-specific lists shorter still.
package catalog

import (
	"context"
	"fmt"

	"buckler/client"
	"buckler/config"
	"buckler/models"
	"buckler/services/query"
)

// Service exposes cached reads over the REST client.
type Service struct {
	API   *client.Client
	Cache *query.Cache
}

func New(api *client.Client, cache *query.Cache) *Service {
	return &Service{API: api, Cache: cache}
}

func (s *Service) SearchBnbs(ctx context.Context, f models.BnbSearchFilter) ([]models.BnbListing, error) {
	key := query.Key("bnb", "search", f.Location, fmt.Sprint(f.Guests), fmt.Sprint(f.MinPrice), fmt.Sprint(f.MaxPrice))
	return query.Fetch(ctx, s.Cache, key, config.SearchStaleness(), func(ctx context.Context) ([]models.BnbListing, error) {
		return s.API.SearchBnbs(ctx, f)
	})
}

func (s *Service) GetBnb(ctx context.Context, id string) (models.BnbListing, error) {
	return query.Fetch(ctx, s.Cache, query.Key("bnb", "detail", id), config.SearchStaleness(), func(ctx context.Context) (models.BnbListing, error) {
		return s.API.GetBnb(ctx, id)
	})
}

func (s *Service) FeaturedBnbs(ctx context.Context) ([]models.BnbListing, error) {
	return query.Fetch(ctx, s.Cache, query.Key("bnb", "featured"), config.SlowStaleness(), s.API.FeaturedBnbs)
}

func (s *Service) SearchVehicles(ctx context.Context, f models.VehicleSearchFilter) ([]models.Vehicle, error) {
	key := query.Key("cars", "search", f.Location, f.Make, fmt.Sprint(f.MaxRate))
	return query.Fetch(ctx, s.Cache, key, config.SearchStaleness(), func(ctx context.Context) ([]models.Vehicle, error) {
		return s.API.SearchVehicles(ctx, f)
	})
}

func (s *Service) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	return query.Fetch(ctx, s.Cache, query.Key("cars", "detail", id), config.SearchStaleness(), func(ctx context.Context) (models.Vehicle, error) {
		return s.API.GetVehicle(ctx, id)
	})
}

func (s *Service) FeaturedVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return query.Fetch(ctx, s.Cache, query.Key("cars", "featured"), config.SlowStaleness(), s.API.FeaturedVehicles)
}

func (s *Service) SearchTours(ctx context.Context, f models.TourSearchFilter) ([]models.TourPackage, error) {
	key := query.Key("tours", "search", f.Category, f.Location)
	return query.Fetch(ctx, s.Cache, key, config.SearchStaleness(), func(ctx context.Context) ([]models.TourPackage, error) {
		return s.API.SearchTours(ctx, f)
	})
}

func (s *Service) GetTour(ctx context.Context, id string) (models.TourPackage, error) {
	return query.Fetch(ctx, s.Cache, query.Key("tours", "detail", id), config.SearchStaleness(), func(ctx context.Context) (models.TourPackage, error) {
		return s.API.GetTour(ctx, id)
	})
}

func (s *Service) FeaturedTours(ctx context.Context) ([]models.TourPackage, error) {
	return query.Fetch(ctx, s.Cache, query.Key("tours", "featured"), config.SlowStaleness(), s.API.FeaturedTours)
}

// TourCategories is the slowest-moving read in the product.
func (s *Service) TourCategories(ctx context.Context) ([]string, error) {
	return query.Fetch(ctx, s.Cache, query.Key("tours", "categories"), config.SlowStaleness(), s.API.TourCategories)
}

// MyBookings is user-specific and caches briefly.
func (s *Service) MyBookings(ctx context.Context) ([]models.Booking, error) {
	return query.Fetch(ctx, s.Cache, query.Key("bookings", "mine"), config.UserStaleness(), s.API.MyBookings)
}

// MyRentals is user-specific and caches briefly.
func (s *Service) MyRentals(ctx context.Context) ([]models.Rental, error) {
	return query.Fetch(ctx, s.Cache, query.Key("rentals", "mine"), config.UserStaleness(), s.API.MyRentals)
}

// CreateReview publishes a review and invalidates the listing detail so the
// rating refreshes.
func (s *Service) CreateReview(ctx context.Context, req models.ReviewRequest) (models.Review, error) {
	review, err := s.API.CreateReview(ctx, req)
	if err != nil {
		return models.Review{}, err
	}
	switch req.ItemType {
	case models.ItemTypeBnb:
		s.Cache.Invalidate(query.Key("bnb", "detail", req.ItemID))
	case models.ItemTypeVehicle:
		s.Cache.Invalidate(query.Key("cars", "detail", req.ItemID))
	case models.ItemTypeTour:
		s.Cache.Invalidate(query.Key("tours", "detail", req.ItemID))
	}
	return review, nil
}

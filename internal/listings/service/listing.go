package service

import (
	"context"
	"errors"

	"staybook/internal/listings/cache"
	listingserrors "staybook/internal/listings/errors"
	"staybook/internal/listings/repository"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type ListingService interface {
	Search(ctx context.Context, filters model.SearchFilters) ([]model.Listing, error)
}

type listingService struct {
	repo  repository.ListingRepository
	cache cache.Cache
	cfg   *config.Config
}

// NewListingService reads through c when it is non-nil.
func NewListingService(repo repository.ListingRepository, c cache.Cache, cfg *config.Config) ListingService {
	return &listingService{
		repo:  repo,
		cache: c,
		cfg:   cfg,
	}
}

// Search serves from the cache when possible. Cache failures fall through
// to the store and never fail the request.
func (s *listingService) Search(ctx context.Context, filters model.SearchFilters) ([]model.Listing, error) {
	if _, err := repository.BuildFilter(filters); err != nil {
		return nil, apperrors.InvalidInput("Invalid bedrooms filter")
	}

	if s.cache != nil {
		listings, ok, err := s.cache.Get(ctx, filters)
		if err != nil {
			s.cfg.Log.Warn("Listings cache read failed", "error", err)
		}
		if ok {
			return listings, nil
		}
	}

	listings, err := s.repo.Search(ctx, filters)
	if err != nil {
		if errors.Is(err, listingserrors.ErrInvalidBedrooms) {
			return nil, apperrors.InvalidInput("Invalid bedrooms filter")
		}
		s.cfg.Log.Error("Failed to search listings",
			"location", filters.Location,
			"property_type", filters.PropertyType,
			"bedrooms", filters.Bedrooms,
			"error", err,
		)
		if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Unavailable("Listings store", err)
		}
		return nil, apperrors.Internal("Failed to retrieve listings", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, filters, listings); err != nil {
			s.cfg.Log.Warn("Listings cache write failed", "error", err)
		}
	}

	s.cfg.Log.Debug("Listings search completed", "location", filters.Location, "results", len(listings))
	return listings, nil
}

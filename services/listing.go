package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"land_scrooper/logging"
	"land_scrooper/models"
)

// ListingStore persists listings of a run.
type ListingStore interface {
	UpsertListings(ctx context.Context, runID string, listings []models.Listing) (int, error)
}

// ListingService cleans a run's listings before they reach the store.
type ListingService struct {
	store ListingStore
	log   zerolog.Logger
}

func NewListingService(store ListingStore) *ListingService {
	return &ListingService{
		store: store,
		log:   logging.For("listings"),
	}
}

// SaveListings drops invalid and repeated records, then upserts the rest.
// It returns how many rows the store wrote.
func (s *ListingService) SaveListings(ctx context.Context, runID string, listings []models.Listing) (int, error) {
	clean := Dedupe(listings)
	if dropped := len(listings) - len(clean); dropped > 0 {
		s.log.Debug().Str("run", runID).Int("dropped", dropped).Msg("dropped duplicate or empty listings")
	}
	if len(clean) == 0 {
		return 0, nil
	}

	n, err := s.store.UpsertListings(ctx, runID, clean)
	if err != nil {
		return n, fmt.Errorf("upsert listings: %w", err)
	}
	return n, nil
}

// Dedupe keeps the first of every (id, price) pair and skips records
// without a title or price. Order is preserved.
func Dedupe(listings []models.Listing) []models.Listing {
	type key struct {
		id    string
		price models.Price
	}
	seen := make(map[key]bool, len(listings))
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if !l.Valid() {
			continue
		}
		k := key{id: l.ID, price: l.Price}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}

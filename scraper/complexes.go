package scraper

import (
	"context"

	"land_scrooper/extract"
	"land_scrooper/models"
)

// Complexes lists the complexes of a region, following pages up to the
// strategy's page cap.
func (s *APIStrategy) Complexes(ctx context.Context, regionCode, propertyType string) ([]models.Complex, error) {
	var out []models.Complex
	seen := make(map[string]bool)
	for page := 1; page <= s.maxPages; page++ {
		resp, err := s.client.FetchComplexes(ctx, regionCode, propertyType, page)
		if err != nil {
			return out, err
		}
		added := 0
		for _, c := range extract.FromComplexes(resp.ComplexList) {
			if seen[c.No] {
				continue
			}
			seen[c.No] = true
			out = append(out, c)
			added++
		}
		if !resp.IsMoreData || added == 0 {
			break
		}
	}
	return out, nil
}

// CollectComplex reads the listings of one complex, cheapest first. The
// listings carry the complex name; when the detail lookup fails for any
// reason other than a block they are returned without it.
func (s *APIStrategy) CollectComplex(ctx context.Context, complexNo string, t Target) ([]models.Listing, error) {
	opts := t.options(s.now())

	detail, err := s.client.FetchComplex(ctx, complexNo)
	switch {
	case IsBlocked(err):
		return nil, err
	case err != nil:
		s.client.log.Warn().Err(err).Str("complex", complexNo).Msg("complex detail unavailable")
	default:
		opts.ComplexName = detail.Complex().Name
	}

	var out []models.Listing
	seen := make(map[string]bool)
	for page := 1; page <= s.maxPages; page++ {
		resp, err := s.client.FetchComplexListings(ctx, complexNo, t.PropertyType, t.TradeType, page)
		if err != nil {
			if page > 1 && !IsBlocked(err) {
				s.client.log.Warn().Err(err).Int("page", page).Msg("stopping pagination")
				break
			}
			return out, err
		}
		var added int
		out, added = appendUnseen(out, seen, extract.FromArticles(resp.ArticleList, opts))
		if !resp.IsMoreData || (page > 1 && added == 0) {
			break
		}
	}
	return out, nil
}

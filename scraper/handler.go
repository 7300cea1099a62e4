package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"land_scrooper/extract"
	"land_scrooper/models"
)

const (
	StrategyAPI     = "api"
	StrategyBrowser = "browser"
	StrategyDOM     = "dom"

	defaultMaxPages = 5
)

// Target is one (region, property type, trade type) step of a run with the
// region already resolved.
type Target struct {
	Region       string
	RegionCode   string
	PropertyType string
	TradeType    string
}

func (t Target) options(now time.Time) extract.Options {
	return extract.Options{
		Region:       t.Region,
		PropertyType: t.PropertyType,
		TradeType:    t.TradeType,
		CollectedAt:  now,
	}
}

// Strategy acquires the listings of one target.
type Strategy interface {
	Name() string
	Collect(ctx context.Context, t Target) ([]models.Listing, error)
}

// Starter is implemented by strategies that hold resources for a whole run.
type Starter interface {
	Start(ctx context.Context) error
	Stop() error
}

type Deps struct {
	API      *APIClient
	Session  *Session
	Visible  bool
	MaxPages int
}

func NewStrategy(name string, deps Deps) (Strategy, error) {
	if deps.MaxPages <= 0 {
		deps.MaxPages = defaultMaxPages
	}

	switch name {
	case "", StrategyAPI:
		if deps.API == nil {
			return nil, errors.New("api strategy needs an API client")
		}
		return &APIStrategy{client: deps.API, maxPages: deps.MaxPages, now: time.Now}, nil
	case StrategyBrowser, StrategyDOM:
		if deps.Session == nil {
			return nil, fmt.Errorf("%s strategy needs a browser session", name)
		}
		return &BrowserStrategy{
			name:     name,
			session:  deps.Session,
			visible:  deps.Visible,
			maxPages: deps.MaxPages,
			pace:     browserPace(name),
			now:      time.Now,
		}, nil
	}
	return nil, fmt.Errorf("unknown strategy: %s", name)
}

// APIStrategy pages through the article list endpoint.
type APIStrategy struct {
	client   *APIClient
	maxPages int
	now      func() time.Time
}

func (s *APIStrategy) Name() string { return StrategyAPI }

func (s *APIStrategy) Collect(ctx context.Context, t Target) ([]models.Listing, error) {
	opts := t.options(s.now())

	var out []models.Listing
	seen := make(map[string]bool)
	for page := 1; page <= s.maxPages; page++ {
		resp, err := s.client.FetchListingsByRegion(ctx, t.RegionCode, t.PropertyType, t.TradeType, page)
		if err != nil {
			if page > 1 && !IsBlocked(err) {
				// keep what the earlier pages returned
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

// BrowserStrategy drives the shared Session. "browser" replays the listing
// API from inside the page; "dom" scrapes the rendered cards.
type BrowserStrategy struct {
	name     string
	session  *Session
	visible  bool
	maxPages int
	owned    bool
	pace     *RateGate
	now      func() time.Time
}

func browserPace(name string) *RateGate {
	if name == StrategyDOM {
		return NewRateGate(0, 2*time.Second, 4*time.Second)
	}
	return NewRateGate(0, 3*time.Second, 5*time.Second)
}

func (s *BrowserStrategy) Name() string { return s.name }

// Start launches the session unless someone already has it open. A session
// launched here is closed by Stop.
func (s *BrowserStrategy) Start(ctx context.Context) error {
	switch s.session.State() {
	case StateLaunched, StatePageOpen:
		return nil
	}
	if err := s.session.Launch(ctx, s.visible); err != nil {
		return err
	}
	s.owned = true
	return nil
}

func (s *BrowserStrategy) Stop() error {
	if !s.owned {
		return nil
	}
	s.owned = false
	return s.session.Close()
}

func (s *BrowserStrategy) Collect(ctx context.Context, t Target) ([]models.Listing, error) {
	var out []models.Listing
	err := s.pace.Do(ctx, func() error {
		res := s.session.OpenPage(ctx, t.RegionCode, t.PropertyType, t.TradeType)
		if !res.Success {
			return res.Err
		}

		if s.name == StrategyDOM {
			scraped := s.session.ScrapeCurrentPage(ctx, t.Region)
			if !scraped.Success {
				return scraped.Err
			}
			out = scraped.Listings
			return nil
		}

		opts := t.options(s.now())
		seen := make(map[string]bool)
		for page := 1; page <= s.maxPages; page++ {
			resp, err := s.session.ReplayListings(ctx, t.RegionCode, t.PropertyType, t.TradeType, page)
			if err != nil {
				return err
			}
			var added int
			out, added = appendUnseen(out, seen, extract.FromArticles(resp.ArticleList, opts))
			if !resp.IsMoreData || (page > 1 && added == 0) {
				break
			}
		}
		return nil
	})
	return out, err
}

// appendUnseen appends the listings whose ID is not in seen yet and returns
// how many were added. Listings shift between pages while the list is being
// read, so the same article can come back on the next page; a page with
// nothing new ends pagination.
func appendUnseen(out []models.Listing, seen map[string]bool, batch []models.Listing) ([]models.Listing, int) {
	added := 0
	for _, l := range batch {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		out = append(out, l)
		added++
	}
	return out, added
}

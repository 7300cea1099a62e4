package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"land_scrooper/config"
	"land_scrooper/extract"
	"land_scrooper/httputil"
	"land_scrooper/logging"
	"land_scrooper/models"
)

const defaultReferer = "https://new.land.naver.com/complexes"

// APIClient talks to the site's internal JSON API. Every request goes through
// one RateGate, so a process should share a single client.
type APIClient struct {
	baseURL     string
	http        *http.Client
	gate        *RateGate
	userAgent   string
	maxRetries  int
	backoffBase time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	log         zerolog.Logger
}

func NewAPIClient(cfg config.APIConfig) *APIClient {
	return &APIClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        httputil.NewScrapingClient(cfg.Timeout, cfg.ProxyURL),
		gate:        NewRateGate(cfg.MinInterval, cfg.JitterMin, cfg.JitterMax),
		userAgent:   httputil.RandomUserAgent(),
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		sleep:       sleepContext,
		log:         logging.For("api"),
	}
}

// FetchListingsByRegion returns one page of listings for a region. An empty
// page is a valid result.
func (c *APIClient) FetchListingsByRegion(ctx context.Context, regionCode, propertyType, tradeType string, page int) (*extract.ArticlePage, error) {
	q := url.Values{}
	q.Set("cortarNo", regionCode)
	q.Set("realEstateType", propertyType)
	q.Set("tradeType", tradeType)
	q.Set("page", strconv.Itoa(page))
	q.Set("order", "rank")

	var out extract.ArticlePage
	if err := c.getJSON(ctx, "/api/articles", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchComplexListings returns one page of listings inside a complex, cheapest
// first. An empty tradeType means all trade types.
func (c *APIClient) FetchComplexListings(ctx context.Context, complexNo, propertyType, tradeType string, page int) (*extract.ArticlePage, error) {
	q := url.Values{}
	q.Set("realEstateType", propertyType)
	q.Set("tradeType", tradeType)
	q.Set("page", strconv.Itoa(page))
	q.Set("order", "prc")

	var out extract.ArticlePage
	if err := c.getJSON(ctx, "/api/articles/complex/"+url.PathEscape(complexNo), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) FetchComplex(ctx context.Context, complexNo string) (*extract.RawComplex, error) {
	q := url.Values{}
	q.Set("sameAddressGroup", "true")

	var out struct {
		ComplexDetail extract.RawComplex `json:"complexDetail"`
	}
	if err := c.getJSON(ctx, "/api/complexes/"+url.PathEscape(complexNo), q, &out); err != nil {
		return nil, err
	}
	return &out.ComplexDetail, nil
}

// FetchComplexes lists the complexes of a region by name.
func (c *APIClient) FetchComplexes(ctx context.Context, regionCode, propertyType string, page int) (*extract.ComplexPage, error) {
	q := url.Values{}
	q.Set("cortarNo", regionCode)
	q.Set("realEstateType", propertyType)
	q.Set("order", "name")
	q.Set("page", strconv.Itoa(page))

	var out extract.ComplexPage
	if err := c.getJSON(ctx, "/api/complexes", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchRegionChildren lists the direct children of a region code. It
// satisfies regions.Fetcher. A 429 is not retried here: directory lookups
// give up at the first block instead of waiting out the backoff.
func (c *APIClient) FetchRegionChildren(ctx context.Context, parentCode string) ([]models.Region, error) {
	q := url.Values{}
	q.Set("cortarNo", parentCode)

	var out struct {
		Result struct {
			List []models.Region `json:"list"`
		} `json:"result"`
	}
	if err := c.fetchJSON(ctx, "/api/regions/list", q, &out, 0); err != nil {
		return nil, err
	}
	return out.Result.List, nil
}

// getJSON issues a gated GET and decodes the body into dst. A 429 answer is
// retried with exponential backoff; once retries run out it becomes a
// BlockedError.
func (c *APIClient) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	return c.fetchJSON(ctx, path, q, dst, c.maxRetries)
}

func (c *APIClient) fetchJSON(ctx context.Context, path string, q url.Values, dst any, maxRetries int) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	for attempt := 0; ; attempt++ {
		var body []byte
		err := c.gate.Do(ctx, func() error {
			var err error
			body, err = c.get(ctx, endpoint)
			return err
		})
		if err == nil {
			if err := json.Unmarshal(body, dst); err != nil {
				return &UpstreamError{Status: http.StatusOK, Err: fmt.Errorf("decode %s: %w", path, err)}
			}
			return nil
		}

		if !IsBlocked(err) {
			return err
		}
		if attempt >= maxRetries {
			c.log.Warn().Str("path", path).Int("attempts", attempt+1).Msg("still blocked after retries")
			return err
		}

		wait := c.backoffBase * time.Duration(1<<attempt)
		c.log.Warn().Str("path", path).Dur("wait", wait).
			Msgf("rate limited, retry %d/%d", attempt+1, maxRetries)
		if err := c.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (c *APIClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httputil.SetBrowserHeaders(req, c.userAgent, defaultReferer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &BlockedError{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &UpstreamError{Status: resp.StatusCode, Body: truncateBody(body)}
	}
	return body, nil
}

func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

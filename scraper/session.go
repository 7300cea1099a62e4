package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"

	"land_scrooper/config"
	"land_scrooper/extract"
	"land_scrooper/httputil"
	"land_scrooper/logging"
	"land_scrooper/models"
)

type SessionState int

const (
	StateUnlaunched SessionState = iota
	StateLaunched
	StatePageOpen
	StateScraping
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateUnlaunched:
		return "unlaunched"
	case StateLaunched:
		return "launched"
	case StatePageOpen:
		return "page_open"
	case StateScraping:
		return "scraping"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

const (
	scrollStep        = 300
	scrollInterval    = 200
	scrollMaxDistance = 3000
	clickSettleDelay  = 3 * time.Second
)

// PageResult reports a navigation. Failures are reported here rather than
// torn down; the browser stays usable.
type PageResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

type ScrapeResult struct {
	Success  bool             `json:"success"`
	Listings []models.Listing `json:"listings"`
	URL      string           `json:"url"`
	Message  string           `json:"message"`
	Err      error            `json:"-"`
}

// Session owns one browser and its page. Page operations run one at a time;
// Close may be called at any moment and ends the session for good.
type Session struct {
	mu        sync.Mutex
	state     SessionState
	browser   Browser
	page      playwright.Page
	launching bool

	opMu sync.Mutex

	launch  Launcher
	cfg     config.BrowserConfig
	baseURL string
	sel     extract.Selectors
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	log     zerolog.Logger
}

func NewSession(cfg config.BrowserConfig, baseURL string, sel extract.Selectors, launch Launcher) *Session {
	if launch == nil {
		launch = LaunchChromium
	}
	return &Session{
		launch:  launch,
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		sel:     sel,
		now:     time.Now,
		sleep:   sleepContext,
		log:     logging.For("browser"),
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Launch starts the browser. A visible browser is meant for a person to
// work in; challenges shown there are left to them.
func (s *Session) Launch(ctx context.Context, visible bool) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	state := s.state
	if state == StateUnlaunched {
		s.launching = true
	}
	s.mu.Unlock()

	switch state {
	case StateUnlaunched:
	case StateClosed:
		return &SessionNotReadyError{Op: "launch", State: state}
	default:
		return ErrSessionActive
	}

	b, err := s.launch(ctx, LaunchOptions{Visible: visible, UserAgent: httputil.RandomUserAgent()})

	s.mu.Lock()
	s.launching = false
	closed := s.state == StateClosed
	if err == nil && !closed {
		s.browser = b
		s.page = b.Page()
		s.state = StateLaunched
		s.mu.Unlock()
		s.log.Info().Bool("visible", visible).Msg("browser launched")
		return nil
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	// Close ran while the browser was starting.
	s.log.Info().Msg("session closed during launch, shutting the new browser down")
	if cerr := b.Close(); cerr != nil {
		s.log.Warn().Err(cerr).Msg("failed to close browser")
	}
	return &SessionNotReadyError{Op: "launch", State: StateClosed}
}

// ListingPageURL is the site's complex map filtered to one region, property
// type and trade type.
func ListingPageURL(baseURL, regionCode, propertyType, tradeType string) string {
	return fmt.Sprintf("%s/complexes?ms=37.5665,126.9780,16&a=%s&b=%s&e=RETAIL&ad=true&cortarNo=%s",
		strings.TrimRight(baseURL, "/"), propertyType, tradeType, regionCode)
}

func (s *Session) OpenPage(ctx context.Context, regionCode, propertyType, tradeType string) PageResult {
	return s.navigate(ctx, "open_page", ListingPageURL(s.baseURL, regionCode, propertyType, tradeType))
}

// OpenFree opens the landing page for manual browsing.
func (s *Session) OpenFree(ctx context.Context) PageResult {
	return s.navigate(ctx, "open_free", s.baseURL)
}

func (s *Session) navigate(ctx context.Context, op, target string) PageResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	page, err := s.pageFor(op, StateLaunched, StatePageOpen)
	if err != nil {
		return PageResult{Message: err.Error(), Err: err}
	}

	s.log.Info().Str("url", target).Msg("navigating")
	_, err = page.Goto(target, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(s.cfg.NavTimeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return s.navFailed(&NavigationError{URL: target, Err: err})
	}

	if err := s.sleep(ctx, s.cfg.SettleDelay); err != nil {
		return s.navFailed(&NavigationError{URL: target, Err: err})
	}

	current := page.URL()
	if strings.Contains(current, "/404") {
		return s.navFailed(&NavigationError{URL: target, Reason: "redirected to " + current})
	}

	s.setState(StatePageOpen)
	return PageResult{Success: true, URL: current, Message: "페이지가 열렸습니다."}
}

func (s *Session) navFailed(err *NavigationError) PageResult {
	s.log.Warn().Err(err).Msg("navigation failed")
	return PageResult{URL: err.URL, Message: "페이지 열기 실패: " + err.Error(), Err: err}
}

// CurrentURL is empty when no page exists.
func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil || s.state == StateClosed {
		return ""
	}
	return s.page.URL()
}

// ScrapeCurrentPage runs every DOM layout over whatever page is showing.
func (s *Session) ScrapeCurrentPage(ctx context.Context, region string) ScrapeResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	page, err := s.beginScrape("scrape")
	if err != nil {
		return ScrapeResult{Message: err.Error(), Err: err}
	}
	defer s.setState(StatePageOpen)

	if err := s.autoScroll(page); err != nil {
		s.log.Debug().Err(err).Msg("auto scroll failed")
	}

	current := page.URL()
	html, err := page.Content()
	if err != nil {
		return ScrapeResult{URL: current, Message: "페이지 내용을 읽지 못했습니다: " + err.Error(), Err: err}
	}

	listings, err := extract.ScrapeHTML(strings.NewReader(html), s.sel, s.options(region, "", current))
	if err != nil {
		return ScrapeResult{URL: current, Message: err.Error(), Err: err}
	}

	s.log.Info().Int("listings", len(listings)).Str("url", current).Msg("scraped page")
	return ScrapeResult{
		Success:  true,
		Listings: listings,
		URL:      current,
		Message:  fmt.Sprintf("매물 %d개 수집 완료", len(listings)),
	}
}

// ClickComplexAndScrape opens a complex by its display name, exact match
// first, and reads only its detail panel.
func (s *Session) ClickComplexAndScrape(ctx context.Context, name, region string) ScrapeResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	name = strings.TrimSpace(name)
	page, err := s.beginScrape("click_complex")
	if err != nil {
		return ScrapeResult{Message: err.Error(), Err: err}
	}
	defer s.setState(StatePageOpen)

	clicked, err := page.Evaluate(clickComplexScript, map[string]any{
		"name":   name,
		"groups": s.clickTargets(),
	})
	if err != nil {
		return ScrapeResult{URL: page.URL(), Message: "클릭 실패: " + err.Error(), Err: err}
	}
	if ok, _ := clicked.(bool); !ok {
		return ScrapeResult{
			URL:     page.URL(),
			Message: fmt.Sprintf("%q 단지를 찾을 수 없습니다. 화면에 보이는 단지만 클릭할 수 있습니다.", name),
		}
	}

	if err := s.sleep(ctx, clickSettleDelay); err != nil {
		return ScrapeResult{URL: page.URL(), Message: err.Error(), Err: err}
	}

	current := page.URL()
	html, err := page.Content()
	if err != nil {
		return ScrapeResult{URL: current, Message: "페이지 내용을 읽지 못했습니다: " + err.Error(), Err: err}
	}

	listings, err := extract.ScrapeDetailPanel(strings.NewReader(html), s.sel, s.options(region, name, current))
	if err != nil {
		return ScrapeResult{URL: current, Message: err.Error(), Err: err}
	}

	msg := fmt.Sprintf("%q 매물 %d개 수집 완료", name, len(listings))
	if len(listings) == 0 {
		msg = fmt.Sprintf("%q 상세 패널에서 매물을 찾을 수 없습니다.", name)
	}
	return ScrapeResult{Success: true, Listings: listings, URL: current, Message: msg}
}

func (s *Session) options(region, complexName, pageURL string) extract.Options {
	return extract.Options{
		Region:      region,
		ComplexName: complexName,
		CollectedAt: s.now(),
	}.FromPageURL(pageURL)
}

// clickTargets lists container/title selector pairs for markers, then list
// rows.
func (s *Session) clickTargets() []any {
	var groups []any
	for _, cs := range []extract.CardSelectors{s.sel.Marker, s.sel.List} {
		groups = append(groups, map[string]any{
			"container": strings.Join(cs.Container, ", "),
			"title":     strings.Join(cs.Name.Selectors, ", "),
		})
	}
	return groups
}

const clickComplexScript = `({ name, groups }) => {
  const candidates = [];
  for (const g of groups) {
    if (!g.container) continue;
    for (const el of document.querySelectorAll(g.container)) {
      const t = g.title ? el.querySelector(g.title) : el;
      candidates.push({ el, title: ((t && t.textContent) || '').trim() });
    }
  }
  const hit = candidates.find(c => c.title === name) || candidates.find(c => c.title && c.title.includes(name));
  if (!hit) return false;
  hit.el.click();
  return true;
}`

const autoScrollScript = `({ step, interval, max }) => new Promise(resolve => {
  let total = 0;
  const timer = setInterval(() => {
    window.scrollBy(0, step);
    total += step;
    if (total >= document.body.scrollHeight || total >= max) {
      clearInterval(timer);
      resolve(total);
    }
  }, interval);
})`

// autoScroll scrolls the page down so lazily rendered cards exist before a
// capture.
func (s *Session) autoScroll(page playwright.Page) error {
	_, err := page.Evaluate(autoScrollScript, map[string]any{
		"step":     scrollStep,
		"interval": scrollInterval,
		"max":      scrollMaxDistance,
	})
	return err
}

const fetchScript = `async (url) => {
  const r = await fetch(url, { credentials: 'include', headers: { 'Accept': 'application/json, text/plain, */*' } });
  return { status: r.status, body: await r.text() };
}`

// FetchInPage requests target from inside the page so the site's cookies and
// headers come along.
func (s *Session) FetchInPage(ctx context.Context, target string) ([]byte, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	page, err := s.pageFor("fetch", StatePageOpen)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := page.Evaluate(fetchScript, target)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	m, ok := res.(map[string]any)
	if !ok {
		return nil, &UpstreamError{Err: fmt.Errorf("unexpected fetch result %T", res)}
	}
	status := toInt(m["status"])
	body, _ := m["body"].(string)

	switch {
	case status == 429:
		return nil, &BlockedError{Status: status}
	case status < 200 || status > 299:
		return nil, &UpstreamError{Status: status, Body: truncateBody([]byte(body))}
	}
	return []byte(body), nil
}

// ReplayListings calls the article list endpoint with the page's session.
func (s *Session) ReplayListings(ctx context.Context, regionCode, propertyType, tradeType string, page int) (*extract.ArticlePage, error) {
	q := url.Values{}
	q.Set("cortarNo", regionCode)
	q.Set("realEstateType", propertyType)
	q.Set("tradeType", tradeType)
	q.Set("page", strconv.Itoa(page))
	q.Set("order", "rank")

	body, err := s.FetchInPage(ctx, s.baseURL+"/api/articles?"+q.Encode())
	if err != nil {
		return nil, err
	}
	out, err := extract.DecodeArticlePage(body)
	if err != nil {
		return nil, &UpstreamError{Status: 200, Err: err}
	}
	return out, nil
}

// Close ends the session. It is safe to call more than once, before Launch
// and from another goroutine while an operation is running.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateUnlaunched && s.launching {
		s.state = StateClosed
		s.mu.Unlock()
		return nil
	}
	if s.state == StateUnlaunched || s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	b := s.browser
	s.browser = nil
	s.page = nil
	s.state = StateClosed
	s.mu.Unlock()

	s.log.Info().Msg("closing browser")
	return b.Close()
}

func (s *Session) pageFor(op string, allowed ...SessionState) (playwright.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range allowed {
		if s.state == st && s.page != nil {
			return s.page, nil
		}
	}
	return nil, &SessionNotReadyError{Op: op, State: s.state}
}

func (s *Session) beginScrape(op string) (playwright.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePageOpen || s.page == nil {
		return nil, &SessionNotReadyError{Op: op, State: s.state}
	}
	s.state = StateScraping
	return s.page, nil
}

// setState never leaves Closed.
func (s *Session) setState(st SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateClosed {
		s.state = st
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

package scraper

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"land_scrooper/models"
	"land_scrooper/services/cache"
)

type fakeResolver map[string]string

func (r fakeResolver) ResolveCode(_ context.Context, name string) (string, bool) {
	code, ok := r[name]
	return code, ok
}

// scriptedStrategy answers each target from a map keyed by region code and
// records the order it was asked in.
type scriptedStrategy struct {
	name    string
	results map[string][]models.Listing
	errs    map[string]error
	calls   []Target
	started bool
	stopped bool
}

func (s *scriptedStrategy) Name() string {
	if s.name == "" {
		return StrategyAPI
	}
	return s.name
}

func (s *scriptedStrategy) Collect(_ context.Context, t Target) ([]models.Listing, error) {
	s.calls = append(s.calls, t)
	return s.results[t.RegionCode], s.errs[t.RegionCode]
}

type lifecycleStrategy struct {
	scriptedStrategy
	startErr error
}

func (s *lifecycleStrategy) Start(context.Context) error {
	s.started = true
	return s.startErr
}

func (s *lifecycleStrategy) Stop() error {
	s.stopped = true
	return nil
}

type memRecorder struct {
	mu      sync.Mutex
	created []string
	updated []models.RunStatus
	lines   []string
}

func (r *memRecorder) CreateRun(run *models.CollectionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, run.ID)
	return nil
}

func (r *memRecorder) UpdateRun(run *models.CollectionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, run.Status)
	return nil
}

func (r *memRecorder) Log(_ string, _ models.LogLevel, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, message)
	return nil
}

type captureOutputs struct {
	saved    []models.Listing
	exported *models.CollectionRun
	saveErr  error
}

func (c *captureOutputs) SaveListings(_ context.Context, _ string, listings []models.Listing) (int, error) {
	c.saved = append(c.saved, listings...)
	return len(listings), c.saveErr
}

func (c *captureOutputs) Export(_ context.Context, run *models.CollectionRun) error {
	c.exported = run
	return nil
}

func listing(title string) models.Listing {
	return models.Listing{ID: title, Title: title, Price: models.SalePrice(10000)}
}

var threeRegions = fakeResolver{
	"강남구": "1168000000",
	"서초구": "1165000000",
	"송파구": "1171000000",
}

func newTestOrchestrator(resolver Resolver) *Orchestrator {
	o := NewOrchestrator(resolver, Deps{}, cache.NewMemoryService(), 5*time.Minute)
	o.now = func() time.Time { return time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC) }
	return o
}

func TestExecuteCollectsEveryTriple(t *testing.T) {
	s := &scriptedStrategy{results: map[string][]models.Listing{
		"1168000000": {listing("a")},
		"1165000000": {listing("b"), listing("c")},
	}}
	o := newTestOrchestrator(threeRegions)

	run := o.Execute(context.Background(), Request{
		Regions:       []string{"강남구", "서초구"},
		PropertyTypes: []string{"아파트", "OPST"},
		TradeTypes:    []string{"A1", "전세"},
	}, s)

	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.True(t, run.Success())
	assert.Len(t, run.Listings, 12, "2 property types x 2 trade types per region")
	assert.Len(t, run.Batches, 8)
	assert.Zero(t, run.ErrorCount)
	require.NotNil(t, run.FinishedAt)
	require.NotEmpty(t, run.ID)

	require.Len(t, s.calls, 8)
	assert.Equal(t, Target{Region: "강남구", RegionCode: "1168000000", PropertyType: "APT", TradeType: "A1"}, s.calls[0])
	assert.Equal(t, Target{Region: "강남구", RegionCode: "1168000000", PropertyType: "APT", TradeType: "B1"}, s.calls[1])
	assert.Equal(t, Target{Region: "강남구", RegionCode: "1168000000", PropertyType: "OPST", TradeType: "A1"}, s.calls[2])
	assert.Equal(t, "서초구", s.calls[4].Region)

	assert.True(t, strings.HasPrefix(run.Logs[0], "[09:30:00] [시작] "))
	assert.Contains(t, run.Logs[len(run.Logs)-1], "[완료] 총 12개 매물 수집 완료 (에러: 0건)")
}

func TestExecuteAbortsOnBlock(t *testing.T) {
	s := &scriptedStrategy{
		results: map[string][]models.Listing{
			"1168000000": {listing("first")},
			"1171000000": {listing("third")},
		},
		errs: map[string]error{"1165000000": &BlockedError{Status: 429}},
	}
	o := newTestOrchestrator(threeRegions)
	out := &captureOutputs{}
	o.SetOutputs(out, out)

	run := o.Execute(context.Background(), Request{
		Regions:       []string{"강남구", "서초구", "송파구"},
		PropertyTypes: []string{"APT"},
		TradeTypes:    []string{"A1"},
	}, s)

	assert.Equal(t, models.RunStatusBlocked, run.Status)
	assert.True(t, run.Blocked)
	assert.False(t, run.Success())
	assert.Equal(t, BlockMessage, run.Message)
	require.Len(t, run.Listings, 1)
	assert.Equal(t, "first", run.Listings[0].Title)
	assert.Equal(t, 1, run.ErrorCount)

	require.Len(t, s.calls, 2)
	for _, line := range run.Logs {
		assert.NotContains(t, line, "송파구", "the third region is never attempted")
	}
	assert.Contains(t, run.Logs[len(run.Logs)-2], "[차단]")
	assert.Contains(t, run.Logs[len(run.Logs)-1], "[안내]")

	assert.Len(t, out.saved, 1, "partial results are still delivered")
	assert.Same(t, run, out.exported)
}

func TestBlockStartsCooldown(t *testing.T) {
	s := &scriptedStrategy{errs: map[string]error{"1168000000": &BlockedError{Status: 429}}}
	o := newTestOrchestrator(threeRegions)
	req := Request{Regions: []string{"강남구"}}

	first := o.Execute(context.Background(), req, s)
	require.True(t, first.Blocked)
	require.Len(t, s.calls, 1)

	second := o.Execute(context.Background(), req, s)
	assert.True(t, second.Blocked)
	assert.Equal(t, BlockMessage, second.Message)
	assert.Len(t, s.calls, 1, "no request is made while cooling down")

	dom := &scriptedStrategy{name: StrategyDOM}
	run := o.Execute(context.Background(), req, dom)
	assert.False(t, run.Blocked, "the cooldown guards the API only")
	assert.Len(t, dom.calls, 1)

	require.NoError(t, o.ClearCooldown())
	o.Execute(context.Background(), req, s)
	assert.Len(t, s.calls, 2)
}

func TestExecuteSkipsUnresolvedRegions(t *testing.T) {
	s := &scriptedStrategy{results: map[string][]models.Listing{"1168000000": {listing("a")}}}
	o := newTestOrchestrator(threeRegions)

	run := o.Execute(context.Background(), Request{Regions: []string{"없는동네", "강남구"}}, s)

	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Len(t, run.Listings, 1)
	require.Len(t, s.calls, 1)
	assert.Contains(t, strings.Join(run.Logs, "\n"), "[경고] 없는동네: 지역 코드를 찾을 수 없음")
}

// blockedResolver knows only its table and reports a block for anything else.
type blockedResolver struct {
	fakeResolver
	blocked bool
}

func (r *blockedResolver) ResolveCode(ctx context.Context, name string) (string, bool) {
	code, ok := r.fakeResolver.ResolveCode(ctx, name)
	if !ok {
		r.blocked = true
	}
	return code, ok
}

func (r *blockedResolver) Blocked() bool { return r.blocked }

func TestExecuteStopsWhenRegionLookupBlocked(t *testing.T) {
	s := &scriptedStrategy{results: map[string][]models.Listing{"1168000000": {listing("a")}}}
	o := newTestOrchestrator(&blockedResolver{fakeResolver: threeRegions})

	run := o.Execute(context.Background(), Request{
		Regions:       []string{"강남구", "강남구 역삼동", "서초구"},
		PropertyTypes: []string{"APT"},
		TradeTypes:    []string{"A1"},
	}, s)

	assert.Equal(t, models.RunStatusBlocked, run.Status)
	assert.True(t, run.Blocked)
	assert.Equal(t, BlockMessage, run.Message)
	assert.Len(t, run.Listings, 1)
	require.Len(t, s.calls, 1, "regions after the blocked lookup are not attempted")
	assert.Contains(t, strings.Join(run.Logs, "\n"), "[차단] 강남구 역삼동")
}

func TestExecuteContinuesAfterErrors(t *testing.T) {
	s := &scriptedStrategy{
		results: map[string][]models.Listing{"1165000000": {listing("b")}},
		errs:    map[string]error{"1168000000": &UpstreamError{Status: 500, Body: "oops"}},
	}
	o := newTestOrchestrator(threeRegions)
	rec := &memRecorder{}
	o.SetRecorder(rec)

	run := o.Execute(context.Background(), Request{Regions: []string{"강남구", "서초구"}}, s)

	assert.Equal(t, models.RunStatusPartial, run.Status)
	assert.Equal(t, 1, run.ErrorCount)
	assert.Len(t, run.Listings, 1)
	assert.Len(t, s.calls, 2)
	assert.Equal(t, "upstream error 500: oops", run.Batches[0].Error)

	assert.Equal(t, []string{run.ID}, rec.created)
	assert.Equal(t, []models.RunStatus{models.RunStatusPartial}, rec.updated)
	assert.Equal(t, run.Logs, rec.lines, "recorded lines keep execution order")
}

func TestExecuteAllFailed(t *testing.T) {
	s := &scriptedStrategy{errs: map[string]error{"1168000000": errors.New("boom")}}
	o := newTestOrchestrator(threeRegions)

	run := o.Execute(context.Background(), Request{Regions: []string{"강남구"}}, s)
	assert.Equal(t, models.RunStatusFailed, run.Status)
}

func TestExecuteNoRegions(t *testing.T) {
	o := newTestOrchestrator(threeRegions)
	run := o.Execute(context.Background(), Request{}, &scriptedStrategy{})
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.NotEmpty(t, run.Logs)
}

func TestExecuteStrategyLifecycle(t *testing.T) {
	o := newTestOrchestrator(threeRegions)

	s := &lifecycleStrategy{scriptedStrategy: scriptedStrategy{name: StrategyBrowser}}
	o.Execute(context.Background(), Request{Regions: []string{"강남구"}}, s)
	assert.True(t, s.started)
	assert.True(t, s.stopped)

	failing := &lifecycleStrategy{
		scriptedStrategy: scriptedStrategy{name: StrategyBrowser},
		startErr:         errors.New("no chromium"),
	}
	run := o.Execute(context.Background(), Request{Regions: []string{"강남구"}}, failing)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Empty(t, failing.calls)
	assert.False(t, failing.stopped)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &scriptedStrategy{errs: map[string]error{}}
	s.errs["1168000000"] = context.Canceled
	cancel()

	o := newTestOrchestrator(threeRegions)
	run := o.Execute(ctx, Request{Regions: []string{"강남구", "서초구"}}, s)

	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Len(t, s.calls, 1)
}

func TestRunUnknownStrategy(t *testing.T) {
	o := newTestOrchestrator(threeRegions)
	run := o.Run(context.Background(), Request{Regions: []string{"강남구"}, Strategy: "carrier-pigeon"})
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Contains(t, run.Message, "unknown strategy")
}

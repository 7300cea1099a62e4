package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"land_scrooper/config"
	"land_scrooper/extract"
	"land_scrooper/models"
	"land_scrooper/scraper"
	"land_scrooper/storage"
)

const cardHTML = `<html><body>
<div class="item">
  <div class="item_title"><span class="text">헬리오시티</span></div>
  <div class="price_line"><span class="type">전세</span><span class="price">12억</span></div>
</div>
</body></html>`

type stubPage struct {
	playwright.Page
	url string
}

func (p *stubPage) Goto(target string, _ ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.url = target
	return nil, nil
}

func (p *stubPage) URL() string { return p.url }

func (p *stubPage) Content() (string, error) { return cardHTML, nil }

func (p *stubPage) Evaluate(string, ...interface{}) (interface{}, error) { return nil, nil }

type stubBrowser struct{ page *stubPage }

func (b *stubBrowser) Page() playwright.Page { return b.page }
func (b *stubBrowser) Close() error          { return nil }

type fakeRunner struct {
	requests   []scraper.Request
	strategies []scraper.Strategy
	cleared    int
}

func (r *fakeRunner) Run(_ context.Context, req scraper.Request) *models.CollectionRun {
	r.requests = append(r.requests, req)
	r.strategies = append(r.strategies, nil)
	return &models.CollectionRun{ID: "run-api", Status: models.RunStatusCompleted}
}

func (r *fakeRunner) Execute(ctx context.Context, req scraper.Request, s scraper.Strategy) *models.CollectionRun {
	r.requests = append(r.requests, req)
	r.strategies = append(r.strategies, s)
	if st, ok := s.(scraper.Starter); ok {
		if err := st.Start(ctx); err == nil {
			st.Stop()
		}
	}
	return &models.CollectionRun{ID: "run-" + s.Name(), Status: models.RunStatusPartial}
}

func (r *fakeRunner) ClearCooldown() error {
	r.cleared++
	return nil
}

type regionTable map[string]string

func (t regionTable) ResolveCode(_ context.Context, name string) (string, bool) {
	code, ok := t[name]
	return code, ok
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeRunner, *int) {
	t.Helper()
	d, runner, created, _ := newTestDispatcherWith(t, scraper.Deps{})
	return d, runner, created
}

// newTestDispatcherWith also records the options of every browser launch.
func newTestDispatcherWith(t *testing.T, deps scraper.Deps) (*Dispatcher, *fakeRunner, *int, *[]scraper.LaunchOptions) {
	t.Helper()
	runner := &fakeRunner{}
	created := 0
	var launches []scraper.LaunchOptions
	factory := func() *scraper.Session {
		created++
		b := &stubBrowser{page: &stubPage{}}
		return scraper.NewSession(config.BrowserConfig{NavTimeout: time.Second}, "https://new.land.naver.com",
			extract.DefaultSelectors(), func(_ context.Context, opts scraper.LaunchOptions) (scraper.Browser, error) {
				launches = append(launches, opts)
				return b, nil
			})
	}
	d := NewDispatcher(runner, regionTable{"송파구": "1171000000"}, factory, deps)
	return d, runner, &created, &launches
}

func command(t *testing.T, typ models.CommandType, params *models.CommandParams) *models.Command {
	t.Helper()
	cmd := &models.Command{ID: 1, Command: typ}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		cmd.Params = raw
	}
	return cmd
}

func TestDispatcherInteractiveFlow(t *testing.T) {
	ctx := context.Background()
	d, _, created := newTestDispatcher(t)

	res := d.Handle(ctx, command(t, models.CmdScrape, nil))
	assert.False(t, res.Success, "nothing launched yet")

	res = d.Handle(ctx, command(t, models.CmdLaunch, &models.CommandParams{Visible: true}))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "launched", res.State)

	res = d.Handle(ctx, command(t, models.CmdLaunch, nil))
	assert.True(t, res.Success, "a second launch reports the running browser")

	res = d.Handle(ctx, command(t, models.CmdOpen, &models.CommandParams{Region: "송파구", TradeType: "전세"}))
	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.URL, "cortarNo=1171000000")
	assert.Contains(t, res.URL, "a=APT&b=B1")

	res = d.Handle(ctx, command(t, models.CmdGetURL, nil))
	assert.Equal(t, "page_open", res.State)
	assert.Contains(t, res.URL, "cortarNo=1171000000")

	res = d.Handle(ctx, command(t, models.CmdScrape, &models.CommandParams{Region: "송파구"}))
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, "헬리오시티", res.Listings[0].Title)
	assert.Equal(t, models.DepositPrice(120000), res.Listings[0].Price)

	res = d.Handle(ctx, command(t, models.CmdClickComplex, nil))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "complexName")

	res = d.Handle(ctx, command(t, models.CmdClose, nil))
	require.True(t, res.Success)
	assert.Equal(t, "closed", res.State)
	assert.Equal(t, 1, *created)

	res = d.Handle(ctx, command(t, models.CmdLaunch, nil))
	require.True(t, res.Success, "a closed session is replaced")
	assert.Equal(t, 2, *created)
}

func TestDispatcherOpenFallsBackToFree(t *testing.T) {
	ctx := context.Background()
	d, _, _ := newTestDispatcher(t)
	require.True(t, d.Handle(ctx, command(t, models.CmdLaunch, nil)).Success)

	res := d.Handle(ctx, command(t, models.CmdOpen, &models.CommandParams{Region: "없는동네"}))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "https://new.land.naver.com", res.URL)

	res = d.Handle(ctx, command(t, models.CmdOpenFree, nil))
	assert.True(t, res.Success)
}

func TestDispatcherRun(t *testing.T) {
	ctx := context.Background()
	d, runner, _ := newTestDispatcher(t)

	res := d.Handle(ctx, command(t, models.CmdRun, &models.CommandParams{Region: "강남구", TradeTypes: []string{"B1"}}))
	assert.True(t, res.Success)
	require.NotNil(t, res.Run)
	assert.Equal(t, "run-api", res.Run.ID)
	assert.Equal(t, scraper.Request{Regions: []string{"강남구"}, TradeTypes: []string{"B1"}}, runner.requests[0])
	assert.Nil(t, runner.strategies[0])

	res = d.Handle(ctx, command(t, models.CmdRun, &models.CommandParams{Regions: []string{"송파구"}, Strategy: "dom"}))
	assert.True(t, res.Success)
	require.NotNil(t, runner.strategies[1])
	assert.Equal(t, scraper.StrategyDOM, runner.strategies[1].Name())
}

func TestDispatcherBrowserRunHonorsVisible(t *testing.T) {
	ctx := context.Background()
	d, runner, _, launches := newTestDispatcherWith(t, scraper.Deps{Visible: true, MaxPages: 2})

	res := d.Handle(ctx, command(t, models.CmdRun, &models.CommandParams{Regions: []string{"송파구"}, Strategy: "browser"}))
	assert.True(t, res.Success)
	require.Len(t, runner.strategies, 1)
	assert.Equal(t, scraper.StrategyBrowser, runner.strategies[0].Name())

	require.Len(t, *launches, 1)
	assert.True(t, (*launches)[0].Visible)

	require.True(t, d.Handle(ctx, command(t, models.CmdLaunch, nil)).Success)
	require.Len(t, *launches, 2)
	assert.True(t, (*launches)[1].Visible, "launch without params uses the configured visibility")
}

func TestDispatcherRunStatusAndReset(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	d, runner, _ := newTestDispatcher(t)

	res := d.Handle(ctx, command(t, models.CmdRunStatus, &models.CommandParams{RunID: "run-1"}))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "no run store")

	d.SetStore(store)
	started := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	run := &models.CollectionRun{ID: "run-1", Strategy: "api", StartedAt: started, Status: models.RunStatusRunning}
	require.NoError(t, store.CreateRun(run))
	require.NoError(t, store.Log(run.ID, models.LogLevelInfo, "[09:00:00] [시작] 수집 시작"))
	run.Status = models.RunStatusCompleted
	require.NoError(t, store.UpdateRun(run))

	res = d.Handle(ctx, command(t, models.CmdRunStatus, &models.CommandParams{RunID: "run-1"}))
	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Summary)
	assert.Equal(t, models.RunStatusCompleted, res.Summary.Status)
	require.Len(t, res.Logs, 1)
	assert.Contains(t, res.Logs[0].Message, "[시작]")

	res = d.Handle(ctx, command(t, models.CmdRunStatus, nil))
	assert.Contains(t, res.Error, "runId is required")

	res = d.Handle(ctx, command(t, models.CmdClearCooldown, nil))
	assert.True(t, res.Success)
	assert.Equal(t, 1, runner.cleared)

	res = d.Handle(ctx, command(t, models.CmdReset, nil))
	require.True(t, res.Success, res.Error)
	res = d.Handle(ctx, command(t, models.CmdRunStatus, &models.CommandParams{RunID: "run-1"}))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "not found")
}

func TestDispatcherComplexCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/complexes":
			assert.Equal(t, "1171000000", r.URL.Query().Get("cortarNo"))
			w.Write([]byte(`{"isMoreData":false,"complexList":[{"complexNo":"111515","complexName":"헬리오시티","dealCount":7,"leaseCount":3}]}`))
		case "/api/complexes/111515":
			w.Write([]byte(`{"complexDetail":{"complexNo":"111515","complexName":"헬리오시티"}}`))
		case "/api/articles/complex/111515":
			assert.Equal(t, "B1", r.URL.Query().Get("tradeType"))
			w.Write([]byte(`{"isMoreData":false,"articleList":[{"articleNo":"3301","articleName":"헬리오시티 301동","tradeTypeCode":"B1","dealOrWarrantPrc":"12억"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	api := scraper.NewAPIClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	d, _, _, _ := newTestDispatcherWith(t, scraper.Deps{API: api})

	res := d.Handle(ctx, command(t, models.CmdComplexes, &models.CommandParams{Region: "송파구"}))
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Complexes, 1)
	assert.Equal(t, "헬리오시티", res.Complexes[0].Name)
	assert.Equal(t, 10, res.Complexes[0].ArticleCount)

	res = d.Handle(ctx, command(t, models.CmdComplexListings, &models.CommandParams{ComplexNo: "111515", TradeType: "전세", Region: "송파구"}))
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, "헬리오시티", res.Listings[0].ComplexName)
	assert.Equal(t, models.DepositPrice(120000), res.Listings[0].Price)

	res = d.Handle(ctx, command(t, models.CmdComplexListings, nil))
	assert.Contains(t, res.Error, "complexNo is required")

	res = d.Handle(ctx, command(t, models.CmdComplexes, &models.CommandParams{Region: "없는동네"}))
	assert.False(t, res.Success)

	noAPI, _, _ := newTestDispatcher(t)
	assert.False(t, noAPI.Handle(ctx, command(t, models.CmdComplexes, &models.CommandParams{RegionCode: "1171000000"})).Success)
}

func TestDispatcherUnknownCommand(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	res := d.Handle(context.Background(), command(t, "reboot", nil))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "unknown command")

	bad := &models.Command{ID: 9, Command: models.CmdRun, Params: json.RawMessage(`{"regions":3}`)}
	assert.False(t, d.Handle(context.Background(), bad).Success)
}

func TestSchedulerProcessesQueue(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "cmd.db"))
	require.NoError(t, err)
	defer store.Close()

	d, _, _ := newTestDispatcher(t)
	s := New(config.SchedulerConfig{}, d, store)

	launchID, err := store.EnqueueCommand(models.CmdLaunch, nil)
	require.NoError(t, err)
	urlID, err := store.EnqueueCommand(models.CmdGetURL, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, s.ProcessPending(context.Background()))
	assert.Zero(t, s.ProcessPending(context.Background()))

	cmd, err := store.GetCommand(launchID)
	require.NoError(t, err)
	var res Result
	require.NoError(t, json.Unmarshal(cmd.Result, &res))
	assert.True(t, res.Success)

	cmd, err = store.GetCommand(urlID)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(cmd.Result, &res))
	assert.Equal(t, "launched", res.State)
}

func TestSchedulerTriggerNow(t *testing.T) {
	d, runner, _ := newTestDispatcher(t)
	s := New(config.SchedulerConfig{
		Regions:       []string{"강남구", "서초구"},
		PropertyTypes: []string{"APT"},
		TradeTypes:    []string{"A1"},
		Strategy:      "api",
	}, d, nil)

	run := s.TriggerNow(context.Background())
	assert.Equal(t, "run-api", run.ID)
	require.Len(t, runner.requests, 1)
	assert.Equal(t, []string{"강남구", "서초구"}, runner.requests[0].Regions)
}

func TestSchedulerInvalidCron(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	s := New(config.SchedulerConfig{Cron: "not a cron"}, d, nil)
	assert.ErrorContains(t, s.Start(context.Background()), "invalid cron expression")
}

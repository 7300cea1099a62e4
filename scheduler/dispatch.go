package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"land_scrooper/logging"
	"land_scrooper/models"
	"land_scrooper/scraper"
	"land_scrooper/storage"
)

// Runner executes collection runs.
type Runner interface {
	Run(ctx context.Context, req scraper.Request) *models.CollectionRun
	Execute(ctx context.Context, req scraper.Request, strategy scraper.Strategy) *models.CollectionRun
	ClearCooldown() error
}

// RunStore answers questions about past runs and can wipe them.
type RunStore interface {
	GetRun(id string) (*storage.RunSummary, error)
	GetRunLogs(runID string) ([]models.RunLog, error)
	ResetAllData() error
}

// SessionFactory builds a fresh, unlaunched browser session.
type SessionFactory func() *scraper.Session

// Dispatcher executes user actions one at a time against the single browser
// session it owns. A closed session is replaced on the next action that
// needs one.
type Dispatcher struct {
	mu         sync.Mutex
	runner     Runner
	resolver   scraper.Resolver
	newSession SessionFactory
	session    *scraper.Session
	deps       scraper.Deps
	store      RunStore
	log        zerolog.Logger
}

// NewDispatcher builds a dispatcher. deps carries the browser visibility and
// page cap for browser runs; its Session is ignored in favor of the owned one.
func NewDispatcher(runner Runner, resolver scraper.Resolver, newSession SessionFactory, deps scraper.Deps) *Dispatcher {
	deps.Session = nil
	return &Dispatcher{
		runner:     runner,
		resolver:   resolver,
		newSession: newSession,
		deps:       deps,
		log:        logging.For("dispatch"),
	}
}

// SetStore enables the run_status and reset commands.
func (d *Dispatcher) SetStore(store RunStore) {
	d.store = store
}

// Result is what a command returns, stored as JSON next to the command.
type Result struct {
	Success   bool                  `json:"success"`
	Message   string                `json:"message,omitempty"`
	Error     string                `json:"error,omitempty"`
	URL       string                `json:"url,omitempty"`
	State     string                `json:"state,omitempty"`
	Listings  []models.Listing      `json:"listings,omitempty"`
	Run       *models.CollectionRun `json:"run,omitempty"`
	Complexes []models.Complex      `json:"complexes,omitempty"`
	Summary   *storage.RunSummary   `json:"summary,omitempty"`
	Logs      []models.RunLog       `json:"logs,omitempty"`
}

func failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Handle runs one command to completion.
func (d *Dispatcher) Handle(ctx context.Context, cmd *models.Command) Result {
	params, err := storage.ParseCommandParams(cmd)
	if err != nil {
		return failure(err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch cmd.Command {
	case models.CmdRun:
		run := d.run(ctx, runRequest(params))
		return Result{Success: run.Success(), Message: run.Message, Run: run}
	case models.CmdLaunch:
		return d.launch(ctx, params.Visible || d.deps.Visible)
	case models.CmdOpen:
		return d.open(ctx, params)
	case models.CmdOpenFree:
		return pageResult(d.current().OpenFree(ctx), d.current())
	case models.CmdGetURL:
		s := d.current()
		return Result{Success: true, URL: s.CurrentURL(), State: s.State().String()}
	case models.CmdScrape:
		return scrapeResult(d.current().ScrapeCurrentPage(ctx, params.Region))
	case models.CmdClickComplex:
		name := strings.TrimSpace(params.ComplexName)
		if name == "" {
			return failure(errors.New("complexName is required"))
		}
		return scrapeResult(d.current().ClickComplexAndScrape(ctx, name, params.Region))
	case models.CmdClose:
		if d.session == nil {
			return Result{Success: true, Message: "브라우저가 실행 중이 아닙니다.", State: scraper.StateUnlaunched.String()}
		}
		if err := d.session.Close(); err != nil {
			return failure(err)
		}
		return Result{Success: true, Message: "브라우저를 종료했습니다.", State: d.session.State().String()}
	case models.CmdComplexes:
		return d.complexes(ctx, params)
	case models.CmdComplexListings:
		return d.complexListings(ctx, params)
	case models.CmdRunStatus:
		return d.runStatus(params.RunID)
	case models.CmdClearCooldown:
		if err := d.runner.ClearCooldown(); err != nil {
			return failure(err)
		}
		return Result{Success: true, Message: "차단 대기 시간을 해제했습니다."}
	case models.CmdReset:
		if d.store == nil {
			return failure(errors.New("no run store configured"))
		}
		if err := d.store.ResetAllData(); err != nil {
			return failure(err)
		}
		return Result{Success: true, Message: "수집 기록을 초기화했습니다."}
	}
	return failure(fmt.Errorf("unknown command: %s", cmd.Command))
}

// Run serializes a collection run with the interactive commands.
func (d *Dispatcher) Run(ctx context.Context, req scraper.Request) *models.CollectionRun {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.run(ctx, req)
}

// Close shuts the owned session down.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return nil
	}
	return d.session.Close()
}

func (d *Dispatcher) run(ctx context.Context, req scraper.Request) *models.CollectionRun {
	switch req.Strategy {
	case scraper.StrategyBrowser, scraper.StrategyDOM:
		deps := d.deps
		deps.Session = d.current()
		strategy, err := scraper.NewStrategy(req.Strategy, deps)
		if err != nil {
			return d.runner.Run(ctx, req)
		}
		return d.runner.Execute(ctx, req, strategy)
	}
	return d.runner.Run(ctx, req)
}

func (d *Dispatcher) apiStrategy() (*scraper.APIStrategy, error) {
	s, err := scraper.NewStrategy(scraper.StrategyAPI, d.deps)
	if err != nil {
		return nil, err
	}
	return s.(*scraper.APIStrategy), nil
}

func (d *Dispatcher) complexes(ctx context.Context, params *models.CommandParams) Result {
	api, err := d.apiStrategy()
	if err != nil {
		return failure(err)
	}
	code := params.RegionCode
	if code == "" && params.Region != "" {
		code, _ = d.resolver.ResolveCode(ctx, params.Region)
	}
	if code == "" {
		return failure(errors.New("region or regionCode is required"))
	}

	complexes, err := api.Complexes(ctx, code, propertyTypeOrDefault(params.PropertyType))
	if err != nil {
		return apiFailure(err)
	}
	return Result{Success: true, Message: fmt.Sprintf("%d개 단지", len(complexes)), Complexes: complexes}
}

func (d *Dispatcher) complexListings(ctx context.Context, params *models.CommandParams) Result {
	api, err := d.apiStrategy()
	if err != nil {
		return failure(err)
	}
	complexNo := strings.TrimSpace(params.ComplexNo)
	if complexNo == "" {
		return failure(errors.New("complexNo is required"))
	}

	var tt string
	if params.TradeType != "" {
		tt = models.NormalizeTradeType(params.TradeType)
	}
	target := scraper.Target{Region: params.Region, PropertyType: propertyTypeOrDefault(params.PropertyType), TradeType: tt}
	listings, err := api.CollectComplex(ctx, complexNo, target)
	if err != nil {
		return apiFailure(err)
	}
	return Result{Success: true, Message: fmt.Sprintf("%d개 매물", len(listings)), Listings: listings}
}

func apiFailure(err error) Result {
	res := failure(err)
	if scraper.IsBlocked(err) {
		res.Message = scraper.BlockMessage
	}
	return res
}

func propertyTypeOrDefault(v string) string {
	if pt := models.NormalizePropertyType(v); pt != "" {
		return pt
	}
	return models.PropertyApartment
}

func (d *Dispatcher) runStatus(runID string) Result {
	if d.store == nil {
		return failure(errors.New("no run store configured"))
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return failure(errors.New("runId is required"))
	}

	summary, err := d.store.GetRun(runID)
	if err != nil {
		return failure(err)
	}
	if summary == nil {
		return failure(fmt.Errorf("run %s not found", runID))
	}
	logs, err := d.store.GetRunLogs(runID)
	if err != nil {
		return failure(err)
	}
	return Result{Success: true, Message: string(summary.Status), Summary: summary, Logs: logs}
}

func (d *Dispatcher) launch(ctx context.Context, visible bool) Result {
	s := d.current()
	err := s.Launch(ctx, visible)
	switch {
	case errors.Is(err, scraper.ErrSessionActive):
		return Result{Success: true, Message: "브라우저가 이미 실행 중입니다.", State: s.State().String()}
	case err != nil:
		return failure(err)
	}
	return Result{Success: true, Message: "브라우저를 시작했습니다.", State: s.State().String()}
}

func (d *Dispatcher) open(ctx context.Context, params *models.CommandParams) Result {
	s := d.current()
	code := params.RegionCode
	if code == "" && params.Region != "" {
		if c, ok := d.resolver.ResolveCode(ctx, params.Region); ok {
			code = c
		}
	}
	if code == "" {
		d.log.Info().Str("region", params.Region).Msg("region not resolved, opening the map without filters")
		return pageResult(s.OpenFree(ctx), s)
	}

	pt := propertyTypeOrDefault(params.PropertyType)
	tt := models.TradeSale
	if params.TradeType != "" {
		tt = models.NormalizeTradeType(params.TradeType)
	}
	return pageResult(s.OpenPage(ctx, code, pt, tt), s)
}

// current returns the owned session, replacing a closed one.
func (d *Dispatcher) current() *scraper.Session {
	if d.session == nil || d.session.State() == scraper.StateClosed {
		d.session = d.newSession()
	}
	return d.session
}

func runRequest(p *models.CommandParams) scraper.Request {
	regions := p.Regions
	if len(regions) == 0 && p.Region != "" {
		regions = []string{p.Region}
	}
	propertyTypes := p.PropertyTypes
	if len(propertyTypes) == 0 && p.PropertyType != "" {
		propertyTypes = []string{p.PropertyType}
	}
	tradeTypes := p.TradeTypes
	if len(tradeTypes) == 0 && p.TradeType != "" {
		tradeTypes = []string{p.TradeType}
	}
	return scraper.Request{
		Regions:       regions,
		PropertyTypes: propertyTypes,
		TradeTypes:    tradeTypes,
		Strategy:      p.Strategy,
	}
}

func pageResult(r scraper.PageResult, s *scraper.Session) Result {
	res := Result{Success: r.Success, Message: r.Message, URL: r.URL, State: s.State().String()}
	if r.Err != nil {
		res.Error = r.Err.Error()
	}
	return res
}

func scrapeResult(r scraper.ScrapeResult) Result {
	res := Result{Success: r.Success, Message: r.Message, URL: r.URL, Listings: r.Listings}
	if r.Err != nil {
		res.Error = r.Err.Error()
	}
	return res
}

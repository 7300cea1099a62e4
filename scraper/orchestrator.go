package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"land_scrooper/logging"
	"land_scrooper/models"
	"land_scrooper/services/cache"
)

const cooldownKey = "land:block_cooldown"

// Run log tags, shown to users in front of every line.
const (
	tagStart    = "시작"
	tagInfo     = "정보"
	tagWarn     = "경고"
	tagProgress = "진행"
	tagOK       = "성공"
	tagBlocked  = "차단"
	tagNotice   = "안내"
	tagError    = "에러"
	tagDone     = "완료"
)

// Resolver turns a region name into its site code.
type Resolver interface {
	ResolveCode(ctx context.Context, name string) (string, bool)
}

// BlockReporter is implemented by resolvers that talk to the site and can be
// blocked by it.
type BlockReporter interface {
	Blocked() bool
}

// Recorder persists runs and their log lines.
type Recorder interface {
	CreateRun(run *models.CollectionRun) error
	UpdateRun(run *models.CollectionRun) error
	Log(runID string, level models.LogLevel, message string) error
}

// ListingWriter stores the listings of a finished run.
type ListingWriter interface {
	SaveListings(ctx context.Context, runID string, listings []models.Listing) (int, error)
}

// ResultExporter hands a finished run to downstream consumers.
type ResultExporter interface {
	Export(ctx context.Context, run *models.CollectionRun) error
}

type Request struct {
	Regions       []string `json:"regions"`
	PropertyTypes []string `json:"propertyTypes"`
	TradeTypes    []string `json:"tradeTypes"`
	Strategy      string   `json:"strategy"`
}

type Orchestrator struct {
	resolver Resolver
	deps     Deps
	cooldown cache.CacheService
	coolFor  time.Duration

	recorder Recorder
	writer   ListingWriter
	exporter ResultExporter

	// one run at a time; the rate gate and the session are shared
	runMu sync.Mutex

	now func() time.Time
	log zerolog.Logger
}

func NewOrchestrator(resolver Resolver, deps Deps, cooldown cache.CacheService, coolFor time.Duration) *Orchestrator {
	if cooldown == nil {
		cooldown = cache.NewMemoryService()
	}
	return &Orchestrator{
		resolver: resolver,
		deps:     deps,
		cooldown: cooldown,
		coolFor:  coolFor,
		now:      time.Now,
		log:      logging.For("orchestrator"),
	}
}

// SetRecorder makes runs and their logs persistent.
func (o *Orchestrator) SetRecorder(r Recorder) {
	o.recorder = r
}

// SetOutputs wires where finished runs go. Either may be nil.
func (o *Orchestrator) SetOutputs(w ListingWriter, e ResultExporter) {
	o.writer = w
	o.exporter = e
}

// Run collects with the strategy named in the request.
func (o *Orchestrator) Run(ctx context.Context, req Request) *models.CollectionRun {
	strategy, err := NewStrategy(req.Strategy, o.deps)
	if err != nil {
		run := o.newRun(req.Strategy)
		o.logf(run, models.LogLevelError, tagError, "%v", err)
		run.ErrorCount++
		run.Message = err.Error()
		o.finish(ctx, run, models.RunStatusFailed)
		return run
	}
	return o.Execute(ctx, req, strategy)
}

// Execute walks regions × property types × trade types in that nesting
// order. A block aborts the run at once; any other error is logged and
// counted. The returned run always carries what was collected so far.
func (o *Orchestrator) Execute(ctx context.Context, req Request, strategy Strategy) *models.CollectionRun {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	run := o.newRun(strategy.Name())
	propertyTypes := normalizeAll(req.PropertyTypes, normalizePropertyType)
	tradeTypes := normalizeAll(req.TradeTypes, models.NormalizeTradeType)
	if len(propertyTypes) == 0 {
		propertyTypes = []string{models.PropertyApartment}
	}
	if len(tradeTypes) == 0 {
		tradeTypes = []string{models.TradeSale}
	}

	if len(req.Regions) == 0 {
		o.logf(run, models.LogLevelError, tagError, "최소 1개 이상의 지역을 선택해주세요.")
		run.Message = "no regions requested"
		o.finish(ctx, run, models.RunStatusFailed)
		return run
	}

	o.logf(run, models.LogLevelInfo, tagStart, "수집 시작 - 지역: %d개, 유형: %d개, 거래: %d개, 방식: %s",
		len(req.Regions), len(propertyTypes), len(tradeTypes), strategy.Name())

	if strategy.Name() == StrategyAPI && o.coolingDown() {
		o.logf(run, models.LogLevelWarn, tagBlocked, "최근 차단 이후 대기 시간이 지나지 않았습니다.")
		run.Blocked = true
		run.Message = BlockMessage
		o.finish(ctx, run, models.RunStatusBlocked)
		return run
	}

	if st, ok := strategy.(Starter); ok {
		if err := st.Start(ctx); err != nil {
			o.logf(run, models.LogLevelError, tagError, "브라우저 시작 실패: %v", err)
			run.ErrorCount++
			run.Message = err.Error()
			o.finish(ctx, run, models.RunStatusFailed)
			return run
		}
		defer func() {
			if err := st.Stop(); err != nil {
				o.log.Warn().Err(err).Msg("failed to stop strategy")
			}
		}()
	}

	for _, region := range req.Regions {
		code, ok := o.resolver.ResolveCode(ctx, region)
		if !ok {
			if br, isReporter := o.resolver.(BlockReporter); isReporter && br.Blocked() {
				o.abortBlocked(ctx, run, region, &BlockedError{Status: http.StatusTooManyRequests})
				return run
			}
			o.logf(run, models.LogLevelWarn, tagWarn, "%s: 지역 코드를 찾을 수 없음", region)
			continue
		}

		for _, pt := range propertyTypes {
			for _, tt := range tradeTypes {
				target := Target{Region: region, RegionCode: code, PropertyType: pt, TradeType: tt}
				label := fmt.Sprintf("%s - %s - %s", region, models.PropertyTypeName(pt), models.TradeTypeName(tt))
				o.logf(run, models.LogLevelInfo, tagProgress, "%s 조회 중...", label)

				listings, err := strategy.Collect(ctx, target)
				run.Listings = append(run.Listings, listings...)
				batch := models.Batch{
					Region:       region,
					RegionCode:   code,
					PropertyType: pt,
					TradeType:    tt,
					Listings:     len(listings),
				}

				switch {
				case err == nil && len(listings) == 0:
					o.logf(run, models.LogLevelInfo, tagInfo, "%s: 매물 없음", label)
				case err == nil:
					o.logf(run, models.LogLevelInfo, tagOK, "%s: %d개 매물", label, len(listings))
				case IsBlocked(err):
					batch.Error = err.Error()
					run.Batches = append(run.Batches, batch)
					run.ErrorCount++
					o.abortBlocked(ctx, run, label, err)
					return run
				case ctx.Err() != nil:
					batch.Error = ctx.Err().Error()
					run.Batches = append(run.Batches, batch)
					run.ErrorCount++
					o.logf(run, models.LogLevelError, tagError, "%s: 중단됨 (%v)", label, ctx.Err())
					run.Message = "cancelled"
					o.finish(ctx, run, models.RunStatusFailed)
					return run
				default:
					batch.Error = err.Error()
					run.ErrorCount++
					o.logf(run, models.LogLevelError, tagError, "%s: %v", label, err)
				}
				run.Batches = append(run.Batches, batch)
			}
		}
	}

	o.logf(run, models.LogLevelInfo, tagDone, "총 %d개 매물 수집 완료 (에러: %d건)", len(run.Listings), run.ErrorCount)

	status := models.RunStatusCompleted
	switch {
	case run.ErrorCount > 0 && len(run.Listings) == 0 && len(run.Batches) == run.ErrorCount:
		status = models.RunStatusFailed
	case run.ErrorCount > 0:
		status = models.RunStatusPartial
	}
	o.finish(ctx, run, status)
	return run
}

func (o *Orchestrator) abortBlocked(ctx context.Context, run *models.CollectionRun, label string, err error) {
	o.logf(run, models.LogLevelError, tagBlocked, "%s: 네이버가 요청을 차단함 (%v)", label, err)
	o.logf(run, models.LogLevelWarn, tagNotice, "잠시 후 다시 시도해주세요. 소량씩 수집하는 것을 권장합니다.")
	o.startCooldown()
	run.Blocked = true
	run.Message = BlockMessage
	o.finish(ctx, run, models.RunStatusBlocked)
}

func (o *Orchestrator) newRun(strategy string) *models.CollectionRun {
	run := &models.CollectionRun{
		ID:        uuid.NewString(),
		Strategy:  strategy,
		StartedAt: o.now(),
		Status:    models.RunStatusRunning,
		Listings:  []models.Listing{},
		Batches:   []models.Batch{},
		Logs:      []string{},
	}
	if o.recorder != nil {
		if err := o.recorder.CreateRun(run); err != nil {
			o.log.Warn().Err(err).Msg("failed to record run")
		}
	}
	return run
}

func (o *Orchestrator) finish(ctx context.Context, run *models.CollectionRun, status models.RunStatus) {
	now := o.now()
	run.FinishedAt = &now
	run.Status = status

	if o.recorder != nil {
		if err := o.recorder.UpdateRun(run); err != nil {
			o.log.Warn().Err(err).Str("run", run.ID).Msg("failed to update run")
		}
	}
	if o.writer != nil && len(run.Listings) > 0 {
		if n, err := o.writer.SaveListings(ctx, run.ID, run.Listings); err != nil {
			o.log.Warn().Err(err).Str("run", run.ID).Msg("failed to save listings")
		} else {
			o.log.Info().Int("saved", n).Str("run", run.ID).Msg("listings saved")
		}
	}
	if o.exporter != nil {
		if err := o.exporter.Export(ctx, run); err != nil {
			o.log.Warn().Err(err).Str("run", run.ID).Msg("failed to export run")
		}
	}
}

// logf appends a run log line and mirrors it to the process log and the
// recorder.
func (o *Orchestrator) logf(run *models.CollectionRun, level models.LogLevel, tag, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] [%s] %s", o.now().Format(time.TimeOnly), tag, msg)
	run.Logs = append(run.Logs, line)

	ev := o.log.Info()
	switch level {
	case models.LogLevelWarn:
		ev = o.log.Warn()
	case models.LogLevelError:
		ev = o.log.Error()
	}
	ev.Str("run", run.ID).Str("tag", tag).Msg(msg)

	if o.recorder != nil {
		if err := o.recorder.Log(run.ID, level, line); err != nil {
			o.log.Debug().Err(err).Msg("failed to record log line")
		}
	}
}

func (o *Orchestrator) coolingDown() bool {
	v, err := o.cooldown.Get(cooldownKey)
	return err == nil && len(v) > 0
}

func (o *Orchestrator) startCooldown() {
	if o.coolFor <= 0 {
		return
	}
	stamp := []byte(o.now().Format(time.RFC3339))
	if err := o.cooldown.Set(cooldownKey, stamp, o.coolFor); err != nil {
		o.log.Warn().Err(err).Msg("failed to store block cooldown")
	}
}

// ClearCooldown lifts a block cooldown early.
func (o *Orchestrator) ClearCooldown() error {
	return o.cooldown.Delete(cooldownKey)
}

func normalizePropertyType(s string) string {
	if pt := models.NormalizePropertyType(s); pt != "" {
		return pt
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeAll maps and de-duplicates, keeping first-seen order.
func normalizeAll(in []string, fn func(string) string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if strings.TrimSpace(v) == "" {
			continue
		}
		n := fn(v)
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

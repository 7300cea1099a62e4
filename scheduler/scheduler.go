package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"land_scrooper/config"
	"land_scrooper/logging"
	"land_scrooper/models"
	"land_scrooper/scraper"
)

// CommandQueue is where user actions arrive.
type CommandQueue interface {
	GetPendingCommands() ([]models.Command, error)
	MarkCommandProcessed(id int64, result json.RawMessage) error
}

type Scheduler struct {
	cfg        config.SchedulerConfig
	dispatcher *Dispatcher
	queue      CommandQueue
	cron       *cron.Cron
	pollEvery  time.Duration
	stopCh     chan struct{}
	log        zerolog.Logger
}

func New(cfg config.SchedulerConfig, dispatcher *Dispatcher, queue CommandQueue) *Scheduler {
	return &Scheduler{
		cfg:        cfg,
		dispatcher: dispatcher,
		queue:      queue,
		cron:       cron.New(),
		pollEvery:  2 * time.Second,
		stopCh:     make(chan struct{}),
		log:        logging.For("scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.queue != nil {
		go s.pollCommands(ctx)
	}

	if s.cfg.Cron == "" {
		s.log.Info().Msg("no schedule configured, daemon will only respond to commands")
		return nil
	}

	s.log.Info().Str("cron", s.cfg.Cron).Strs("regions", s.cfg.Regions).Msg("starting scheduler")
	_, err := s.cron.AddFunc(s.cfg.Cron, func() {
		s.TriggerNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	close(s.stopCh)
}

// TriggerNow runs the configured collection once.
func (s *Scheduler) TriggerNow(ctx context.Context) *models.CollectionRun {
	run := s.dispatcher.Run(ctx, scraper.Request{
		Regions:       s.cfg.Regions,
		PropertyTypes: s.cfg.PropertyTypes,
		TradeTypes:    s.cfg.TradeTypes,
		Strategy:      s.cfg.Strategy,
	})
	s.log.Info().Str("run", run.ID).Str("status", string(run.Status)).Int("listings", len(run.Listings)).Msg("scheduled run finished")
	return run
}

func (s *Scheduler) pollCommands(ctx context.Context) {
	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.ProcessPending(ctx)
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// ProcessPending handles queued commands in arrival order.
func (s *Scheduler) ProcessPending(ctx context.Context) int {
	cmds, err := s.queue.GetPendingCommands()
	if err != nil {
		s.log.Error().Err(err).Msg("error getting commands")
		return 0
	}

	for i := range cmds {
		cmd := &cmds[i]
		s.log.Info().Int64("id", cmd.ID).Str("command", string(cmd.Command)).Msg("processing command")

		res := s.dispatcher.Handle(ctx, cmd)
		if !res.Success {
			s.log.Warn().Int64("id", cmd.ID).Str("error", res.Error).Str("message", res.Message).Msg("command failed")
		}

		data, err := json.Marshal(res)
		if err != nil {
			s.log.Error().Err(err).Int64("id", cmd.ID).Msg("error encoding command result")
			data = nil
		}
		if err := s.queue.MarkCommandProcessed(cmd.ID, data); err != nil {
			s.log.Error().Err(err).Int64("id", cmd.ID).Msg("error marking command processed")
		}
	}
	return len(cmds)
}

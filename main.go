package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"land_scrooper/config"
	"land_scrooper/extract"
	"land_scrooper/logging"
	"land_scrooper/models"
	"land_scrooper/regions"
	"land_scrooper/scheduler"
	"land_scrooper/scraper"
	"land_scrooper/services"
	"land_scrooper/services/cache"
	"land_scrooper/storage"
)

var (
	runNow    = flag.Bool("run", false, "Run one collection and exit")
	strategy  = flag.String("strategy", "", "Acquisition strategy: api, browser or dom")
	regionsF  = flag.String("regions", "", "Comma separated region names")
	typesF    = flag.String("types", "", "Comma separated property types (APT, OPST, VL, ABYG)")
	tradesF   = flag.String("trades", "", "Comma separated trade types (A1, B1, B2)")
	paste     = flag.String("paste", "", "Parse a saved page or copied text and print listings")
	forceHTML = flag.Bool("html", false, "Treat the -paste file as HTML")
	visible   = flag.Bool("visible", false, "Show the browser window")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		logging.SetOutput(cfg.LogLevel, os.Stdout)
		l := logging.For("main")
		l.Warn().Err(err).Msg("could not set up file logging")
	} else {
		defer logFile.Close()
	}
	log := logging.For("main")

	if *paste != "" {
		if err := parsePasted(*paste, *forceHTML, cfg.Selectors); err != nil {
			log.Fatal().Err(err).Msg("paste parse failed")
		}
		return
	}

	log.Info().Msg("Starting land_scrooper...")
	if *visible {
		cfg.Browser.Visible = true
	}

	api := scraper.NewAPIClient(cfg.API)
	directory := regions.NewDirectory(api)

	var cooldown cache.CacheService = cache.NewMemoryService()
	if cfg.MemcacheAddr != "" {
		cooldown = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("block cooldown in memcache")
	}

	newSession := func() *scraper.Session {
		return scraper.NewSession(cfg.Browser, cfg.API.BaseURL, cfg.Selectors, nil)
	}

	deps := scraper.Deps{
		API:      api,
		Visible:  cfg.Browser.Visible,
		MaxPages: cfg.Scheduler.MaxPages,
	}
	runDeps := deps
	runDeps.Session = newSession()
	orchestrator := scraper.NewOrchestrator(directory, runDeps, cooldown, cfg.BlockCooldown)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sqliteStore, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open SQLite")
	}
	defer sqliteStore.Close()
	orchestrator.SetRecorder(sqliteStore)
	log.Info().Str("path", cfg.DBPath).Msg("SQLite database")

	var writer scraper.ListingWriter
	if cfg.DatabaseURL != "" {
		pgStore, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to Postgres, listings will only be exported")
		} else {
			defer pgStore.Close()
			writer = services.NewListingService(pgStore)
			log.Info().Str("url", maskConnectionString(cfg.DatabaseURL)).Msg("connected to Postgres")
		}
	}

	exporter := services.NewExporter(cfg.Redis.Addr, cfg.Redis.Stream, cfg.ExportDir)
	defer exporter.Close()
	orchestrator.SetOutputs(writer, exporter)

	if *runNow {
		req := scraper.Request{
			Regions:       splitList(*regionsF, cfg.Scheduler.Regions),
			PropertyTypes: splitList(*typesF, cfg.Scheduler.PropertyTypes),
			TradeTypes:    splitList(*tradesF, cfg.Scheduler.TradeTypes),
			Strategy:      *strategy,
		}
		if req.Strategy == "" {
			req.Strategy = cfg.Scheduler.Strategy
		}

		run := runOnce(ctx, orchestrator, req)
		for _, line := range run.Logs {
			fmt.Println(line)
		}
		if run.Blocked {
			fmt.Println(run.Message)
		}
		if !run.Success() {
			os.Exit(1)
		}
		return
	}

	// Daemon mode
	dispatcher := scheduler.NewDispatcher(orchestrator, directory, newSession, deps)
	dispatcher.SetStore(sqliteStore)
	defer dispatcher.Close()

	sched := scheduler.New(cfg.Scheduler, dispatcher, sqliteStore)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	log.Info().Msg("Daemon running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutting down...")
	cancel()
	sched.Stop()
	log.Info().Msg("Goodbye!")
}

// runOnce cancels the run on SIGINT so partial results still get delivered.
func runOnce(ctx context.Context, o *scraper.Orchestrator, req scraper.Request) *models.CollectionRun {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return o.Run(ctx, req)
}

func parsePasted(path string, forceHTML bool, sel extract.Selectors) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	content, err := extract.ReadPasted(f, "")
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	opts := extract.Options{CollectedAt: time.Now()}
	var listings []models.Listing
	if forceHTML || isHTMLFile(path) {
		listings, err = extract.ScrapeHTML(strings.NewReader(content), sel, opts)
	} else {
		listings, err = extract.ParsePasted(content, sel, opts)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(listings)
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func splitList(flagValue string, fallback []string) []string {
	if strings.TrimSpace(flagValue) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(flagValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// maskConnectionString masks password in connection string for logging
func maskConnectionString(connStr string) string {
	// Simple mask - find :// and mask until @
	start := strings.Index(connStr, "://")
	if start < 0 {
		return connStr
	}
	start += 3

	at := strings.LastIndex(connStr, "@")
	if at < start {
		return connStr
	}
	colon := strings.Index(connStr[start:at], ":")
	if colon < 0 {
		return connStr
	}
	return connStr[:start+colon+1] + "****" + connStr[at:]
}

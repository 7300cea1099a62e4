package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"land_scrooper/logging"
	"land_scrooper/models"
)

const streamField = "run"

// Exporter delivers finished runs. Runs go to a Redis stream when one is
// configured; when Redis is absent or the XADD fails, the run is written as
// JSON under dir instead.
type Exporter struct {
	client *redis.Client
	stream string
	dir    string
	maxLen int64
	log    zerolog.Logger
}

// NewExporter connects lazily; an empty addr means file delivery only.
func NewExporter(addr, stream, dir string) *Exporter {
	e := &Exporter{
		stream: stream,
		dir:    dir,
		maxLen: 1000,
		log:    logging.For("exporter"),
	}
	if addr != "" {
		e.client = redis.NewClient(&redis.Options{Addr: addr})
	}
	return e
}

func (e *Exporter) Export(ctx context.Context, run *models.CollectionRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", run.ID, err)
	}

	if e.client != nil && e.stream != "" {
		err := e.client.XAdd(ctx, &redis.XAddArgs{
			Stream: e.stream,
			MaxLen: e.maxLen,
			Approx: true,
			Values: map[string]interface{}{
				streamField: data,
				"id":        run.ID,
				"status":    string(run.Status),
			},
		}).Err()
		if err == nil {
			e.log.Info().Str("run", run.ID).Str("stream", e.stream).Int("listings", len(run.Listings)).Msg("run published")
			return nil
		}
		e.log.Warn().Err(err).Str("run", run.ID).Msg("stream publish failed, writing file")
	}

	path, err := e.WriteFile(run.ID, data)
	if err != nil {
		return err
	}
	e.log.Info().Str("run", run.ID).Str("path", path).Msg("run exported")
	return nil
}

// WriteFile stores raw run JSON as <dir>/run-<id>.json.
func (e *Exporter) WriteFile(id string, data []byte) (string, error) {
	dir := e.dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, "run-"+id+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func (e *Exporter) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"land_scrooper/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS land_listings (
			id TEXT NOT NULL,
			collected_at DATE NOT NULL,
			run_id TEXT,
			title TEXT NOT NULL,
			complex_name TEXT,
			region TEXT,
			property_type TEXT,
			trade_type TEXT,
			price_kind TEXT,
			price_sale BIGINT,
			price_deposit BIGINT,
			price_rent BIGINT,
			price_text TEXT,
			area_primary DOUBLE PRECISION,
			area_secondary DOUBLE PRECISION,
			floor TEXT,
			total_floor TEXT,
			direction TEXT,
			broker TEXT,
			agent_name TEXT,
			confirmed_date TEXT,
			owner_type TEXT,
			description TEXT,
			thumbnail_url TEXT,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			source TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (id, collected_at)
		);
		CREATE INDEX IF NOT EXISTS idx_land_listings_region ON land_listings(region, trade_type, collected_at);`)
	return err
}

// =============================================================================
// Listings
// =============================================================================

const upsertListingSQL = `
	INSERT INTO land_listings (
		id, collected_at, run_id, title, complex_name, region, property_type, trade_type,
		price_kind, price_sale, price_deposit, price_rent, price_text, area_primary, area_secondary,
		floor, total_floor, direction, broker, agent_name, confirmed_date, owner_type,
		description, thumbnail_url, lat, lng, source
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27
	)
	ON CONFLICT (id, collected_at) DO UPDATE SET
		run_id = EXCLUDED.run_id,
		price_kind = EXCLUDED.price_kind,
		price_sale = EXCLUDED.price_sale,
		price_deposit = EXCLUDED.price_deposit,
		price_rent = EXCLUDED.price_rent,
		price_text = COALESCE(NULLIF(EXCLUDED.price_text, ''), land_listings.price_text),
		floor = COALESCE(NULLIF(EXCLUDED.floor, ''), land_listings.floor),
		direction = COALESCE(NULLIF(EXCLUDED.direction, ''), land_listings.direction),
		broker = COALESCE(NULLIF(EXCLUDED.broker, ''), land_listings.broker),
		description = COALESCE(NULLIF(EXCLUDED.description, ''), land_listings.description),
		updated_at = NOW()`

// UpsertListings writes all listings of a run in one batch. Listings are
// keyed by (id, collected_at), so a re-collection on the same day updates
// the row instead of adding one.
func (s *PostgresStore) UpsertListings(ctx context.Context, runID string, listings []models.Listing) (int, error) {
	batch := &pgx.Batch{}
	for _, l := range listings {
		batch.Queue(upsertListingSQL, listingArgs(runID, l)...)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for i := range listings {
		if _, err := br.Exec(); err != nil {
			return written, fmt.Errorf("listing %s: %w", listings[i].ID, err)
		}
		written++
	}
	return written, nil
}

func (s *PostgresStore) CountListings(ctx context.Context, region string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM land_listings WHERE region = $1`, region).Scan(&n)
	return n, err
}

func listingArgs(runID string, l models.Listing) []any {
	collected := l.CollectedAt
	if collected == "" {
		collected = time.Now().Format(time.DateOnly)
	}
	return []any{
		l.ID, collected, runID, l.Title, l.ComplexName, l.Region, l.PropertyTypeCode, l.TradeTypeCode,
		string(l.Price.Kind), l.Price.Sale, l.Price.Deposit, l.Price.Rent, l.PriceText, l.AreaPrimary, l.AreaSecondary,
		l.Floor, l.TotalFloor, l.Direction, l.Broker, l.AgentName, l.ConfirmedDate, l.OwnerType,
		l.Description, l.ThumbnailURL, l.Latitude, l.Longitude, l.Source,
	}
}

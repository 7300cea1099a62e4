package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"land_scrooper/models"
)

// SQLiteStore keeps the local operational state: runs, their log lines and
// the command queue the scheduler polls.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scrape_runs (
		id TEXT PRIMARY KEY,
		strategy TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		listings_found INTEGER DEFAULT 0,
		batches INTEGER DEFAULT 0,
		errors_count INTEGER DEFAULT 0,
		blocked BOOLEAN DEFAULT FALSE,
		message TEXT
	);

	CREATE TABLE IF NOT EXISTS scrape_logs (
		id INTEGER PRIMARY KEY,
		run_id TEXT,
		timestamp DATETIME,
		level TEXT,
		message TEXT
	);

	CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY,
		command TEXT,
		params JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		processed_at DATETIME,
		result JSON
	);

	CREATE INDEX IF NOT EXISTS idx_commands_pending ON commands(processed_at) WHERE processed_at IS NULL;
	CREATE INDEX IF NOT EXISTS idx_logs_run ON scrape_logs(run_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON scrape_runs(status, started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ============================================================================
// Runs
// ============================================================================

func (s *SQLiteStore) CreateRun(run *models.CollectionRun) error {
	_, err := s.db.Exec(`
		INSERT INTO scrape_runs (id, strategy, started_at, status)
		VALUES (?, ?, ?, ?)`,
		run.ID, run.Strategy, run.StartedAt, run.Status)
	return err
}

func (s *SQLiteStore) UpdateRun(run *models.CollectionRun) error {
	_, err := s.db.Exec(`
		UPDATE scrape_runs SET finished_at = ?, status = ?, listings_found = ?,
			batches = ?, errors_count = ?, blocked = ?, message = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status, len(run.Listings), len(run.Batches),
		run.ErrorCount, run.Blocked, run.Message, run.ID)
	return err
}

// RunSummary is a stored run without its listings.
type RunSummary struct {
	ID            string           `json:"id"`
	Strategy      string           `json:"strategy"`
	StartedAt     time.Time        `json:"startedAt"`
	FinishedAt    *time.Time       `json:"finishedAt,omitempty"`
	Status        models.RunStatus `json:"status"`
	ListingsFound int              `json:"listingsFound"`
	Batches       int              `json:"batches"`
	ErrorsCount   int              `json:"errorsCount"`
	Blocked       bool             `json:"blocked"`
	Message       string           `json:"message,omitempty"`
}

func (s *SQLiteStore) GetRun(id string) (*RunSummary, error) {
	row := s.db.QueryRow(`
		SELECT id, strategy, started_at, finished_at, status, listings_found, batches,
			errors_count, blocked, COALESCE(message, '')
		FROM scrape_runs WHERE id = ?`, id)

	var r RunSummary
	var finished sql.NullTime
	err := row.Scan(&r.ID, &r.Strategy, &r.StartedAt, &finished, &r.Status, &r.ListingsFound,
		&r.Batches, &r.ErrorsCount, &r.Blocked, &r.Message)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		r.FinishedAt = &finished.Time
	}
	return &r, nil
}

func (s *SQLiteStore) Log(runID string, level models.LogLevel, message string) error {
	_, err := s.db.Exec(`
		INSERT INTO scrape_logs (run_id, timestamp, level, message)
		VALUES (?, ?, ?, ?)`,
		runID, s.now(), level, message)
	return err
}

func (s *SQLiteStore) GetRunLogs(runID string) ([]models.RunLog, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, timestamp, level, message
		FROM scrape_logs WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.RunLog
	for rows.Next() {
		var l models.RunLog
		if err := rows.Scan(&l.ID, &l.RunID, &l.Timestamp, &l.Level, &l.Message); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ============================================================================
// Commands
// ============================================================================

func (s *SQLiteStore) EnqueueCommand(cmd models.CommandType, params *models.CommandParams) (int64, error) {
	var raw []byte
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return 0, err
		}
		raw = b
	}
	result, err := s.db.Exec(`
		INSERT INTO commands (command, params, created_at) VALUES (?, ?, ?)`,
		cmd, nullableJSON(raw), s.now())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLiteStore) GetPendingCommands() ([]models.Command, error) {
	rows, err := s.db.Query(`
		SELECT id, command, params, created_at, processed_at
		FROM commands WHERE processed_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cmds []models.Command
	for rows.Next() {
		var cmd models.Command
		var params sql.NullString
		if err := rows.Scan(&cmd.ID, &cmd.Command, &params, &cmd.CreatedAt, &cmd.ProcessedAt); err != nil {
			return nil, err
		}
		if params.Valid {
			cmd.Params = json.RawMessage(params.String)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, rows.Err()
}

// MarkCommandProcessed closes a command and stores what it returned.
func (s *SQLiteStore) MarkCommandProcessed(id int64, result json.RawMessage) error {
	_, err := s.db.Exec(`UPDATE commands SET processed_at = ?, result = ? WHERE id = ?`,
		s.now(), nullableJSON(result), id)
	return err
}

func (s *SQLiteStore) GetCommand(id int64) (*models.Command, error) {
	row := s.db.QueryRow(`
		SELECT id, command, params, created_at, processed_at, result
		FROM commands WHERE id = ?`, id)

	var cmd models.Command
	var params, result sql.NullString
	err := row.Scan(&cmd.ID, &cmd.Command, &params, &cmd.CreatedAt, &cmd.ProcessedAt, &result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if params.Valid {
		cmd.Params = json.RawMessage(params.String)
	}
	if result.Valid {
		cmd.Result = json.RawMessage(result.String)
	}
	return &cmd, nil
}

func ParseCommandParams(cmd *models.Command) (*models.CommandParams, error) {
	if cmd.Params == nil || string(cmd.Params) == "null" {
		return &models.CommandParams{}, nil
	}
	var params models.CommandParams
	if err := json.Unmarshal(cmd.Params, &params); err != nil {
		return nil, fmt.Errorf("command %d params: %w", cmd.ID, err)
	}
	return &params, nil
}

// ResetAllData clears run history and processed commands. Pending commands
// stay queued, including a reset that is still being handled.
func (s *SQLiteStore) ResetAllData() error {
	statements := []string{
		"DELETE FROM scrape_logs",
		"DELETE FROM scrape_runs",
		"DELETE FROM commands WHERE processed_at IS NOT NULL",
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	return nil
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

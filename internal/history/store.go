package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/doclinks/internal/model"
)

// DatabaseFile is the file name of the history database inside its directory.
const DatabaseFile = "doclinks.db"

// ErrRunNotFound is returned when a run ID does not exist in the history.
var ErrRunNotFound = errors.New("run not found")

// Store provides SQLite-based storage for link check runs.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunRecord is the metadata of one stored run.
type RunRecord struct {
	// ID is the generated run identifier.
	ID string `json:"id"`

	// Root is the scanned documentation directory.
	Root string `json:"root"`

	// Timestamp is when the run finished.
	Timestamp time.Time `json:"timestamp"`

	// Documents is the number of scanned documents.
	Documents int `json:"documents"`

	// Links is the number of extracted links.
	Links int `json:"links"`

	// Broken is the number of broken links.
	Broken int `json:"broken"`
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, DatabaseFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s (run with --history first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the path of the database file.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		root TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		documents INTEGER NOT NULL DEFAULT 0,
		links INTEGER NOT NULL DEFAULT 0,
		broken INTEGER NOT NULL DEFAULT 0,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a finished scan result and returns the generated run ID.
func (s *Store) SaveRun(ctx context.Context, result *model.ScanResult) (string, error) {
	if result == nil {
		return "", errors.New("cannot save nil result")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}

	id := uuid.NewString()
	query := `
	INSERT INTO runs (id, root, timestamp, documents, links, broken, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		id,
		result.Root,
		result.GeneratedAt.UTC().Format(time.RFC3339Nano),
		result.Documents,
		len(result.Links),
		len(result.BrokenLinks),
		string(resultJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	return id, nil
}

// History returns the metadata of every run over root, newest first.
func (s *Store) History(ctx context.Context, root string) ([]RunRecord, error) {
	query := `
	SELECT id, root, timestamp, documents, links, broken
	FROM runs
	WHERE root = ?
	ORDER BY seq DESC
	`

	rows, err := s.db.QueryContext(ctx, query, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var timestamp string
		if err := rows.Scan(&rec.ID, &rec.Root, &timestamp, &rec.Documents, &rec.Links, &rec.Broken); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.Timestamp = parseTimestamp(timestamp)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetRun loads the full result of a run. ErrRunNotFound is returned for unknown IDs.
func (s *Store) GetRun(ctx context.Context, id string) (*model.ScanResult, error) {
	query := `SELECT result_json FROM runs WHERE id = ?`

	var resultJSON string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var result model.ScanResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse run %s: %w", id, err)
	}

	return &result, nil
}

// Latest returns up to n full results for root, newest first.
// Malformed rows are skipped.
func (s *Store) Latest(ctx context.Context, root string, n int) ([]*model.ScanResult, error) {
	query := `
	SELECT result_json FROM runs
	WHERE root = ?
	ORDER BY seq DESC
	LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, root, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest runs: %w", err)
	}
	defer rows.Close()

	var results []*model.ScanResult
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var result model.ScanResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			continue
		}
		results = append(results, &result)
	}

	return results, rows.Err()
}

// ListRoots returns every documentation root with at least one stored run.
func (s *Store) ListRoots(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT root FROM runs ORDER BY root`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		roots = append(roots, root)
	}

	return roots, rows.Err()
}

// timestampFormats are tried in order by parseTimestamp.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/workstat/internal/model"
)

// ErrRunNotFound is returned when no matching analysis run exists.
var ErrRunNotFound = errors.New("analysis run not found")

// Run is one stored analysis result.
type Run struct {
	// ID is the database row ID of the run.
	ID int64 `json:"id"`

	// Dataset is the analyzed dataset name.
	Dataset string `json:"dataset"`

	// CreatedAt is when the run was saved.
	CreatedAt time.Time `json:"created_at"`

	// Summary is the stored analysis summary.
	Summary *model.Summary `json:"summary"`
}

// HistoryDB provides SQLite-based storage for analysis runs.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all datasets rather
// than one file per dataset. This simplifies cross-dataset listing and
// backup/restore operations.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "workstat.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple connections don't help here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path to the SQLite database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store one analysis summary per row. The ordered department
	-- mappings are persisted as JSON to preserve first-seen order.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		total_employees INTEGER NOT NULL,
		average_age REAL NOT NULL,
		average_salary REAL NOT NULL,
		departments TEXT NOT NULL,
		cities TEXT NOT NULL,
		salary_by_dept TEXT NOT NULL,
		age_by_dept TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset, created_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Save stores an analysis summary and returns its run ID.
func (hdb *HistoryDB) Save(ctx context.Context, summary *model.Summary) (int64, error) {
	if summary == nil {
		return 0, errors.New("summary is nil")
	}

	departments, err := json.Marshal(summary.Departments)
	if err != nil {
		return 0, fmt.Errorf("failed to encode departments: %w", err)
	}
	cities, err := json.Marshal(summary.Cities)
	if err != nil {
		return 0, fmt.Errorf("failed to encode cities: %w", err)
	}
	salaryByDept, err := json.Marshal(summary.SalaryByDept)
	if err != nil {
		return 0, fmt.Errorf("failed to encode salary mapping: %w", err)
	}
	ageByDept, err := json.Marshal(summary.AgeByDept)
	if err != nil {
		return 0, fmt.Errorf("failed to encode age mapping: %w", err)
	}

	createdAt := summary.GeneratedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := hdb.db.ExecContext(ctx, `
		INSERT INTO runs (
			dataset, created_at, total_employees, average_age, average_salary,
			departments, cities, salary_by_dept, age_by_dept
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.Dataset, createdAt, summary.TotalEmployees,
		summary.AverageAge, summary.AverageSalary,
		string(departments), string(cities), string(salaryByDept), string(ageByDept),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// Latest returns the most recent run for a dataset.
// It returns ErrRunNotFound if the dataset has no stored runs.
func (hdb *HistoryDB) Latest(ctx context.Context, dataset string) (*Run, error) {
	row := hdb.db.QueryRowContext(ctx, `
		SELECT id, dataset, created_at, total_employees, average_age, average_salary,
		       departments, cities, salary_by_dept, age_by_dept
		FROM runs WHERE dataset = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, dataset)
	return scanRun(row)
}

// Previous returns the newest run for a dataset that is older than the run
// with the given ID. It returns ErrRunNotFound if no older run exists.
func (hdb *HistoryDB) Previous(ctx context.Context, dataset string, beforeID int64) (*Run, error) {
	row := hdb.db.QueryRowContext(ctx, `
		SELECT id, dataset, created_at, total_employees, average_age, average_salary,
		       departments, cities, salary_by_dept, age_by_dept
		FROM runs WHERE dataset = ? AND id < ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, dataset, beforeID)
	return scanRun(row)
}

// RunByID returns the run with the given ID.
// It returns ErrRunNotFound if no such run exists.
func (hdb *HistoryDB) RunByID(ctx context.Context, id int64) (*Run, error) {
	row := hdb.db.QueryRowContext(ctx, `
		SELECT id, dataset, created_at, total_employees, average_age, average_salary,
		       departments, cities, salary_by_dept, age_by_dept
		FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// FirstSince returns the oldest run for a dataset saved at or after the
// given time. It returns ErrRunNotFound if no such run exists.
func (hdb *HistoryDB) FirstSince(ctx context.Context, dataset string, since time.Time) (*Run, error) {
	row := hdb.db.QueryRowContext(ctx, `
		SELECT id, dataset, created_at, total_employees, average_age, average_salary,
		       departments, cities, salary_by_dept, age_by_dept
		FROM runs WHERE dataset = ? AND created_at >= ?
		ORDER BY created_at ASC, id ASC LIMIT 1`, dataset, since)
	return scanRun(row)
}

// History returns up to limit runs for a dataset, newest first.
// A limit of 0 returns all runs.
func (hdb *HistoryDB) History(ctx context.Context, dataset string, limit int) ([]*Run, error) {
	query := `
		SELECT id, dataset, created_at, total_employees, average_age, average_salary,
		       departments, cities, salary_by_dept, age_by_dept
		FROM runs WHERE dataset = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{dataset}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only query

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListDatasets returns the distinct dataset names in the database,
// ordered alphabetically.
func (hdb *HistoryDB) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx,
		"SELECT DISTINCT dataset FROM runs ORDER BY dataset")
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only query

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan dataset name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanRun.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run row, decoding the JSON mapping columns.
func scanRun(row rowScanner) (*Run, error) {
	var (
		run                                            Run
		summary                                        model.Summary
		departments, cities, salaryByDept, ageByDeptJS string
	)

	err := row.Scan(&run.ID, &summary.Dataset, &run.CreatedAt,
		&summary.TotalEmployees, &summary.AverageAge, &summary.AverageSalary,
		&departments, &cities, &salaryByDept, &ageByDeptJS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(departments), &summary.Departments); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %w", err)
	}
	if err := json.Unmarshal([]byte(cities), &summary.Cities); err != nil {
		return nil, fmt.Errorf("failed to decode cities: %w", err)
	}
	if err := json.Unmarshal([]byte(salaryByDept), &summary.SalaryByDept); err != nil {
		return nil, fmt.Errorf("failed to decode salary mapping: %w", err)
	}
	if err := json.Unmarshal([]byte(ageByDeptJS), &summary.AgeByDept); err != nil {
		return nil, fmt.Errorf("failed to decode age mapping: %w", err)
	}

	summary.GeneratedAt = run.CreatedAt
	run.Dataset = summary.Dataset
	run.Summary = &summary
	return &run, nil
}

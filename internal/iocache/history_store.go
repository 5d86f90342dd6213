package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/schema"
)

// historyRunsTable is the name of the table for section run tracking.
const historyRunsTable = "basket_section_runs"

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite3"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	// Create the table schema
	query := getCreateRunsTableQuery(backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", historyRunsTable, err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// getCreateRunsTableQuery returns the CREATE TABLE query for basket_section_runs.
func getCreateRunsTableQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(historyRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				section VARCHAR(64) NOT NULL,
				data_dir TEXT NOT NULL,
				categories TEXT NOT NULL,
				from_year INT NOT NULL,
				to_year INT NOT NULL,
				findings INT NOT NULL,
				started_at BIGINT NOT NULL,
				duration_ms BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				section TEXT NOT NULL,
				data_dir TEXT NOT NULL,
				categories TEXT NOT NULL,
				from_year INTEGER NOT NULL,
				to_year INTEGER NOT NULL,
				findings INTEGER NOT NULL,
				started_at BIGINT NOT NULL,
				duration_ms BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				section TEXT NOT NULL,
				data_dir TEXT NOT NULL,
				categories TEXT NOT NULL,
				from_year INTEGER NOT NULL,
				to_year INTEGER NOT NULL,
				findings INTEGER NOT NULL,
				started_at INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// RecordRun stores one section run and returns its unique ID.
func (hs *HistoryStoreImpl) RecordRun(record schema.RunRecord) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(historyRunsTable, hs.backend)
	startedAt := record.StartedAt.Unix()

	if hs.backend == schema.PostgreSQLBackend {
		query := fmt.Sprintf(`INSERT INTO %s (section, data_dir, categories, from_year, to_year, findings, started_at, duration_ms)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING run_id`, quotedTableName)
		var id int64
		err := hs.db.QueryRow(query,
			string(record.Section), record.DataDir, record.Categories,
			record.FromYear, record.ToYear, record.Findings,
			startedAt, record.DurationMs).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to record run: %w", err)
		}
		return id, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (section, data_dir, categories, from_year, to_year, findings, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
	res, err := hs.db.Exec(query,
		string(record.Section), record.DataDir, record.Categories,
		record.FromYear, record.ToYear, record.Findings,
		startedAt, record.DurationMs)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns recorded runs, newest first, up to limit. A limit of zero
// or below means no limit.
func (hs *HistoryStoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(historyRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT run_id, section, data_dir, categories, from_year, to_year, findings, started_at, duration_ms
		FROM %s ORDER BY run_id DESC`, quotedTableName)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.RunRecord
	for rows.Next() {
		var r schema.RunRecord
		var section string
		var startedAt int64
		if err := rows.Scan(&r.ID, &section, &r.DataDir, &r.Categories,
			&r.FromYear, &r.ToYear, &r.Findings, &startedAt, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		r.Section = schema.Section(section)
		r.StartedAt = time.Unix(startedAt, 0)
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(historyRunsTable, hs.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	row := hs.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	lastQuery := fmt.Sprintf("SELECT MAX(started_at) FROM %s", quotedTableName)
	row = hs.db.QueryRow(lastQuery)
	var lastTs int64
	if err := row.Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last run time: %w", err)
	}
	status.LastRunTime = time.Unix(lastTs, 0)

	return status, nil
}

// Close closes the underlying DB connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

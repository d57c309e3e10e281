package datastore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Comparison run statuses
const (
	StatusStarted   = "STARTED"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// HistoryEntry represents a record in the comparison_history table.
type HistoryEntry struct {
	ID           int64
	ComparisonID string
	FileA        string
	FileB        string
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	Status       string
	TextEntries  int
	TableEntries int
	CellDiffs    int
	ImageMatches int
	UnmatchedA   int
	UnmatchedB   int
	ReportPath   sql.NullString
	ErrorMessage sql.NullString
}

// HistoryStore records every comparison run in SQLite
type HistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewHistoryStore opens the database at dataSourceName and ensures the schema.
// ":memory:" keeps the history in memory.
func NewHistoryStore(dataSourceName string, logger zerolog.Logger) (*HistoryStore, error) {
	logger = logger.With().Str("component", "HistoryStore").Logger()

	if dataSourceName != ":memory:" {
		fileManager := common.NewFileManager(logger)
		if err := fileManager.EnsureDirectory(filepath.Dir(dataSourceName), common.DirPermissions); err != nil {
			return nil, common.WrapError(err, "failed to create history database directory")
		}
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, common.WrapErrorf(err, "sql.Open failed for %s", dataSourceName)
	}
	if dataSourceName == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &HistoryStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "failed to initialize schema")
	}

	logger.Debug().Str("path", dataSourceName).Msg("History database initialized")
	return store, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *HistoryStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS comparison_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		comparison_id TEXT UNIQUE NOT NULL,
		file_a TEXT NOT NULL,
		file_b TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		status TEXT NOT NULL,
		text_entries INTEGER DEFAULT 0,
		table_entries INTEGER DEFAULT 0,
		cell_diffs INTEGER DEFAULT 0,
		image_matches INTEGER DEFAULT 0,
		unmatched_a INTEGER DEFAULT 0,
		unmatched_b INTEGER DEFAULT 0,
		report_path TEXT,
		error_message TEXT
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// RecordStart inserts a STARTED record and returns its row ID
func (s *HistoryStore) RecordStart(ctx context.Context, meta models.ReportMeta, startedAt time.Time) (int64, error) {
	query := `INSERT INTO comparison_history (comparison_id, file_a, file_b, started_at, status) VALUES (?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, meta.ComparisonID, meta.FileA, meta.FileB, startedAt.UTC(), StatusStarted)
	if err != nil {
		return 0, common.WrapError(err, "failed to insert comparison start record")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, common.WrapError(err, "failed to get last insert ID")
	}

	s.logger.Debug().Int64("db_id", id).Str("comparison_id", meta.ComparisonID).Msg("Recorded comparison start")
	return id, nil
}

// RecordCompletion stores the outcome of a run. A nil report with a non-nil
// runErr marks the run as failed.
func (s *HistoryStore) RecordCompletion(ctx context.Context, comparisonID string, report *models.ComparisonReport, reportPath string, runErr error) error {
	status := StatusCompleted
	var overview models.ReportOverview
	if report != nil {
		overview = report.Overview()
	}
	errMsg := sql.NullString{}
	if runErr != nil {
		status = StatusFailed
		errMsg = sql.NullString{String: runErr.Error(), Valid: true}
	}

	query := `UPDATE comparison_history SET finished_at = ?, status = ?, text_entries = ?, table_entries = ?, cell_diffs = ?,
		image_matches = ?, unmatched_a = ?, unmatched_b = ?, report_path = ?, error_message = ? WHERE comparison_id = ?`
	result, err := s.db.ExecContext(ctx, query,
		time.Now().UTC(), status,
		overview.TextDiffs, overview.Tables, overview.CellDiffs,
		overview.ImageMatches, overview.UnmatchedA, overview.UnmatchedB,
		sql.NullString{String: reportPath, Valid: reportPath != ""}, errMsg,
		comparisonID,
	)
	if err != nil {
		return common.WrapErrorf(err, "failed to update comparison completion for %s", comparisonID)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.WrapErrorf(ErrRecordNotFound, "comparison %s", comparisonID)
	}

	s.logger.Debug().Str("comparison_id", comparisonID).Str("status", status).Msg("Recorded comparison completion")
	return nil
}

// Get returns the record of one comparison
func (s *HistoryStore) Get(ctx context.Context, comparisonID string) (*HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, selectHistory+` WHERE comparison_id = ?`, comparisonID)
	entry, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.WrapErrorf(ErrRecordNotFound, "comparison %s", comparisonID)
	}
	return entry, err
}

// ListRecent returns up to limit records, newest first
func (s *HistoryStore) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, selectHistory+` ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, common.WrapError(err, "failed to query comparison history")
	}
	defer func() { _ = rows.Close() }()

	entries := []HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

const selectHistory = `SELECT id, comparison_id, file_a, file_b, started_at, finished_at, status, text_entries, table_entries,
	cell_diffs, image_matches, unmatched_a, unmatched_b, report_path, error_message FROM comparison_history`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*HistoryEntry, error) {
	var e HistoryEntry
	err := row.Scan(&e.ID, &e.ComparisonID, &e.FileA, &e.FileB, &e.StartedAt, &e.FinishedAt, &e.Status,
		&e.TextEntries, &e.TableEntries, &e.CellDiffs, &e.ImageMatches, &e.UnmatchedA, &e.UnmatchedB,
		&e.ReportPath, &e.ErrorMessage)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/execute-aditya/Deep-Trust/internal/config"
)

// Store manages report persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the report database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.DatabasePath())
}

// OpenPath connects to a report database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts a completed analysis. A missing ID is assigned.
func (s *Store) Save(ctx context.Context, record *Record) (*Record, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO reports (
            id, filename, media_type, size_bytes, sha256,
            verdict, confidence, processing_ms, response_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Filename,
		record.MediaType,
		record.SizeBytes,
		nullableString(record.SHA256),
		record.Verdict,
		record.Confidence,
		record.ProcessingMs,
		nullableString(record.ResponseJSON),
		record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return s.GetByID(ctx, record.ID)
}

// GetByID fetches a report by identifier. Returns nil when not found.
func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return record, nil
}

// FindBySHA256 returns the most recent report for a content hash.
func (s *Store) FindBySHA256(ctx context.Context, sum string) (*Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+reportColumns+` FROM reports WHERE sha256 = ? ORDER BY created_at DESC LIMIT 1`,
		sum,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by sha256: %w", err)
	}
	return record, nil
}

// List returns reports ordered newest first. A limit of zero returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Prune removes reports created before the cutoff.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM reports WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune reports: %w", err)
	}
	return res.RowsAffected()
}

// Remove deletes a report by identifier.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats returns a count of reports grouped by verdict.
func (s *Store) Stats(ctx context.Context) (VerdictStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT verdict, COUNT(1) FROM reports GROUP BY verdict`)
	if err != nil {
		return VerdictStats{}, fmt.Errorf("report stats: %w", err)
	}
	defer rows.Close()

	stats := VerdictStats{Verdicts: make(map[string]int)}
	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return VerdictStats{}, err
		}
		stats.Verdicts[verdict] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

const reportColumns = "id, filename, media_type, size_bytes, sha256, verdict, confidence, processing_ms, response_json, created_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id           string
		filename     string
		mediaType    string
		sizeBytes    int64
		sha256Sum    sql.NullString
		verdict      string
		confidence   float64
		processingMs int64
		responseJSON sql.NullString
		createdRaw   string
	)

	if err := scanner.Scan(
		&id,
		&filename,
		&mediaType,
		&sizeBytes,
		&sha256Sum,
		&verdict,
		&confidence,
		&processingMs,
		&responseJSON,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:           id,
		Filename:     filename,
		MediaType:    mediaType,
		SizeBytes:    sizeBytes,
		SHA256:       sha256Sum.String,
		Verdict:      verdict,
		Confidence:   confidence,
		ProcessingMs: processingMs,
		ResponseJSON: responseJSON.String,
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		record.CreatedAt = created
	}
	return record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

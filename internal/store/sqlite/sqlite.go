package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"healthdata/internal/model"
)

const (
	listSeparator = ","
	// fixed width so resolved_at sorts lexically
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) RecordResolution(ctx context.Context, resolution model.Resolution) error {
	if resolution.ID == "" {
		resolution.ID = uuid.NewString()
	}
	if resolution.ResolvedAt.IsZero() {
		resolution.ResolvedAt = time.Now()
	}

	var errText any
	if resolution.Error != "" {
		errText = resolution.Error
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resolutions (
			id, metrics, candidates, providers, outcome, error, resolved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		resolution.ID,
		joinMetrics(resolution.Metrics),
		joinProviders(resolution.Candidates),
		joinProviders(resolution.Providers),
		string(resolution.Outcome),
		errText,
		resolution.ResolvedAt.UTC().Format(timeLayout),
	)
	return err
}

func (s *Store) ListResolutions(ctx context.Context, limit int) ([]model.Resolution, error) {
	query := `
		SELECT id, metrics, candidates, providers, outcome, error, resolved_at
		FROM resolutions
		ORDER BY resolved_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resolutions := make([]model.Resolution, 0)
	for rows.Next() {
		var (
			resolution                     model.Resolution
			metrics, candidates, providers string
			outcome, resolvedAt            string
			errText                        sql.NullString
		)
		if err := rows.Scan(&resolution.ID, &metrics, &candidates, &providers, &outcome, &errText, &resolvedAt); err != nil {
			return nil, err
		}
		resolution.Metrics = splitMetrics(metrics)
		resolution.Candidates = splitProviders(candidates)
		resolution.Providers = splitProviders(providers)
		resolution.Outcome = model.Outcome(outcome)
		resolution.Error = errText.String
		resolution.ResolvedAt, err = time.Parse(timeLayout, resolvedAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse resolved_at for %s: %w", resolution.ID, err)
		}
		resolutions = append(resolutions, resolution)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return resolutions, nil
}

func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resolutions (
			id TEXT PRIMARY KEY,
			metrics TEXT NOT NULL,
			candidates TEXT NOT NULL,
			providers TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT,
			resolved_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_resolutions_resolved_at ON resolutions (resolved_at);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}

func joinMetrics(ids []model.MetricID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, listSeparator)
}

func joinProviders(ids []model.ProviderID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, listSeparator)
}

func splitMetrics(value string) []model.MetricID {
	if value == "" {
		return nil
	}
	return model.ParseMetricIDs(strings.Split(value, listSeparator))
}

func splitProviders(value string) []model.ProviderID {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, listSeparator)
	ids := make([]model.ProviderID, 0, len(parts))
	for _, part := range parts {
		ids = append(ids, model.ProviderID(part))
	}
	return ids
}

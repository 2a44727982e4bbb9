package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists run records in a run_records table.
type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS run_records (
    id SERIAL PRIMARY KEY,
    run_id TEXT NOT NULL DEFAULT '',
    app TEXT NOT NULL,
    provider TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    suspect BOOLEAN NOT NULL DEFAULT FALSE,
    files TEXT NOT NULL DEFAULT '[]',
    error TEXT NOT NULL DEFAULT '',
    started_at TIMESTAMP WITH TIME ZONE,
    finished_at TIMESTAMP WITH TIME ZONE,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_run_records_app ON run_records(app);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Append(ctx context.Context, rec RunRecord) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if strings.TrimSpace(rec.App) == "" {
		return fmt.Errorf("app is required")
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	files, err := json.Marshal(rec.Files)
	if err != nil {
		return fmt.Errorf("encode files: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO run_records (run_id, app, provider, source, suspect, files, error, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, rec.RunID, rec.App, rec.Provider, rec.Source, rec.Suspect, string(files), rec.Error, rec.StartedAt, rec.FinishedAt)
	return err
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if limit <= 0 {
		return nil, nil
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, app, provider, source, suspect, files, error, started_at, finished_at
FROM run_records ORDER BY id DESC LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var files string
		var started, finished sql.NullTime
		if err := rows.Scan(&rec.RunID, &rec.App, &rec.Provider, &rec.Source, &rec.Suspect, &files, &rec.Error, &started, &finished); err != nil {
			return nil, err
		}
		if files != "" {
			_ = json.Unmarshal([]byte(files), &rec.Files)
		}
		if started.Valid {
			rec.StartedAt = started.Time
		}
		if finished.Valid {
			rec.FinishedAt = finished.Time
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Package ledger records batch outcomes so operators can answer "what
// did the last run produce" without re-reading artifact trees. Backends
// share one Store contract; selection happens in NewFromEnv.
package ledger

import (
	"context"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// RunRecord is one application outcome inside a batch run.
type RunRecord struct {
	RunID      string    `json:"run_id,omitempty"`
	App        string    `json:"app"`
	Provider   string    `json:"provider"`
	Source     string    `json:"source"`
	Suspect    bool      `json:"suspect"`
	Files      []string  `json:"files,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store defines operations for persisting run records. Append ordering
// is the batch's processing order; Recent returns newest first.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Recent(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}

const recentCacheSize = 128

// NewFromEnv picks a backend: Postgres when LEDGER_PG_DSN is set, the
// in-memory store when LEDGER_PATH is "off", otherwise a JSON-lines
// file at LEDGER_PATH (default .apismith/runs.jsonl). A Postgres
// connection failure degrades to the file backend with a warning; the
// ledger is never a reason to refuse a run.
func NewFromEnv(logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dsn := strings.TrimSpace(os.Getenv("LEDGER_PG_DSN")); dsn != "" {
		pg, err := NewPostgresStore(dsn)
		if err == nil {
			return withRecentCache(pg)
		}
		logger.Warn("ledger postgres unavailable, using file backend", zap.Error(err))
	}
	path := strings.TrimSpace(os.Getenv("LEDGER_PATH"))
	if strings.EqualFold(path, "off") {
		return withRecentCache(NewMemoryStore())
	}
	if path == "" {
		path = ".apismith/runs.jsonl"
	}
	return withRecentCache(NewFileStore(path))
}

// cachedStore memoizes Recent per limit and drops the whole cache on
// every Append.
type cachedStore struct {
	inner  Store
	recent *lru.Cache[int, []RunRecord]
}

func withRecentCache(inner Store) Store {
	cache, err := lru.New[int, []RunRecord](recentCacheSize)
	if err != nil {
		return inner
	}
	return &cachedStore{inner: inner, recent: cache}
}

func (c *cachedStore) Append(ctx context.Context, rec RunRecord) error {
	err := c.inner.Append(ctx, rec)
	c.recent.Purge()
	return err
}

func (c *cachedStore) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if recs, ok := c.recent.Get(limit); ok {
		return append([]RunRecord(nil), recs...), nil
	}
	recs, err := c.inner.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	c.recent.Add(limit, recs)
	return append([]RunRecord(nil), recs...), nil
}

func (c *cachedStore) Close() error { return c.inner.Close() }

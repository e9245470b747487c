package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/kv"
	"github.com/rs/zerolog"
)

// Key is the durable store key holding the last analysis result.
const Key = "analysisData"

var errUnreadable = errors.New("unreadable cache entry")

// ResultCache holds the most recently received analysis result.
type ResultCache interface {
	// Get returns the cached result, restoring it from durable storage when
	// the memory slot is empty. Unreadable entries count as absent.
	Get(ctx context.Context) (*domain.AnalysisResult, bool)
	// Put replaces the cached result in memory and in durable storage.
	Put(ctx context.Context, result *domain.AnalysisResult) error
}

type entry struct {
	Version int                `json:"version"`
	Result  api.AnalysisResult `json:"result"`
}

type resultCache struct {
	mu     sync.Mutex
	db     *sql.DB
	store  kv.Store
	result *domain.AnalysisResult
}

// New builds a cache over store. When db is set, restoring an entry and
// discarding an unreadable one run in a single transaction on db.
func New(db *sql.DB, store kv.Store) ResultCache {
	return &resultCache{db: db, store: store}
}

func (c *resultCache) Get(ctx context.Context) (*domain.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result != nil {
		return c.result, true
	}

	result, err := c.load(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", Key).Msg("failed to read cached analysis")
		return nil, false
	}
	if result == nil {
		return nil, false
	}
	c.result = result
	return result, true
}

func (c *resultCache) Put(ctx context.Context, result *domain.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("cannot cache a nil analysis result")
	}

	data, err := json.Marshal(entry{
		Version: domain.SchemaVersion,
		Result:  adapters.MapAnalysisResultDomainToApi(result),
	})
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = result
	if err := c.store.Put(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("persist analysis result: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Int("bytes", len(data)).Msg("analysis result cached")
	return nil
}

func (c *resultCache) load(ctx context.Context) (*domain.AnalysisResult, error) {
	if c.db == nil {
		return c.restoreOrDiscard(ctx)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin restore: %w", err)
	}
	result, err := c.restoreOrDiscard(duckdb.WithTransaction(ctx, tx))
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit restore: %w", err)
	}
	return result, nil
}

// restoreOrDiscard deletes an unreadable entry and reports it as absent.
func (c *resultCache) restoreOrDiscard(ctx context.Context) (*domain.AnalysisResult, error) {
	result, err := c.restore(ctx)
	if !errors.Is(err, errUnreadable) {
		return result, err
	}

	zerolog.Ctx(ctx).Warn().Err(err).Str("key", Key).Msg("discarding cached analysis")
	if err := c.store.Delete(ctx, Key); err != nil {
		return nil, fmt.Errorf("remove unreadable entry: %w", err)
	}
	return nil, nil
}

// restore returns (nil, nil) when nothing is stored.
func (c *resultCache) restore(ctx context.Context) (*domain.AnalysisResult, error) {
	raw, ok, err := c.store.Get(ctx, Key)
	if err != nil || !ok {
		return nil, err
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnreadable, err)
	}
	if e.Version != domain.SchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d, expected %d", errUnreadable, e.Version, domain.SchemaVersion)
	}
	result, err := adapters.MapAnalysisResultApiToDomain(e.Result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUnreadable, err)
	}
	return result, nil
}

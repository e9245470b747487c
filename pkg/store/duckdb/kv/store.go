package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
)

// Store is a durable string key-value table. It backs the last-result
// cache the way browser local storage would. Calls join the transaction
// attached with duckdb.WithTransaction, if any.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type kvStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &kvStore{
		db:  db,
		now: time.Now,
	}, nil
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *kvStore) Put(ctx context.Context, key, value string) error {
	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT OR REPLACE INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if _, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

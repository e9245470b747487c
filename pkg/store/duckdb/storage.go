package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const KVTableSchema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key VARCHAR PRIMARY KEY,
		value VARCHAR NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	KVTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (or creates) the DuckDB file and runs the boot queries on
// every new connection. Use ":memory:" for a throwaway database.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

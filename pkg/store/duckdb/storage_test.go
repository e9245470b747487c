package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesKVTable(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)`, "analysisData", "{}")
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM kv_store WHERE key = ?", "analysisData").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDB_InMemory(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM kv_store").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

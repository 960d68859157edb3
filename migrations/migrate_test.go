package migrations

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// every pooled connection to :memory: is a distinct database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := newMemoryDB(t)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"settings", "students", "goals", "logs", "custom_goals"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	// columns added by later migrations
	assert.Contains(t, tableColumns(t, db, "goals"), "frequency")
	assert.Contains(t, tableColumns(t, db, "logs"), "manipulatives_type")
	assert.Contains(t, tableColumns(t, db, "settings"), "theme")
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newMemoryDB(t)

	require.NoError(t, Migrate(db))
	colsFirst := tableColumns(t, db, "goals")

	require.NoError(t, Migrate(db))
	colsSecond := tableColumns(t, db, "goals")

	assert.Equal(t, colsFirst, colsSecond)
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "db is nil"))
}

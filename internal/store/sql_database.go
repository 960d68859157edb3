package store

import (
	"database/sql"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/migrations"
)

// DB wraps the single SQLite connection owned by the store layer. Every
// repository and the snapshot codec operate through this one value; no second
// connection is ever opened, so the transaction boundary has one source of
// truth.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Close releases the underlying connection. The store becomes unusable
// afterwards; the application calls this once at shutdown.
func (db *DB) Close() error {
	return db.DB.Close()
}

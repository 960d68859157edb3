package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequenceTables is the fixed whitelist of tables whose primary keys come
// from the AUTOINCREMENT generator. Table names cannot be bound as query
// parameters, so reconciliation refuses anything outside this set.
var sequenceTables = map[string]bool{
	"students":     true,
	"goals":        true,
	"logs":         true,
	"custom_goals": true,
}

// reconcileSequence re-synchronizes table's key generator after rows were
// bulk-inserted with explicit primary keys, so the next naturally-generated
// insert never collides with a restored id.
//
// The generator entry is rewritten to max(id); when the table holds no rows
// the entry is removed entirely, which puts the generator back at its default
// starting value. Must run inside the same transaction as the bulk insert —
// a partially reconciled store is unsafe for subsequent inserts.
func reconcileSequence(ctx context.Context, tx *sql.Tx, table string) error {
	if !sequenceTables[table] {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = ?`, table); err != nil {
		return fmt.Errorf("%w: clearing sequence for %s: %w", ErrExecutingStatement, table, err)
	}

	// table name is whitelisted above; HAVING skips the reseed for empty tables
	reseed := fmt.Sprintf(
		`INSERT INTO sqlite_sequence (name, seq) SELECT '%s', MAX(id) FROM %s HAVING COUNT(*) > 0`,
		table, table,
	)
	if _, err := tx.ExecContext(ctx, reseed); err != nil {
		return fmt.Errorf("%w: reseeding sequence for %s: %w", ErrExecutingStatement, table, err)
	}

	return nil
}

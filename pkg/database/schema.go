package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the idempotent schema to the given database
func Migrate(ctx context.Context, db *sql.DB) error {
	if len(schemaSQL) == 0 {
		return fmt.Errorf("schema.sql is empty or not embedded properly")
	}

	_, err := db.ExecContext(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

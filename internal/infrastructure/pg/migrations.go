package pg

import (
	"context"
	"fmt"
)

// migrations применяются по порядку при каждом старте, каждая идемпотентна.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS operations (
		id         SERIAL PRIMARY KEY,
		number1    DOUBLE PRECISION NOT NULL,
		number2    DOUBLE PRECISION NOT NULL,
		operation  VARCHAR(10) NOT NULL,
		result     DOUBLE PRECISION NOT NULL,
		message    TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE operations ADD COLUMN IF NOT EXISTS session_id TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS operations_created_at_idx ON operations (created_at DESC)`,
}

// Migrate создаёт и дополняет таблицу operations.
func Migrate(ctx context.Context, db *DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

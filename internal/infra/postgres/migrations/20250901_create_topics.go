package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS topics (
					id         TEXT PRIMARY KEY,
					name       TEXT NOT NULL,
					difficulty INTEGER NOT NULL DEFAULT 1,
					questions  JSONB NOT NULL DEFAULT '[]'::jsonb
				)`)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS topics`)
			return err
		},
	)
}

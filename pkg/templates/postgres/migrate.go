package postgres

import (
	"context"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrApplyMigrations indicates the schema migration failed.
var ErrApplyMigrations = errors.New("postgres: failed to apply migrations")

// Migrate applies the embedded schema migrations. Call once at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// Bridge the pgx pool to the database/sql interface goose expects.
	// The wrapper shares the pool's connections, so it is not closed here.
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	return nil
}

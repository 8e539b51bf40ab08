// Package postgres provides a templates.Store backed by PostgreSQL via
// pgx/v5. The schema ships as embedded goose migrations; call Migrate once at
// startup before using the store.
//
//	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_CONN_URL"))
//	if err != nil {
//		return err
//	}
//	if err := postgres.Migrate(ctx, pool); err != nil {
//		return err
//	}
//	store := postgres.New(pool)
package postgres

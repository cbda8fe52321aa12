// Package pg bootstraps the Postgres layer: a pgx/v5 connection pool
// configured from environment variables, goose schema migrations, a health
// probe, and error helpers shared by the stores and counters.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
package pg

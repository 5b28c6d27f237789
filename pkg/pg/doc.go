// Package pg bootstraps a resilient PostgreSQL layer for session storage:
// a pgxpool connection with retry, goose schema migrations, a health check,
// and error helpers shared by store implementations.
//
// Typical startup:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	store := session.NewPGStore(pool)
package pg

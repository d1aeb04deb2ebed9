// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations from an embedded filesystem.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, log); err != nil {
//		return err
//	}
package pg

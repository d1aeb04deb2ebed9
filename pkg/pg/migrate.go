package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// Migrate applies every pending goose migration found at the root of fsys.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, fsys fs.FS, log *slog.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	// goose works on database/sql; this shares the pool's connections
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration db handle", logger.Error(err))
		}
	}()

	goose.SetBaseFS(fsys)
	goose.SetLogger(gooseLogger{log: log.With(logger.Component("migrations"))})
	goose.SetTableName(cfg.MigrationsTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

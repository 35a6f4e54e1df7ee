package main

import (
	"context"

	"github.com/its-jojoo/stringscope/internal/adapter/storage"
	"github.com/its-jojoo/stringscope/internal/adapter/storage/memory"
	"github.com/its-jojoo/stringscope/internal/adapter/storage/postgres"
	"github.com/its-jojoo/stringscope/internal/adapter/storage/sqlite"
	"github.com/its-jojoo/stringscope/internal/adapter/storage/surrealdb"
	"github.com/its-jojoo/stringscope/internal/config"
	"github.com/its-jojoo/stringscope/internal/errors"
)

// openStore builds the configured adapter and ensures its schema exists.
func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil

	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "open sqlite %s", cfg.SQLite.Path)
		}
		return st, nil

	case config.DriverPostgres:
		st, err := postgres.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres")
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, errors.Wrap(err, "migrate postgres")
		}
		return st, nil

	case config.DriverSurrealDB:
		st, err := surrealdb.Open(ctx, surrealdb.Config{
			URL:       cfg.SurrealDB.URL,
			Namespace: cfg.SurrealDB.Namespace,
			Database:  cfg.SurrealDB.Database,
			Username:  cfg.SurrealDB.Username,
			Password:  cfg.SurrealDB.Password,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "open surrealdb %s", cfg.SurrealDB.URL)
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, errors.Wrap(err, "migrate surrealdb")
		}
		return st, nil
	}
	return nil, errors.Newf("unknown storage driver %q", cfg.Driver)
}

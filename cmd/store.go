package main

import (
	"context"

	"github.com/rigsight/gaslog-cli/internal/store"
)

// initStore opens the configured persistence backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	dsn := cfg.Store.DatabaseURL
	if dsn == "" {
		dsn = "gaslog.db"
	}
	return store.Open(ctx, cfg.Store.Driver, dsn)
}

package db

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/config"
)

// NewDb builds the shared connection pool. Pool size and connect timeout
// come from configuration so load limits stay deployment-controlled.
func NewDb(ctx context.Context, cfg *config.Config) (*Database, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Dsn())
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = cfg.PoolMaxConns
	poolCfg.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return NewDatabase(pool), nil
}

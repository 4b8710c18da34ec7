package db

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/faazahm/backend-camping/internal/config"
)

var (
	newPoolFn  = pgxpool.NewWithConfig
	pingPoolFn = func(ctx context.Context, pool *pgxpool.Pool) error { return pool.Ping(ctx) }
)

// ConnectPostgres opens a pgx pool. The admission lock timeout from the
// config is applied server-side so a booking transaction can never sit on
// row locks indefinitely.
func ConnectPostgres(cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pc, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	if cfg.LockTimeout > 0 {
		ms := strconv.FormatInt(cfg.LockTimeout.Milliseconds(), 10)
		pc.ConnConfig.RuntimeParams["lock_timeout"] = ms
		pc.ConnConfig.RuntimeParams["idle_in_transaction_session_timeout"] = ms
	}

	pool, err := newPoolFn(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pingPoolFn(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

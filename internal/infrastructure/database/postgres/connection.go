// Package postgres persists classification results.  The pool wrapper keeps
// DSN assembly and pool sizing in one place; repositories receive the pool
// and own their SQL.
package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Pool wraps pgxpool with the project's config and error conventions.
type Pool struct {
	pool *pgxpool.Pool
	log  logging.Logger
}

// NewPool connects and verifies the connection with a ping.
func NewPool(ctx context.Context, cfg *config.PostgresConfig, log logging.Logger) (*Pool, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, errors.InvalidParam("postgres host is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	poolCfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "parse postgres config")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "connect to postgres")
	}

	log.Info("postgres connected",
		logging.String("host", cfg.Host),
		logging.String("database", cfg.DBName))
	return &Pool{pool: pool, log: log}, nil
}

// DSN assembles the connection string.
func DSN(cfg *config.PostgresConfig) string {
	ssl := cfg.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, cfg.DBName, ssl)
}

// Ping verifies the pool is alive.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabase, "postgres ping")
	}
	return nil
}

// Close drains the pool.
func (p *Pool) Close() {
	p.pool.Close()
}

// Raw exposes the pgx pool to repositories.
func (p *Pool) Raw() *pgxpool.Pool {
	return p.pool
}

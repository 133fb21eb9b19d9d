// Package neo4j mirrors typed molecular graphs into a graph database, so
// type-level structure queries (which molecules contain a carboxylate
// oxygen bonded to an sp3 carbon?) run as cypher instead of re-parsing SD
// files.
package neo4j

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Transaction is the slice of a managed transaction the repositories use;
// tests substitute a fake.
type Transaction interface {
	Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error)
}

// Driver wraps the neo4j driver with the project's config and session
// handling.
type Driver struct {
	driver   neo4j.DriverWithContext
	database string
	log      logging.Logger
}

// NewDriver connects and verifies connectivity.
func NewDriver(ctx context.Context, cfg *config.Neo4jConfig, log logging.Logger) (*Driver, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, errors.InvalidParam("neo4j uri is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnectionPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			}
			if cfg.ConnectionTimeout > 0 {
				c.ConnectionAcquisitionTimeout = cfg.ConnectionTimeout
			}
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "create neo4j driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "connect to neo4j")
	}

	log.Info("neo4j connected", logging.String("uri", cfg.URI))
	return &Driver{driver: driver, database: cfg.Database, log: log}, nil
}

// ExecuteWrite runs work inside a managed write transaction.
func (d *Driver) ExecuteWrite(ctx context.Context, work func(Transaction) (any, error)) (any, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: d.database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(tx)
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "neo4j write")
	}
	return out, nil
}

// ExecuteRead runs work inside a managed read transaction.
func (d *Driver) ExecuteRead(ctx context.Context, work func(Transaction) (any, error)) (any, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: d.database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(tx)
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabase, "neo4j read")
	}
	return out, nil
}

// Ping verifies connectivity.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.driver.VerifyConnectivity(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabase, "neo4j ping")
	}
	return nil
}

// Close shuts the driver down.
func (d *Driver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

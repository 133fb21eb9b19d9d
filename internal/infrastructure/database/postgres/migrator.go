package postgres

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate brings the schema up to the embedded migrations.  It is run at
// startup by every binary that writes results; golang-migrate's locking
// makes concurrent runs safe.
func Migrate(cfg *config.PostgresConfig, log logging.Logger) error {
	if log == nil {
		log = logging.NewNopLogger()
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMigration, "load embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, "pgx5://"+trimScheme(DSN(cfg)))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMigration, "open migration target")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, errors.ErrCodeMigration, "apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return errors.Wrap(err, errors.ErrCodeMigration, "read schema version")
	}
	log.Info("schema migrated",
		logging.Int64("version", int64(version)),
		logging.Bool("dirty", dirty))
	return nil
}

// trimScheme drops the "postgres://" prefix so the DSN can be re-schemed
// for the pgx migration driver.
func trimScheme(dsn string) string {
	const scheme = "postgres://"
	if len(dsn) > len(scheme) && dsn[:len(scheme)] == scheme {
		return dsn[len(scheme):]
	}
	return dsn
}

package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/exp/slog"

	"history/migrations"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Migrator is the part of migrate.Migrate the runner uses.
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator for a driver and DSN. Tests swap it out.
type MigrationEngine func(driver, dsn string) (Migrator, error)

type Migration struct {
	driver string
	dsn    string
	engine MigrationEngine
	log    *slog.Logger
}

func NewMigration(driver, dsn string, engine MigrationEngine, log *slog.Logger) *Migration {
	return &Migration{
		driver: driver,
		dsn:    dsn,
		engine: engine,
		log:    log.With("component", "migration"),
	}
}

// DefaultEngine reads the embedded SQL for driver.
func DefaultEngine(driver, dsn string) (Migrator, error) {
	src, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", driver, err)
	}
	url, err := DatabaseURL(driver, dsn)
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, url)
}

// DatabaseURL turns a DSN into the URL golang-migrate expects for driver.
func DatabaseURL(driver, dsn string) (string, error) {
	switch driver {
	case DriverPostgres:
		return dsn, nil
	case DriverSQLite:
		if strings.HasPrefix(dsn, "sqlite3://") {
			return dsn, nil
		}
		return "sqlite3://" + strings.TrimPrefix(dsn, "file:"), nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Up applies all pending migrations. The memory driver has nothing to migrate.
func (mg *Migration) Up() error {
	return mg.run("up", Migrator.Up)
}

// Down reverts every migration.
func (mg *Migration) Down() error {
	return mg.run("down", Migrator.Down)
}

func (mg *Migration) run(direction string, step func(Migrator) error) (err error) {
	if mg.driver == DriverMemory {
		return nil
	}

	m, err := mg.engine(mg.driver, mg.dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()

	if err := step(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Debug("schema is up to date", "driver", mg.driver)
			return nil
		}
		return fmt.Errorf("migration %s: %w", direction, err)
	}

	mg.log.Info("migrations applied", "driver", mg.driver, "direction", direction)
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/repomanager"
)

// Storage drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Open connects to the store selected by driver, applies migrations and
// returns it ready for use. dsn is ignored by the memory driver.
func Open(ctx context.Context, driver, dsn string, logger logging.Logger) (Store, error) {
	switch driver {
	case DriverMemory:
		logger.Info(ctx, "using in-memory storage")
		return NewInMemoryFoodRepository(), nil
	case DriverPostgres:
		return openSQL(ctx, "pgx", dsn, repomanager.NewPostgresRepositoryManager(logger), logger)
	case DriverSQLite:
		return openSQL(ctx, "sqlite", dsn, repomanager.NewSQLiteRepositoryManager(logger), logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func openSQL(ctx context.Context, driverName, dsn string, rm repomanager.RepositoryManager, logger logging.Logger) (*SQLFoodRepository, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	switch driverName {
	case "sqlite":
		// one writer at a time; also keeps :memory: databases on a single connection
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger.Info(ctx, "storage ready", "driver", driverName)
	return NewSQLFoodRepository(db, rm, logger), nil
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/dmitrijs2005/foodkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/foods"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/ingredients"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. It is used for
// local runs and for tests that need a real SQL engine.
type SQLiteRepositoryManager struct {
	logger logging.Logger
}

func (m *SQLiteRepositoryManager) Dialect() dbx.Dialect {
	return dbx.SQLite
}

func (m *SQLiteRepositoryManager) Foods(db dbx.DBTX) foods.Repository {
	return foods.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Ingredients(db dbx.DBTX) ingredients.Repository {
	return ingredients.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Attachments(db dbx.DBTX) attachments.Repository {
	return attachments.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(newGooseLogger(m.logger))
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager(logger logging.Logger) RepositoryManager {
	return &SQLiteRepositoryManager{logger: logger}
}

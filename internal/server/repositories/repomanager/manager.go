package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/foods"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/ingredients"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Foods(db dbx.DBTX) foods.Repository
	Ingredients(db dbx.DBTX) ingredients.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

package attachments

import (
	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/ingredients"
)

var sqliteQueries = queries{
	insert: `
		INSERT INTO food_ingredients (food_id, ingredient_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`,
	deleteByFood: `DELETE FROM food_ingredients WHERE food_id = ?`,
}

// NewSQLiteRepository constructs a SQLite repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{
		db:          db,
		q:           sqliteQueries,
		ingredients: ingredients.NewSQLiteRepository(db),
	}
}

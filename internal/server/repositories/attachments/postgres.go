package attachments

import (
	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/ingredients"
)

var postgresQueries = queries{
	insert: `
		INSERT INTO food_ingredients (food_id, ingredient_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,
	deleteByFood: `DELETE FROM food_ingredients WHERE food_id = $1`,
}

// NewPostgresRepository constructs a PostgreSQL repository bound to the given
// DBTX. Ingredient names are resolved through a PostgreSQL dictionary
// repository on the same DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{
		db:          db,
		q:           postgresQueries,
		ingredients: ingredients.NewPostgresRepository(db),
	}
}

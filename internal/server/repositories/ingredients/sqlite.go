package ingredients

import "github.com/dmitrijs2005/foodkeeper/internal/dbx"

var sqliteQueries = queries{
	findID: `SELECT id FROM ingredients WHERE name = ?`,
	insert: `
		INSERT INTO ingredients (name)
		VALUES (?)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`,
	listByFood: `
		SELECT i.id, i.name
		FROM ingredients i
		JOIN food_ingredients fi ON fi.ingredient_id = i.id
		WHERE fi.food_id = ?
		ORDER BY i.id
	`,
	listAttached: `
		SELECT fi.food_id, i.id, i.name
		FROM food_ingredients fi
		JOIN ingredients i ON i.id = fi.ingredient_id
		ORDER BY fi.food_id, i.id
	`,
}

// NewSQLiteRepository constructs a SQLite repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

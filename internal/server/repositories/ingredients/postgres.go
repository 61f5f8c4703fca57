package ingredients

import "github.com/dmitrijs2005/foodkeeper/internal/dbx"

var postgresQueries = queries{
	findID: `SELECT id FROM ingredients WHERE name = $1`,
	insert: `
		INSERT INTO ingredients (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`,
	listByFood: `
		SELECT i.id, i.name
		FROM ingredients i
		JOIN food_ingredients fi ON fi.ingredient_id = i.id
		WHERE fi.food_id = $1
		ORDER BY i.id
	`,
	listAttached: `
		SELECT fi.food_id, i.id, i.name
		FROM food_ingredients fi
		JOIN ingredients i ON i.id = fi.ingredient_id
		ORDER BY fi.food_id, i.id
	`,
}

// NewPostgresRepository constructs a PostgreSQL repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

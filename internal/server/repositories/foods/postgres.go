package foods

import (
	"strconv"

	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
)

var postgresQueries = queries{
	insert: `
		INSERT INTO foods (name, description)
		VALUES ($1, $2)
		RETURNING id
	`,
	get: `
		SELECT id, name, description, created_at, updated_at
		FROM foods
		WHERE id = $1
	`,
	list: `
		SELECT id, name, description, created_at, updated_at
		FROM foods
		ORDER BY id
	`,
	touch:       `UPDATE foods SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
	delete:      `DELETE FROM foods WHERE id = $1`,
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

// NewPostgresRepository constructs a PostgreSQL repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

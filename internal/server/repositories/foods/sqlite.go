package foods

import "github.com/dmitrijs2005/foodkeeper/internal/dbx"

var sqliteQueries = queries{
	insert: `
		INSERT INTO foods (name, description)
		VALUES (?, ?)
		RETURNING id
	`,
	get: `
		SELECT id, name, description, created_at, updated_at
		FROM foods
		WHERE id = ?
	`,
	list: `
		SELECT id, name, description, created_at, updated_at
		FROM foods
		ORDER BY id
	`,
	touch:       `UPDATE foods SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
	delete:      `DELETE FROM foods WHERE id = ?`,
	placeholder: func(int) string { return "?" },
}

// NewSQLiteRepository constructs a SQLite repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

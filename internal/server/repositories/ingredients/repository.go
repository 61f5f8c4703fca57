// Package ingredients provides SQL repositories for the shared ingredient
// dictionary. Ingredient names are unique; Resolve is a get-or-create keyed on
// the name and is safe under concurrent callers.
package ingredients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
)

// Repository reads and lazily creates dictionary records.
type Repository interface {
	// Resolve returns the ID of the ingredient called name, inserting it first
	// when it does not exist yet.
	Resolve(ctx context.Context, name string) (int64, error)

	// ListByFood returns the ingredients attached to one food, ordered by ID.
	ListByFood(ctx context.Context, foodID int64) ([]models.Ingredient, error)

	// ListAttached returns the ingredients of every food that has any, keyed
	// by food ID.
	ListAttached(ctx context.Context) (map[int64][]models.Ingredient, error)
}

type queries struct {
	findID       string
	insert       string
	listByFood   string
	listAttached string
}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

// Resolve looks the name up and inserts it when missing. The insert yields
// nothing (ON CONFLICT DO NOTHING) or a unique violation when a concurrent
// transaction committed the same name first; both cases re-read the winner's ID.
func (r *SQLRepository) Resolve(ctx context.Context, name string) (int64, error) {
	id, err := r.findID(ctx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("db error: %w", err)
	}

	err = r.db.QueryRowContext(ctx, r.q.insert, name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, sql.ErrNoRows), dbx.IsUniqueViolation(err):
		id, err = r.findID(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("re-select ingredient %q: %w", name, err)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("insert ingredient %q: %w", name, err)
	}
}

func (r *SQLRepository) findID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.q.findID, name).Scan(&id)
	return id, err
}

func (r *SQLRepository) ListByFood(ctx context.Context, foodID int64) ([]models.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, r.q.listByFood, foodID)
	if err != nil {
		return nil, fmt.Errorf("failed to select ingredients: %w", err)
	}
	defer rows.Close()

	result := []models.Ingredient{}
	for rows.Next() {
		var item models.Ingredient
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) ListAttached(ctx context.Context) (map[int64][]models.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, r.q.listAttached)
	if err != nil {
		return nil, fmt.Errorf("failed to select ingredients: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.Ingredient)
	for rows.Next() {
		var (
			foodID int64
			item   models.Ingredient
		)
		if err := rows.Scan(&foodID, &item.ID, &item.Name); err != nil {
			return nil, err
		}
		result[foodID] = append(result[foodID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var _ Repository = (*SQLRepository)(nil)

// Package foods provides SQL repositories for the primary food rows. Ingredient
// attachments live in the attachments and ingredients packages; callers
// combine the three inside one transaction.
package foods

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/foodkeeper/internal/common"
	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
)

// Repository stores food rows without their ingredients.
type Repository interface {
	// Insert stores a new row and returns the storage-assigned ID.
	Insert(ctx context.Context, name string, description *string) (int64, error)

	// UpdateFields sets the non-nil fields and bumps updated_at. It reports
	// false when no row has the given ID.
	UpdateFields(ctx context.Context, id int64, name, description *string) (bool, error)

	// Touch bumps updated_at only. It reports false when no row has the given ID.
	Touch(ctx context.Context, id int64) (bool, error)

	// Get returns the row or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.Food, error)

	// List returns every row ordered by ID.
	List(ctx context.Context) ([]*models.Food, error)

	// Delete removes the row and reports whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

type queries struct {
	insert string
	get    string
	list   string
	touch  string
	delete string
	// placeholder renders the n-th (1-based) positional parameter.
	placeholder func(n int) string
}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func (r *SQLRepository) Insert(ctx context.Context, name string, description *string) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, r.q.insert, name, nullString(description)).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *SQLRepository) UpdateFields(ctx context.Context, id int64, name, description *string) (bool, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if name != nil {
		args = append(args, *name)
		sets = append(sets, "name = "+r.q.placeholder(len(args)))
	}
	if description != nil {
		args = append(args, *description)
		sets = append(sets, "description = "+r.q.placeholder(len(args)))
	}
	if len(sets) == 0 {
		return r.Touch(ctx, id)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE foods SET %s WHERE id = %s`, strings.Join(sets, ", "), r.q.placeholder(len(args)))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return singleRow(res)
}

func (r *SQLRepository) Touch(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.q.touch, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return singleRow(res)
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Food, error) {
	f, err := scanFood(r.db.QueryRowContext(ctx, r.q.get, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Food, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("failed to select foods: %w", err)
	}
	defer rows.Close()

	result := []*models.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.q.delete, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return singleRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFood(s scanner) (*models.Food, error) {
	var (
		f    models.Food
		desc sql.NullString
	)
	if err := s.Scan(&f.ID, &f.Name, &desc, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		f.Description = &desc.String
	}
	f.Ingredients = []models.Ingredient{}
	return &f, nil
}

// singleRow maps rows affected by a statement keyed on the primary key.
func singleRow(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var _ Repository = (*SQLRepository)(nil)

// Package attachments maintains the food_ingredients join table. A food's
// attachment set is always written as a whole: Reconcile drops every existing
// link and recreates one per distinct ingredient name.
package attachments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/ingredients"
)

type Repository interface {
	// Attach links foodID to every distinct name, resolving names through the
	// ingredient dictionary. Existing links are kept.
	Attach(ctx context.Context, foodID int64, names []string) error

	// Reconcile replaces the attachment set of foodID. An empty names slice
	// leaves the food with no ingredients.
	Reconcile(ctx context.Context, foodID int64, names []string) error

	// DeleteByFood removes every link of foodID and reports how many were removed.
	DeleteByFood(ctx context.Context, foodID int64) (int64, error)
}

type queries struct {
	insert       string
	deleteByFood string
}

// SQLRepository implements Repository. Its dictionary repository must be bound
// to the same DBTX so that resolution and linking share one transaction.
type SQLRepository struct {
	db          dbx.DBTX
	q           queries
	ingredients ingredients.Repository
}

func (r *SQLRepository) Attach(ctx context.Context, foodID int64, names []string) error {
	seen := make(map[int64]struct{}, len(names))
	for _, name := range models.DistinctNames(names) {
		id, err := r.ingredients.Resolve(ctx, name)
		if err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, err := r.db.ExecContext(ctx, r.q.insert, foodID, id); err != nil {
			return fmt.Errorf("attach ingredient %q to food %d: %w", name, foodID, err)
		}
	}
	return nil
}

func (r *SQLRepository) Reconcile(ctx context.Context, foodID int64, names []string) error {
	if _, err := r.DeleteByFood(ctx, foodID); err != nil {
		return err
	}
	return r.Attach(ctx, foodID, names)
}

func (r *SQLRepository) DeleteByFood(ctx context.Context, foodID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.q.deleteByFood, foodID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

var _ Repository = (*SQLRepository)(nil)

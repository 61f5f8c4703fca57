package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/foodkeeper/internal/common"
	"github.com/dmitrijs2005/foodkeeper/internal/dbx"
	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
	"github.com/dmitrijs2005/foodkeeper/internal/server/repositories/repomanager"
)

// errAbsent aborts an update transaction whose target row does not exist.
var errAbsent = errors.New("food absent")

// SQLFoodRepository composes the foods, ingredients and attachments
// repositories. Every mutation runs in a single transaction; reads use the
// pool directly.
type SQLFoodRepository struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

func NewSQLFoodRepository(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *SQLFoodRepository {
	return &SQLFoodRepository{db: db, rm: rm, logger: logger.With("module", "storage", "dialect", string(rm.Dialect()))}
}

func (r *SQLFoodRepository) FindAll(ctx context.Context) ([]*models.Food, error) {
	items, err := r.rm.Foods(r.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	attached, err := r.rm.Ingredients(r.db).ListAttached(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range items {
		if ing, ok := attached[f.ID]; ok {
			f.Ingredients = ing
		}
	}
	return items, nil
}

func (r *SQLFoodRepository) FindByID(ctx context.Context, id int64) (*models.Food, bool, error) {
	return r.load(ctx, r.db, id)
}

func (r *SQLFoodRepository) load(ctx context.Context, db dbx.DBTX, id int64) (*models.Food, bool, error) {
	f, err := r.rm.Foods(db).Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	f.Ingredients, err = r.rm.Ingredients(db).ListByFood(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func (r *SQLFoodRepository) Create(ctx context.Context, p models.CreateFoodParams) (*models.Food, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var id int64
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		id, err = r.rm.Foods(tx).Insert(ctx, p.Name, p.Description)
		if err != nil {
			return err
		}
		if len(p.Ingredients) > 0 {
			return r.rm.Attachments(tx).Attach(ctx, id, p.Ingredients)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}
	r.logger.Debug(ctx, "food created", "food_id", id)

	f, found, err := r.load(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	if !found {
		// deleted concurrently between commit and re-read
		return nil, fmt.Errorf("food %d: %w", id, common.ErrorNotFound)
	}
	return f, nil
}

func (r *SQLFoodRepository) Update(ctx context.Context, id int64, p models.UpdateFoodParams) (*models.Food, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		foods := r.rm.Foods(tx)

		var (
			found bool
			err   error
		)
		if p.HasFields() {
			found, err = foods.UpdateFields(ctx, id, p.NewName(), p.NewDescription())
		} else {
			found, err = foods.Touch(ctx, id)
		}
		if err != nil {
			return err
		}
		if !found {
			return errAbsent
		}

		if p.HasIngredients() {
			return r.rm.Attachments(tx).Reconcile(ctx, id, p.Ingredients)
		}
		return nil
	})
	if errors.Is(err, errAbsent) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("update food %d: %w", id, err)
	}
	r.logger.Debug(ctx, "food updated", "food_id", id, "ingredients_replaced", p.HasIngredients())

	return r.load(ctx, r.db, id)
}

func (r *SQLFoodRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := r.rm.Attachments(tx).DeleteByFood(ctx, id); err != nil {
			return err
		}
		var err error
		removed, err = r.rm.Foods(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete food %d: %w", id, err)
	}
	if removed {
		r.logger.Debug(ctx, "food deleted", "food_id", id)
	}
	return removed, nil
}

func (r *SQLFoodRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLFoodRepository) Close() error {
	return r.db.Close()
}

var (
	_ Store  = (*SQLFoodRepository)(nil)
	_ Pinger = (*SQLFoodRepository)(nil)
)

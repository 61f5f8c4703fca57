package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
)

type memFood struct {
	name        string
	description *string
	ingredients []int64 // sorted ascending
	createdAt   time.Time
	updatedAt   time.Time
}

// InMemoryFoodRepository keeps foods in process memory. It honors the same
// invariants as the SQL store: ingredient names are unique, attachment sets
// are replaced as a whole and mutations are all-or-nothing.
type InMemoryFoodRepository struct {
	mu sync.RWMutex

	foods      map[int64]*memFood
	nextFoodID int64

	ingredientIDs   map[string]int64
	ingredientNames map[int64]string
	nextIngredient  int64

	now func() time.Time
}

func NewInMemoryFoodRepository() *InMemoryFoodRepository {
	return &InMemoryFoodRepository{
		foods:           make(map[int64]*memFood),
		ingredientIDs:   make(map[string]int64),
		ingredientNames: make(map[int64]string),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (r *InMemoryFoodRepository) FindAll(_ context.Context) ([]*models.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.foods))
	for id := range r.foods {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*models.Food, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.snapshot(id, r.foods[id]))
	}
	return out, nil
}

func (r *InMemoryFoodRepository) FindByID(_ context.Context, id int64) (*models.Food, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.foods[id]
	if !ok {
		return nil, false, nil
	}
	return r.snapshot(id, f), true, nil
}

func (r *InMemoryFoodRepository) Create(_ context.Context, p models.CreateFoodParams) (*models.Food, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextFoodID++
	now := r.now()
	f := &memFood{
		name:        p.Name,
		description: cloneString(p.Description),
		ingredients: r.resolveAll(p.Ingredients),
		createdAt:   now,
		updatedAt:   now,
	}
	r.foods[r.nextFoodID] = f
	return r.snapshot(r.nextFoodID, f), nil
}

func (r *InMemoryFoodRepository) Update(_ context.Context, id int64, p models.UpdateFoodParams) (*models.Food, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.foods[id]
	if !ok {
		return nil, false, nil
	}
	if name := p.NewName(); name != nil {
		f.name = *name
	}
	if desc := p.NewDescription(); desc != nil {
		f.description = cloneString(desc)
	}
	if p.HasIngredients() {
		f.ingredients = r.resolveAll(p.Ingredients)
	}
	f.updatedAt = r.now()
	return r.snapshot(id, f), true, nil
}

func (r *InMemoryFoodRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.foods[id]; !ok {
		return false, nil
	}
	delete(r.foods, id)
	return true, nil
}

func (r *InMemoryFoodRepository) Close() error { return nil }

// resolveAll returns the sorted, de-duplicated dictionary IDs of names,
// creating missing records. Callers hold the write lock.
func (r *InMemoryFoodRepository) resolveAll(names []string) []int64 {
	ids := make([]int64, 0, len(names))
	for _, name := range models.DistinctNames(names) {
		id, ok := r.ingredientIDs[name]
		if !ok {
			r.nextIngredient++
			id = r.nextIngredient
			r.ingredientIDs[name] = id
			r.ingredientNames[id] = name
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func (r *InMemoryFoodRepository) snapshot(id int64, f *memFood) *models.Food {
	out := &models.Food{
		ID:          id,
		Name:        f.name,
		Description: cloneString(f.description),
		Ingredients: make([]models.Ingredient, 0, len(f.ingredients)),
		CreatedAt:   f.createdAt,
		UpdatedAt:   f.updatedAt,
	}
	for _, ingID := range f.ingredients {
		out.Ingredients = append(out.Ingredients, models.Ingredient{ID: ingID, Name: r.ingredientNames[ingID]})
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var _ Store = (*InMemoryFoodRepository)(nil)

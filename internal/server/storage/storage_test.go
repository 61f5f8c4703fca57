package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/foodkeeper/internal/common"
	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func openSQLite(t *testing.T) *SQLFoodRepository {
	t.Helper()
	s, err := Open(context.Background(), DriverSQLite, "file::memory:?_pragma=foreign_keys(1)", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s.(*SQLFoodRepository)
}

// forEachStore runs fn against every FoodRepository implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, s FoodRepository)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, openSQLite(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewInMemoryFoodRepository()) })
}

func ingredientNames(f *models.Food) []string {
	out := make([]string, 0, len(f.Ingredients))
	for _, i := range f.Ingredients {
		out = append(out, i.Name)
	}
	return out
}

func ingredientID(t *testing.T, f *models.Food, name string) int64 {
	t.Helper()
	for _, i := range f.Ingredients {
		if i.Name == name {
			return i.ID
		}
	}
	t.Fatalf("food %d has no ingredient %q", f.ID, name)
	return 0
}

func TestFindAll_Empty(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		got, err := s.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCreate_SharesDictionaryRecords(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		pizza, err := s.Create(ctx, models.CreateFoodParams{
			Name:        "Pizza",
			Description: strPtr("Delicious cheesy pizza"),
			Ingredients: []string{"Tomato", "Cheese"},
		})
		require.NoError(t, err)
		assert.Positive(t, pizza.ID)
		assert.Equal(t, "Pizza", pizza.Name)
		require.NotNil(t, pizza.Description)
		assert.Equal(t, "Delicious cheesy pizza", *pizza.Description)
		assert.Equal(t, []string{"Tomato", "Cheese"}, ingredientNames(pizza))
		assert.False(t, pizza.CreatedAt.IsZero())

		burger, err := s.Create(ctx, models.CreateFoodParams{
			Name:        "Burger",
			Ingredients: []string{"Tomato", "Lettuce"},
		})
		require.NoError(t, err)
		assert.Nil(t, burger.Description)
		assert.Equal(t, ingredientID(t, pizza, "Tomato"), ingredientID(t, burger, "Tomato"))

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, pizza.ID, all[0].ID)
		assert.Equal(t, []string{"Tomato", "Cheese"}, ingredientNames(all[0]))
		assert.Equal(t, []string{"Tomato", "Lettuce"}, ingredientNames(all[1]))
	})
}

func TestCreate_DuplicateNamesAttachOnce(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		f, err := s.Create(context.Background(), models.CreateFoodParams{
			Name:        "Caprese",
			Ingredients: []string{"Cheese", "Basil", "Cheese"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cheese", "Basil"}, ingredientNames(f))
	})
}

func TestCreate_NoIngredients(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		f, err := s.Create(context.Background(), models.CreateFoodParams{Name: "Water"})
		require.NoError(t, err)
		assert.NotNil(t, f.Ingredients)
		assert.Empty(t, f.Ingredients)
	})
}

func TestCreate_Validation(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		_, err := s.Create(ctx, models.CreateFoodParams{Name: "  "})
		assert.ErrorIs(t, err, common.ErrorValidation)

		_, err = s.Create(ctx, models.CreateFoodParams{Name: "Soup", Ingredients: []string{""}})
		assert.ErrorIs(t, err, common.ErrorValidation)

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestFindByID_Absent(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		f, found, err := s.FindByID(context.Background(), 999)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, f)
	})
}

func TestUpdate_WithoutIngredientsKeepsAttachments(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		pizza, err := s.Create(ctx, models.CreateFoodParams{
			Name:        "Pizza",
			Description: strPtr("cheesy"),
			Ingredients: []string{"Tomato", "Cheese"},
		})
		require.NoError(t, err)

		got, found, err := s.Update(ctx, pizza.ID, models.UpdateFoodParams{Name: strPtr("Margherita")})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Margherita", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "cheesy", *got.Description)
		assert.Equal(t, []string{"Tomato", "Cheese"}, ingredientNames(got))
		assert.Equal(t, pizza.CreatedAt, got.CreatedAt)
	})
}

func TestUpdate_EmptyValuesAreIgnored(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		pizza, err := s.Create(ctx, models.CreateFoodParams{Name: "Pizza", Description: strPtr("cheesy")})
		require.NoError(t, err)

		got, found, err := s.Update(ctx, pizza.ID, models.UpdateFoodParams{Name: strPtr(""), Description: strPtr("")})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Pizza", got.Name)
		assert.Equal(t, "cheesy", *got.Description)

		got, found, err = s.Update(ctx, pizza.ID, models.UpdateFoodParams{Name: strPtr("   ")})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Pizza", got.Name, "a blank name must not replace the stored one")

		got, found, err = s.FindByID(ctx, pizza.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Pizza", got.Name)
	})
}

func TestUpdate_ReplacesIngredients(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		pizza, err := s.Create(ctx, models.CreateFoodParams{Name: "Pizza", Ingredients: []string{"Tomato", "Cheese"}})
		require.NoError(t, err)
		burger, err := s.Create(ctx, models.CreateFoodParams{Name: "Burger", Ingredients: []string{"Tomato", "Lettuce"}})
		require.NoError(t, err)

		got, found, err := s.Update(ctx, pizza.ID, models.UpdateFoodParams{Ingredients: []string{"Lettuce"}})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []string{"Lettuce"}, ingredientNames(got))
		assert.Equal(t, ingredientID(t, burger, "Lettuce"), ingredientID(t, got, "Lettuce"))

		// other foods keep their Tomato link
		b, _, err := s.FindByID(ctx, burger.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Tomato", "Lettuce"}, ingredientNames(b))

		// Cheese survives in the dictionary and resolves to the same record
		again, err := s.Create(ctx, models.CreateFoodParams{Name: "Toast", Ingredients: []string{"Cheese"}})
		require.NoError(t, err)
		assert.Equal(t, ingredientID(t, pizza, "Cheese"), ingredientID(t, again, "Cheese"))
	})
}

func TestUpdate_EmptyListClearsIngredients(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		pizza, err := s.Create(ctx, models.CreateFoodParams{Name: "Pizza", Ingredients: []string{"Tomato"}})
		require.NoError(t, err)

		got, found, err := s.Update(ctx, pizza.ID, models.UpdateFoodParams{Ingredients: []string{}})
		require.NoError(t, err)
		require.True(t, found)
		assert.Empty(t, got.Ingredients)
	})
}

func TestUpdate_Absent(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		for _, p := range []models.UpdateFoodParams{
			{Name: strPtr("Ghost")},
			{Ingredients: []string{"Tomato"}},
			{},
		} {
			got, found, err := s.Update(ctx, 404, p)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, got)
		}

		// a missing target creates nothing
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		pizza, err := s.Create(ctx, models.CreateFoodParams{Name: "Pizza", Ingredients: []string{"Tomato"}})
		require.NoError(t, err)
		burger, err := s.Create(ctx, models.CreateFoodParams{Name: "Burger", Ingredients: []string{"Tomato"}})
		require.NoError(t, err)

		removed, err := s.Delete(ctx, pizza.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, found, err := s.FindByID(ctx, pizza.ID)
		require.NoError(t, err)
		assert.False(t, found)

		removed, err = s.Delete(ctx, pizza.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		b, found, err := s.FindByID(ctx, burger.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []string{"Tomato"}, ingredientNames(b))
	})
}

func TestCreate_ConcurrentSharedNames(t *testing.T) {
	forEachStore(t, func(t *testing.T, s FoodRepository) {
		ctx := context.Background()

		const workers = 8
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.Create(ctx, models.CreateFoodParams{
					Name:        fmt.Sprintf("Dish %d", i),
					Ingredients: []string{"Salt", "Pepper"},
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, workers)
		salt := ingredientID(t, all[0], "Salt")
		for _, f := range all {
			assert.Equal(t, salt, ingredientID(t, f, "Salt"))
		}
	})
}

func TestSQLFoodRepository_Ping(t *testing.T) {
	s := openSQLite(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "", logging.Nop())
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), DriverMemory, "", logging.Nop())
	require.NoError(t, err)
	_, ok := s.(*InMemoryFoodRepository)
	assert.True(t, ok)
	assert.NoError(t, s.Close())
}

func TestInMemory_ReturnsCopies(t *testing.T) {
	s := NewInMemoryFoodRepository()
	ctx := context.Background()

	f, err := s.Create(ctx, models.CreateFoodParams{Name: "Pizza", Description: strPtr("cheesy"), Ingredients: []string{"Tomato"}})
	require.NoError(t, err)

	*f.Description = "mutated"
	f.Ingredients[0].Name = "mutated"

	got, _, err := s.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "cheesy", *got.Description)
	assert.Equal(t, "Tomato", got.Ingredients[0].Name)
}

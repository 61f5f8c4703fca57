// Package storage exposes the food Entity Repository: whole food items with
// their ingredients, created, updated and deleted atomically. SQL-backed and
// in-memory implementations share the FoodRepository contract.
package storage

import (
	"context"

	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
)

// FoodRepository is the capability set every food store provides.
//
// Lookups that miss report found == false with a nil error. Errors are
// reserved for validation failures (common.ErrorValidation) and storage
// failures; a failed mutation leaves no partial food behind.
type FoodRepository interface {
	// FindAll returns every food with its ingredients, ordered by ID. An empty
	// store yields an empty slice.
	FindAll(ctx context.Context) ([]*models.Food, error)

	// FindByID returns the food with its ingredients, or found == false and a
	// nil error when no food has that ID.
	FindByID(ctx context.Context, id int64) (*models.Food, bool, error)

	// Create stores the food and attaches its distinct ingredient names,
	// creating dictionary records as needed, and returns the stored food.
	Create(ctx context.Context, p models.CreateFoodParams) (*models.Food, error)

	// Update applies a partial update. See models.UpdateFoodParams for which
	// fields count as present.
	Update(ctx context.Context, id int64, p models.UpdateFoodParams) (*models.Food, bool, error)

	// Delete removes the food and its attachments. Dictionary records stay.
	Delete(ctx context.Context, id int64) (bool, error)
}

// Pinger is implemented by stores backed by a remote resource.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is a FoodRepository owning resources that Close releases.
type Store interface {
	FoodRepository
	Close() error
}

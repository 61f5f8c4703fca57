// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodkeeper/internal/common"
)

// Ingredient is a shared dictionary record. Names are unique across the
// dictionary, so an ingredient is identified by name as well as by ID.
type Ingredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Food is a food item together with its fully loaded ingredients.
type Food struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateFoodParams carries the caller-supplied fields of a new food.
type CreateFoodParams struct {
	Name        string
	Description *string
	// Ingredients lists ingredient names; duplicates collapse to one attachment.
	Ingredients []string
}

// Validate checks the fields a food must have before it reaches storage.
func (p CreateFoodParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: food name is required", common.ErrorValidation)
	}
	return validateIngredientNames(p.Ingredients)
}

// UpdateFoodParams is a partial update. Nil or empty Name/Description leave
// the stored value unchanged, and so does a Name of only whitespace. A nil Ingredients slice leaves attachments
// untouched; a non-nil one (even empty) replaces them.
type UpdateFoodParams struct {
	Name        *string
	Description *string
	Ingredients []string
}

// Validate checks the ingredient names of a partial update.
func (p UpdateFoodParams) Validate() error {
	return validateIngredientNames(p.Ingredients)
}

// HasFields reports whether the update sets name or description.
func (p UpdateFoodParams) HasFields() bool {
	return notBlank(p.Name) || nonEmpty(p.Description)
}

// HasIngredients reports whether the update replaces the ingredient set.
func (p UpdateFoodParams) HasIngredients() bool {
	return p.Ingredients != nil
}

// NewName returns the name to store, or nil when the name is left unchanged.
func (p UpdateFoodParams) NewName() *string {
	if notBlank(p.Name) {
		return p.Name
	}
	return nil
}

// NewDescription returns the description to store, or nil when unchanged.
func (p UpdateFoodParams) NewDescription() *string {
	if nonEmpty(p.Description) {
		return p.Description
	}
	return nil
}

// DistinctNames returns names with duplicates removed, keeping first-seen order.
func DistinctNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func validateIngredientNames(names []string) error {
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("%w: ingredient #%d has an empty name", common.ErrorValidation, i+1)
		}
	}
	return nil
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

// notBlank matches the name check CreateFoodParams.Validate applies.
func notBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

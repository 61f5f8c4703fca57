package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/foodkeeper/internal/common"
	"github.com/dmitrijs2005/foodkeeper/internal/logging"
	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
	"github.com/dmitrijs2005/foodkeeper/internal/server/storage"
)

const (
	msgFoodsFound    = "Foods found"
	msgNoFoodsFound  = "No Foods found"
	msgFoodFound     = "Food found"
	msgFoodNotFound  = "Food not found"
	msgNameRequired  = "Food name is required"
	msgFoodCreated   = "Food created"
	msgFoodUpdated   = "Food updated"
	msgFoodDeleted   = "Food deleted"
	msgFindAllFailed = "An error occurred while retrieving foods."
	msgFindFailed    = "An error occurred while finding food."
	msgCreateFailed  = "An error occurred while creating food."
	msgUpdateFailed  = "An error occurred while updating food."
	msgDeleteFailed  = "An error occurred while deleting food."
)

// FoodService turns repository outcomes into API responses. Storage errors
// are logged and replaced with a generic message.
type FoodService struct {
	repo   storage.FoodRepository
	logger logging.Logger
}

func NewFoodService(repo storage.FoodRepository, logger logging.Logger) *FoodService {
	return &FoodService{repo: repo, logger: logger.With("module", "food_service")}
}

func (s *FoodService) FindAll(ctx context.Context) ServiceResponse[[]*models.Food] {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "error finding all foods", "error", err)
		return Failure[[]*models.Food](msgFindAllFailed, http.StatusInternalServerError)
	}
	if len(items) == 0 {
		return Failure[[]*models.Food](msgNoFoodsFound, http.StatusNotFound)
	}
	return Success(msgFoodsFound, items, http.StatusOK)
}

func (s *FoodService) FindByID(ctx context.Context, id int64) ServiceResponse[*models.Food] {
	f, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "error finding food", "food_id", id, "error", err)
		return Failure[*models.Food](msgFindFailed, http.StatusInternalServerError)
	}
	if !found {
		return Failure[*models.Food](msgFoodNotFound, http.StatusNotFound)
	}
	return Success(msgFoodFound, f, http.StatusOK)
}

func (s *FoodService) Create(ctx context.Context, p models.CreateFoodParams) ServiceResponse[*models.Food] {
	if strings.TrimSpace(p.Name) == "" {
		return Failure[*models.Food](msgNameRequired, http.StatusBadRequest)
	}

	f, err := s.repo.Create(ctx, p)
	if errors.Is(err, common.ErrorValidation) {
		return Failure[*models.Food](err.Error(), http.StatusBadRequest)
	}
	if err != nil {
		s.logger.Error(ctx, "error creating food", "error", err)
		return Failure[*models.Food](msgCreateFailed, http.StatusInternalServerError)
	}
	s.logger.Info(ctx, "food created", "food_id", f.ID)
	return Success(msgFoodCreated, f, http.StatusCreated)
}

func (s *FoodService) Update(ctx context.Context, id int64, p models.UpdateFoodParams) ServiceResponse[*models.Food] {
	f, found, err := s.repo.Update(ctx, id, p)
	if errors.Is(err, common.ErrorValidation) {
		return Failure[*models.Food](err.Error(), http.StatusBadRequest)
	}
	if err != nil {
		s.logger.Error(ctx, "error updating food", "food_id", id, "error", err)
		return Failure[*models.Food](msgUpdateFailed, http.StatusInternalServerError)
	}
	if !found {
		return Failure[*models.Food](msgFoodNotFound, http.StatusNotFound)
	}
	return Success(msgFoodUpdated, f, http.StatusOK)
}

func (s *FoodService) Delete(ctx context.Context, id int64) ServiceResponse[any] {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "error deleting food", "food_id", id, "error", err)
		return Failure[any](msgDeleteFailed, http.StatusInternalServerError)
	}
	if !removed {
		return Failure[any](msgFoodNotFound, http.StatusNotFound)
	}
	s.logger.Info(ctx, "food deleted", "food_id", id)
	return Success[any](msgFoodDeleted, nil, http.StatusOK)
}

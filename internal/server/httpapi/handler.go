package httpapi

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/dmitrijs2005/foodkeeper/internal/server/models"
	"github.com/dmitrijs2005/foodkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

const (
	msgInvalidID   = "Invalid input: ID must be a number"
	msgInvalidBody = "Invalid input: malformed request body"
	msgHealthy     = "Service is healthy"
	msgUnhealthy   = "Service is unhealthy"
)

var idPattern = regexp.MustCompile(`^\d+$`)

type ingredientInput struct {
	Name string `json:"name"`
}

type foodRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Ingredients []ingredientInput `json:"ingredients"`
}

// names returns nil when the list was absent and a non-nil slice otherwise.
func (r foodRequest) names() []string {
	if r.Ingredients == nil {
		return nil
	}
	out := make([]string, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		out = append(out, i.Name)
	}
	return out
}

func respond[T any](c echo.Context, r services.ServiceResponse[T]) error {
	return c.JSON(r.StatusCode, r)
}

func fail(c echo.Context, msg string, status int) error {
	return respond(c, services.Failure[any](msg, status))
}

func parseID(c echo.Context) (int64, bool) {
	raw := c.Param("id")
	if !idPattern.MatchString(raw) {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func bindFood(c echo.Context) (foodRequest, bool) {
	var req foodRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return req, false
	}
	return req, true
}

func (s *HTTPServer) GetFoods(c echo.Context) error {
	return respond(c, s.foods.FindAll(c.Request().Context()))
}

func (s *HTTPServer) GetFood(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return fail(c, msgInvalidID, http.StatusBadRequest)
	}
	return respond(c, s.foods.FindByID(c.Request().Context(), id))
}

func (s *HTTPServer) CreateFood(c echo.Context) error {
	req, ok := bindFood(c)
	if !ok {
		return fail(c, msgInvalidBody, http.StatusBadRequest)
	}

	p := models.CreateFoodParams{
		Description: req.Description,
		Ingredients: req.names(),
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	return respond(c, s.foods.Create(c.Request().Context(), p))
}

func (s *HTTPServer) UpdateFood(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return fail(c, msgInvalidID, http.StatusBadRequest)
	}
	req, ok := bindFood(c)
	if !ok {
		return fail(c, msgInvalidBody, http.StatusBadRequest)
	}

	p := models.UpdateFoodParams{
		Name:        req.Name,
		Description: req.Description,
		Ingredients: req.names(),
	}
	return respond(c, s.foods.Update(c.Request().Context(), id, p))
}

func (s *HTTPServer) DeleteFood(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return fail(c, msgInvalidID, http.StatusBadRequest)
	}
	return respond(c, s.foods.Delete(c.Request().Context(), id))
}

func (s *HTTPServer) HealthCheck(c echo.Context) error {
	if s.health != nil {
		ctx := c.Request().Context()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Error(ctx, "health check failed", "error", err)
			return fail(c, msgUnhealthy, http.StatusServiceUnavailable)
		}
	}
	return respond(c, services.Success[any](msgHealthy, nil, http.StatusOK))
}

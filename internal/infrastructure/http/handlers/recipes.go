package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/domain/units"
	"github.com/pantrychef/v1/internal/infrastructure/monitoring"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/pkg/errors"
)

// RecipeHandlers exposes the recipe catalog use cases over JSON.
type RecipeHandlers struct {
	service inbound.RecipeService
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

// NewRecipeHandlers creates recipe endpoint handlers
func NewRecipeHandlers(
	service inbound.RecipeService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *RecipeHandlers {
	return &RecipeHandlers{
		service: service,
		metrics: metrics,
		logger:  logger.Named("recipe-api"),
	}
}

type ingredientRequest struct {
	Name             string   `json:"name" binding:"required"`
	Quantity         float64  `json:"quantity"`
	Unit             string   `json:"unit"`
	LinkedProductIDs []string `json:"linkedProductIds"`
	Optional         bool     `json:"optional"`
	Notes            string   `json:"notes"`
}

type createRecipeRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Categories  []string            `json:"categories"`
	Ingredients []ingredientRequest `json:"ingredients"`
}

type updateRecipeRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Categories  *[]string            `json:"categories"`
	Ingredients *[]ingredientRequest `json:"ingredients"`
}

// Create handles POST /api/v1/recipes
func (h *RecipeHandlers) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.service.CreateRecipe(c.Request.Context(), inbound.CreateRecipeCommand{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
		Ingredients: toIngredientCommands(req.Ingredients),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecipeCreated()
	}
	c.JSON(http.StatusCreated, dto)
}

// Update handles PUT /api/v1/recipes/:id
func (h *RecipeHandlers) Update(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	cmd := inbound.UpdateRecipeCommand{
		RecipeID:    id,
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
	}
	if req.Ingredients != nil {
		ingredients := toIngredientCommands(*req.Ingredients)
		cmd.Ingredients = &ingredients
	}

	dto, err := h.service.UpdateRecipe(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// Publish handles POST /api/v1/recipes/:id/publish
func (h *RecipeHandlers) Publish(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	if err := h.service.PublishRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/recipes/:id
func (h *RecipeHandlers) Delete(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Get handles GET /api/v1/recipes/:id
func (h *RecipeHandlers) Get(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	dto, err := h.service.GetRecipeByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

func (h *RecipeHandlers) recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errors.NewBadRequestError("invalid recipe id"))
		return uuid.Nil, false
	}
	return id, true
}

func toIngredientCommands(reqs []ingredientRequest) []inbound.IngredientCommand {
	commands := make([]inbound.IngredientCommand, len(reqs))
	for i, req := range reqs {
		commands[i] = inbound.IngredientCommand{
			Name:             req.Name,
			Quantity:         req.Quantity,
			Unit:             units.UnitCode(req.Unit),
			LinkedProductIDs: req.LinkedProductIDs,
			Optional:         req.Optional,
			Notes:            req.Notes,
		}
	}
	return commands
}

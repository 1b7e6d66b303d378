package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/units"
	"github.com/pantrychef/v1/internal/infrastructure/monitoring"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/pkg/errors"
)

// DiscoveryHandlers exposes the discovery engine over JSON.
type DiscoveryHandlers struct {
	service inbound.DiscoveryService
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

// NewDiscoveryHandlers creates discovery endpoint handlers
func NewDiscoveryHandlers(
	service inbound.DiscoveryService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *DiscoveryHandlers {
	return &DiscoveryHandlers{
		service: service,
		metrics: metrics,
		logger:  logger.Named("discovery-api"),
	}
}

type stockEntryRequest struct {
	ProductID string     `json:"productId"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	DLC       *time.Time `json:"dlc,omitempty"`
}

type preferencesRequest struct {
	Allergenes          []string `json:"allergenes"`
	PreferredCategories []string `json:"preferredCategories"`
	ExcludedCategories  []string `json:"excludedCategories"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
}

type discoverRequest struct {
	Stock       []stockEntryRequest `json:"stock"`
	Preferences preferencesRequest  `json:"preferences"`
}

type searchRequest struct {
	Query       string              `json:"query" binding:"required"`
	Stock       []stockEntryRequest `json:"stock"`
	Preferences preferencesRequest  `json:"preferences"`
}

// Discover handles POST /api/v1/discovery/discover
func (h *DiscoveryHandlers) Discover(c *gin.Context) {
	var req discoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	start := time.Now()
	page, err := h.service.Discover(c.Request.Context(), inbound.DiscoverQuery{
		Preferences: toPreferences(req.Preferences),
		Stock:       toStock(req.Stock),
	})
	h.observe("discover", err, page, time.Since(start))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Search handles POST /api/v1/discovery/search
func (h *DiscoveryHandlers) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	start := time.Now()
	page, err := h.service.Search(c.Request.Context(), inbound.SearchQuery{
		Text:        req.Query,
		Preferences: toPreferences(req.Preferences),
		Stock:       toStock(req.Stock),
	})
	h.observe("search", err, page, time.Since(start))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *DiscoveryHandlers) observe(mode string, err error, page *inbound.RecipePage, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	if err != nil {
		h.metrics.SearchExecuted(mode, "error", 0, elapsed)
		h.metrics.BackendFailure(string(errors.GetCode(err)))
		return
	}
	h.metrics.SearchExecuted(mode, "ok", len(page.Results), elapsed)
}

func toPreferences(req preferencesRequest) pantry.UserPreferences {
	return pantry.UserPreferences{
		Allergenes:          req.Allergenes,
		PreferredCategories: req.PreferredCategories,
		ExcludedCategories:  req.ExcludedCategories,
		DietaryRestrictions: req.DietaryRestrictions,
	}
}

func toStock(entries []stockEntryRequest) []pantry.StockEntry {
	stock := make([]pantry.StockEntry, len(entries))
	for i, entry := range entries {
		stock[i] = pantry.StockEntry{
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			Unit:      units.UnitCode(entry.Unit),
			DLC:       entry.DLC,
		}
	}
	return stock
}

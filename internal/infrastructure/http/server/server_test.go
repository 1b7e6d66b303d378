package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/application/discovery"
	"github.com/pantrychef/v1/internal/application/indexing"
	recipeapp "github.com/pantrychef/v1/internal/application/recipe"
	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/infrastructure/monitoring"
	"github.com/pantrychef/v1/internal/infrastructure/persistence/memory"
	memindex "github.com/pantrychef/v1/internal/infrastructure/search/memory"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/internal/scoring"
)

type ServerTestSuite struct {
	suite.Suite
	server *Server
}

func testConfig(requestsPerMin int) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "pantrychef-test",
			Version:     "test",
			Environment: "development",
		},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		RateLimit: config.RateLimitConfig{
			Enable:         requestsPerMin > 0,
			RequestsPerMin: requestsPerMin,
			Window:         time.Minute,
		},
		Monitoring: config.MonitoringConfig{
			EnableMetrics:   true,
			MetricsPath:     "/metrics",
			HealthCheckPath: "/health",
		},
		Scoring: scoring.DefaultConfig(),
	}
}

func newTestServer(t *testing.T, requestsPerMin int) *Server {
	t.Helper()
	logger := zap.NewNop()
	index := memindex.NewIndex()
	indexer := indexing.NewIndexer(index, logger)
	recipeService := recipeapp.NewRecipeService(memory.NewRecipeRepository(), indexer, logger)
	discoveryService := discovery.NewService(index, scoring.DefaultConfig(), logger)
	metrics := monitoring.NewMetricsCollector(prometheus.NewRegistry(), logger)

	return New(testConfig(requestsPerMin), logger, discoveryService, recipeService, memory.NewCacheRepository(), metrics)
}

func (suite *ServerTestSuite) SetupTest() {
	suite.server = newTestServer(suite.T(), 0)
}

func (suite *ServerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) TestHealthEndpoint() {
	rec := suite.do(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "pantrychef-test")
}

func (suite *ServerTestSuite) TestRecipeLifecycleFeedsDiscovery() {
	// Arrange: create and publish a recipe whose ingredient is linked
	// to a pantry product.
	createBody := map[string]any{
		"name":        "Tomato Pasta",
		"description": "Weeknight pasta with fresh tomatoes",
		"categories":  []string{"pasta"},
		"ingredients": []map[string]any{
			{"name": "tomatoes", "quantity": 400, "unit": "g", "linkedProductIds": []string{"tomato-1"}},
		},
	}
	rec := suite.do(http.MethodPost, "/api/v1/recipes", createBody)
	suite.Require().Equal(http.StatusCreated, rec.Code)

	var created inbound.RecipeDTO
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	suite.Equal("draft", created.Status)

	rec = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/publish", created.ID), nil)
	suite.Require().Equal(http.StatusNoContent, rec.Code)

	// Act: discover against a stocked pantry.
	rec = suite.do(http.MethodPost, "/api/v1/discovery/discover", map[string]any{
		"stock": []map[string]any{
			{"productId": "tomato-1", "quantity": 1, "unit": "kg"},
		},
	})

	// Assert
	suite.Require().Equal(http.StatusOK, rec.Code)
	var page inbound.RecipePage
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	suite.Equal(1, page.Total)
	suite.Require().Len(page.Results, 1)
	suite.Equal("Tomato Pasta", page.Results[0].Name)
	suite.Greater(page.Results[0].Score, 0.0)

	// Deleting the recipe empties discovery again.
	rec = suite.do(http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%s", created.ID), nil)
	suite.Require().Equal(http.StatusNoContent, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/discovery/discover", map[string]any{"stock": []map[string]any{}})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	suite.Equal(0, page.Total)
}

func (suite *ServerTestSuite) TestSearchEndpointRequiresQuery() {
	rec := suite.do(http.MethodPost, "/api/v1/discovery/search", map[string]any{
		"stock": []map[string]any{},
	})

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "VALIDATION_FAILED")
}

func (suite *ServerTestSuite) TestUnknownRecipeReturns404() {
	rec := suite.do(http.MethodGet, "/api/v1/recipes/00000000-0000-0000-0000-000000000001", nil)

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Contains(rec.Body.String(), "RECIPE_NOT_FOUND")
}

func (suite *ServerTestSuite) TestMalformedRecipeIDReturns400() {
	rec := suite.do(http.MethodGet, "/api/v1/recipes/not-a-uuid", nil)

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestRateLimitKicksIn() {
	limited := newTestServer(suite.T(), 2)

	status := func() int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		limited.Router().ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(suite.T(), http.StatusOK, status())
	require.Equal(suite.T(), http.StatusOK, status())
	require.Equal(suite.T(), http.StatusTooManyRequests, status())
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

package elastic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/search"
)

func compiled(t *testing.T, query search.Query) map[string]any {
	t.Helper()
	body, err := CompileQuery(query)
	require.NoError(t, err)

	// Round-trip through JSON so assertions see what the backend sees.
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func dig(t *testing.T, m map[string]any, path ...string) any {
	t.Helper()
	var current any = m
	for _, key := range path {
		node, ok := current.(map[string]any)
		require.True(t, ok, "expected object at %q", key)
		current = node[key]
		require.NotNil(t, current, "missing key %q", key)
	}
	return current
}

func TestCompileQuery_FunctionScoreShape(t *testing.T) {
	query := search.Query{
		Functions: []search.FunctionClause{
			{Name: search.FunctionUrgency, Weight: 5, DaysUntilExpiry: map[string]int{"p": 2}},
			{Name: search.FunctionAvailability, Weight: 1.5, Stock: map[string]search.FamilyTotals{"p": {"MASS": 500}}},
		},
		ScoreMode:     search.ScoreModeSum,
		BoostMode:     search.BoostModeMultiply,
		CollapseField: "name.keyword",
		Size:          50,
	}

	body := compiled(t, query)

	assert.Equal(t, "sum", dig(t, body, "query", "function_score", "score_mode"))
	assert.Equal(t, "multiply", dig(t, body, "query", "function_score", "boost_mode"))
	assert.Equal(t, "name.keyword", dig(t, body, "collapse", "field"))
	assert.Equal(t, float64(50), body["size"])

	functions, ok := dig(t, body, "query", "function_score", "functions").([]any)
	require.True(t, ok)
	require.Len(t, functions, 2)

	first := functions[0].(map[string]any)
	assert.Equal(t, float64(5), first["weight"])
	script := dig(t, first, "script_score", "script").(map[string]any)
	assert.Contains(t, script["source"], "daysUntilExpiry")
}

func TestCompileQuery_SearchModeClauses(t *testing.T) {
	query := search.Query{
		Text: &search.TextClause{
			Query:            "tomato soup",
			NameBoost:        3,
			DescriptionBoost: 1,
			IngredientBoost:  2,
		},
		MustNotIngredients: []string{"gluten"},
		MustNotCategories:  []string{"fried"},
	}

	body := compiled(t, query)
	boolQuery := dig(t, body, "query", "bool").(map[string]any)

	must := boolQuery["must"].([]any)
	require.Len(t, must, 1)
	textBool := dig(t, must[0].(map[string]any), "bool").(map[string]any)
	multiMatch := dig(t, textBool["should"].([]any)[0].(map[string]any), "multi_match").(map[string]any)
	assert.Equal(t, "AUTO", multiMatch["fuzziness"])
	assert.ElementsMatch(t, []any{"name^3", "description^1"}, multiMatch["fields"].([]any))

	mustNot := boolQuery["must_not"].([]any)
	require.Len(t, mustNot, 2)
	nested := dig(t, mustNot[0].(map[string]any), "nested").(map[string]any)
	assert.Equal(t, "ingredients", nested["path"])
}

func TestCompileQuery_DiscoverModeMinimumShouldMatch(t *testing.T) {
	query := search.Query{
		PreferredCategories: []string{"pasta", "dinner"},
		MinimumShouldMatch:  1,
	}

	body := compiled(t, query)
	boolQuery := dig(t, body, "query", "bool").(map[string]any)

	assert.Len(t, boolQuery["should"].([]any), 2)
	assert.Equal(t, float64(1), boolQuery["minimum_should_match"])
	assert.Nil(t, boolQuery["must"])
}

func TestCompileQuery_UnknownFunctionFails(t *testing.T) {
	_, err := CompileQuery(search.Query{
		Functions: []search.FunctionClause{{Name: "tastiness", Weight: 1}},
	})

	assert.Error(t, err)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(Config{
		BaseURL: server.URL,
		Index:   "recipes",
		Timeout: 2 * time.Second,
	}, zap.NewNop())
	return client, server.Close
}

func TestSearch_ParsesHitsAndTotal(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/_search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_score": 4.5, "_source": {"id": "r1", "name": "Spaghetti"}},
					{"_score": 1.5, "_source": {"id": "r2", "name": "Tiramisu"}}
				]
			}
		}`))
	})
	defer done()

	result, err := client.Search(context.Background(), search.Query{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "Spaghetti", result.Hits[0].Document.Name)
	assert.Equal(t, 4.5, result.Hits[0].Score)
}

func TestSearch_BadRequestMapsToInvalidQuery(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"parsing_exception"}`, http.StatusBadRequest)
	})
	defer done()

	_, err := client.Search(context.Background(), search.Query{})

	assert.ErrorIs(t, err, search.ErrInvalidQuery)
}

func TestSearch_ServerErrorMapsToUnavailable(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer done()

	_, err := client.Search(context.Background(), search.Query{})

	assert.ErrorIs(t, err, search.ErrBackendUnavailable)
}

func TestSearch_ConnectionFailureMapsToUnavailable(t *testing.T) {
	client := NewClient(Config{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Index:   "recipes",
		Timeout: 200 * time.Millisecond,
	}, zap.NewNop())

	_, err := client.Search(context.Background(), search.Query{})

	assert.ErrorIs(t, err, search.ErrBackendUnavailable)
}

func TestRemove_MissingDocumentIsNotAnError(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		http.Error(w, `{"result":"not_found"}`, http.StatusNotFound)
	})
	defer done()

	assert.NoError(t, client.Remove(context.Background(), "ghost"))
}

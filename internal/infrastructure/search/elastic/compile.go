package elastic

import (
	"fmt"

	"github.com/pantrychef/v1/internal/search"
)

// Painless sources for the scoring functions. They must implement the
// exact same formulas as the client-side evaluators in the scoring
// package; the adapter tests pin the shared constants and parameters.
const (
	availabilityScript = `
double total = params._source.ingredientsCount;
if (total == 0) { return 1.0; }
int available = 0;
for (ing in params._source.ingredients) {
  if (ing.productId == null || ing.productId == '') { continue; }
  if (ing.baseUnitFamily == 'UNKNOWN') { continue; }
  def totals = params.stock.get(ing.productId);
  if (totals == null) { continue; }
  def onHand = totals.get(ing.baseUnitFamily);
  if (onHand != null && onHand >= ing.normalizedQuantity) { available++; }
}
return available / total;
`

	urgencyScript = `
if (params.daysUntilExpiry.isEmpty()) { return 0.0; }
int matched = 0;
double sum = 0;
for (ing in params._source.ingredients) {
  if (ing.productId == null || ing.productId == '') { continue; }
  def days = params.daysUntilExpiry.get(ing.productId);
  if (days == null) { continue; }
  if (days > 0) { sum += 1.0 / (1.0 + days); } else { sum -= 1.0; }
  matched++;
}
if (matched == 0) { return 0.0; }
return sum / matched;
`
)

// CompileQuery translates the backend-agnostic query model into the
// Elasticsearch request body: one bool query wrapped in function_score,
// plus collapse and size.
func CompileQuery(query search.Query) (map[string]any, error) {
	boolQuery := map[string]any{}

	var must []any
	if query.Text != nil {
		must = append(must, textClauses(*query.Text))
	}
	if len(must) > 0 {
		boolQuery["must"] = must
	}

	var should []any
	for _, category := range query.PreferredCategories {
		should = append(should, map[string]any{
			"match": map[string]any{"categories": category},
		})
	}
	if len(should) > 0 {
		boolQuery["should"] = should
		if query.MinimumShouldMatch > 0 && query.Text == nil {
			boolQuery["minimum_should_match"] = query.MinimumShouldMatch
		}
	}

	var mustNot []any
	for _, term := range query.MustNotIngredients {
		mustNot = append(mustNot, map[string]any{
			"nested": map[string]any{
				"path": "ingredients",
				"query": map[string]any{
					"match": map[string]any{"ingredients.name": term},
				},
			},
		})
	}
	for _, term := range query.MustNotCategories {
		mustNot = append(mustNot, map[string]any{
			"match": map[string]any{"categories": term},
		})
	}
	if len(mustNot) > 0 {
		boolQuery["must_not"] = mustNot
	}

	functions, err := functionClauses(query.Functions)
	if err != nil {
		return nil, err
	}

	var wrapped any = map[string]any{"bool": boolQuery}
	if len(functions) > 0 {
		wrapped = map[string]any{
			"function_score": map[string]any{
				"query":      map[string]any{"bool": boolQuery},
				"functions":  functions,
				"score_mode": query.ScoreMode,
				"boost_mode": query.BoostMode,
			},
		}
	}

	body := map[string]any{"query": wrapped}
	if query.CollapseField != "" {
		body["collapse"] = map[string]any{"field": query.CollapseField}
	}
	if query.Size > 0 {
		body["size"] = query.Size
	}

	return body, nil
}

// textClauses builds the fuzzy multi-field relevance clause. The flat
// fields go through one multi_match; ingredient names need a nested
// sub-query with their own boost.
func textClauses(clause search.TextClause) map[string]any {
	return map[string]any{
		"bool": map[string]any{
			"should": []any{
				map[string]any{
					"multi_match": map[string]any{
						"query":     clause.Query,
						"fuzziness": "AUTO",
						"fields": []string{
							fmt.Sprintf("name^%g", clause.NameBoost),
							fmt.Sprintf("description^%g", clause.DescriptionBoost),
						},
					},
				},
				map[string]any{
					"nested": map[string]any{
						"path": "ingredients",
						"query": map[string]any{
							"match": map[string]any{
								"ingredients.name": map[string]any{
									"query":     clause.Query,
									"fuzziness": "AUTO",
									"boost":     clause.IngredientBoost,
								},
							},
						},
					},
				},
			},
			"minimum_should_match": 1,
		},
	}
}

func functionClauses(clauses []search.FunctionClause) ([]any, error) {
	functions := make([]any, 0, len(clauses))
	for _, clause := range clauses {
		var source string
		params := map[string]any{}

		switch clause.Name {
		case search.FunctionAvailability:
			source = availabilityScript
			params["stock"] = clause.Stock
		case search.FunctionUrgency:
			source = urgencyScript
			params["daysUntilExpiry"] = clause.DaysUntilExpiry
		default:
			return nil, fmt.Errorf("no script for scoring function %q", clause.Name)
		}

		functions = append(functions, map[string]any{
			"weight": clause.Weight,
			"script_score": map[string]any{
				"script": map[string]any{
					"source": source,
					"params": params,
				},
			},
		})
	}
	return functions, nil
}

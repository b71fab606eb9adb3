// Package filters applies the allow-listed recipe filter schema. Client
// filter keys are never forwarded to the storage layer directly; each key
// must appear in the schema with an explicit comparison kind.
package filters

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type comparison int

const (
	icontains comparison = iota
	exact
	exactAggregate
)

var recipeFilterSchema = map[string]struct {
	expr string
	kind comparison
}{
	"title":             {"recipes.title", icontains},
	"description":       {"recipes.description", icontains},
	"ingredients":       {"recipes.ingredients", icontains},
	"preparation_steps": {"recipes.preparation_steps", icontains},
	"cooking_time":      {"recipes.cooking_time", exact},
	"serving_size":      {"recipes.serving_size", exact},
	"category_id":       {"recipes.category_id", exact},
	"avg_rating":        {"AVG(reviews.rating)", exactAggregate},
}

// ApplyRecipeFilters narrows query with the provided filter map, combining
// all filters as a conjunction. The query must already join reviews and
// group by recipe for the avg_rating aggregate to resolve.
func ApplyRecipeFilters(query *gorm.DB, filterMap map[string]any) (*gorm.DB, error) {
	for field, value := range filterMap {
		schema, ok := recipeFilterSchema[field]

		if !ok {
			return nil, fmt.Errorf("unsupported filter field: %s", field)
		}

		switch schema.kind {
		case icontains:
			text, ok := value.(string)

			if !ok {
				return nil, fmt.Errorf("filter %s expects a string value", field)
			}

			query = query.Where("LOWER("+schema.expr+") LIKE ?", "%"+strings.ToLower(text)+"%")
		case exact:
			query = query.Where(schema.expr+" = ?", value)
		case exactAggregate:
			query = query.Having(schema.expr+" = ?", value)
		}
	}

	return query, nil
}

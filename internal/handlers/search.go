package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/recipe-radar/recipe-radar/db"
	"github.com/recipe-radar/recipe-radar/internal/models"
	"github.com/recipe-radar/recipe-radar/internal/types"
)

// Search matches the query as a case-insensitive substring across recipe
// title, description, ingredients, the stringified cooking time and serving
// size, and the category name. Grouping by recipe deduplicates multi-field
// matches.
func Search(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Param("query"))

	if query == "" {
		ctx.JSON(http.StatusBadRequest, types.NewFailure("Please enter a search query"))
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"

	var results []RecipeWithRating

	err := db.DB.Model(&models.Recipe{}).
		Select("recipes.*, AVG(reviews.rating) AS avg_rating").
		Joins("LEFT JOIN reviews ON reviews.recipe_id = recipes.id").
		Joins("LEFT JOIN categories ON categories.id = recipes.category_id").
		Where(
			`LOWER(recipes.title) LIKE ?
				OR LOWER(recipes.description) LIKE ?
				OR LOWER(recipes.ingredients) LIKE ?
				OR CAST(recipes.cooking_time AS TEXT) LIKE ?
				OR CAST(recipes.serving_size AS TEXT) LIKE ?
				OR LOWER(categories.name) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern,
		).
		Group("recipes.id").
		Find(&results).Error

	if err != nil {
		slog.Error("search failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if len(results) == 0 {
		ctx.JSON(http.StatusNotFound, types.NewFailure("No results found"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Search results", gin.H{
		"search_results": results,
	}))
}

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipe-radar/recipe-radar/db"
	"github.com/recipe-radar/recipe-radar/internal/filters"
	"github.com/recipe-radar/recipe-radar/internal/models"
	"github.com/recipe-radar/recipe-radar/internal/types"
	"github.com/recipe-radar/recipe-radar/internal/utils"
	"github.com/recipe-radar/recipe-radar/internal/validate"
	"gorm.io/gorm"
)

type CreateRecipeRequest struct {
	Title            string `json:"title" binding:"required,max=100"`
	Description      string `json:"description" binding:"required"`
	Ingredients      string `json:"ingredients" binding:"required"`
	PreparationSteps string `json:"preparation_steps" binding:"required"`
	CookingTime      *int   `json:"cooking_time" binding:"required,gte=0"`
	ServingSize      *int   `json:"serving_size" binding:"required,gte=1"`
	CategoryID       uint   `json:"category_id" binding:"required"`
}

type ListRecipesRequest struct {
	Filters map[string]any `json:"filters"`
}

type UpdateRecipeRequest struct {
	Title            *string `json:"title" binding:"omitempty,max=100"`
	Description      *string `json:"description"`
	Ingredients      *string `json:"ingredients"`
	PreparationSteps *string `json:"preparation_steps"`
	CookingTime      *int    `json:"cooking_time" binding:"omitempty,gte=0"`
	ServingSize      *int    `json:"serving_size" binding:"omitempty,gte=1"`
	CategoryID       *uint   `json:"category_id"`
}

// RecipeWithRating carries the derived review average alongside the stored
// columns. A recipe with no reviews serializes avg_rating as null, never 0.
type RecipeWithRating struct {
	models.Recipe `gorm:"embedded"`
	AvgRating     *float64 `json:"avg_rating"`
}

// ReviewWithAuthor is a review annotated with the reviewer's name for
// display; the names are joined at read time, not stored.
type ReviewWithAuthor struct {
	models.Review `gorm:"embedded"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

// recipeAggregateQuery is the base listing query: recipes with the review
// average computed database-side.
func recipeAggregateQuery() *gorm.DB {
	return db.DB.Model(&models.Recipe{}).
		Select("recipes.*, AVG(reviews.rating) AS avg_rating").
		Joins("LEFT JOIN reviews ON reviews.recipe_id = recipes.id").
		Group("recipes.id")
}

func categoryExists(id uint) (bool, error) {
	var count int64

	err := db.DB.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error

	return count > 0, err
}

func CreateRecipe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("User not authenticated"))
		return
	}

	var req CreateRecipeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	exists, err := categoryExists(req.CategoryID)

	if err != nil {
		slog.Error("failed to check category", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if !exists {
		ctx.JSON(http.StatusBadRequest, types.NewFailure("Category does not exist."))
		return
	}

	categoryID := req.CategoryID
	recipe := models.Recipe{
		UserID:           currentUser.ID,
		CategoryID:       &categoryID,
		Title:            req.Title,
		Description:      req.Description,
		Ingredients:      req.Ingredients,
		PreparationSteps: req.PreparationSteps,
		CookingTime:      *req.CookingTime,
		ServingSize:      *req.ServingSize,
	}

	if err := db.DB.Create(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, types.NewFailure("Recipe with this title already exists."))
			return
		}

		slog.Error("failed to create recipe", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.NewSuccess("Recipe Created Successfully", RecipeWithRating{Recipe: recipe}))
}

func ListRecipes(ctx *gin.Context) {
	var req ListRecipesRequest

	// An absent body means an unfiltered listing.
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	query := recipeAggregateQuery()

	query, err := filters.ApplyRecipeFilters(query, req.Filters)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(err.Error()))
		return
	}

	// Reused below as both a count subquery and the page query.
	query = query.Session(&gorm.Session{})

	// The grouped aggregate has to be counted as a subquery; a bare
	// Count would collapse the GROUP BY.
	var count int64

	if err := db.DB.Table("(?) AS aggregated", query).Count(&count).Error; err != nil {
		slog.Error("failed to count recipes", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	page := paginationFromRequest(ctx)

	if count > 0 && int64(page.offset()) >= count {
		ctx.JSON(http.StatusNotFound, types.NewFailure("Invalid page."))
		return
	}

	var recipes []RecipeWithRating

	err = query.Order("recipes.id").
		Offset(page.offset()).
		Limit(page.PageSize).
		Find(&recipes).Error

	if err != nil {
		slog.Error("failed to list recipes", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if recipes == nil {
		recipes = []RecipeWithRating{}
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Recipes fetched successfully", paginatedData(count, page, recipes)))
}

func GetRecipe(ctx *gin.Context) {
	var recipes []RecipeWithRating

	err := recipeAggregateQuery().
		Where("recipes.id = ?", ctx.Param("id")).
		Find(&recipes).Error

	if err != nil {
		slog.Error("failed to fetch recipe", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if len(recipes) == 0 {
		ctx.JSON(http.StatusNotFound, types.NewFailure("Recipe not found"))
		return
	}

	var reviews []ReviewWithAuthor

	err = db.DB.Model(&models.Review{}).
		Select("reviews.*, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.recipe_id = ?", ctx.Param("id")).
		Find(&reviews).Error

	if err != nil {
		slog.Error("failed to fetch reviews", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if reviews == nil {
		reviews = []ReviewWithAuthor{}
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Recipe Retrieved Successfully", gin.H{
		"recipe":  recipes[0],
		"reviews": reviews,
	}))
}

func UpdateRecipe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("User not authenticated"))
		return
	}

	var recipe models.Recipe

	if err := db.DB.First(&recipe, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.NewFailure("Recipe not found"))
			return
		}

		slog.Error("failed to fetch recipe", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if recipe.UserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, types.NewFailure("You are not authorized to perform this action on this recipe"))
		return
	}

	var req UpdateRecipeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	if req.CategoryID != nil {
		exists, err := categoryExists(*req.CategoryID)

		if err != nil {
			slog.Error("failed to check category", "error", err)
			ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
			return
		}

		if !exists {
			ctx.JSON(http.StatusBadRequest, types.NewFailure("Category does not exist."))
			return
		}

		recipe.CategoryID = req.CategoryID
	}

	// Partial replacement: only the provided fields overwrite.
	if req.Title != nil {
		recipe.Title = *req.Title
	}

	if req.Description != nil {
		recipe.Description = *req.Description
	}

	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}

	if req.PreparationSteps != nil {
		recipe.PreparationSteps = *req.PreparationSteps
	}

	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}

	if req.ServingSize != nil {
		recipe.ServingSize = *req.ServingSize
	}

	if err := db.DB.Save(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, types.NewFailure("Recipe with this title already exists."))
			return
		}

		slog.Error("failed to update recipe", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Recipe Updated Successfully", recipe))
}

func DeleteRecipe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("User not authenticated"))
		return
	}

	var recipe models.Recipe

	if err := db.DB.First(&recipe, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.NewFailure("Recipe not found"))
			return
		}

		slog.Error("failed to fetch recipe", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if recipe.UserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, types.NewFailure("You are not authorized to perform this action on this recipe"))
		return
	}

	// A recipe owns its reviews; take them along in one transaction.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})

	if err != nil {
		slog.Error("failed to delete recipe", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Recipe Deleted Successfully", nil))
}

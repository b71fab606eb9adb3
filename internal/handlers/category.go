package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipe-radar/recipe-radar/db"
	"github.com/recipe-radar/recipe-radar/internal/models"
	"github.com/recipe-radar/recipe-radar/internal/types"
	"github.com/recipe-radar/recipe-radar/internal/utils"
	"github.com/recipe-radar/recipe-radar/internal/validate"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description"`
}

// requireSuperuser enforces the superuser-only write policy on categories.
// It writes the failure response itself and reports whether the caller may
// proceed.
func requireSuperuser(ctx *gin.Context, message string) bool {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("User not authenticated"))
		return false
	}

	if !currentUser.IsSuperuser {
		ctx.JSON(http.StatusForbidden, types.NewFailure(message))
		return false
	}

	return true
}

func ListCategories(ctx *gin.Context) {
	var categories []models.Category

	if err := db.DB.Find(&categories).Error; err != nil {
		slog.Error("failed to list categories", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Categories fetched successfully", categories))
}

func CreateCategory(ctx *gin.Context) {
	if !requireSuperuser(ctx, "Only superusers can create categories.") {
		return
	}

	var req CreateCategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, types.NewFailure("Category with this name already exists."))
			return
		}

		slog.Error("failed to create category", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.NewSuccess("Category Created Successfully", category))
}

func GetCategory(ctx *gin.Context) {
	var category models.Category

	if err := db.DB.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.NewFailure("Category not found"))
			return
		}

		slog.Error("failed to fetch category", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Category Retrieved Successfully", category))
}

func UpdateCategory(ctx *gin.Context) {
	if !requireSuperuser(ctx, "Only superusers can update or delete categories.") {
		return
	}

	var category models.Category

	if err := db.DB.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.NewFailure("Category not found"))
			return
		}

		slog.Error("failed to fetch category", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	var req UpdateCategoryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	// Partial replacement: only the provided fields overwrite.
	if req.Name != nil {
		category.Name = *req.Name
	}

	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := db.DB.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, types.NewFailure("Category with this name already exists."))
			return
		}

		slog.Error("failed to update category", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Category Updated Successfully", category))
}

func DeleteCategory(ctx *gin.Context) {
	if !requireSuperuser(ctx, "Only superusers can update or delete categories.") {
		return
	}

	var category models.Category

	if err := db.DB.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.NewFailure("Category not found"))
			return
		}

		slog.Error("failed to fetch category", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	// Recipes survive their category: null the link, then delete the row.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("category_id = ?", category.ID).Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})

	if err != nil {
		slog.Error("failed to delete category", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Category Deleted Successfully", nil))
}

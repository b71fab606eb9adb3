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

type CreateReviewRequest struct {
	RecipeID uint   `json:"recipe_id" binding:"required"`
	Rating   *int   `json:"rating" binding:"required,gte=1,lte=5"`
	Comment  string `json:"comment" binding:"required"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment"`
}

// ReviewDetail is the read shape: the review plus its recipe title and the
// reviewer's name.
type ReviewDetail struct {
	models.Review `gorm:"embedded"`
	RecipeTitle   string `json:"recipe_title"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

func CreateReview(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("User not authenticated"))
		return
	}

	var req CreateReviewRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	var recipe models.Recipe

	if err := db.DB.First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, types.NewFailure("Recipe does not exist."))
			return
		}

		slog.Error("failed to fetch recipe", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	// Authorship comes from the authenticated caller, never the payload.
	review := models.Review{
		UserID:   currentUser.ID,
		RecipeID: recipe.ID,
		Rating:   *req.Rating,
		Comment:  req.Comment,
	}

	if err := db.DB.Create(&review).Error; err != nil {
		slog.Error("failed to create review", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.NewSuccess("Review Created Successfully", review))
}

func GetReview(ctx *gin.Context) {
	var reviews []ReviewDetail

	err := db.DB.Model(&models.Review{}).
		Select("reviews.*, recipes.title AS recipe_title, users.first_name, users.last_name").
		Joins("JOIN recipes ON recipes.id = reviews.recipe_id").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.id = ?", ctx.Param("id")).
		Find(&reviews).Error

	if err != nil {
		slog.Error("failed to fetch review", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if len(reviews) == 0 {
		ctx.JSON(http.StatusNotFound, types.NewFailure("Review not found"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Review Retrieved Successfully", reviews[0]))
}

func UpdateReview(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("User not authenticated"))
		return
	}

	var review models.Review

	if err := db.DB.First(&review, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.NewFailure("Review not found"))
			return
		}

		slog.Error("failed to fetch review", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if review.UserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, types.NewFailure("You do not have permission to edit this review."))
		return
	}

	var req UpdateReviewRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := db.DB.Save(&review).Error; err != nil {
		slog.Error("failed to update review", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Review Updated Successfully", review))
}

func DeleteReview(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("User not authenticated"))
		return
	}

	var review models.Review

	if err := db.DB.First(&review, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, types.NewFailure("Review not found"))
			return
		}

		slog.Error("failed to fetch review", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if review.UserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, types.NewFailure("You do not have permission to delete this review."))
		return
	}

	if err := db.DB.Delete(&review).Error; err != nil {
		slog.Error("failed to delete review", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Review Deleted Successfully", nil))
}

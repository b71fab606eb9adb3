package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/recipe-radar/recipe-radar/db"
	"github.com/recipe-radar/recipe-radar/internal/auth"
	"github.com/recipe-radar/recipe-radar/internal/models"
	"github.com/recipe-radar/recipe-radar/internal/types"
	"github.com/recipe-radar/recipe-radar/internal/validate"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=30"`
	LastName    string `json:"last_name" binding:"required,max=30"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required,max=15"`
	Password    string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userProfile(user models.User) types.UserProfile {
	return types.UserProfile{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		DateJoined:  user.CreatedAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func Signup(ctx *gin.Context) {
	var req SignupRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var messages []string

	if err := validate.Email(db.DB, req.Email); err != nil {
		messages = append(messages, err.Error())
	}

	if err := validate.PhoneNumber(db.DB, req.PhoneNumber); err != nil {
		messages = append(messages, err.Error())
	}

	if err := validate.Password(req.Password); err != nil {
		messages = append(messages, err.Error())
	}

	if len(messages) > 0 {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(messages))
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		slog.Error("failed to hash password", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	user := models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(passwordHash),
		IsActive:     true,
	}

	// Single transaction so a uniqueness race lost at the storage layer
	// leaves no partial user row.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Conflict path echoes the submitted payload back.
			response := types.NewFailure(err.Error())
			response.Data = req
			ctx.JSON(http.StatusBadRequest, response)
			return
		}

		slog.Error("failed to create user", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusCreated, types.NewSuccess("User Created Successfully", userProfile(user)))
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.NewFailure(validate.BindingErrors(err)))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, types.NewFailure("Invalid credentials"))
			return
		}

		slog.Error("failed to fetch user", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("Invalid credentials"))
		return
	}

	if !user.IsActive {
		ctx.JSON(http.StatusUnauthorized, types.NewFailure("Invalid credentials"))
		return
	}

	tokens, err := auth.GenerateTokenPair(user.ID, user.Email)

	if err != nil {
		slog.Error("failed to generate tokens", "error", err)
		ctx.JSON(http.StatusInternalServerError, types.NewFailure("Internal server error"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewSuccess("Login Successful", gin.H{
		"user_data": userProfile(user),
		"access":    tokens.Access,
		"refresh":   tokens.Refresh,
	}))
}

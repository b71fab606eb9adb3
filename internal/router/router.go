package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/recipe-radar/recipe-radar/internal/handlers"
	"github.com/recipe-radar/recipe-radar/internal/middleware"
	"github.com/recipe-radar/recipe-radar/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	r.POST("/signup", handlers.Signup)
	r.POST("/login", handlers.Login)

	r.POST("/recipe", middleware.RequireAuth(), handlers.CreateRecipe)
	r.POST("/recipes", middleware.RequireAuth(), handlers.ListRecipes)
	r.GET("/recipe/:id", middleware.RequireAuth(), handlers.GetRecipe)
	r.PUT("/recipe/:id", middleware.RequireAuth(), handlers.UpdateRecipe)
	r.DELETE("/recipe/:id", middleware.RequireAuth(), handlers.DeleteRecipe)

	r.POST("/reviews", middleware.RequireAuth(), handlers.CreateReview)
	r.GET("/reviews/:id", handlers.GetReview)
	r.PUT("/reviews/:id", middleware.RequireAuth(), handlers.UpdateReview)
	r.DELETE("/reviews/:id", middleware.RequireAuth(), handlers.DeleteReview)

	r.GET("/categories", handlers.ListCategories)
	r.POST("/categories", middleware.RequireAuth(), handlers.CreateCategory)
	r.GET("/categories/:id", handlers.GetCategory)
	r.PUT("/categories/:id", middleware.RequireAuth(), handlers.UpdateCategory)
	r.DELETE("/categories/:id", middleware.RequireAuth(), handlers.DeleteCategory)

	r.GET("/search/:query", middleware.RequireAuth(), handlers.Search)

	return r
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/recipe-radar/recipe-radar/db"
	"github.com/recipe-radar/recipe-radar/internal/auth"
	"github.com/recipe-radar/recipe-radar/internal/models"
	"github.com/recipe-radar/recipe-radar/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Sup3r$ecret"

// setupServer wires the full router against a fresh in-memory database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("init jwt secret: %v", err)
	}

	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	db.DB = gdb

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return router.NewRouter()
}

func createUser(t *testing.T, email, phone string, superuser bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	pair, err := auth.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}

	return pair.Access
}

func createCategory(t *testing.T, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name, Description: name + " dishes"}

	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	return category
}

func createRecipe(t *testing.T, owner models.User, category *models.Category, title string, cookingTime, servingSize int) models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		UserID:           owner.ID,
		Title:            title,
		Description:      "A " + title + " everyone loves",
		Ingredients:      "water, salt",
		PreparationSteps: "Mix and cook.",
		CookingTime:      cookingTime,
		ServingSize:      servingSize,
	}

	if category != nil {
		recipe.CategoryID = &category.ID
	}

	if err := db.DB.Create(&recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	return recipe
}

func createReview(t *testing.T, author models.User, recipe models.Recipe, rating int) models.Review {
	t.Helper()

	review := models.Review{
		UserID:   author.ID,
		RecipeID: recipe.ID,
		Rating:   rating,
		Comment:  "Tried it twice.",
	}

	if err := db.DB.Create(&review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}

	return review
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}

	return body
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	data, ok := decode(t, w)["data"].(map[string]any)
	if !ok {
		t.Fatalf("response data is not an object: %s", w.Body.String())
	}

	return data
}

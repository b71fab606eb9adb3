package handlers_test

import (
	"net/http"
	"testing"

	"github.com/recipe-radar/recipe-radar/db"
	"github.com/recipe-radar/recipe-radar/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func validSignupPayload() map[string]any {
	return map[string]any{
		"first_name":   "Jamie",
		"last_name":    "Rivera",
		"email":        "jamie@example.com",
		"phone_number": "+12025550147",
		"password":     "Password1!",
	}
}

func TestSignupSuccess(t *testing.T) {
	r := setupServer(t)

	w := doRequest(t, r, http.MethodPost, "/signup", "", validSignupPayload())

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)

	if body["status"] != "success" {
		t.Errorf("expected success status, got %v", body["status"])
	}

	var user models.User

	if err := db.DB.Where("email = ?", "jamie@example.com").First(&user).Error; err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}

	if user.PasswordHash == "Password1!" {
		t.Error("password was stored in plaintext")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Password1!")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if user.IsSuperuser || user.IsStaff {
		t.Error("signup must not create privileged users")
	}
}

func TestSignupValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"short password", "password", "Ab1!"},
		{"no uppercase", "password", "password1!"},
		{"no lowercase", "password", "PASSWORD1!"},
		{"no digit", "password", "Password!!"},
		{"no special character", "password", "Password11"},
		{"bad email", "email", "not-an-email"},
		{"bad phone", "phone_number", "abc123"},
		{"phone too short", "phone_number", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupServer(t)

			payload := validSignupPayload()
			payload[tt.field] = tt.value

			w := doRequest(t, r, http.MethodPost, "/signup", "", payload)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			body := decode(t, w)

			if body["status"] != "failed" {
				t.Errorf("expected failed status, got %v", body["status"])
			}

			if _, ok := body["message"].([]any); !ok {
				t.Errorf("expected a list of field errors, got %v", body["message"])
			}

			var count int64
			db.DB.Model(&models.User{}).Count(&count)

			if count != 0 {
				t.Errorf("expected no persisted users, found %d", count)
			}
		})
	}
}

func TestSignupMissingFields(t *testing.T) {
	r := setupServer(t)

	w := doRequest(t, r, http.MethodPost, "/signup", "", map[string]any{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	messages, ok := decode(t, w)["message"].([]any)
	if !ok {
		t.Fatal("expected a list of field errors")
	}

	if len(messages) != 5 {
		t.Errorf("expected one message per missing field, got %v", messages)
	}
}

func TestSignupDuplicateEmailOrPhone(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"duplicate email", "email", "taken@example.com"},
		{"duplicate phone", "phone_number", "+12025550199"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupServer(t)
			createUser(t, "taken@example.com", "+12025550199", false)

			payload := validSignupPayload()
			payload[tt.field] = tt.value

			w := doRequest(t, r, http.MethodPost, "/signup", "", payload)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var count int64
			db.DB.Model(&models.User{}).Count(&count)

			if count != 1 {
				t.Errorf("expected 1 user after rejected signup, found %d", count)
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	r := setupServer(t)
	user := createUser(t, "jamie@example.com", "+12025550147", false)

	w := doRequest(t, r, http.MethodPost, "/login", "", map[string]any{
		"email":    user.Email,
		"password": testPassword,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := dataField(t, w)

	if access, _ := data["access"].(string); access == "" {
		t.Error("expected an access token")
	}

	if refresh, _ := data["refresh"].(string); refresh == "" {
		t.Error("expected a refresh token")
	}

	userData, ok := data["user_data"].(map[string]any)
	if !ok {
		t.Fatal("expected user_data in response")
	}

	if userData["email"] != user.Email {
		t.Errorf("expected profile email %q, got %v", user.Email, userData["email"])
	}

	if _, exposed := userData["password"]; exposed {
		t.Error("profile must not expose a password field")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := setupServer(t)
	createUser(t, "jamie@example.com", "+12025550147", false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jamie@example.com", "Wrong-Password1"},
		{"unknown email", "nobody@example.com", testPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/login", "", map[string]any{
				"email":    tt.email,
				"password": tt.password,
			})

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
			}

			body := decode(t, w)

			if body["message"] != "Invalid credentials" {
				t.Errorf("expected invalid credentials message, got %v", body["message"])
			}
		})
	}
}

func TestLoginInactiveUser(t *testing.T) {
	r := setupServer(t)
	user := createUser(t, "jamie@example.com", "+12025550147", false)

	db.DB.Model(&user).Update("is_active", false)

	w := doRequest(t, r, http.MethodPost, "/login", "", map[string]any{
		"email":    user.Email,
		"password": testPassword,
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", w.Code)
	}
}

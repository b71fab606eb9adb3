// Package validate holds the field-level business validators used by signup
// and the translator that flattens binding errors into per-field messages.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/recipe-radar/recipe-radar/internal/models"
	"gorm.io/gorm"
)

const minPasswordLength = 8

const passwordSpecials = "!@#$%^&*()-_=+{}[]|;:,.<>?`~"

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// Password checks the five strength rules: length, upper, lower, digit,
// special character.
func Password(value string) error {
	if len(value) < minPasswordLength {
		return fmt.Errorf("Password must be at least %d characters long.", minPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool

	for _, char := range value {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}

		if strings.ContainsRune(passwordSpecials, char) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("Password must contain at least one uppercase letter.")
	}

	if !hasLower {
		return errors.New("Password must contain at least one lowercase letter.")
	}

	if !hasDigit {
		return errors.New("Password must contain at least one digit.")
	}

	if !hasSpecial {
		return errors.New("Password must contain at least one special character.")
	}

	return nil
}

// Email checks format, then uniqueness against existing users.
func Email(db *gorm.DB, value string) error {
	if !emailPattern.MatchString(value) {
		return errors.New("Invalid email format")
	}

	var count int64

	if err := db.Model(&models.User{}).Where("email = ?", value).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return errors.New("User with this email already exists.")
	}

	return nil
}

// PhoneNumber checks format, then uniqueness against existing users.
func PhoneNumber(db *gorm.DB, value string) error {
	if !phonePattern.MatchString(value) {
		return errors.New("Invalid phone number format")
	}

	var count int64

	if err := db.Model(&models.User{}).Where("phone_number = ?", value).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return errors.New("User with this phone number already exists.")
	}

	return nil
}

// BindingErrors flattens a gin binding failure into a list of messages, one
// per field (first error wins when a field fails several tags).
func BindingErrors(err error) []string {
	var fieldErrors validator.ValidationErrors

	if !errors.As(err, &fieldErrors) {
		return []string{"Invalid request body"}
	}

	seen := make(map[string]bool)
	messages := make([]string, 0, len(fieldErrors))

	for _, fieldError := range fieldErrors {
		if seen[fieldError.Field()] {
			continue
		}
		seen[fieldError.Field()] = true
		messages = append(messages, fieldMessage(fieldError))
	}

	return messages
}

func fieldMessage(fieldError validator.FieldError) string {
	field := snakeCase(fieldError.Field())

	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return "Invalid email format"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", field, fieldError.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", field, fieldError.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", field, fieldError.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s.", field, fieldError.Param())
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

func snakeCase(name string) string {
	var b strings.Builder

	for i, char := range name {
		if unicode.IsUpper(char) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(char))
	}

	return b.String()
}

package db

import (
	"log/slog"
	"os"

	"github.com/recipe-radar/recipe-radar/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError so unique-constraint violations surface as
	// gorm.ErrDuplicatedKey instead of driver-specific errors.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Review{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdmin creates the bootstrap superuser from ADMIN_EMAIL/ADMIN_PASSWORD.
// Signup only ever creates regular users, so the first superuser has to come
// from the environment.
func SeedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" || password == "" {
		return nil
	}

	var count int64

	if err := DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	phone := os.Getenv("ADMIN_PHONE")

	if phone == "" {
		phone = "+10000000000"
	}

	admin := models.User{
		Email:        email,
		FirstName:    "Admin",
		LastName:     "User",
		PhoneNumber:  phone,
		PasswordHash: string(passwordHash),
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("seeded admin user", "email", email)

	return nil
}

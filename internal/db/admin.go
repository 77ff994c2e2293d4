package db

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/models"
	"gorm.io/gorm"
)

// CreateDefaultAdmin creates a default ADMIN user if ADMIN_USERNAME and
// ADMIN_PASSWORD are set and no users exist in the database
func CreateDefaultAdmin(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	firstName := os.Getenv("ADMIN_FIRST_NAME")

	// If no admin credentials provided, skip
	if username == "" || password == "" {
		slog.Info("No ADMIN_USERNAME or ADMIN_PASSWORD set, skipping default admin creation")
		return nil
	}

	if firstName == "" {
		firstName = "Admin"
	}

	// Check if any users exist
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	// If users already exist, skip
	if count > 0 {
		slog.Info("Users already exist, skipping default admin creation")
		return nil
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("admin role not found, run migrations first: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FirstName:    firstName,
		Username:     username,
		PasswordHash: hash,
		RoleID:       role.ID,
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("Default admin user created", "username", username)
	return nil
}

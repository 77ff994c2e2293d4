package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventum-io/eventum/internal/models"
	"gorm.io/gorm"
)

// UserStore persists User entities.
type UserStore struct {
	db *gorm.DB
}

// Create inserts a new user. The username unique index maps to
// ErrDuplicateUsername.
func (s *UserStore) Create(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		slog.Error("Failed to create user", "username", user.Username, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns the user with its role preloaded, or ErrNotFound.
func (s *UserStore) GetByID(id uint) (models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		slog.Error("Failed to read user", "id", id, "error", err)
		return models.User{}, fmt.Errorf("failed to read user: %w", err)
	}
	return user, nil
}

// GetByUsername returns the user with its role preloaded, or ErrNotFound.
func (s *UserStore) GetByUsername(username string) (models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		slog.Error("Failed to read user", "username", username, "error", err)
		return models.User{}, fmt.Errorf("failed to read user: %w", err)
	}
	return user, nil
}

// Update saves changed user fields (name, password hash).
func (s *UserStore) Update(user *models.User) error {
	if err := s.db.Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		slog.Error("Failed to update user", "id", user.ID, "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// List returns all users with roles preloaded.
func (s *UserStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Role").Order("id").Find(&users).Error; err != nil {
		slog.Error("Failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete removes a user and the user's memberships in one transaction.
// Returns false when the user did not exist or the delete failed.
func (s *UserStore) Delete(id uint) bool {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.EventMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		slog.Error("Failed to delete user", "id", id, "error", err)
		return false
	}
	return true
}

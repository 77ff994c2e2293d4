package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventum-io/eventum/internal/models"
	"gorm.io/gorm"
)

// RoleStore persists Role entities.
type RoleStore struct {
	db *gorm.DB
}

// GetByName returns the role with the given name, or ErrNotFound.
func (s *RoleStore) GetByName(name models.RoleName) (models.Role, error) {
	var role models.Role
	if err := s.db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Role{}, ErrNotFound
		}
		slog.Error("Failed to read role", "name", name, "error", err)
		return models.Role{}, fmt.Errorf("failed to read role: %w", err)
	}
	return role, nil
}

// GetOrCreate returns the role with the given name, creating it lazily the
// first time the name is requested. Only the closed set of role names is
// accepted.
func (s *RoleStore) GetOrCreate(name models.RoleName) (models.Role, error) {
	if !name.Valid() {
		return models.Role{}, fmt.Errorf("unknown role name: %s", name)
	}

	role, err := s.GetByName(name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Role{}, err
	}

	role = models.Role{Name: name}
	if err := s.db.Create(&role).Error; err != nil {
		// Lost a race with a concurrent create; fetch the winner.
		if isUniqueViolation(err) {
			return s.GetByName(name)
		}
		slog.Error("Failed to create role", "name", name, "error", err)
		return models.Role{}, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// List returns all roles.
func (s *RoleStore) List() ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Order("id").Find(&roles).Error; err != nil {
		slog.Error("Failed to list roles", "error", err)
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Delete removes a role by id. Returns false when nothing was deleted.
func (s *RoleStore) Delete(id uint) bool {
	result := s.db.Delete(&models.Role{}, id)
	if result.Error != nil {
		slog.Error("Failed to delete role", "id", id, "error", result.Error)
		return false
	}
	return result.RowsAffected > 0
}

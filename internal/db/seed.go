package db

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/models"
	"gorm.io/gorm"
)

// seedTimeLayout matches the timestamps used in fixture files.
const seedTimeLayout = "2006-01-02 15:04:05"

// SeedFile is the shape of a JSON fixture file.
type SeedFile struct {
	Users  []SeedUser  `json:"users"`
	Events []SeedEvent `json:"events"`
}

// SeedUser describes one user fixture. The password is plaintext in the
// fixture and hashed on insert.
type SeedUser struct {
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// SeedEvent describes one event fixture.
type SeedEvent struct {
	Name       string `json:"name"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

// SeedFromFile loads a JSON fixture file and inserts its users and events.
// Existing usernames and event names are skipped, so seeding is idempotent.
func SeedFromFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, su := range seed.Users {
			if err := seedUser(tx, su); err != nil {
				return err
			}
		}
		for _, se := range seed.Events {
			if err := seedEvent(tx, se); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedUser(tx *gorm.DB, su SeedUser) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", su.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roleName := models.RoleName(su.Role)
	if !roleName.Valid() {
		return fmt.Errorf("unknown role %q for user %q", su.Role, su.Username)
	}

	var role models.Role
	if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
		return fmt.Errorf("role %s not found, run migrations first: %w", roleName, err)
	}

	hash, err := auth.HashPassword(su.Password)
	if err != nil {
		return err
	}

	user := models.User{
		FirstName:    su.FirstName,
		Username:     su.Username,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := tx.Create(&user).Error; err != nil {
		return err
	}
	slog.Info("Seeded user", "username", su.Username, "role", roleName)
	return nil
}

func seedEvent(tx *gorm.DB, se SeedEvent) error {
	var count int64
	if err := tx.Model(&models.Event{}).Where("name = ?", se.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	startedAt, err := time.Parse(seedTimeLayout, se.StartedAt)
	if err != nil {
		return fmt.Errorf("event %q: bad started_at: %w", se.Name, err)
	}
	finishedAt, err := time.Parse(seedTimeLayout, se.FinishedAt)
	if err != nil {
		return fmt.Errorf("event %q: bad finished_at: %w", se.Name, err)
	}

	event := models.Event{
		Name:       se.Name,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if err := tx.Create(&event).Error; err != nil {
		return err
	}
	slog.Info("Seeded event", "name", se.Name)
	return nil
}

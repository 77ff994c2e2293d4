package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seeds.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

const seedFixture = `{
  "users": [
    {"first_name": "Boss", "username": "boss", "password": "pw1", "role": "ADMIN"},
    {"first_name": "Alice", "username": "alice", "password": "pw2", "role": "USER"}
  ],
  "events": [
    {"name": "meetup", "started_at": "2026-03-01 10:00:00", "finished_at": "2026-03-01 12:00:00"}
  ]
}`

func TestMigrateSeedsDefaultRoles(t *testing.T) {
	db := testDB(t)

	var roles []models.Role
	if err := db.Order("id").Find(&roles).Error; err != nil {
		t.Fatalf("find roles: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 default roles, got %d", len(roles))
	}
	if roles[0].Name != models.RoleAdmin || roles[1].Name != models.RoleUser {
		t.Errorf("unexpected default roles %+v", roles)
	}
}

func TestSeedFromFile(t *testing.T) {
	db := testDB(t)
	path := writeSeedFile(t, seedFixture)

	if err := SeedFromFile(db, path); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var user models.User
	if err := db.Preload("Role").Where("username = ?", "boss").First(&user).Error; err != nil {
		t.Fatalf("find seeded admin: %v", err)
	}
	if user.Role.Name != models.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", user.Role.Name)
	}
	if !auth.VerifyPassword(user.PasswordHash, "pw1") {
		t.Error("seeded password must be hashed and verifiable")
	}

	var events []models.Event
	if err := db.Find(&events).Error; err != nil {
		t.Fatalf("find events: %v", err)
	}
	if len(events) != 1 || events[0].Name != "meetup" {
		t.Errorf("expected one seeded event, got %+v", events)
	}
}

func TestSeedFromFile_Idempotent(t *testing.T) {
	db := testDB(t)
	path := writeSeedFile(t, seedFixture)

	if err := SeedFromFile(db, path); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedFromFile(db, path); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var userCount, eventCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Event{}).Count(&eventCount)
	if userCount != 2 || eventCount != 1 {
		t.Errorf("expected seeding to be idempotent, got %d users, %d events", userCount, eventCount)
	}
}

func TestSeedFromFile_UnknownRole(t *testing.T) {
	db := testDB(t)
	path := writeSeedFile(t, `{"users": [{"first_name": "X", "username": "x", "password": "pw", "role": "ROOT"}]}`)

	if err := SeedFromFile(db, path); err == nil {
		t.Error("expected seed with unknown role to fail")
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected transaction rollback, got %d users", count)
	}
}

func TestCreateDefaultAdmin(t *testing.T) {
	db := testDB(t)

	t.Setenv("ADMIN_USERNAME", "boss")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("ADMIN_FIRST_NAME", "Boss")

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("create default admin: %v", err)
	}

	var user models.User
	if err := db.Preload("Role").Where("username = ?", "boss").First(&user).Error; err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if user.Role.Name != models.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", user.Role.Name)
	}

	// A second run must not duplicate the admin.
	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("second run: %v", err)
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one user, got %d", count)
	}
}

func TestCreateDefaultAdmin_SkippedWithoutEnv(t *testing.T) {
	db := testDB(t)

	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("create default admin: %v", err)
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no users, got %d", count)
	}
}

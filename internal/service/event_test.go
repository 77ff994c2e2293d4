package service

import (
	"errors"
	"testing"
	"time"

	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/store"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testServices(t *testing.T) (*EventService, *MemberService, *store.Stores) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Event{},
		&models.EventMember{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	stores := store.New(db)
	return NewEventService(db, stores), NewMemberService(stores), stores
}

func testUser(t *testing.T, stores *store.Stores, username string) models.User {
	t.Helper()

	role, err := stores.Roles.GetOrCreate(models.RoleUser)
	if err != nil {
		t.Fatalf("get or create role: %v", err)
	}
	user := models.User{FirstName: username, Username: username, PasswordHash: "x", RoleID: role.ID}
	if err := stores.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestEventService_CreateValidatesWindow(t *testing.T) {
	events, _, _ := testServices(t)

	now := time.Now()
	if _, err := events.Create("backwards", now.Add(time.Hour), now); !errors.Is(err, ErrInvalidEventWindow) {
		t.Errorf("expected ErrInvalidEventWindow, got %v", err)
	}
	if _, err := events.Create("empty", now, now); !errors.Is(err, ErrInvalidEventWindow) {
		t.Errorf("expected ErrInvalidEventWindow for zero-length window, got %v", err)
	}

	event, err := events.Create("meetup", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.ID == 0 {
		t.Error("expected a persisted event id")
	}
}

func TestEventService_GetWithMembers(t *testing.T) {
	events, members, stores := testServices(t)

	now := time.Now()
	event, err := events.Create("meetup", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	alice := testUser(t, stores, "alice")
	if _, err := members.Enroll(event.ID, alice.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	detail, err := events.Get(event.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Members) != 1 || detail.Members[0] != "alice" {
		t.Errorf("expected member names [alice], got %v", detail.Members)
	}

	if _, err := events.Get(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEventService_ListEmpty(t *testing.T) {
	events, _, _ := testServices(t)

	details, err := events.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if details == nil || len(details) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", details)
	}
}

func TestEventService_DeleteCascadesMemberships(t *testing.T) {
	events, members, stores := testServices(t)

	now := time.Now()
	event, err := events.Create("meetup", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	alice := testUser(t, stores, "alice")
	bob := testUser(t, stores, "bob")
	for _, u := range []models.User{alice, bob} {
		if _, err := members.Enroll(event.ID, u.ID); err != nil {
			t.Fatalf("enroll %s: %v", u.Username, err)
		}
	}

	if !events.Delete(event.ID) {
		t.Fatal("expected delete to report success")
	}

	if _, err := events.Get(event.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected event gone, got %v", err)
	}
	left, err := stores.Members.ListByEvent(event.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("expected memberships removed with the event, got %d", len(left))
	}

	if events.Delete(event.ID) {
		t.Error("expected delete of absent event to report false")
	}
}

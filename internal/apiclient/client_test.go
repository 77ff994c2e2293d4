package apiclient

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventum-io/eventum/internal/api"
	"github.com/eventum-io/eventum/internal/audit"
	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/config"
	"github.com/eventum-io/eventum/internal/db"
	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/queue"
	"github.com/eventum-io/eventum/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testServer runs the real router over an in-memory database with one admin
// account (boss / bosspw).
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "development"},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  60,
			RefreshTokenTTL: 60 * 24,
		},
	}

	authenticator := auth.NewAuthenticator(store.New(gdb), cfg.Auth)
	if _, err := authenticator.Register("Boss", "boss", "bosspw", models.RoleAdmin); err != nil {
		t.Fatalf("register admin: %v", err)
	}

	auditQueue := queue.NewMemoryQueue(16)
	t.Cleanup(func() { auditQueue.Close() })

	srv := httptest.NewServer(api.NewRouter(cfg, gdb, audit.NewRecorder(auditQueue)))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientEventFlow(t *testing.T) {
	srv := testServer(t)
	ctx := context.Background()

	pair, err := NewWithoutAuth(srv.URL).Signin(ctx, "boss", "bosspw")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	admin := New(srv.URL, pair.AccessToken)

	now := time.Now().UTC().Truncate(time.Second)
	event, err := admin.CreateEvent(ctx, CreateEventRequest{
		Name:       "meetup",
		StartedAt:  now.Add(time.Hour),
		FinishedAt: now.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	userPair, err := NewWithoutAuth(srv.URL).Register(ctx, "Alice", "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	alice := New(srv.URL, userPair.AccessToken)

	if err := alice.Enroll(ctx, event.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	mine, err := alice.ListMyEvents(ctx)
	if err != nil {
		t.Fatalf("list my events: %v", err)
	}
	if len(mine) != 1 || mine[0].EventName != "meetup" {
		t.Errorf("expected enrollments [meetup], got %+v", mine)
	}

	got, err := alice.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0].Name != "Alice" {
		t.Errorf("expected members [Alice], got %+v", got.Members)
	}

	if err := admin.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	var apiErr *APIError
	if _, err := alice.GetEvent(ctx, event.ID); !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Errorf("expected 404 APIError after delete, got %v", err)
	}
}

func TestClientForbidden(t *testing.T) {
	srv := testServer(t)
	ctx := context.Background()

	pair, err := NewWithoutAuth(srv.URL).Register(ctx, "Alice", "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	alice := New(srv.URL, pair.AccessToken)

	now := time.Now().UTC()
	_, err = alice.CreateEvent(ctx, CreateEventRequest{
		Name: "meetup", StartedAt: now, FinishedAt: now.Add(time.Hour),
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 403 {
		t.Errorf("expected 403 APIError, got %v", err)
	}

	if _, err := alice.ListUsers(ctx); !errors.As(err, &apiErr) || apiErr.StatusCode != 403 {
		t.Errorf("expected 403 APIError listing users, got %v", err)
	}
}

func TestClientRefresh(t *testing.T) {
	srv := testServer(t)
	ctx := context.Background()

	pair, err := NewWithoutAuth(srv.URL).Signin(ctx, "boss", "bosspw")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}

	access, err := NewWithoutAuth(srv.URL).Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	me, err := New(srv.URL, access).Me(ctx)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Username != "boss" || me.Role.Name != "ADMIN" {
		t.Errorf("unexpected user %+v", me)
	}
}

package service

import (
	"errors"
	"testing"
	"time"
)

func TestMemberService_Enroll(t *testing.T) {
	events, members, stores := testServices(t)

	now := time.Now()
	event, err := events.Create("meetup", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	alice := testUser(t, stores, "alice")

	member, err := members.Enroll(event.ID, alice.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if member.EventID != event.ID || member.UserID != alice.ID {
		t.Errorf("unexpected membership %+v", member)
	}

	if _, err := members.Enroll(event.ID, alice.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("expected ErrAlreadyEnrolled, got %v", err)
	}
	rows, err := stores.Members.ListByEvent(event.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected exactly one membership row, got %d", len(rows))
	}

	if _, err := members.Enroll(9999, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown event, got %v", err)
	}
}

func TestMemberService_Unenroll(t *testing.T) {
	events, members, stores := testServices(t)

	now := time.Now()
	event, err := events.Create("meetup", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	alice := testUser(t, stores, "alice")

	if members.Unenroll(event.ID, alice.ID) {
		t.Error("expected unenroll without membership to report false")
	}

	if _, err := members.Enroll(event.ID, alice.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if !members.Unenroll(event.ID, alice.ID) {
		t.Error("expected unenroll to report success")
	}

	// Re-enrolling after unenroll must work again.
	if _, err := members.Enroll(event.ID, alice.ID); err != nil {
		t.Errorf("expected re-enroll to succeed, got %v", err)
	}
}

func TestMemberService_ListForUser(t *testing.T) {
	events, members, stores := testServices(t)

	now := time.Now()
	first, err := events.Create("first", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	second, err := events.Create("second", now.Add(2*time.Hour), now.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	alice := testUser(t, stores, "alice")

	for _, id := range []uint{first.ID, second.ID} {
		if _, err := members.Enroll(id, alice.ID); err != nil {
			t.Fatalf("enroll: %v", err)
		}
	}

	list, err := members.ListForUser(alice.ID)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(list))
	}
	if list[0].EventName != "first" || list[1].EventName != "second" {
		t.Errorf("expected resolved event names, got %+v", list)
	}
}

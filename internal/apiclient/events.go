package apiclient

import (
	"context"
	"fmt"
)

// ListEvents returns all events.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	_, err := c.Get(ctx, "/events", &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent returns an event by ID.
func (c *Client) GetEvent(ctx context.Context, id uint) (*Event, error) {
	var event Event
	_, err := c.Get(ctx, fmt.Sprintf("/events/%d", id), &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent creates a new event. Requires an admin token.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	var event Event
	_, err := c.Post(ctx, "/events", req, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent deletes an event by ID. Requires an admin token.
func (c *Client) DeleteEvent(ctx context.Context, id uint) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/events/%d", id))
	return err
}

// ListMyEvents returns the authenticated user's enrollments.
func (c *Client) ListMyEvents(ctx context.Context) ([]UserEvent, error) {
	var events []UserEvent
	_, err := c.Get(ctx, "/users/me/events", &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Enroll enrolls the authenticated user in an event.
func (c *Client) Enroll(ctx context.Context, eventID uint) error {
	_, err := c.Post(ctx, fmt.Sprintf("/users/me/events/%d", eventID), nil, nil)
	return err
}

// Unenroll cancels the authenticated user's enrollment.
func (c *Client) Unenroll(ctx context.Context, eventID uint) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/users/me/events/%d", eventID))
	return err
}

// ListUsers returns all users. Requires an admin token.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	_, err := c.Get(ctx, "/admin/users", &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

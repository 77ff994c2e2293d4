package apiclient

import "time"

// SigninRequest represents a signin request.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// TokenPair represents the signin/register response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest carries the refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries the new access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// User represents a user.
type User struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
}

// Role represents a user role.
type Role struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EventMember represents one enrolled member of an event.
type EventMember struct {
	Name string `json:"name"`
}

// Event represents an event with its enrolled members.
type Event struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Members    []EventMember `json:"members"`
}

// CreateEventRequest represents a create-event request.
type CreateEventRequest struct {
	Name       string    `json:"name"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// UserEvent represents one enrollment from the user's point of view.
type UserEvent struct {
	EventID   uint   `json:"event_id"`
	EventName string `json:"name"`
}

package models

import (
	"time"
)

// RoleName is the closed set of role names known to the system.
type RoleName string

const (
	// RoleAdmin can manage events and register other admins
	RoleAdmin RoleName = "ADMIN"
	// RoleUser can enroll in and leave events
	RoleUser RoleName = "USER"
)

// Valid reports whether the name is one of the known roles.
func (n RoleName) Valid() bool {
	switch n {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

func (n RoleName) String() string { return string(n) }

// Role represents a user role (ADMIN, USER)
type Role struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      RoleName  `gorm:"type:text;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	RoleID       uint      `gorm:"not null;index" json:"role_id"`
	Role         Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

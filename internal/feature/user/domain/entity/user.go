// Package entity defines the domain entities for the user feature.
package entity

import "time"

// User represents a registered blog author.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	Password string `gorm:"size:255;not null" json:"-"`

	// Email is the contact address given at registration.
	Email string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

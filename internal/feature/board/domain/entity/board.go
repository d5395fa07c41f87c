// Package entity defines the domain entities of the board feature.
package entity

import (
	"time"

	userentity "blog_backend/internal/feature/user/domain/entity"
)

// Board is a post written by a user. The owner never changes after creation.
type Board struct {
	ID        uint            `gorm:"primaryKey"`
	Title     string          `gorm:"size:255;not null"`
	Content   string          `gorm:"type:text;not null"`
	UserID    uint            `gorm:"index;not null"`
	User      userentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner reports whether userID wrote the board.
func (b *Board) IsOwner(userID uint) bool {
	return b.UserID == userID
}

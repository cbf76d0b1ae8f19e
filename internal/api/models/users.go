package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Bio      string `gorm:"type:text" json:"bio,omitempty"`
	Role     string `gorm:"default:'user';not null" json:"role"` // "user", "moderator" or "admin" | default after creation is "user"

	// Bcrypt hash of the single active confirmation code. Regeneration
	// overwrites it, which is what invalidates the previous code.
	PendingCode *string    `gorm:"column:pending_code" json:"-"`
	ConfirmedAt *time.Time `json:"-"` // set on first successful verification

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is created or refreshed on every Google sign-in. Role is derived from
// the configured administrator address.
type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(255)"`
	Role      UserRole  `gorm:"type:varchar(16);not null;default:user"`
	AvatarURL *string   `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

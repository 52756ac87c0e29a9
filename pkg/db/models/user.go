package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account that can own shops.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Username     string     `gorm:"column:username;not null;uniqueIndex"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	DateJoined   time.Time  `gorm:"column:date_joined;autoCreateTime"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

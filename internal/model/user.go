package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatar is applied at registration when no avatar is supplied.
const DefaultAvatar = "https://i.pravatar.cc/300"

type User struct {
	gorm.Model
	Name              string     `gorm:"column:name;not null"`
	Email             string     `gorm:"column:email;unique;not null"`
	Password          string     `gorm:"column:password;not null" json:"-"`
	Avatar            string     `gorm:"column:avatar"`
	LastActive        time.Time  `gorm:"column:last_active"`
	ResetTokenHash    string     `gorm:"column:reset_token_hash;default:null;index:idx_users_reset_token_hash,where:reset_token_hash IS NOT NULL"`
	ResetTokenExpires *time.Time `gorm:"column:reset_token_expires_at;default:null"`
}

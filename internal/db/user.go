package db

import (
	"time"
)

const (
	// RoleAdmin may manage users in addition to content.
	RoleAdmin = "admin"
	// RoleEditor manages content only.
	RoleEditor = "editor"
)

// User 定义了后台用户模型
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"size:120;not null" json:"name"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"size:20;not null" json:"role"`
	Permissions StringList `gorm:"type:text" json:"permissions"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

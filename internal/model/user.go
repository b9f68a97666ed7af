package model

import "time"

// User roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

var Roles = []string{RoleAdmin, RoleEditor, RoleViewer}

type User struct {
	Base

	Email        string     `gorm:"column:email;size:255;not null;uniqueIndex:idx_users_email"`
	PasswordHash string     `gorm:"column:password_hash;size:60;not null"`
	FullName     string     `gorm:"column:full_name;size:255;not null"`
	Role         string     `gorm:"column:role;size:20;not null;default:viewer"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

func (*User) TableName() string {
	return "users"
}

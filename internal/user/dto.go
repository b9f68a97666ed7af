package user

import (
	"time"

	"github.com/fpt-software/website-api/internal/shared/crud"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"fullName" binding:"required,notblank,min=2,max=255"`
	Role     string `json:"role" binding:"required,oneof=admin editor viewer"`
	IsActive *bool  `json:"isActive"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	FullName *string `json:"fullName" binding:"omitempty,notblank,min=2,max=255"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin editor viewer"`
	IsActive *bool   `json:"isActive"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListQuery is GET /users?page=&limit=&search=&role=&status=
type ListQuery struct {
	crud.PageQuery
	Role   string `form:"role"`
	Status string `form:"status"`
}

type FilterOptions struct {
	Roles    []string `json:"roles"`
	Statuses []string `json:"statuses"`
}

package industry

import (
	"time"

	"github.com/fpt-software/website-api/internal/shared/crud"
)

type CreateIndustryRequest struct {
	Name        string  `json:"name" binding:"required,notblank,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url,max=500"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateIndustryRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url,max=500"`
	IsActive    *bool   `json:"isActive"`
}

type IndustryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListQuery is GET /industries?page=&limit=&search=&status=
type ListQuery struct {
	crud.PageQuery
	Status string `form:"status"`
}

type FilterOptions struct {
	Statuses []string `json:"statuses"`
}

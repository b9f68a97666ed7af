package announcement

import (
	"time"

	"github.com/fpt-software/website-api/internal/shared/crud"
	"github.com/fpt-software/website-api/internal/shared/upload"
)

// CreateAnnouncementRequest is accepted as JSON or as multipart/form-data
// with an optional "file" part replacing imageUrl.
type CreateAnnouncementRequest struct {
	Title       string   `json:"title" binding:"required,notblank,min=5,max=255"`
	Content     string   `json:"content" binding:"required,notblank,min=10"`
	Summary     *string  `json:"summary" binding:"omitempty,max=500"`
	Author      *string  `json:"author" binding:"omitempty,max=255"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high"`
	IsPublished bool     `json:"isPublished"`
	Tags        []string `json:"tags" binding:"omitempty,dive,notblank,max=50"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,uri,max=500"`
	ReadTime    *int     `json:"readTime" binding:"omitempty,min=1,max=120"`
}

type UpdateAnnouncementRequest struct {
	Title       *string  `json:"title" binding:"omitempty,notblank,min=5,max=255"`
	Content     *string  `json:"content" binding:"omitempty,notblank,min=10"`
	Summary     *string  `json:"summary" binding:"omitempty,max=500"`
	Author      *string  `json:"author" binding:"omitempty,max=255"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Priority    *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	IsPublished *bool    `json:"isPublished"`
	Tags        []string `json:"tags" binding:"omitempty,dive,notblank,max=50"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,uri,max=500"`
	ReadTime    *int     `json:"readTime" binding:"omitempty,min=1,max=120"`
}

type AnnouncementResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Summary     *string    `json:"summary,omitempty"`
	Author      *string    `json:"author,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    string     `json:"priority"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Tags        []string   `json:"tags"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	ReadTime    *int       `json:"readTime,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListQuery is GET /announcements?page=&limit=&search=&category=&priority=&status=&author=
type ListQuery struct {
	crud.PageQuery
	Category string `form:"category"`
	Priority string `form:"priority"`
	Status   string `form:"status"`
	Author   string `form:"author"`
}

type FilterOptions struct {
	Categories []string `json:"categories"`
	Priorities []string `json:"priorities"`
	Statuses   []string `json:"statuses"`
	Authors    []string `json:"authors"`
}

type UploadResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *upload.Result `json:"data,omitempty"`
}

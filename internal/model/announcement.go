package model

import "time"

// Announcement priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

type Announcement struct {
	Base

	Title       string     `gorm:"column:title;size:255;not null"`
	Content     string     `gorm:"column:content;size:65536;not null"`
	Summary     *string    `gorm:"column:summary;size:500"`
	Author      *string    `gorm:"column:author;size:255;index"`
	Category    *string    `gorm:"column:category;size:100;index"`
	Priority    string     `gorm:"column:priority;size:10;not null;default:medium"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false;index"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	Tags        StringList `gorm:"column:tags"`
	ImageURL    *string    `gorm:"column:image_url;size:500"`
	ReadTime    *int       `gorm:"column:read_time"`
}

func (*Announcement) TableName() string {
	return "announcements"
}

// MarkPublished stamps PublishedAt the first time the announcement is
// published. Later edits, including unpublish and republish, keep it.
func (a *Announcement) MarkPublished(now time.Time) {
	if a.IsPublished && a.PublishedAt == nil {
		a.PublishedAt = &now
	}
}

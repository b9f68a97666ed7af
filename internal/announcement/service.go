package announcement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/cache"
	"github.com/fpt-software/website-api/internal/shared/crud"
	"github.com/fpt-software/website-api/internal/shared/logger"
	"github.com/fpt-software/website-api/internal/shared/upload"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	resourceName = "Announcement"

	cachePrefix     = "announcements:"
	filtersCacheKey = cachePrefix + "filters"
)

var searchColumns = []string{"title", "content", "summary", "author"}

type AnnouncementService struct {
	*crud.Service[model.Announcement, CreateAnnouncementRequest, UpdateAnnouncementRequest, AnnouncementResponse]
	db    *gorm.DB
	repo  *crud.Repository[model.Announcement]
	files *crud.FileAttachments
	cache cache.Cache
}

func NewAnnouncementService(db *gorm.DB, uploader crud.Uploader, c cache.Cache) *AnnouncementService {
	files := crud.NewFileAttachments(uploader)
	hooks := &announcementHooks{files: files, now: time.Now}
	service := crud.NewService[model.Announcement, CreateAnnouncementRequest, UpdateAnnouncementRequest, AnnouncementResponse](
		db, resourceName, ErrAnnouncementNotFound, hooks,
	)
	return &AnnouncementService{
		Service: service,
		db:      db,
		repo:    service.Repository(),
		files:   files,
		cache:   c,
	}
}

// Create stores file, when given, as the announcement image. A stored file is
// removed again if the insert fails.
func (s *AnnouncementService) Create(ctx context.Context, request CreateAnnouncementRequest, file *upload.File) (AnnouncementResponse, error) {
	requested := request.ImageURL
	imageURL, err := s.files.HandleFileUpload(ctx, file, requested)
	if err != nil {
		logger.Named(ctx, resourceName).Error("announcement image upload failed", "title", request.Title, "error", err)
		return AnnouncementResponse{}, err
	}
	request.ImageURL = imageURL

	resp, err := s.Service.Create(ctx, request)
	if err != nil {
		s.files.Discard(ctx, imageURL, requested)
		return resp, err
	}

	cache.Invalidate(ctx, s.cache, cachePrefix)
	return resp, nil
}

// Update merges request onto announcement id. A new file replaces the image;
// the replaced file is deleted once the update is stored.
func (s *AnnouncementService) Update(ctx context.Context, id uint, request UpdateAnnouncementRequest, file *upload.File) (AnnouncementResponse, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return current, err
	}

	requested := request.ImageURL
	imageURL, err := s.files.HandleFileUpload(ctx, file, requested)
	if err != nil {
		logger.Named(ctx, resourceName).Error("announcement image upload failed", "id", id, "error", err)
		return AnnouncementResponse{}, err
	}
	request.ImageURL = imageURL

	resp, err := s.Service.Update(ctx, id, request)
	if err != nil {
		s.files.Discard(ctx, imageURL, requested)
		return resp, err
	}

	if imageURL != nil {
		s.files.Discard(ctx, current.ImageURL, imageURL)
	}
	cache.Invalidate(ctx, s.cache, cachePrefix)
	return resp, nil
}

func (s *AnnouncementService) Remove(ctx context.Context, id uint) error {
	if err := s.Service.Remove(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, cachePrefix)
	return nil
}

// ListPublished is the public listing: published announcements only.
func (s *AnnouncementService) ListPublished(ctx context.Context, q ListQuery) (*crud.Page[AnnouncementResponse], error) {
	filters := append(q.filters(), crud.Equals("is_published", true))
	return s.FindAll(ctx, q.PageQuery, filters...)
}

// ListAll includes unpublished announcements and honours the status filter.
func (s *AnnouncementService) ListAll(ctx context.Context, q ListQuery) (*crud.Page[AnnouncementResponse], error) {
	filters := append(q.filters(), crud.PublishedStatus.Scope("is_published", q.Status))
	return s.FindAll(ctx, q.PageQuery, filters...)
}

func (q ListQuery) filters() []crud.Scope {
	return []crud.Scope{
		crud.Substring("category", q.Category),
		crud.OneOf("priority", q.Priority, model.Priorities),
		crud.Substring("author", q.Author),
	}
}

func (s *AnnouncementService) FilterOptions(ctx context.Context) (FilterOptions, error) {
	return cache.Remember(ctx, s.cache, filtersCacheKey, 0, func(ctx context.Context) (FilterOptions, error) {
		logger.Named(ctx, resourceName).Info("loading announcement filter options")

		categories, err := s.repo.Distinct(ctx, s.db, "category")
		if err != nil {
			return FilterOptions{}, fmt.Errorf("load announcement categories: %w", err)
		}
		authors, err := s.repo.Distinct(ctx, s.db, "author")
		if err != nil {
			return FilterOptions{}, fmt.Errorf("load announcement authors: %w", err)
		}

		return FilterOptions{
			Categories: categories,
			Priorities: model.Priorities,
			Statuses:   crud.PublishedStatus.Values(),
			Authors:    authors,
		}, nil
	})
}

// UploadFile stores a file that is not attached to any announcement yet.
func (s *AnnouncementService) UploadFile(ctx context.Context, file *upload.File) (*upload.Result, error) {
	return s.files.Upload(ctx, file)
}

type announcementHooks struct {
	files *crud.FileAttachments
	now   func() time.Time
}

func (h *announcementHooks) NewEntity(_ context.Context, in CreateAnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		Summary:     in.Summary,
		Author:      trimmed(in.Author),
		Category:    trimmed(in.Category),
		Priority:    lo.Ternary(in.Priority == "", model.PriorityMedium, in.Priority),
		IsPublished: in.IsPublished,
		Tags:        model.StringList(lo.Map(in.Tags, func(tag string, _ int) string { return strings.TrimSpace(tag) })),
		ImageURL:    in.ImageURL,
		ReadTime:    in.ReadTime,
	}
	a.MarkPublished(h.now().UTC())
	return a, nil
}

func (h *announcementHooks) ApplyUpdate(_ context.Context, a *model.Announcement, in UpdateAnnouncementRequest) error {
	if in.Title != nil {
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.Summary != nil {
		a.Summary = in.Summary
	}
	if in.Author != nil {
		a.Author = trimmed(in.Author)
	}
	if in.Category != nil {
		a.Category = trimmed(in.Category)
	}
	if in.Priority != nil {
		a.Priority = *in.Priority
	}
	if in.IsPublished != nil {
		a.IsPublished = *in.IsPublished
	}
	if in.Tags != nil {
		a.Tags = model.StringList(lo.Map(in.Tags, func(tag string, _ int) string { return strings.TrimSpace(tag) }))
	}
	if in.ImageURL != nil {
		a.ImageURL = in.ImageURL
	}
	if in.ReadTime != nil {
		a.ReadTime = in.ReadTime
	}
	a.MarkPublished(h.now().UTC())
	return nil
}

func (h *announcementHooks) ToResponse(a *model.Announcement) AnnouncementResponse {
	tags := []string(a.Tags)
	if tags == nil {
		tags = []string{}
	}
	return AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Summary:     a.Summary,
		Author:      a.Author,
		Category:    a.Category,
		Priority:    a.Priority,
		IsPublished: a.IsPublished,
		PublishedAt: a.PublishedAt,
		Tags:        tags,
		ImageURL:    a.ImageURL,
		ReadTime:    a.ReadTime,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ApplySearch matches title, content, summary and author.
func (h *announcementHooks) ApplySearch(db *gorm.DB, term string) *gorm.DB {
	return crud.AnyContains(searchColumns, term)(db)
}

// Cleanup deletes the image of a removed announcement when it is ours.
func (h *announcementHooks) Cleanup(ctx context.Context, removed *model.Announcement) {
	h.files.DeleteFileIfExists(ctx, removed.ImageURL)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

package industry

import (
	"context"
	"fmt"
	"strings"

	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/crud"
	"gorm.io/gorm"
)

const resourceName = "Industry"

type IndustryService struct {
	*crud.Service[model.Industry, CreateIndustryRequest, UpdateIndustryRequest, IndustryResponse]
}

func NewIndustryService(db *gorm.DB) *IndustryService {
	hooks := &industryHooks{repo: crud.NewRepository[model.Industry]()}
	return &IndustryService{
		Service: crud.NewService[model.Industry, CreateIndustryRequest, UpdateIndustryRequest, IndustryResponse](
			db, resourceName, ErrIndustryNotFound, hooks,
		),
	}
}

// List pages industries, optionally narrowed by name search and status.
func (s *IndustryService) List(ctx context.Context, q ListQuery) (*crud.Page[IndustryResponse], error) {
	return s.FindAll(ctx, q.PageQuery, crud.ActiveStatus.Scope("is_active", q.Status))
}

func (s *IndustryService) FilterOptions() FilterOptions {
	return FilterOptions{Statuses: crud.ActiveStatus.Values()}
}

type industryHooks struct {
	repo *crud.Repository[model.Industry]
}

func (h *industryHooks) NewEntity(_ context.Context, in CreateIndustryRequest) (*model.Industry, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	return &model.Industry{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    isActive,
	}, nil
}

func (h *industryHooks) ApplyUpdate(_ context.Context, e *model.Industry, in UpdateIndustryRequest) error {
	if in.Name != nil {
		e.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		e.Description = in.Description
	}
	if in.ImageURL != nil {
		e.ImageURL = in.ImageURL
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	return nil
}

func (h *industryHooks) ToResponse(e *model.Industry) IndustryResponse {
	return IndustryResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ApplySearch matches the name only.
func (h *industryHooks) ApplySearch(db *gorm.DB, term string) *gorm.DB {
	return crud.Contains("name", term)(db)
}

func (h *industryHooks) ValidateCreate(ctx context.Context, tx *gorm.DB, in CreateIndustryRequest) error {
	return h.ensureNameFree(ctx, tx, strings.TrimSpace(in.Name), 0)
}

func (h *industryHooks) ValidateUpdate(ctx context.Context, tx *gorm.DB, existing *model.Industry, in UpdateIndustryRequest) error {
	if in.Name == nil || strings.TrimSpace(*in.Name) == existing.Name {
		return nil
	}
	return h.ensureNameFree(ctx, tx, strings.TrimSpace(*in.Name), existing.ID)
}

func (h *industryHooks) ensureNameFree(ctx context.Context, tx *gorm.DB, name string, excludeID uint) error {
	taken, err := h.repo.ExistsBy(ctx, tx, "name", name, excludeID)
	if err != nil {
		return fmt.Errorf("check industry name: %w", err)
	}
	if taken {
		return ErrIndustryAlreadyExists
	}
	return nil
}

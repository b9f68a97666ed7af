package crud

import (
	"context"
	"errors"
	"fmt"

	"github.com/fpt-software/website-api/internal/shared/database"
	sharedError "github.com/fpt-software/website-api/internal/shared/error"
	"github.com/fpt-software/website-api/internal/shared/logger"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Hooks adapts Service to one resource: E is the model, C and U the create and
// update inputs, R the response shape.
type Hooks[E Entity, C any, U any, R any] interface {
	// NewEntity builds an unsaved entity from a create input.
	NewEntity(ctx context.Context, input C) (*E, error)
	// ApplyUpdate merges the provided fields of input onto entity.
	ApplyUpdate(ctx context.Context, entity *E, input U) error
	ToResponse(entity *E) R
	// ApplySearch adds the free-text predicate for a trimmed, non-blank term.
	ApplySearch(db *gorm.DB, term string) *gorm.DB
}

// CreateValidator is an optional hook run inside the create transaction.
type CreateValidator[C any] interface {
	ValidateCreate(ctx context.Context, tx *gorm.DB, input C) error
}

// UpdateValidator is an optional hook run before an update is merged.
type UpdateValidator[E Entity, U any] interface {
	ValidateUpdate(ctx context.Context, tx *gorm.DB, existing *E, input U) error
}

// Cleaner is an optional hook run after the delete transaction commits, so a
// failed delete never loses the row's files.
type Cleaner[E Entity] interface {
	Cleanup(ctx context.Context, removed *E)
}

// Orderer is an optional hook replacing the default newest-first ordering.
type Orderer interface {
	ApplyOrder(db *gorm.DB) *gorm.DB
}

// Service is the generic paginated CRUD skeleton.
type Service[E Entity, C any, U any, R any] struct {
	db       *gorm.DB
	repo     *Repository[E]
	resource string
	notFound sharedError.DomainError
	hooks    Hooks[E, C, U, R]
}

// NewService wires a resource into the skeleton. resource names it in log
// lines and NotFound messages, e.g. "Industry".
func NewService[E Entity, C any, U any, R any](db *gorm.DB, resource string, notFound sharedError.DomainError, hooks Hooks[E, C, U, R]) *Service[E, C, U, R] {
	return &Service[E, C, U, R]{
		db:       db,
		repo:     NewRepository[E](),
		resource: resource,
		notFound: notFound,
		hooks:    hooks,
	}
}

func (s *Service[E, C, U, R]) Repository() *Repository[E] {
	return s.repo
}

func (s *Service[E, C, U, R]) Create(ctx context.Context, input C) (R, error) {
	log := logger.Named(ctx, s.resource)
	log.Info("creating " + s.resource)

	entity, err := database.InTransaction(ctx, s.db, func(tx *gorm.DB) (*E, error) {
		if v, ok := s.hooks.(CreateValidator[C]); ok {
			if err := v.ValidateCreate(ctx, tx, input); err != nil {
				return nil, err
			}
		}

		entity, err := s.hooks.NewEntity(ctx, input)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, tx, entity); err != nil {
			return nil, fmt.Errorf("insert %s: %w", s.resource, err)
		}
		return entity, nil
	})
	if err != nil {
		log.Error("create "+s.resource+" failed", "error", err)
		var resp R
		return resp, err
	}

	log.Info(s.resource+" created", "id", (*entity).GetID())
	return s.hooks.ToResponse(entity), nil
}

// FindAll returns one page of rows matching filters and q.Search, newest first.
func (s *Service[E, C, U, R]) FindAll(ctx context.Context, q PageQuery, filters ...Scope) (*Page[R], error) {
	log := logger.Named(ctx, s.resource)
	q = q.Normalized()
	log.Info("listing "+s.resource, "page", q.Page, "limit", q.Limit, "search", q.Search)

	scopes := lo.Filter(filters, func(scope Scope, _ int) bool { return scope != nil })
	if term, ok := Normalize(q.Search); ok {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return s.hooks.ApplySearch(db, term)
		})
	}

	rows, total, err := s.repo.FindPage(ctx, s.db, scopes, s.order, q.Offset(), q.Limit)
	if err != nil {
		log.Error("list "+s.resource+" failed", "page", q.Page, "limit", q.Limit, "error", err)
		return nil, fmt.Errorf("list %s: %w", s.resource, err)
	}

	return &Page[R]{
		Data:  lo.Map(rows, func(row E, _ int) R { return s.hooks.ToResponse(&row) }),
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

func (s *Service[E, C, U, R]) FindOne(ctx context.Context, id uint) (R, error) {
	log := logger.Named(ctx, s.resource)
	log.Info("fetching "+s.resource, "id", id)

	var resp R
	entity, err := s.find(ctx, s.db, id)
	if err != nil {
		log.Warn("fetch "+s.resource+" failed", "id", id, "error", err)
		return resp, err
	}
	return s.hooks.ToResponse(entity), nil
}

// Update merges input onto the stored row. The merged entity is returned
// alongside the response so callers can inspect what was written.
func (s *Service[E, C, U, R]) Update(ctx context.Context, id uint, input U) (R, error) {
	resp, _, err := s.UpdateEntity(ctx, id, input)
	return resp, err
}

func (s *Service[E, C, U, R]) UpdateEntity(ctx context.Context, id uint, input U) (R, *E, error) {
	log := logger.Named(ctx, s.resource)
	log.Info("updating "+s.resource, "id", id)

	updated, err := database.InTransaction(ctx, s.db, func(tx *gorm.DB) (*E, error) {
		entity, err := s.find(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		if v, ok := s.hooks.(UpdateValidator[E, U]); ok {
			if err := v.ValidateUpdate(ctx, tx, entity, input); err != nil {
				return nil, err
			}
		}

		if err := s.hooks.ApplyUpdate(ctx, entity, input); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, tx, entity); err != nil {
			return nil, fmt.Errorf("update %s id=%d: %w", s.resource, id, err)
		}
		return entity, nil
	})
	if err != nil {
		log.Error("update "+s.resource+" failed", "id", id, "error", err)
		var resp R
		return resp, nil, err
	}

	log.Info(s.resource+" updated", "id", id)
	return s.hooks.ToResponse(updated), updated, nil
}

// Remove deletes the row, then runs the Cleaner hook. Removing a missing row
// is NotFound.
func (s *Service[E, C, U, R]) Remove(ctx context.Context, id uint) error {
	log := logger.Named(ctx, s.resource)
	log.Info("removing "+s.resource, "id", id)

	removed, err := database.InTransaction(ctx, s.db, func(tx *gorm.DB) (*E, error) {
		entity, err := s.find(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Delete(ctx, tx, entity); err != nil {
			return nil, fmt.Errorf("delete %s id=%d: %w", s.resource, id, err)
		}
		return entity, nil
	})
	if err != nil {
		log.Error("remove "+s.resource+" failed", "id", id, "error", err)
		return err
	}

	if c, ok := s.hooks.(Cleaner[E]); ok {
		c.Cleanup(ctx, removed)
	}

	log.Info(s.resource+" removed", "id", id)
	return nil
}

func (s *Service[E, C, U, R]) find(ctx context.Context, db *gorm.DB, id uint) (*E, error) {
	entity, err := s.repo.FindByID(ctx, db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, sharedError.WithMessage(s.notFound, fmt.Sprintf("%s with ID %d not found", s.resource, id))
	}
	if err != nil {
		return nil, fmt.Errorf("find %s id=%d: %w", s.resource, id, err)
	}
	return entity, nil
}

func (s *Service[E, C, U, R]) order(db *gorm.DB) *gorm.DB {
	if o, ok := s.hooks.(Orderer); ok {
		return o.ApplyOrder(db)
	}
	return db.Order("created_at DESC").Order("id DESC")
}

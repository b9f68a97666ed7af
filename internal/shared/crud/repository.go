package crud

import (
	"context"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Entity is satisfied by every model embedding model.Base.
type Entity interface {
	GetID() uint
}

// Scope narrows a query; it is the unit filters are composed from.
type Scope = func(*gorm.DB) *gorm.DB

// Repository is the storage accessor for one entity type. Every method takes
// the handle to run on so the same calls work inside and outside transactions.
type Repository[E Entity] struct{}

func NewRepository[E Entity]() *Repository[E] {
	return &Repository[E]{}
}

func (r *Repository[E]) Create(ctx context.Context, db *gorm.DB, entity *E) error {
	return db.WithContext(ctx).Create(entity).Error
}

func (r *Repository[E]) FindByID(ctx context.Context, db *gorm.DB, id uint) (*E, error) {
	var entity E
	err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update writes every column of entity, zero values included.
func (r *Repository[E]) Update(ctx context.Context, db *gorm.DB, entity *E) error {
	return db.WithContext(ctx).
		Model(entity).
		Select("*").
		Omit("id", "created_at").
		Updates(entity).Error
}

func (r *Repository[E]) Delete(ctx context.Context, db *gorm.DB, entity *E) error {
	return db.WithContext(ctx).Delete(entity).Error
}

// FindPage applies scopes, counts the full result and returns one window of it.
func (r *Repository[E]) FindPage(ctx context.Context, db *gorm.DB, scopes []Scope, order Scope, offset, limit int) ([]E, int64, error) {
	var zero E
	query := db.WithContext(ctx).Model(&zero)
	for _, scope := range scopes {
		if scope != nil {
			query = scope(query)
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]E, 0, limit)
	if total == 0 {
		return rows, 0, nil
	}
	if err := order(query).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ExistsBy reports whether another row has column = value. excludeID, when
// non-zero, leaves that row out so an entity may keep its own value.
func (r *Repository[E]) ExistsBy(ctx context.Context, db *gorm.DB, column string, value any, excludeID uint) (bool, error) {
	var zero E
	query := db.WithContext(ctx).Model(&zero).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Distinct returns the sorted distinct non-empty values of a text column.
func (r *Repository[E]) Distinct(ctx context.Context, db *gorm.DB, column string) ([]string, error) {
	var zero E
	var values []string
	err := db.WithContext(ctx).
		Model(&zero).
		Where(column+" IS NOT NULL").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return lo.Filter(values, func(v string, _ int) bool { return v != "" }), nil
}

package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var errNilTxFunc = errors.New("database: transaction function is nil")

// WithTransaction runs fn in a transaction bound to ctx. Returning an error
// from fn rolls back.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return errNilTxFunc
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return db.WithContext(ctx).Transaction(fn)
}

// InTransaction is WithTransaction for work that produces a value. The value
// is only returned when the transaction commits.
//
//	entity, err := InTransaction(ctx, db, func(tx *gorm.DB) (*model.Industry, error) {
//	    return repo.FindByID(ctx, tx, id)
//	})
func InTransaction[T any](ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) (T, error)) (T, error) {
	var result T
	if fn == nil {
		return result, errNilTxFunc
	}

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		value, err := fn(tx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

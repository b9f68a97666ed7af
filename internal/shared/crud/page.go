package crud

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery is the pagination window plus the free-text search term.
type PageQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	Search string `form:"search"`
}

// Normalized fills defaults for values that were never bound.
func (q PageQuery) Normalized() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Offset is (page-1)*limit, saturating at math.MaxInt so a huge page lands
// past the end instead of wrapping.
func (q PageQuery) Offset() int {
	q = q.Normalized()
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// Page is one pagination window of mapped rows. Total counts every row
// matching the filters, not just this window.
type Page[R any] struct {
	Data  []R   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

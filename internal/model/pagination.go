package model

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PaginationQuery is the common list contract.  Zero values mean "use the
// default"; limit has no upper bound.
type PaginationQuery struct {
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1"`
	Search string `query:"search"`
}

// Normalize fills in defaults.
func (q PaginationQuery) Normalize() PaginationQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Offset is (page-1)*limit on a normalized query.  A product that does not
// fit in an int saturates at math.MaxInt, which lies past any real table.
func (q PaginationQuery) Offset() int {
	n := q.Normalize()
	if n.Page-1 > math.MaxInt/n.Limit {
		return math.MaxInt
	}
	return (n.Page - 1) * n.Limit
}

// RatingQuery adds the movie filter; MovieID 0 means no filter.
type RatingQuery struct {
	PaginationQuery
	MovieID uint64 `query:"movieId"`
}

// Page is the list envelope {data, total, page, limit}.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPage never returns a nil Data slice so JSON renders [].
func NewPage[T any](data []T, total int64, q PaginationQuery) Page[T] {
	if data == nil {
		data = []T{}
	}
	q = q.Normalize()
	return Page[T]{Data: data, Total: total, Page: q.Page, Limit: q.Limit}
}

// Deleted is returned by remove operations.
type Deleted struct {
	Deleted bool `json:"deleted"`
}

package queries

import (
	"errors"
	"math"

	"dispatch/internal/pkg/guard"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit within int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

var ErrListRoutesQueryIsNotConstructed = errors.New(
	"ListRoutesQuery must be created via NewListRoutesQuery constructor",
)

// ListRoutesQuery pages through routes ascending by id. Out of range input is
// clamped, never rejected: page below 1 becomes 1, page above MaxPage becomes
// MaxPage, limit 0 becomes DefaultLimit, other limits are clamped to
// [1, MaxLimit].
type ListRoutesQuery struct {
	page  int
	limit int

	guard guard.ConstructorGuard
}

func NewListRoutesQuery(page, limit int) ListRoutesQuery {
	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return ListRoutesQuery{page: page, limit: limit, guard: guard.NewConstructorGuard()}
}

func (q ListRoutesQuery) Validate() error {
	return q.guard.Validate(ErrListRoutesQueryIsNotConstructed)
}

func (q ListRoutesQuery) Page() int {
	return q.page
}

func (q ListRoutesQuery) Limit() int {
	return q.limit
}

func (q ListRoutesQuery) Offset() int {
	return (q.page - 1) * q.limit
}

type ListRoutesQueryResponse struct {
	Items      []RouteView
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// TotalPages is ceil(total/limit), but never less than 1.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return max(pages, 1)
}

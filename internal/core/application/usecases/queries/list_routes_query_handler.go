package queries

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListRoutesQueryHandler counts and pages routes inside one read-only
// snapshot so that total and items agree.
type ListRoutesQueryHandler struct {
	db *gorm.DB
}

func NewListRoutesQueryHandler(db *gorm.DB) ListRoutesQueryHandler {
	return ListRoutesQueryHandler{db: db}
}

func (h ListRoutesQueryHandler) Handle(ctx context.Context, query ListRoutesQuery) (ListRoutesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListRoutesQueryResponse{}, err
	}

	var (
		total int64
		items = make([]RouteView, 0)
	)
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`SELECT count(*) FROM routes`).Scan(&total).Error; err != nil {
			return errs.NewInfrastructureFailureError("count routes", err)
		}

		if err := tx.Raw(`
			SELECT
				id,
				start_location,
				end_location,
				distance,
				estimated_time,
				status,
				assigned_driver_id
			FROM routes
			ORDER BY id
			LIMIT ? OFFSET ?
		`, query.Limit(), query.Offset()).Scan(&items).Error; err != nil {
			return errs.NewInfrastructureFailureError("list routes", err)
		}
		return nil
	}, readSnapshot)
	if err != nil {
		var infra *errs.InfrastructureFailureError
		if errors.As(err, &infra) {
			return ListRoutesQueryResponse{}, err
		}
		return ListRoutesQueryResponse{}, errs.NewInfrastructureFailureError("list routes", err)
	}

	return ListRoutesQueryResponse{
		Items:      items,
		Page:       query.Page(),
		Limit:      query.Limit(),
		Total:      total,
		TotalPages: TotalPages(total, query.Limit()),
	}, nil
}

package routerepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the route; the id comes from the routes sequence.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) (*route.Route, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return nil, errs.NewInfrastructureFailureError("add route", err)
	}

	stored, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(stored.ID(), stored)
	return stored, nil
}

// Update writes status and assigned driver. Both are always written so a
// nil driver clears the column.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":             dto.Status,
			"assigned_driver_id": dto.AssignedDriverID,
		})
	if result.Error != nil {
		if pgerr.IsForeignKeyViolation(result.Error) && dto.AssignedDriverID != nil {
			return errs.NewObjectNotFoundErrorWithCause("driver", *dto.AssignedDriverID, result.Error)
		}
		return errs.NewInfrastructureFailureError("update route", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRouteRepository) Get(ctx context.Context, id route.ID) (*route.Route, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate takes a FOR UPDATE lock on the route row, serialising
// concurrent assignment attempts for the same route.
func (r *GormRouteRepository) GetForUpdate(ctx context.Context, id route.ID) (*route.Route, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRouteRepository) GetUnassigned(ctx context.Context, limit int) ([]*route.Route, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "max int")
	}

	var dtos []RouteDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", route.Unassigned.String()).
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, errs.NewInfrastructureFailureError("get unassigned routes", err)
	}

	routes := make([]*route.Route, 0, len(dtos))
	for _, dto := range dtos {
		rt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}

	return routes, nil
}

func (r *GormRouteRepository) get(ctx context.Context, db *gorm.DB, id route.ID) (*route.Route, error) {
	var dto RouteDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", int64(id))
		}
		return nil, errs.NewInfrastructureFailureError("get route", err)
	}

	return toDomain(dto)
}

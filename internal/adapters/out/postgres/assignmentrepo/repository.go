package assignmentrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAssignmentRepository) Add(
	ctx context.Context,
	aggregate *assignment.Assignment,
) (*assignment.Assignment, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		switch {
		case pgerr.IsUniqueViolation(err):
			return nil, errs.NewDuplicateKeyErrorWithCause("assignment for route", dto.RouteID, err)
		case pgerr.IsForeignKeyViolation(err):
			return nil, errs.NewObjectNotFoundErrorWithCause("driver or route", dto.RouteID, err)
		default:
			return nil, errs.NewInfrastructureFailureError("add assignment", err)
		}
	}

	stored, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(stored.ID(), stored)
	return stored, nil
}

func (r *GormAssignmentRepository) GetByRoute(ctx context.Context, routeID route.ID) (*assignment.Assignment, error) {
	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "route_id = ?", int64(routeID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment for route", int64(routeID))
		}
		return nil, errs.NewInfrastructureFailureError("get assignment", err)
	}

	return toDomain(dto)
}

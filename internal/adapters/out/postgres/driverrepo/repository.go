package driverrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the driver and returns it with its registration sequence.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) (*driver.Driver, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, errs.NewDuplicateKeyErrorWithCause("driver", dto.ID, err)
		}
		return nil, errs.NewInfrastructureFailureError("add driver", err)
	}

	stored, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(stored.ID(), stored)
	return stored, nil
}

// Update writes availability only; the other columns never change. A map is
// used so that false is written instead of skipped as a zero value.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ?", aggregate.ID().String()).
		Updates(map[string]any{"availability": aggregate.IsAvailable()})
	if result.Error != nil {
		return errs.NewInfrastructureFailureError("update driver", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id driver.ID) (*driver.Driver, error) {
	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, errs.NewInfrastructureFailureError("get driver", err)
	}

	return toDomain(dto)
}

// GetAvailableForUpdate locks with SKIP LOCKED: a driver held by a concurrent
// assignment is invisible here instead of blocking, so N concurrent callers
// each end up with a distinct driver or none at all.
func (r *GormDriverRepository) GetAvailableForUpdate(ctx context.Context, limit int) ([]*driver.Driver, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "max int")
	}

	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("availability = ?", true).
		Order("registration_seq").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, errs.NewInfrastructureFailureError("lock available drivers", err)
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}

// Package assignmentrepo persists the assignment history through gorm.
package assignmentrepo

import (
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/routerepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/route"
)

// AssignmentDTO maps the assignments table. The unique index on route_id
// backs the at-most-one-assignment-per-route rule.
type AssignmentDTO struct {
	ID          int64                 `gorm:"primaryKey;autoIncrement"`
	DriverID    string                `gorm:"type:varchar(255);not null;index"`
	RouteID     int64                 `gorm:"not null;uniqueIndex"`
	AssignedAt  time.Time             `gorm:"type:timestamptz;not null"`
	CompletedAt *time.Time            `gorm:"type:timestamptz"`
	Driver      *driverrepo.DriverDTO `gorm:"foreignKey:DriverID;constraint:OnDelete:RESTRICT"`
	Route       *routerepo.RouteDTO   `gorm:"foreignKey:RouteID;constraint:OnDelete:RESTRICT"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          int64(a.ID()),
		DriverID:    a.DriverID().String(),
		RouteID:     int64(a.RouteID()),
		AssignedAt:  a.AssignedAt(),
		CompletedAt: a.CompletedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	driverID, err := driver.NewID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	return assignment.RestoreAssignment(
		assignment.ID(dto.ID),
		driverID,
		route.ID(dto.RouteID),
		dto.AssignedAt,
		dto.CompletedAt,
	)
}

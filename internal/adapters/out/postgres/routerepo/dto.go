// Package routerepo persists route aggregates through gorm.
package routerepo

import (
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// RouteDTO maps the routes table. Status is stored as text so that the
// schedule and history views can return it verbatim.
type RouteDTO struct {
	ID               int64                 `gorm:"primaryKey;autoIncrement"`
	StartLocation    string                `gorm:"type:varchar(255);not null"`
	EndLocation      string                `gorm:"type:varchar(255);not null"`
	Distance         float64               `gorm:"type:double precision;not null"`
	EstimatedTime    int                   `gorm:"type:int;not null"`
	Status           string                `gorm:"type:varchar(20);not null;default:unassigned;index"`
	AssignedDriverID *string               `gorm:"type:varchar(255);index"`
	AssignedDriver   *driverrepo.DriverDTO `gorm:"foreignKey:AssignedDriverID;constraint:OnDelete:RESTRICT"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(r *route.Route) RouteDTO {
	var driverID *string
	if id := r.AssignedDriverID(); id != nil {
		raw := id.String()
		driverID = &raw
	}

	return RouteDTO{
		ID:               int64(r.ID()),
		StartLocation:    r.Start().String(),
		EndLocation:      r.End().String(),
		Distance:         r.Distance().Float64(),
		EstimatedTime:    r.EstimatedTime().Int(),
		Status:           r.Status().String(),
		AssignedDriverID: driverID,
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	start, err := kernel.NewPlace(dto.StartLocation)
	if err != nil {
		return nil, err
	}
	end, err := kernel.NewPlace(dto.EndLocation)
	if err != nil {
		return nil, err
	}
	distance, err := kernel.NewDistance(dto.Distance)
	if err != nil {
		return nil, err
	}
	eta, err := kernel.NewMinutes(dto.EstimatedTime)
	if err != nil {
		return nil, err
	}
	status, err := route.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *driver.ID
	if dto.AssignedDriverID != nil {
		id, idErr := driver.NewID(*dto.AssignedDriverID)
		if idErr != nil {
			return nil, idErr
		}
		driverID = &id
	}

	return route.RestoreRoute(route.ID(dto.ID), start, end, distance, eta, status, driverID)
}

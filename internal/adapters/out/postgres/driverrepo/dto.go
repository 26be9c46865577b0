// Package driverrepo persists driver aggregates through gorm.
package driverrepo

import (
	"dispatch/internal/core/domain/model/driver"
)

// DriverDTO maps the drivers table. RegistrationSeq is filled by a bigserial
// sequence on insert and orders drivers by registration.
type DriverDTO struct {
	ID              string `gorm:"type:varchar(255);primaryKey"`
	Name            string `gorm:"type:varchar(255);not null"`
	LicenseType     string `gorm:"type:varchar(255);not null"`
	Availability    bool   `gorm:"not null"`
	RegistrationSeq int64  `gorm:"autoIncrement;uniqueIndex;<-:create"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:              d.ID().String(),
		Name:            d.Name(),
		LicenseType:     d.LicenseType(),
		Availability:    d.IsAvailable(),
		RegistrationSeq: d.RegistrationSeq(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := driver.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(id, dto.Name, dto.LicenseType, dto.Availability, dto.RegistrationSeq)
}

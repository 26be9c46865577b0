package postgres

import (
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/routerepo"
	"dispatch/internal/pkg/errs"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures the connection pool.
type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// Open connects to PostgreSQL. Errors are translated by gorm so duplicate
// keys surface as gorm.ErrDuplicatedKey.
func Open(opts Options) (*gorm.DB, error) {
	logLevel := opts.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(gorm_postgres.Open(opts.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errs.NewInfrastructureFailureError("open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.NewInfrastructureFailureError("open database", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates the drivers, routes and assignments tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&driverrepo.DriverDTO{},
		&routerepo.RouteDTO{},
		&assignmentrepo.AssignmentDTO{},
	); err != nil {
		return errs.NewInfrastructureFailureError("migrate schema", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

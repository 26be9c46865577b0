package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetScheduleQueryHandler reads the whole schedule in one statement, so the
// result is a consistent snapshot of committed data.
//
// Example:
//
//	handler := NewGetScheduleQueryHandler(db)
//	entries, err := handler.Handle(ctx, NewGetScheduleQuery())
type GetScheduleQueryHandler struct {
	db *gorm.DB
}

func NewGetScheduleQueryHandler(db *gorm.DB) GetScheduleQueryHandler {
	return GetScheduleQueryHandler{db: db}
}

// Handle returns routes ascending by id.
func (h GetScheduleQueryHandler) Handle(ctx context.Context, query GetScheduleQuery) ([]ScheduleEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]ScheduleEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.start_location,
			r.end_location,
			r.distance,
			r.estimated_time,
			r.status,
			d.id,
			d.name
		FROM routes r
		LEFT JOIN drivers d ON d.id = r.assigned_driver_id
		ORDER BY r.id
	`).Rows()
	if err != nil {
		return nil, errs.NewInfrastructureFailureError("read schedule", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry      ScheduleEntry
			driverID   sql.NullString
			driverName sql.NullString
		)

		err = rows.Scan(
			&entry.Route.ID,
			&entry.Route.StartLocation,
			&entry.Route.EndLocation,
			&entry.Route.Distance,
			&entry.Route.EstimatedTime,
			&entry.Route.Status,
			&driverID,
			&driverName,
		)
		if err != nil {
			return nil, errs.NewInfrastructureFailureError("read schedule", err)
		}

		if driverID.Valid {
			entry.Driver = &DriverSummary{ID: driverID.String, Name: driverName.String}
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewInfrastructureFailureError("read schedule", err)
	}

	return entries, nil
}

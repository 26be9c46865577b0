package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// readSnapshot runs both statements of a view against one snapshot.
var readSnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// GetDriverHistoryQueryHandler returns errs.ErrObjectNotFound for an unknown
// driver. Driver and history are read in one read-only transaction.
type GetDriverHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverHistoryQueryHandler(db *gorm.DB) GetDriverHistoryQueryHandler {
	return GetDriverHistoryQueryHandler{db: db}
}

func (h GetDriverHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDriverHistoryQuery,
) (GetDriverHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverHistoryQueryResponse{}, err
	}

	var response GetDriverHistoryQueryResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d DriverSummary
		result := tx.Raw(`SELECT id, name FROM drivers WHERE id = ?`, query.DriverID().String()).Scan(&d)
		if result.Error != nil {
			return errs.NewInfrastructureFailureError("read driver", result.Error)
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("driver", query.DriverID().String())
		}

		history := make([]HistoryEntry, 0)
		if err := tx.Raw(`
			SELECT
				a.id AS assignment_id,
				a.assigned_at,
				a.completed_at,
				r.id AS route_id,
				r.start_location,
				r.end_location,
				r.distance,
				r.estimated_time,
				r.status
			FROM assignments a
			JOIN routes r ON r.id = a.route_id
			WHERE a.driver_id = ?
			ORDER BY a.assigned_at DESC, a.id DESC
		`, query.DriverID().String()).Scan(&history).Error; err != nil {
			return errs.NewInfrastructureFailureError("read driver history", err)
		}

		response = GetDriverHistoryQueryResponse{Driver: d, History: history}
		return nil
	}, readSnapshot)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		var infra *errs.InfrastructureFailureError
		if errors.As(err, &notFound) || errors.As(err, &infra) {
			return GetDriverHistoryQueryResponse{}, err
		}
		return GetDriverHistoryQueryResponse{}, errs.NewInfrastructureFailureError("read driver history", err)
	}

	return response, nil
}

package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	bannerMessage         = "DRB Route Scheduling API"
	invalidDriverPayload  = "Invalid payload. Required: { id, name, licenseType, availability }"
	invalidRoutePayload   = "Invalid payload. Required: { startLocation, endLocation, distance, estimatedTime }"
	driverAlreadyExists   = "Driver with this id already exists"
	driverNotFound        = "Driver not found"
	internalServerFailure = "Internal server error"
)

type DriverCreator interface {
	Handle(ctx context.Context, cmd commands.CreateDriverCommand) (*driver.Driver, error)
}

type RouteCreator interface {
	Handle(ctx context.Context, cmd commands.CreateRouteCommand) (*route.Route, error)
}

type ScheduleReader interface {
	Handle(ctx context.Context, query queries.GetScheduleQuery) ([]queries.ScheduleEntry, error)
}

type DriverHistoryReader interface {
	Handle(ctx context.Context, query queries.GetDriverHistoryQuery) (queries.GetDriverHistoryQueryResponse, error)
}

type RouteLister interface {
	Handle(ctx context.Context, query queries.ListRoutesQuery) (queries.ListRoutesQueryResponse, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDriverHandler DriverCreator
	createRouteHandler  RouteCreator

	// Query handlers
	getScheduleHandler      ScheduleReader
	getDriverHistoryHandler DriverHistoryReader
	listRoutesHandler       RouteLister

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDriverHandler DriverCreator,
	createRouteHandler RouteCreator,
	getScheduleHandler ScheduleReader,
	getDriverHistoryHandler DriverHistoryReader,
	listRoutesHandler RouteLister,
	logger *slog.Logger,
) *Server {
	return &Server{
		createDriverHandler:     createDriverHandler,
		createRouteHandler:      createRouteHandler,
		getScheduleHandler:      getScheduleHandler,
		getDriverHistoryHandler: getDriverHistoryHandler,
		listRoutesHandler:       listRoutesHandler,
		logger:                  logger.With("component", "http_server"),
	}
}

func (s *Server) GetRoot(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, servers.Status{Status: "ok", Message: bannerMessage})
}

func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateDriver handles POST /drivers - registers a new driver.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.NewDriver
	if err := ctx.Bind(&body); err != nil ||
		body.Id == nil || body.Name == nil || body.LicenseType == nil || body.Availability == nil {
		return fail(ctx, http.StatusBadRequest, invalidDriverPayload)
	}

	cmd, err := commands.NewCreateDriverCommand(*body.Id, *body.Name, *body.LicenseType, *body.Availability)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, invalidDriverPayload)
	}

	d, err := s.createDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateKey) {
			return fail(ctx, http.StatusConflict, driverAlreadyExists)
		}
		return s.internalError(ctx, "Failed to insert driver", err)
	}

	return ctx.JSON(http.StatusCreated, servers.Driver{
		Id:           d.ID().String(),
		Name:         d.Name(),
		LicenseType:  d.LicenseType(),
		Availability: d.IsAvailable(),
	})
}

// CreateRoute handles POST /routes - stores a route and tries to assign it.
func (s *Server) CreateRoute(ctx echo.Context) error {
	var body servers.NewRoute
	if err := ctx.Bind(&body); err != nil ||
		body.StartLocation == nil || body.EndLocation == nil || body.Distance == nil || body.EstimatedTime == nil {
		return fail(ctx, http.StatusBadRequest, invalidRoutePayload)
	}

	cmd, err := commands.NewCreateRouteCommand(*body.StartLocation, *body.EndLocation, *body.Distance, *body.EstimatedTime)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, invalidRoutePayload)
	}

	r, err := s.createRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.internalError(ctx, "Failed to insert route", err)
	}

	response := servers.Route{
		Id:            int64(r.ID()),
		StartLocation: r.Start().String(),
		EndLocation:   r.End().String(),
		Distance:      r.Distance().Float64(),
		EstimatedTime: r.EstimatedTime().Int(),
		Status:        r.Status().String(),
	}
	if driverID := r.AssignedDriverID(); driverID != nil {
		id := driverID.String()
		response.AssignedDriverId = &id
	}

	return ctx.JSON(http.StatusCreated, response)
}

// GetSchedule handles GET /schedule - every route with its driver.
func (s *Server) GetSchedule(ctx echo.Context) error {
	entries, err := s.getScheduleHandler.Handle(ctx.Request().Context(), queries.NewGetScheduleQuery())
	if err != nil {
		return s.internalError(ctx, "Failed to fetch schedule", err)
	}

	data := make([]servers.ScheduleEntry, len(entries))
	for i, entry := range entries {
		data[i] = servers.ScheduleEntry{
			Route: servers.ScheduledRoute{
				Id:            entry.Route.ID,
				StartLocation: entry.Route.StartLocation,
				EndLocation:   entry.Route.EndLocation,
				Distance:      entry.Route.Distance,
				EstimatedTime: entry.Route.EstimatedTime,
				Status:        entry.Route.Status,
			},
		}
		if entry.Driver != nil {
			data[i].Driver = &servers.DriverSummary{Id: entry.Driver.ID, Name: entry.Driver.Name}
		}
	}

	return ctx.JSON(http.StatusOK, servers.Schedule{Data: data})
}

// GetDriverHistory handles GET /drivers/:id/history.
func (s *Server) GetDriverHistory(ctx echo.Context, id string) error {
	query, err := queries.NewGetDriverHistoryQuery(id)
	if err != nil {
		return fail(ctx, http.StatusNotFound, driverNotFound)
	}

	response, err := s.getDriverHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fail(ctx, http.StatusNotFound, driverNotFound)
		}
		return s.internalError(ctx, "Failed to fetch driver history", err)
	}

	history := make([]servers.HistoryEntry, len(response.History))
	for i, entry := range response.History {
		history[i] = servers.HistoryEntry{
			AssignmentId:  entry.AssignmentID,
			AssignedAt:    entry.AssignedAt,
			CompletedAt:   entry.CompletedAt,
			RouteId:       entry.RouteID,
			StartLocation: entry.StartLocation,
			EndLocation:   entry.EndLocation,
			Distance:      entry.Distance,
			EstimatedTime: entry.EstimatedTime,
			Status:        entry.Status,
		}
	}

	return ctx.JSON(http.StatusOK, servers.DriverHistory{
		Driver:  servers.DriverSummary{Id: response.Driver.ID, Name: response.Driver.Name},
		History: history,
	})
}

// ListRoutes handles GET /routes - one page of routes.
func (s *Server) ListRoutes(ctx echo.Context, params servers.ListRoutesParams) error {
	var page, limit int
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	response, err := s.listRoutesHandler.Handle(ctx.Request().Context(), queries.NewListRoutesQuery(page, limit))
	if err != nil {
		return s.internalError(ctx, "Failed to fetch routes", err)
	}

	data := make([]servers.Route, len(response.Items))
	for i, item := range response.Items {
		data[i] = servers.Route{
			Id:               item.ID,
			StartLocation:    item.StartLocation,
			EndLocation:      item.EndLocation,
			Distance:         item.Distance,
			EstimatedTime:    item.EstimatedTime,
			Status:           item.Status,
			AssignedDriverId: item.AssignedDriverID,
		}
	}

	return ctx.JSON(http.StatusOK, servers.RoutePage{
		Data: data,
		Pagination: servers.Pagination{
			Page:       response.Page,
			Limit:      response.Limit,
			Total:      response.Total,
			TotalPages: response.TotalPages,
		},
	})
}

func (s *Server) internalError(ctx echo.Context, msg string, err error) error {
	s.logger.ErrorContext(ctx.Request().Context(), msg, "error", err)
	return fail(ctx, http.StatusInternalServerError, internalServerFailure)
}

func fail(ctx echo.Context, status int, msg string) error {
	return ctx.JSON(status, servers.Error{Error: msg})
}

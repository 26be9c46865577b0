package cmd

import (
	"log/slog"
	"net/http"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/metrics"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	registry   *prometheus.Registry
	recorder   commands.AssignmentRecorder
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	recorder, err := metrics.NewPromAssignmentRecorder(registry)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		registry:   registry,
		recorder:   recorder,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignRouteCommandHandler() commands.AssignRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRouteCommandHandler(
		f,
		services.NewFirstRegisteredSelector(),
		c.publisher,
		c.recorder,
		c.logger,
		commands.WithCandidateWindow(c.cfg.Dispatch.CandidateWindow),
	)
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRouteCommandHandler(f, c.CreateAssignRouteCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateAssignPendingRoutesCommandHandler() commands.AssignPendingRoutesCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPendingRoutesCommandHandler(f, c.CreateAssignRouteCommandHandler())
}

func (c *CompositionRoot) CreateGetScheduleQueryHandler() queries.GetScheduleQueryHandler {
	return queries.NewGetScheduleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverHistoryQueryHandler() queries.GetDriverHistoryQueryHandler {
	return queries.NewGetDriverHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRoutesQueryHandler() queries.ListRoutesQueryHandler {
	return queries.NewListRoutesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *CompositionRoot) CreateEcho() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCreateDriverCommandHandler(),
		c.CreateCreateRouteCommandHandler(),
		c.CreateGetScheduleQueryHandler(),
		c.CreateGetDriverHistoryQueryHandler(),
		c.CreateListRoutesQueryHandler(),
		c.logger,
	)
	return httpin.NewRouter(server, httpin.RouterOptions{
		Logger:         c.logger,
		EchoLogLevel:   EchoLogLevel(c.cfg.Logging),
		MetricsHandler: c.MetricsHandler(),
	})
}

// CreateJobManager wires the jobs enabled in configuration.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var enabled []jobs.Job

	pending := c.cfg.Jobs.PendingAssignment
	if pending.Enabled {
		enabled = append(enabled, jobs.NewPendingAssignmentJob(
			c.CreateAssignPendingRoutesCommandHandler(),
			pending.Schedule,
			pending.BatchSize,
			c.logger,
		))
	}

	return jobs.NewJobManager(enabled...)
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

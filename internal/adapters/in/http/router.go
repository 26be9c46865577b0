package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"dispatch/internal/generated/servers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

type RouterOptions struct {
	Logger *slog.Logger
	// EchoLogLevel sets the level of echo's own gommon logger.
	EchoLogLevel log.Lvl
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

var registerDocOnce sync.Once

// registerSwaggerDoc makes the embedded document available to the Swagger UI.
// swag panics on a second registration under the same name.
func registerSwaggerDoc() error {
	var err error
	registerDocOnce.Do(func() {
		var doc []byte
		if doc, err = servers.SpecJSON(); err != nil {
			return
		}
		swag.Register(swag.Name, swaggerDoc(doc))
	})
	return err
}

// NewRouter builds the echo instance serving the dispatch API.
func NewRouter(server *Server, opts RouterOptions) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	if err = registerSwaggerDoc(); err != nil {
		return nil, fmt.Errorf("register swagger doc: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if opts.EchoLogLevel != 0 {
		e.Logger.SetLevel(opts.EchoLogLevel)
	}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(validator)

	servers.RegisterHandlers(e, server)

	if opts.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request served", attrs...)
			return nil
		},
	})
}

// errorHandler renders every error as {"error": "..."}; anything that is not
// an echo.HTTPError becomes a 500.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := internalServerFailure

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			msg = fmt.Sprint(he.Message)
		} else {
			logger.ErrorContext(c.Request().Context(), "Unhandled error", "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, servers.Error{Error: msg})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", err)
		}
	}
}

package servers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /)
	GetRoot(ctx echo.Context) error
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /drivers)
	CreateDriver(ctx echo.Context) error
	// (GET /drivers/{id}/history)
	GetDriverHistory(ctx echo.Context, id string) error
	// (GET /routes)
	ListRoutes(ctx echo.Context, params ListRoutesParams) error
	// (POST /routes)
	CreateRoute(ctx echo.Context) error
	// (GET /schedule)
	GetSchedule(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetRoot(ctx echo.Context) error {
	return w.Handler.GetRoot(ctx)
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	return w.Handler.CreateDriver(ctx)
}

func (w *ServerInterfaceWrapper) GetDriverHistory(ctx echo.Context) error {
	var id string

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: "+err.Error())
	}

	return w.Handler.GetDriverHistory(ctx, id)
}

// ListRoutes binds page and limit leniently: "2.5" and "3abc" read as their
// leading integer, anything without one is treated as absent and the query
// falls back to its default.
func (w *ServerInterfaceWrapper) ListRoutes(ctx echo.Context) error {
	var params ListRoutesParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		params.Page = leadingInt(ctx.QueryParam("page"))
	}

	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		params.Limit = leadingInt(ctx.QueryParam("limit"))
	}

	return w.Handler.ListRoutes(ctx, params)
}

var leadingIntPattern = regexp.MustCompile(`^\s*[+-]?\d+`)

// leadingInt returns the integer prefix of raw, saturated to the int range,
// or nil when raw does not start with one.
func leadingInt(raw string) *int {
	prefix := leadingIntPattern.FindString(raw)
	if prefix == "" {
		return nil
	}

	v, err := strconv.ParseInt(strings.TrimSpace(prefix), 10, strconv.IntSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}
	n := int(v)
	return &n
}

func (w *ServerInterfaceWrapper) CreateRoute(ctx echo.Context) error {
	return w.Handler.CreateRoute(ctx)
}

func (w *ServerInterfaceWrapper) GetSchedule(ctx echo.Context) error {
	return w.Handler.GetSchedule(ctx)
}

// EchoRouter is implemented by both echo.Echo and echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/", wrapper.GetRoot)
	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.POST(baseURL+"/drivers", wrapper.CreateDriver)
	router.GET(baseURL+"/drivers/:id/history", wrapper.GetDriverHistory)
	router.GET(baseURL+"/routes", wrapper.ListRoutes)
	router.POST(baseURL+"/routes", wrapper.CreateRoute)
	router.GET(baseURL+"/schedule", wrapper.GetSchedule)
}

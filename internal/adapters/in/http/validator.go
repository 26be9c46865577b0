package http

import (
	"net/http"

	"dispatch/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

const invalidRequest = "Invalid request"

// RequestValidator rejects requests that do not match the OpenAPI document
// with 400 and the operation's x-invalid-request-message. Query parameters
// are left to the handlers, which clamp them instead of failing. Paths the
// document does not describe, such as /metrics, pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		ExcludeRequestQueryParams: true,
		AuthenticationFunc:        openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, servers.Error{Error: invalidRequestMessage(route.Operation)})
			}

			return next(c)
		}
	}, nil
}

func invalidRequestMessage(op *openapi3.Operation) string {
	if op == nil {
		return invalidRequest
	}
	if msg, ok := op.Extensions[servers.InvalidRequestMessageKey].(string); ok && msg != "" {
		return msg
	}
	return invalidRequest
}

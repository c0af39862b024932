package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var contractYAML []byte

// Contract returns the raw OpenAPI document served at /api/v1/openapi.yaml.
func Contract() []byte {
	return contractYAML
}

// LoadContract parses and validates the embedded OpenAPI document.
func LoadContract(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(contractYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}
	return doc, nil
}

// ValidateRequests checks every request that matches a contract operation
// against its parameters and body schema. Requests outside the contract, such
// as /health, pass through untouched.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build contract router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				var routeErr *routers.RouteError
				if errors.As(findErr, &routeErr) {
					return next(c)
				}
				return findErr
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
			}
			return next(c)
		}
	}, nil
}

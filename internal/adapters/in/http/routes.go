package http

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the echo instance with the contract validator in front of
// every API route.
func NewEcho(server *Server, contract *openapi3.T) (*echo.Echo, error) {
	validate, err := ValidateRequests(contract)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			server.logger.InfoContext(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))

	e.GET("/health", server.Health)
	e.GET("/api/v1/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", Contract())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/api/v1/openapi.yaml")))

	api := e.Group("/api/v1", RequireActor, validate)

	api.POST("/requests", server.CreateRequest)
	api.POST("/requests/:id/accept", server.AcceptRequest)
	api.POST("/requests/:id/deny", server.DenyRequest)
	api.POST("/requests/:id/reached", server.MarkReached)
	api.POST("/requests/:id/decision", server.Decide)
	api.POST("/requests/:id/claim", server.DonorClaim)

	api.POST("/donations", server.CreateDonation)
	api.POST("/donations/:id/status", server.UpdateDonationStatus)

	api.GET("/volunteers", server.FindVolunteers)
	api.GET("/volunteers/:id/assignments", server.GetVolunteerAssignments)
	api.GET("/history/:id", server.GetStatusHistory)
	api.GET("/notifications", server.GetNotifications)

	return e, nil
}

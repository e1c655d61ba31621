package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// APIInfo is what clients get from the public health endpoint
type APIInfo struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

// DefaultEndpoints lists the public routes announced by /api/health
var DefaultEndpoints = map[string]string{
	"payments":    "/api/payments?action=[approve|complete|verify|status]",
	"approve":     "POST /api/payments/approve",
	"complete":    "POST /api/payments/complete",
	"verify":      "GET /api/payments/verify?paymentId=",
	"status":      "GET /api/payments/status?paymentId=",
	"entitlement": "GET /api/payments/entitlement?paymentId=",
	"health":      "/api/health",
}

// NewAPIInfoHandler creates a handler describing the service
func NewAPIInfoHandler(serviceName, version string, endpoints map[string]string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, APIInfo{
			Status:    "ok",
			Service:   serviceName,
			Version:   version,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Endpoints: endpoints,
		})
	}
}

// RegisterAPIHealthEndpoint registers GET /api/health
func RegisterAPIHealthEndpoint(e *echo.Echo, serviceName, version string) {
	e.GET("/api/health", NewAPIInfoHandler(serviceName, version, DefaultEndpoints))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers GET /health for load balancers and uptime probes.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "bus-ticketing"})
}

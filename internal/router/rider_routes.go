package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/handler"
	"github.com/iliyamo/bus-ticketing/internal/middleware"
)

// RegisterRider mounts the RIDER-scoped booking endpoints under /v1.
// Seat maps stay on the public router; everything here changes state on
// behalf of the signed-in rider.
func RegisterRider(e *echo.Echo, h *handler.RiderHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("RIDER"),
	)
	g.POST("/trips/:id/lock", h.LockSeats)
	g.DELETE("/trips/:id/lock", h.ReleaseLocks)
	g.POST("/trips/:id/confirm", h.ConfirmBooking)
	g.GET("/my-bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
}

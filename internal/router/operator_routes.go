package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/handler"
	"github.com/iliyamo/bus-ticketing/internal/middleware"
)

// RegisterOperator mounts the OPERATOR-scoped fleet management endpoints
// under /v1. Every route requires a valid JWT with the OPERATOR role;
// per-resource ownership is enforced in the handlers and queries.
func RegisterOperator(e *echo.Echo, o *handler.OperatorHandler, b *handler.OperatorBookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OPERATOR"),
	)

	// ---- Routes ----
	g.POST("/operator/routes", o.CreateRoute)
	g.GET("/operator/routes", o.ListRoutes)
	g.PUT("/operator/routes/:id", o.UpdateRoute)
	g.PATCH("/operator/routes/:id", o.UpdateRoute)
	g.DELETE("/operator/routes/:id", o.DeleteRoute)

	// ---- Vehicles ----
	g.POST("/vehicles", o.CreateVehicle)
	g.GET("/vehicles", o.ListVehicles)
	g.PUT("/vehicles/:id", o.UpdateVehicle)
	g.PATCH("/vehicles/:id", o.UpdateVehicle)
	g.GET("/vehicles/:id/layout", o.GetVehicleLayout)
	g.DELETE("/vehicles/:id", o.DeleteVehicle)

	// Stateless layout preview; generates without persisting anything.
	g.POST("/layout/preview", o.PreviewLayout)

	// ---- Trips ----
	g.POST("/operator/trips", o.CreateTrip)
	g.GET("/operator/routes/:id/trips", o.ListTripsOnRoute)
	g.PUT("/operator/trips/:id", o.UpdateTrip)
	g.PATCH("/operator/trips/:id", o.UpdateTrip)
	g.DELETE("/operator/trips/:id", o.DeleteTrip)

	// ---- Bookings (read side) ----
	g.GET("/operator/trips/:id/bookings", b.ListTripBookings)
}

// Package router wires HTTP routes to their handlers and guards.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/handler"
	"github.com/iliyamo/bus-ticketing/internal/middleware"
)

// RegisterRoutes registers endpoints that carry no authentication at
// all. Currently just the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth mounts the session lifecycle under /v1/auth plus the
// authenticated /v1/me endpoint. Register, login, refresh and logout
// work without an access token; /v1/me requires one with any known
// role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh) // rotates the refresh token
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OPERATOR", "RIDER"))
	auth.GET("/me", a.Me)

	// alias; clients may call either path with a refresh token
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic mounts the guest browse endpoints: routes, trips, trip
// search and the per-trip seat map. No JWT is applied so riders can
// explore before signing in.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/routes", p.GetPublicRoutes)
	e.GET("/v1/routes/:id/trips", p.GetPublicTripsByRoute)
	e.GET("/v1/trips/search", p.SearchTrips)
	e.GET("/v1/trips/:id", p.GetPublicTrip)
	e.GET("/v1/trips/:id/seats", p.GetTripSeatMap)
}

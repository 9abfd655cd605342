package handler // handler defines http handlers

import (
	"errors"  // sentinel value used by getUserID
	"strconv" // string to numeric conversions

	"github.com/iliyamo/bus-ticketing/internal/repository" // data access layer
	"github.com/labstack/echo/v4"                          // request context types
)

// OperatorHandler bundles the repositories operators need to manage
// their fleet: routes, vehicles and trips.
type OperatorHandler struct {
	RouteRepo   *repository.RouteRepo   // route persistence
	VehicleRepo *repository.VehicleRepo // vehicle persistence
	TripRepo    *repository.TripRepo    // trip persistence
}

// NewOperatorHandler constructs an OperatorHandler and panics if any
// dependency is nil; wiring errors should fail at startup, not per request.
func NewOperatorHandler(routeRepo *repository.RouteRepo, vehicleRepo *repository.VehicleRepo, tripRepo *repository.TripRepo) *OperatorHandler {
	if routeRepo == nil || vehicleRepo == nil || tripRepo == nil {
		panic("nil repository passed to NewOperatorHandler")
	}
	return &OperatorHandler{
		RouteRepo:   routeRepo,
		VehicleRepo: vehicleRepo,
		TripRepo:    tripRepo,
	}
}

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64 regardless of how it was stored.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseIDParam parses a numeric path parameter such as :id.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

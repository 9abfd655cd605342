// DELETE endpoints for operator-owned resources. Cascading removal and
// dependency checks live in the repository layer; this file maps the
// sentinel errors onto the right HTTP status codes: 404 for missing
// rows, 403 when the resource belongs to another operator, 409 when
// dependent records block the delete.
package handler

import (
	"database/sql"
	"net/http"

	"github.com/iliyamo/bus-ticketing/internal/repository"
	"github.com/labstack/echo/v4"
)

// DeleteRoute handles DELETE /v1/routes/:id.  Removing a route cascades
// through its trips, seat locks and bookings.
func (h *OperatorHandler) DeleteRoute(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.RouteRepo.DeleteByIDAndOperator(c.Request().Context(), id, operatorID)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteVehicle handles DELETE /v1/vehicles/:id.  A vehicle that trips
// still reference cannot be removed.
func (h *OperatorHandler) DeleteVehicle(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.VehicleRepo.DeleteByIDAndOperator(c.Request().Context(), id, operatorID)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete vehicle with scheduled trips"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTrip handles DELETE /v1/trips/:id.  Trips with confirmed
// bookings cannot be removed; cancel the bookings first.
func (h *OperatorHandler) DeleteTrip(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.TripRepo.DeleteByIDAndOperator(c.Request().Context(), id, operatorID)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete trip with confirmed bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

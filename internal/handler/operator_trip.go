package handler // operator-facing trip scheduling

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/repository"
)

const dbTimeLayout = "2006-01-02 15:04:05"

// CreateTrip handles POST /v1/trips: schedules a vehicle on a route.  The
// vehicle must be layout-ready, otherwise riders could not be shown a
// seat map that matches what they are buying.
func (h *OperatorHandler) CreateTrip(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		RouteID   uint64 `json:"route_id"`
		VehicleID uint64 `json:"vehicle_id"`
		DepartsAt string `json:"departs_at"` // RFC3339
		ArrivesAt string `json:"arrives_at"` // RFC3339
		FareCents uint32 `json:"fare_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RouteID == 0 || body.VehicleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "route_id and vehicle_id are required"})
	}
	if strings.TrimSpace(body.DepartsAt) == "" || strings.TrimSpace(body.ArrivesAt) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departs_at and arrives_at are required"})
	}
	departs, err := time.Parse(time.RFC3339, strings.TrimSpace(body.DepartsAt))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid departs_at format"})
	}
	arrives, err := time.Parse(time.RFC3339, strings.TrimSpace(body.ArrivesAt))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid arrives_at format"})
	}
	if !arrives.After(departs) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrives_at must be after departs_at"})
	}

	if _, err := h.RouteRepo.GetByIDAndOperator(c.Request().Context(), body.RouteID, operatorID); err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify route"})
	}
	vehicle, err := h.VehicleRepo.GetByIDAndOperator(c.Request().Context(), body.VehicleID, operatorID)
	if err != nil {
		if err == repository.ErrVehicleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify vehicle"})
	}
	if !vehicle.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle is not active"})
	}
	if !vehicleLayoutReady(vehicle) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "layout not ready"})
	}

	trip := &repository.Trip{
		RouteID:   body.RouteID,
		VehicleID: body.VehicleID,
		DepartsAt: departs.UTC().Format(dbTimeLayout),
		ArrivesAt: arrives.UTC().Format(dbTimeLayout),
		FareCents: body.FareCents,
		Status:    "SCHEDULED",
	}
	if err := h.TripRepo.Create(c.Request().Context(), trip); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create trip"})
	}
	return c.JSON(http.StatusCreated, trip)
}

// ListTripsOnRoute handles GET /v1/operator/routes/:id/trips.
func (h *OperatorHandler) ListTripsOnRoute(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	routeID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route id"})
	}
	if _, err := h.RouteRepo.GetByIDAndOperator(c.Request().Context(), routeID, operatorID); err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	trips, err := h.TripRepo.ListByRoute(c.Request().Context(), routeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load trips"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": trips})
}

// UpdateTrip handles PUT /v1/trips/:id for schedule and fare changes.
// Absent fields keep their current values.
func (h *OperatorHandler) UpdateTrip(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.TripRepo.GetByIDAndOperator(c.Request().Context(), id, operatorID)
	if err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load trip"})
	}

	var body struct {
		DepartsAt *string `json:"departs_at"`
		ArrivesAt *string `json:"arrives_at"`
		FareCents *uint32 `json:"fare_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	departsStr, arrivesStr := cur.DepartsAt, cur.ArrivesAt
	if body.DepartsAt != nil && strings.TrimSpace(*body.DepartsAt) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.DepartsAt))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid departs_at format"})
		}
		departsStr = t.UTC().Format(dbTimeLayout)
	}
	if body.ArrivesAt != nil && strings.TrimSpace(*body.ArrivesAt) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.ArrivesAt))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid arrives_at format"})
		}
		arrivesStr = t.UTC().Format(dbTimeLayout)
	}
	departs, err := time.Parse(dbTimeLayout, departsStr)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid stored departs_at"})
	}
	arrives, err := time.Parse(dbTimeLayout, arrivesStr)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid stored arrives_at"})
	}
	if !arrives.After(departs) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrives_at must be after departs_at"})
	}

	fare := cur.FareCents
	if body.FareCents != nil {
		fare = *body.FareCents
	}

	if err := h.TripRepo.Update(c.Request().Context(), id, operatorID, departsStr, arrivesStr, fare); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoChange):
			return c.JSON(http.StatusConflict, echo.Map{"error": "trip already has these parameters"})
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	fresh, err := h.TripRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load trip"})
	}
	return c.JSON(http.StatusOK, fresh)
}

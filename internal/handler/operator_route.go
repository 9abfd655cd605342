package handler // operator-facing route management

import (
	"net/http" // status code constants
	"strings"  // trimming utilities

	"github.com/iliyamo/bus-ticketing/internal/repository"
	"github.com/labstack/echo/v4"
)

// CreateRoute handles POST /v1/routes and registers a new origin to
// destination pair for the authenticated operator.
func (h *OperatorHandler) CreateRoute(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	origin := strings.TrimSpace(body.Origin)
	destination := strings.TrimSpace(body.Destination)
	if origin == "" || destination == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination are required"})
	}
	if strings.EqualFold(origin, destination) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination must differ"})
	}
	rt := &repository.Route{
		OperatorID:  operatorID,
		Origin:      origin,
		Destination: destination,
	}
	if err := h.RouteRepo.Create(c.Request().Context(), rt); err != nil {
		if strings.Contains(err.Error(), "1062") { // duplicate origin/destination per operator
			return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create route"})
	}
	return c.JSON(http.StatusCreated, rt)
}

// UpdateRoute handles PUT /v1/routes/:id.
func (h *OperatorHandler) UpdateRoute(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	origin := strings.TrimSpace(body.Origin)
	destination := strings.TrimSpace(body.Destination)
	if origin == "" || destination == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination are required"})
	}
	if strings.EqualFold(origin, destination) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination must differ"})
	}
	if _, err := h.RouteRepo.GetByIDAndOperator(c.Request().Context(), id, operatorID); err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.RouteRepo.Update(c.Request().Context(), id, operatorID, origin, destination); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, _ := h.RouteRepo.GetByID(c.Request().Context(), id)
	return c.JSON(http.StatusOK, updated)
}

// ListRoutes handles GET /v1/routes and returns the operator's routes.
func (h *OperatorHandler) ListRoutes(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.RouteRepo.ListByOperator(c.Request().Context(), operatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

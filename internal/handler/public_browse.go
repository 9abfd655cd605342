// Public browsing endpoints. Unauthenticated riders can list routes,
// see upcoming trips and fetch the seat map of a trip. Responses carry
// only rider-safe fields; operator IDs and raw timestamps stay out.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/layout"
	"github.com/iliyamo/bus-ticketing/internal/repository"
)

// PublicHandler aggregates the repositories needed for unauthenticated
// browsing and the trip seat map.
type PublicHandler struct {
	RouteRepo    *repository.RouteRepo
	TripRepo     *repository.TripRepo
	VehicleRepo  *repository.VehicleRepo
	SeatLockRepo *repository.SeatLockRepo
	BookingRepo  *repository.BookingRepo
}

// PublicRoute is a route as exposed to riders.
type PublicRoute struct {
	ID          uint64 `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// PublicTrip is a trip in public list responses.
type PublicTrip struct {
	ID        uint64    `json:"id"`
	RouteID   uint64    `json:"route_id"`
	DepartsAt time.Time `json:"departs_at"`
	ArrivesAt time.Time `json:"arrives_at"`
	FareCents uint32    `json:"fare_cents"`
	Status    string    `json:"status"`
}

// seatMapEntry is one seat of the trip seat map with its derived status.
type seatMapEntry struct {
	SeatNumber string          `json:"seat_number"`
	SeatType   layout.SeatType `json:"seat_type"`
	Position   layout.Position `json:"position"`
	Status     layout.Status   `json:"status"`
}

// GetPublicRoutes handles GET /v1/routes (public) and lists every route.
func (h *PublicHandler) GetPublicRoutes(c echo.Context) error {
	ctx := c.Request().Context()
	routes, err := h.RouteRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRoute, 0, len(routes))
	for _, rt := range routes {
		out = append(out, PublicRoute{ID: rt.ID, Origin: rt.Origin, Destination: rt.Destination})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicTripsByRoute handles GET /v1/routes/:id/trips for riders.
func (h *PublicHandler) GetPublicTripsByRoute(c echo.Context) error {
	ctx := c.Request().Context()
	routeID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.RouteRepo.GetByID(ctx, routeID); err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	trips, err := h.TripRepo.ListByRoute(ctx, routeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicTrip, 0, len(trips))
	for _, t := range trips {
		departs, _ := time.Parse(dbTimeLayout, t.DepartsAt)
		arrives, _ := time.Parse(dbTimeLayout, t.ArrivesAt)
		out = append(out, PublicTrip{
			ID:        t.ID,
			RouteID:   t.RouteID,
			DepartsAt: departs,
			ArrivesAt: arrives,
			FareCents: t.FareCents,
			Status:    t.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicTrip handles GET /v1/trips/:id with joined route and vehicle
// names.
func (h *PublicHandler) GetPublicTrip(c echo.Context) error {
	ctx := c.Request().Context()
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.TripRepo.GetByID(ctx, tripID)
	if err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	departs, _ := time.Parse(dbTimeLayout, t.DepartsAt)
	arrives, _ := time.Parse(dbTimeLayout, t.ArrivesAt)
	resp := echo.Map{
		"id":         t.ID,
		"departs_at": departs,
		"arrives_at": arrives,
		"fare_cents": t.FareCents,
		"status":     t.Status,
	}
	if rt, err := h.RouteRepo.GetByID(ctx, t.RouteID); err == nil {
		resp["route"] = PublicRoute{ID: rt.ID, Origin: rt.Origin, Destination: rt.Destination}
	}
	if v, err := h.VehicleRepo.GetByID(ctx, t.VehicleID); err == nil {
		resp["vehicle"] = echo.Map{"id": v.ID, "name": v.Name, "class": v.Class, "total_seats": v.TotalSeats}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTripSeatMap handles GET /v1/trips/:id/seats: the rider-facing seat
// map.  The vehicle's stored layout is normalized (canonical, legacy or
// synthesized fallback) and each seat is tagged with its current status
// derived from the confirmed bookings and unexpired locks on the trip.
// Selections are a client-side concern, so the endpoint only ever
// reports booked, locked or available.
func (h *PublicHandler) GetTripSeatMap(c echo.Context) error {
	ctx := c.Request().Context()
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.TripRepo.GetByID(ctx, tripID)
	if err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	v, err := h.VehicleRepo.GetByID(ctx, t.VehicleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resolved := layout.Normalize(decodeStoredLayout(v.LayoutJSON), int(v.TotalSeats), layout.VehicleClass(v.Class))
	if resolved == nil {
		// no layout and no seat count: nothing to render
		return c.JSON(http.StatusOK, echo.Map{
			"trip_id": tripID,
			"layout":  nil,
			"seats":   []seatMapEntry{},
		})
	}

	booked, err := h.BookingRepo.BookedSeatNumbers(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	locked, err := h.SeatLockRepo.ActiveSeatNumbers(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	seats := resolved.Seats()
	entries := make([]seatMapEntry, 0, len(seats))
	available := 0
	for _, s := range seats {
		st := layout.DeriveStatus(s.Number, booked, locked, nil)
		if st == layout.StatusAvailable {
			available++
		}
		entries = append(entries, seatMapEntry{
			SeatNumber: s.Number,
			SeatType:   s.Type,
			Position:   s.Position,
			Status:     st,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"trip_id":         tripID,
		"total_rows":      resolved.TotalRows,
		"total_seats":     len(entries),
		"available_seats": available,
		"seats":           entries,
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/repository"
)

// OperatorBookingHandler exposes the read side of bookings to the
// operator who owns the route a trip runs on.
type OperatorBookingHandler struct {
	BookingRepo *repository.BookingRepo
}

// NewOperatorBookingHandler constructs the handler.
func NewOperatorBookingHandler(bookingRepo *repository.BookingRepo) *OperatorBookingHandler {
	if bookingRepo == nil {
		panic("nil repository passed to NewOperatorBookingHandler")
	}
	return &OperatorBookingHandler{BookingRepo: bookingRepo}
}

// ListTripBookings handles GET /v1/operator/trips/:id/bookings. Ownership
// is enforced inside the query: bookings only come back when the trip's
// route belongs to the caller, so an unknown trip and a foreign trip both
// read as an empty list.
func (h *OperatorBookingHandler) ListTripBookings(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	details, err := h.BookingRepo.ListByTripForOperator(c.Request().Context(), tripID, operatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"trip_id": tripID,
		"count":   len(details),
		"items":   details,
	})
}

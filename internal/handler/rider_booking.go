package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/layout"
	"github.com/iliyamo/bus-ticketing/internal/queue"
	"github.com/iliyamo/bus-ticketing/internal/repository"
	queue_publisher "github.com/iliyamo/bus-ticketing/internal/service"
)

// Seat locks expire this long after creation; expiry is lazy, enforced
// inside the lock and confirm transactions.
const lockTTL = 5 * time.Minute

// MaxSeatsPerBooking caps how many seats one rider can take on a single
// trip across locks and the final booking.
const MaxSeatsPerBooking = 6

// RiderHandler groups the repositories for the rider booking flow: lock
// seats, confirm a booking, release locks, list and cancel bookings.
// JWT authentication and the RIDER role guard run in middleware before
// any of these methods. Critical write paths run inside a transaction.
type RiderHandler struct {
	TripRepo     *repository.TripRepo
	VehicleRepo  *repository.VehicleRepo
	SeatLockRepo *repository.SeatLockRepo
	BookingRepo  *repository.BookingRepo
	RouteRepo    *repository.RouteRepo
	// PublishEvents disables the RabbitMQ publish when false, for
	// environments without a broker.
	PublishEvents bool
}

// NewRiderHandler constructs a RiderHandler. All repositories must be
// non-nil.
func NewRiderHandler(tripRepo *repository.TripRepo, vehicleRepo *repository.VehicleRepo, seatLockRepo *repository.SeatLockRepo, bookingRepo *repository.BookingRepo, routeRepo *repository.RouteRepo, publishEvents bool) *RiderHandler {
	if tripRepo == nil || vehicleRepo == nil || seatLockRepo == nil || bookingRepo == nil || routeRepo == nil {
		panic("nil repository passed to NewRiderHandler")
	}
	return &RiderHandler{
		TripRepo:      tripRepo,
		VehicleRepo:   vehicleRepo,
		SeatLockRepo:  seatLockRepo,
		BookingRepo:   bookingRepo,
		RouteRepo:     routeRepo,
		PublishEvents: publishEvents,
	}
}

// loadBookableTrip fetches a trip and rejects ones that cannot take new
// locks or bookings: unknown, cancelled or already departed.
func (h *RiderHandler) loadBookableTrip(c echo.Context, tripID uint64) (*repository.Trip, error) {
	t, err := h.TripRepo.GetByID(c.Request().Context(), tripID)
	if err != nil {
		if err == repository.ErrTripNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if t.Status != "SCHEDULED" {
		return nil, c.JSON(http.StatusConflict, echo.Map{"error": "trip is not open for booking"})
	}
	departs, err := time.Parse(dbTimeLayout, t.DepartsAt)
	if err == nil && !departs.After(time.Now().UTC()) {
		return nil, c.JSON(http.StatusConflict, echo.Map{"error": "trip already departed"})
	}
	return t, nil
}

// LockSeats handles POST /v1/trips/:id/lock. The rider submits the seat
// numbers of their current selection; each one is validated against the
// vehicle's resolved layout and against the seats already booked or
// locked on this trip. On success every seat gets a five-minute lock
// with its own token, all created in one transaction.
func (h *RiderHandler) LockSeats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	trip, errResp := h.loadBookableTrip(c, tripID)
	if trip == nil {
		return errResp
	}
	vehicle, err := h.VehicleRepo.GetByID(c.Request().Context(), trip.VehicleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resolved := layout.Normalize(decodeStoredLayout(vehicle.LayoutJSON), int(vehicle.TotalSeats), layout.VehicleClass(vehicle.Class))
	if resolved == nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "layout not ready"})
	}

	var body struct {
		SeatNumbers []string `json:"seat_numbers"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.SeatNumbers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_numbers is required"})
	}
	// dedupe, preserving the rider's selection order
	unique := make([]string, 0, len(body.SeatNumbers))
	seen := make(map[string]struct{})
	for _, sn := range body.SeatNumbers {
		sn = strings.TrimSpace(sn)
		if sn == "" {
			continue
		}
		if _, ok := seen[sn]; !ok {
			seen[sn] = struct{}{}
			unique = append(unique, sn)
		}
	}
	if len(unique) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no valid seat numbers provided"})
	}
	unknown := make([]string, 0)
	for _, sn := range unique {
		if !resolved.HasSeat(sn) {
			unknown = append(unknown, sn)
		}
	}
	if len(unknown) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "unknown seats for this vehicle",
			"unknown": unknown,
		})
	}

	ctx := c.Request().Context()
	tx, err := h.TripRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// drop expired locks before judging availability
	if _, err := h.SeatLockRepo.ExpireLocksTx(ctx, tx, tripID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cleanup expired locks"})
	}
	booked, err := h.BookingRepo.BookedSeatNumbersTx(ctx, tx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check seat availability"})
	}
	locked, err := h.SeatLockRepo.ActiveSeatNumbersTx(ctx, tx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check seat availability"})
	}
	unavailable := make([]string, 0)
	for _, sn := range unique {
		if layout.DeriveStatus(sn, booked, locked, nil) != layout.StatusAvailable {
			unavailable = append(unavailable, sn)
		}
	}
	if len(unavailable) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       "some seats are unavailable",
			"unavailable": unavailable,
		})
	}

	existing, err := h.SeatLockRepo.ActiveLocksByUserAndTripTx(ctx, tx, userID, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load existing locks"})
	}
	if len(existing)+len(unique) > MaxSeatsPerBooking {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":     "seat limit exceeded",
			"max_seats": MaxSeatsPerBooking,
		})
	}

	expiresAt := time.Now().UTC().Add(lockTTL)
	locks := repository.GenerateLockRecords(userID, tripID, unique, expiresAt)
	if err := h.SeatLockRepo.CreateMultipleTx(ctx, tx, locks); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create locks"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	items := make([]echo.Map, 0, len(locks))
	for _, l := range locks {
		items = append(items, echo.Map{"seat_number": l.SeatNumber, "lock_token": l.LockToken})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"expires_at": expiresAt.Format(time.RFC3339),
		"locks":      items,
	})
}

// ReleaseLocks handles DELETE /v1/trips/:id/lock and releases every lock
// the rider holds on the trip.
func (h *RiderHandler) ReleaseLocks(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	ctx := c.Request().Context()
	tx, err := h.TripRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	released, err := h.SeatLockRepo.DeleteByUserAndTripTx(ctx, tx, userID, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release locks"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"released": len(released),
	})
}

// ConfirmBooking handles POST /v1/trips/:id/confirm. The rider's active
// locks become a confirmed booking: one booking row plus one seat row
// per lock, in the order the seats were locked. The passengers array
// pairs with the locked seats by position — passenger N rides in the
// N-th seat of the rider's selection.
func (h *RiderHandler) ConfirmBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	trip, errResp := h.loadBookableTrip(c, tripID)
	if trip == nil {
		return errResp
	}

	var body struct {
		Passengers []string `json:"passengers"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	tx, err := h.TripRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := h.SeatLockRepo.ExpireLocksTx(ctx, tx, tripID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cleanup expired locks"})
	}
	locks, err := h.SeatLockRepo.ActiveLocksByUserAndTripTx(ctx, tx, userID, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load locks"})
	}
	if len(locks) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no active seat locks for this trip"})
	}
	if len(body.Passengers) != len(locks) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":        "passengers must match locked seats",
			"locked_seats": len(locks),
		})
	}
	for i, p := range body.Passengers {
		if strings.TrimSpace(p) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger name required", "position": i})
		}
	}

	total := trip.FareCents * uint32(len(locks))
	booking := &repository.BookingRecord{
		UserID:           userID,
		TripID:           tripID,
		Status:           "CONFIRMED",
		TotalAmountCents: total,
	}
	if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	seats := make([]repository.BookingSeatRecord, 0, len(locks))
	seatNumbers := make([]string, 0, len(locks))
	for i, l := range locks {
		seatNumbers = append(seatNumbers, l.SeatNumber)
		seats = append(seats, repository.BookingSeatRecord{
			BookingID:     booking.ID,
			TripID:        tripID,
			SeatNumber:    l.SeatNumber,
			PassengerName: strings.TrimSpace(body.Passengers[i]),
			Position:      uint32(i),
			FareCents:     trip.FareCents,
		})
	}
	if err := h.BookingRepo.CreateSeatsBulkTx(ctx, tx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking seats"})
	}
	if _, err := h.SeatLockRepo.DeleteByUserAndTripTx(ctx, tx, userID, tripID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete locks"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if h.PublishEvents {
		h.publishConfirmed(booking.ID, userID, trip, seatNumbers, body.Passengers, total)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":         booking.ID,
		"seat_numbers":       seatNumbers,
		"total_amount_cents": total,
	})
}

// publishConfirmed emits the booking.confirmed event in the background.
// The booking is already committed; a publish failure is only logged.
func (h *RiderHandler) publishConfirmed(bookingID, userID uint64, trip *repository.Trip, seatNumbers, passengers []string, total uint32) {
	ev := queue.BookingConfirmedEvent{
		BookingID:        bookingID,
		UserID:           userID,
		TripID:           trip.ID,
		RouteID:          trip.RouteID,
		VehicleID:        trip.VehicleID,
		DepartsAt:        trip.DepartsAt,
		ArrivesAt:        trip.ArrivesAt,
		SeatNumbers:      seatNumbers,
		Passengers:       passengers,
		TotalAmountCents: total,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	bg := context.Background()
	if rt, err := h.RouteRepo.GetByID(bg, trip.RouteID); err == nil {
		ev.Origin, ev.Destination = rt.Origin, rt.Destination
	}
	if v, err := h.VehicleRepo.GetByID(bg, trip.VehicleID); err == nil {
		ev.VehicleName = v.Name
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
			log.Printf("booking event publish failed: %v", err)
		}
	}()
}

// ListBookings handles GET /v1/my-bookings for the current rider.
func (h *RiderHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": details,
	})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *RiderHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.BookingRepo.GetByIDForUser(c.Request().Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// not found or not owned; ownership enforced in the query
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item": detail,
	})
}

// CancelBooking handles DELETE /v1/bookings/:id. A booking can only be
// cancelled before the trip departs; the seat rows are kept for audit
// and the seats become available again because availability only counts
// CONFIRMED bookings.
func (h *RiderHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	tx, err := h.TripRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	_, departsAt, _, err := h.BookingRepo.GetInfoForUserTx(ctx, tx, bookingID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking info"})
	}
	if !departsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "trip already departed"})
	}
	if err := h.BookingRepo.CancelTx(ctx, tx, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

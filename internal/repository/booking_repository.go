// Package repository: booking persistence. A booking covers one or more
// seats on a trip; booking_seats rows carry the seat number, the passenger
// name and the position of the seat in the rider's original selection
// order. Position matters: passenger form N corresponds to selection
// position N, and listing endpoints must return seats in that order.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// BookingRecord mirrors the bookings table.
type BookingRecord struct {
	ID               uint64
	UserID           uint64
	TripID           uint64
	Status           string // CONFIRMED | CANCELLED
	TotalAmountCents uint32
	CreatedAt        time.Time
}

// BookingSeatRecord mirrors the booking_seats table.
type BookingSeatRecord struct {
	ID            uint64
	BookingID     uint64
	TripID        uint64
	SeatNumber    string
	PassengerName string
	Position      uint32
	FareCents     uint32
}

// BookingDetail is a denormalized view of one booking for rider-facing
// listings: route, vehicle and schedule joined in, seats in selection order.
type BookingDetail struct {
	ID               uint64            `json:"id"`
	TripID           uint64            `json:"trip_id"`
	Origin           string            `json:"origin"`
	Destination      string            `json:"destination"`
	VehicleName      string            `json:"vehicle_name"`
	Class            string            `json:"class"`
	DepartsAt        string            `json:"departs_at"`
	Status           string            `json:"status"`
	TotalAmountCents uint32            `json:"total_amount_cents"`
	Seats            []BookingSeatView `json:"seats"`
}

// BookingSeatView is one seat of a BookingDetail.
type BookingSeatView struct {
	SeatNumber    string `json:"seat_number"`
	PassengerName string `json:"passenger_name"`
	FareCents     uint32 `json:"fare_cents"`
}

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides data access to bookings and booking_seats.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts the booking header row inside the caller's transaction
// and populates the generated ID.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
	const q = `INSERT INTO bookings (user_id, trip_id, status, total_amount_cents) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.TripID, b.Status, b.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// CreateSeatsBulkTx inserts all seat rows of a booking in one statement.
// The caller supplies the records in selection order; Position encodes it.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, seats []BookingSeatRecord) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, trip_id, seat_number, passenger_name, position, fare_cents) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, s.BookingID, s.TripID, s.SeatNumber, s.PassengerName, s.Position, s.FareCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// BookedSeatNumbersTx returns the seat numbers of all confirmed bookings on
// a trip, for availability checks inside a lock/book transaction.
func (r *BookingRepo) BookedSeatNumbersTx(ctx context.Context, tx *sql.Tx, tripID uint64) ([]string, error) {
	return scanSeatNumbers(tx.QueryContext(ctx, bookedSeatsQuery, tripID))
}

// BookedSeatNumbers is the non-transactional variant used by read-only
// seat-map rendering.
func (r *BookingRepo) BookedSeatNumbers(ctx context.Context, tripID uint64) ([]string, error) {
	return scanSeatNumbers(r.db.QueryContext(ctx, bookedSeatsQuery, tripID))
}

const bookedSeatsQuery = `SELECT bs.seat_number
	FROM booking_seats bs
	JOIN bookings b ON b.id = bs.booking_id
	WHERE bs.trip_id = ? AND b.status = 'CONFIRMED'
	ORDER BY bs.id`

func scanSeatNumbers(rows *sql.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var sn string
		if err := rows.Scan(&sn); err != nil {
			return nil, err
		}
		out = append(out, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns all bookings of a rider with joined trip details.
// Seats inside each booking are ordered by their selection position.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.trip_id, r.origin, r.destination, v.name, v.class,
					  DATE_FORMAT(t.departs_at, '%Y-%m-%d %T'), b.status, b.total_amount_cents
			   FROM bookings b
			   JOIN trips t    ON t.id = b.trip_id
			   JOIN routes r   ON r.id = t.route_id
			   JOIN vehicles v ON v.id = t.vehicle_id
			   WHERE b.user_id = ?
			   ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingDetail
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.TripID, &d.Origin, &d.Destination, &d.VehicleName, &d.Class,
			&d.DepartsAt, &d.Status, &d.TotalAmountCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		seats, err := r.seatsForBooking(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Seats = seats
	}
	return out, nil
}

// GetByIDForUser returns the detail of a single booking owned by the user.
// sql.ErrNoRows is returned when the booking does not exist or belongs to
// someone else (ownership enforced in the WHERE clause).
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
	const q = `SELECT b.id, b.trip_id, r.origin, r.destination, v.name, v.class,
					  DATE_FORMAT(t.departs_at, '%Y-%m-%d %T'), b.status, b.total_amount_cents
			   FROM bookings b
			   JOIN trips t    ON t.id = b.trip_id
			   JOIN routes r   ON r.id = t.route_id
			   JOIN vehicles v ON v.id = t.vehicle_id
			   WHERE b.id = ? AND b.user_id = ?`
	var d BookingDetail
	err := r.db.QueryRowContext(ctx, q, bookingID, userID).Scan(
		&d.ID, &d.TripID, &d.Origin, &d.Destination, &d.VehicleName, &d.Class,
		&d.DepartsAt, &d.Status, &d.TotalAmountCents)
	if err != nil {
		return nil, err
	}
	seats, err := r.seatsForBooking(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Seats = seats
	return &d, nil
}

func (r *BookingRepo) seatsForBooking(ctx context.Context, bookingID uint64) ([]BookingSeatView, error) {
	const q = `SELECT seat_number, passenger_name, fare_cents
			   FROM booking_seats WHERE booking_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BookingSeatView
	for rows.Next() {
		var s BookingSeatView
		if err := rows.Scan(&s.SeatNumber, &s.PassengerName, &s.FareCents); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInfoForUserTx loads the trip id, departure time and seat numbers of a
// booking inside a transaction, for cancellation. Returns sql.ErrNoRows when
// the booking does not exist and ErrForbidden when it belongs to another
// user.
func (r *BookingRepo) GetInfoForUserTx(ctx context.Context, tx *sql.Tx, bookingID, userID uint64) (tripID uint64, departsAt time.Time, seatNumbers []string, err error) {
	var ownerID uint64
	var departs string
	const q = `SELECT b.user_id, b.trip_id, DATE_FORMAT(t.departs_at, '%Y-%m-%d %T')
			   FROM bookings b
			   JOIN trips t ON t.id = b.trip_id
			   WHERE b.id = ? AND b.status = 'CONFIRMED'`
	if err = tx.QueryRowContext(ctx, q, bookingID).Scan(&ownerID, &tripID, &departs); err != nil {
		return 0, time.Time{}, nil, err
	}
	if ownerID != userID {
		return 0, time.Time{}, nil, ErrForbidden
	}
	departsAt, err = time.Parse("2006-01-02 15:04:05", departs)
	if err != nil {
		return 0, time.Time{}, nil, err
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_number FROM booking_seats WHERE booking_id = ? ORDER BY position`, bookingID)
	if err != nil {
		return 0, time.Time{}, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sn string
		if err = rows.Scan(&sn); err != nil {
			return 0, time.Time{}, nil, err
		}
		seatNumbers = append(seatNumbers, sn)
	}
	if err = rows.Err(); err != nil {
		return 0, time.Time{}, nil, err
	}
	return tripID, departsAt, seatNumbers, nil
}

// CancelTx flips a booking to CANCELLED inside the transaction. Seat rows
// are kept for the audit trail; availability queries filter on status.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = 'CANCELLED', updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = 'CONFIRMED'`,
		bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByTripForOperator lists bookings on a trip for the operator back
// office, enforcing ownership through the route join.
func (r *BookingRepo) ListByTripForOperator(ctx context.Context, tripID, operatorID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.trip_id, rt.origin, rt.destination, v.name, v.class,
					  DATE_FORMAT(t.departs_at, '%Y-%m-%d %T'), b.status, b.total_amount_cents
			   FROM bookings b
			   JOIN trips t    ON t.id = b.trip_id
			   JOIN routes rt  ON rt.id = t.route_id
			   JOIN vehicles v ON v.id = t.vehicle_id
			   WHERE b.trip_id = ? AND rt.operator_id = ?
			   ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, tripID, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BookingDetail
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.TripID, &d.Origin, &d.Destination, &d.VehicleName, &d.Class,
			&d.DepartsAt, &d.Status, &d.TotalAmountCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		seats, err := r.seatsForBooking(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Seats = seats
	}
	return out, nil
}

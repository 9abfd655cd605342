// Package repository contains data access logic for Trip domain operations.
// This file defines the Trip model and repository methods for trips. A Trip
// represents one scheduled departure of a vehicle on a route. Sensitive
// fields such as FareCents, Status, CreatedAt and UpdatedAt should not be
// exposed via public API responses unless explicitly intended.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
	"strings"      // strings powers the search filters
)

// Trip represents one departure of a vehicle on a route. DepartsAt and
// ArrivesAt define the schedule; FareCents is the per-seat fare.
// NOTE: Time strings are stored in DB format "2006-01-02 15:04:05" (UTC).
type Trip struct {
	ID        uint64 // ID is the primary key of the trip
	RouteID   uint64 // RouteID references the route being driven
	VehicleID uint64 // VehicleID references the assigned vehicle
	DepartsAt string // DepartsAt is the DB timestamp of departure ("YYYY-MM-DD HH:MM:SS" UTC)
	ArrivesAt string // ArrivesAt is the DB timestamp of arrival   ("YYYY-MM-DD HH:MM:SS" UTC)
	FareCents uint32 // FareCents is the per-seat fare in cents
	Status    string // Status is the state of the trip (SCHEDULED, CANCELLED, FINISHED)
	CreatedAt string // CreatedAt records row creation time
	UpdatedAt string // UpdatedAt records last update time
}

// ErrTripNotFound indicates that a trip was not located in the DB.
var ErrTripNotFound = errors.New("trip not found")

// ErrNoChange indicates the UPDATE attempted to set fields equal to current values.
var ErrNoChange = errors.New("no change")

// TripRepo manages persistence for trips.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo constructs a TripRepo with the given DB handle.
func NewTripRepo(db *sql.DB) *TripRepo {
	return &TripRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories (lock + book flows).
func (r *TripRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new trip and assigns the generated ID back to the trip
// struct. The caller must provide route_id, vehicle_id, departs_at and
// arrives_at. Status is implicitly SCHEDULED by the DB; a follow-up SELECT
// populates the default fields.
func (r *TripRepo) Create(ctx context.Context, t *Trip) error {
	const q = `INSERT INTO trips (route_id, vehicle_id, departs_at, arrives_at, fare_cents) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.RouteID, t.VehicleID, t.DepartsAt, t.ArrivesAt, t.FareCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT id, route_id, vehicle_id, departs_at, arrives_at, fare_cents, status, created_at, updated_at FROM trips WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(
		&t.ID, &t.RouteID, &t.VehicleID, &t.DepartsAt, &t.ArrivesAt, &t.FareCents, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
}

// GetByID retrieves a trip by its ID.  It returns ErrTripNotFound if there
// is no matching row.
func (r *TripRepo) GetByID(ctx context.Context, id uint64) (*Trip, error) {
	const q = `SELECT id, route_id, vehicle_id, departs_at, arrives_at, fare_cents, status, created_at, updated_at FROM trips WHERE id = ?`
	var t Trip
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.RouteID, &t.VehicleID, &t.DepartsAt, &t.ArrivesAt, &t.FareCents, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByIDAndOperator retrieves a trip while enforcing ownership through the
// route join. ErrTripNotFound covers both missing and foreign trips.
func (r *TripRepo) GetByIDAndOperator(ctx context.Context, id, operatorID uint64) (*Trip, error) {
	const q = `SELECT t.id, t.route_id, t.vehicle_id, t.departs_at, t.arrives_at, t.fare_cents, t.status, t.created_at, t.updated_at
	           FROM trips t
	           JOIN routes r ON r.id = t.route_id
	           WHERE t.id = ? AND r.operator_id = ?`
	var t Trip
	err := r.db.QueryRowContext(ctx, q, id, operatorID).Scan(&t.ID, &t.RouteID, &t.VehicleID, &t.DepartsAt, &t.ArrivesAt, &t.FareCents, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByRoute returns all trips on a route ordered by departure time.
func (r *TripRepo) ListByRoute(ctx context.Context, routeID uint64) ([]Trip, error) {
	const q = `SELECT id, route_id, vehicle_id, departs_at, arrives_at, fare_cents, status, created_at, updated_at
	           FROM trips WHERE route_id = ? ORDER BY departs_at`
	rows, err := r.db.QueryContext(ctx, q, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.RouteID, &t.VehicleID, &t.DepartsAt, &t.ArrivesAt, &t.FareCents, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies schedule and fare fields for a trip owned by the operator.
// Returns ErrNoChange when the new values equal the current ones and
// sql.ErrNoRows when the trip does not exist for this operator.
func (r *TripRepo) Update(ctx context.Context, id, operatorID uint64, departsAt, arrivesAt string, fareCents uint32) error {
	cur, err := r.GetByIDAndOperator(ctx, id, operatorID)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return sql.ErrNoRows
		}
		return err
	}
	if cur.DepartsAt == departsAt && cur.ArrivesAt == arrivesAt && cur.FareCents == fareCents {
		return ErrNoChange
	}
	const q = `UPDATE trips t
	           JOIN routes r ON r.id = t.route_id
	           SET t.departs_at = ?, t.arrives_at = ?, t.fare_cents = ?, t.updated_at = CURRENT_TIMESTAMP
	           WHERE t.id = ? AND r.operator_id = ?`
	res, err := r.db.ExecContext(ctx, q, departsAt, arrivesAt, fareCents, id, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOperator deletes a trip, refusing with ErrConflict when
// confirmed bookings exist for it.
func (r *TripRepo) DeleteByIDAndOperator(ctx context.Context, id, operatorID uint64) error {
	var bookings int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE trip_id = ? AND status = 'CONFIRMED'`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return ErrConflict
	}
	const q = `DELETE t FROM trips t
	           JOIN routes r ON r.id = t.route_id
	           WHERE t.id = ? AND r.operator_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TripSearchQuery defines filters & pagination for searching trips.
type TripSearchQuery struct {
	Origin      string
	Destination string
	TimeFilter  string
	Page        int
	PageSize    int
}

// PublicTripRow is a denormalized trip row for public search responses.
type PublicTripRow struct {
	ID          uint64  `json:"id"`
	RouteID     uint64  `json:"route_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	VehicleID   uint64  `json:"vehicle_id"`
	VehicleName string  `json:"vehicle_name"`
	Class       string  `json:"class"`
	DepartsAt   string  `json:"departs_at"`
	ArrivesAt   string  `json:"arrives_at"`
	FareCents   uint64  `json:"fare_cents"`
	Fare        float64 `json:"fare"`
}

// SearchUpcoming returns trips matching the query plus the total match
// count for pagination. By default only trips that have not yet departed
// are returned; time_filter=active includes in-progress trips and
// time_filter=any disables the time constraint.
func (r *TripRepo) SearchUpcoming(ctx context.Context, q TripSearchQuery) ([]PublicTripRow, int64, error) {
	where := []string{}
	args := []any{}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	case "active":
		where = append(where, "t.arrives_at >= NOW()")
	default:
		where = append(where, "t.departs_at >= NOW()")
	}

	if q.Origin != "" {
		where = append(where, "LOWER(r.origin) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Origin)+"%")
	}
	if q.Destination != "" {
		where = append(where, "LOWER(r.destination) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Destination)+"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM trips t
		JOIN routes r   ON r.id = t.route_id
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			t.id,
			t.route_id,
			r.origin,
			r.destination,
			t.vehicle_id,
			v.name  AS vehicle_name,
			v.class AS class,
			DATE_FORMAT(t.departs_at, '%Y-%m-%d %T') AS departs_at,
			DATE_FORMAT(t.arrives_at, '%Y-%m-%d %T') AS arrives_at,
			COALESCE(t.fare_cents, 0) AS fare_cents
		FROM trips t
		JOIN routes r   ON r.id = t.route_id
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE ` + cond + `
		ORDER BY t.departs_at ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicTripRow, 0, limit)
	for rows.Next() {
		var d PublicTripRow
		if err := rows.Scan(
			&d.ID,
			&d.RouteID,
			&d.Origin,
			&d.Destination,
			&d.VehicleID,
			&d.VehicleName,
			&d.Class,
			&d.DepartsAt,
			&d.ArrivesAt,
			&d.FareCents,
		); err != nil {
			return nil, 0, err
		}
		d.Fare = float64(d.FareCents) / 100.0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

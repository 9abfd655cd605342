// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Route model and repository methods for CRUD and lookup
// operations. A Route is a service corridor between two cities; trips are
// scheduled on routes. Only minimal fields should be exposed in public API
// responses.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
)

// Route represents a route entity persisted in the database. Each route belongs
// to a single operator. The ID field is the primary key and is auto-incremented
// by the DB. OperatorID, CreatedAt and UpdatedAt should not be exposed via
// public API responses.
type Route struct {
	ID          uint64 // ID is the unique identifier of the route
	OperatorID  uint64 // OperatorID references the users.id of the route operator
	Origin      string // Origin is the departure city
	Destination string // Destination is the arrival city
	CreatedAt   string // CreatedAt stores when the row was created (timestamp in DB timezone)
	UpdatedAt   string // UpdatedAt stores when the row was last updated
}

// ErrRouteNotFound is returned when a route cannot be found in the DB.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo encapsulates all database queries related to routes.  It depends
// on a sql.DB connection which should be configured elsewhere.
type RouteRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewRouteRepo constructs a RouteRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewRouteRepo(db *sql.DB) *RouteRepo {
	return &RouteRepo{db: db}
}

// Create inserts a new route into the database.  On success the route's ID
// field is populated with the auto-generated value, and a follow-up SELECT
// fills the timestamp fields so callers receive a fully populated record.
func (r *RouteRepo) Create(ctx context.Context, rt *Route) error {
	const qInsert = "INSERT INTO routes (operator_id, origin, destination) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, rt.OperatorID, rt.Origin, rt.Destination)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)

	const qSelect = "SELECT operator_id, origin, destination, created_at, updated_at FROM routes WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, rt.ID).Scan(&rt.OperatorID, &rt.Origin, &rt.Destination, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// GetByID fetches a route by its ID regardless of operator.  It returns
// ErrRouteNotFound if no row is found.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*Route, error) {
	const q = "SELECT id, operator_id, origin, destination, created_at, updated_at FROM routes WHERE id = ?"
	var rt Route
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&rt.ID, &rt.OperatorID, &rt.Origin, &rt.Destination, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// GetByIDAndOperator fetches a route by id but only if it belongs to the
// specified operator.  If the route doesn't exist or is owned by someone
// else, ErrRouteNotFound is returned.
func (r *RouteRepo) GetByIDAndOperator(ctx context.Context, id, operatorID uint64) (*Route, error) {
	const q = "SELECT id, operator_id, origin, destination, created_at, updated_at FROM routes WHERE id = ? AND operator_id = ?"
	var rt Route
	if err := r.db.QueryRowContext(ctx, q, id, operatorID).Scan(&rt.ID, &rt.OperatorID, &rt.Origin, &rt.Destination, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// ListByOperator returns all routes for a specific operator ordered by id.
func (r *RouteRepo) ListByOperator(ctx context.Context, operatorID uint64) ([]*Route, error) {
	const q = `SELECT id, operator_id, origin, destination, created_at, updated_at
	           FROM routes WHERE operator_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Route
	for rows.Next() {
		rt := new(Route)
		if err := rows.Scan(&rt.ID, &rt.OperatorID, &rt.Origin, &rt.Destination, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes origin/destination if the route belongs to the operator.
// It returns sql.ErrNoRows when no row is affected (not found / not owned).
func (r *RouteRepo) Update(ctx context.Context, id, operatorID uint64, origin, destination string) error {
	const q = `UPDATE routes
	           SET origin = ?, destination = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND operator_id = ?`
	res, err := r.db.ExecContext(ctx, q, origin, destination, id, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAll returns all routes regardless of operator. It is used for public
// browsing endpoints. Only ID, origin and destination are selected to avoid
// exposing operator or timestamp fields.
func (r *RouteRepo) ListAll(ctx context.Context) ([]*Route, error) {
	const q = `SELECT id, origin, destination FROM routes ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Route
	for rows.Next() {
		rt := &Route{}
		if err := rows.Scan(&rt.ID, &rt.Origin, &rt.Destination); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndOperator removes a route and all dependent records (trips,
// seat locks, bookings and booking seats) provided it belongs to the
// specified operator. If the route does not exist, sql.ErrNoRows is returned.
// If it exists but belongs to a different operator, ErrForbidden is returned.
// The deletion occurs within a transaction to maintain integrity.
func (r *RouteRepo) DeleteByIDAndOperator(ctx context.Context, id, operatorID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify route exists and ownership
	var dbOperatorID uint64
	if err = tx.QueryRowContext(ctx, `SELECT operator_id FROM routes WHERE id = ?`, id).Scan(&dbOperatorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOperatorID != operatorID {
		return ErrForbidden
	}
	// Cascade delete: booking seats for trips on this route
	if _, err = tx.ExecContext(ctx,
		`DELETE bs FROM booking_seats bs
		 JOIN trips t ON t.id = bs.trip_id
		 WHERE t.route_id = ?`, id); err != nil {
		return err
	}
	// Bookings for trips on this route
	if _, err = tx.ExecContext(ctx,
		`DELETE b FROM bookings b
		 JOIN trips t ON t.id = b.trip_id
		 WHERE t.route_id = ?`, id); err != nil {
		return err
	}
	// Seat locks for trips on this route
	if _, err = tx.ExecContext(ctx,
		`DELETE sl FROM seat_locks sl
		 JOIN trips t ON t.id = sl.trip_id
		 WHERE t.route_id = ?`, id); err != nil {
		return err
	}
	// Trips on this route
	if _, err = tx.ExecContext(ctx, `DELETE FROM trips WHERE route_id = ?`, id); err != nil {
		return err
	}
	// Finally delete the route
	if _, err = tx.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

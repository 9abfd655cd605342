package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SeatLockRecord represents the persistence model for a seat lock.  Seats
// are identified by their layout seat number (e.g. LU3, RL3-2, S7), not by
// a seat table row: the vehicle layout is a JSON document and the lock
// simply references one of its identifiers.
type SeatLockRecord struct {
	ID         uint64    // primary key of the seat_locks row
	UserID     uint64    // rider who holds the lock
	TripID     uint64    // trip on which the seat is locked
	SeatNumber string    // seat identifier from the vehicle layout
	LockToken  string    // opaque token returned to the client for correlation
	ExpiresAt  time.Time // expiration timestamp
	CreatedAt  time.Time // creation timestamp
}

// SeatLockRepo provides data access to the seat_locks table.  It is
// responsible for creating, listing and deleting seat locks.  All methods
// compare expirations in UTC – callers must keep timestamps consistent.
type SeatLockRepo struct {
	db *sql.DB
}

// NewSeatLockRepo returns a new SeatLockRepo bound to the provided database.
func NewSeatLockRepo(db *sql.DB) *SeatLockRepo { return &SeatLockRepo{db: db} }

// ExpireLocksTx removes all seat locks for a trip that have passed their
// expiration and returns the seat numbers whose locks were removed.  The
// caller must supply an existing transaction and is responsible for
// committing or rolling it back.  Booked/locked availability is always
// derived after expiry cleanup, so no status rows need resetting.
//
// When there are no expired locks, it returns an empty slice and nil error.
func (r *SeatLockRepo) ExpireLocksTx(ctx context.Context, tx *sql.Tx, tripID uint64) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_number FROM seat_locks WHERE trip_id = ? AND expires_at <= UTC_TIMESTAMP()`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	var expired []string
	for rows.Next() {
		var sn string
		if scanErr := rows.Scan(&sn); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		expired = append(expired, sn)
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return []string{}, nil
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM seat_locks WHERE trip_id = ? AND expires_at <= UTC_TIMESTAMP()`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	return expired, nil
}

// ActiveSeatNumbersTx returns the seat numbers currently locked on a trip,
// regardless of which user holds them.  Expired locks are excluded; callers
// normally run ExpireLocksTx first so the table stays tidy.
func (r *SeatLockRepo) ActiveSeatNumbersTx(ctx context.Context, tx *sql.Tx, tripID uint64) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_number FROM seat_locks WHERE trip_id = ? AND expires_at > UTC_TIMESTAMP()`,
		tripID,
	)
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

// ActiveSeatNumbers is the non-transactional variant used by read-only
// seat-map rendering.
func (r *SeatLockRepo) ActiveSeatNumbers(ctx context.Context, tripID uint64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_number FROM seat_locks WHERE trip_id = ? AND expires_at > UTC_TIMESTAMP()`,
		tripID,
	)
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

// ActiveLocksByUserAndTripTx lists the current user's unexpired locks on a
// trip, ordered by creation so the selection order survives into booking.
func (r *SeatLockRepo) ActiveLocksByUserAndTripTx(ctx context.Context, tx *sql.Tx, userID, tripID uint64) ([]SeatLockRecord, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, trip_id, seat_number, lock_token, expires_at, created_at
		 FROM seat_locks
		 WHERE user_id = ? AND trip_id = ? AND expires_at > UTC_TIMESTAMP()
		 ORDER BY id`,
		userID, tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SeatLockRecord
	for rows.Next() {
		var rec SeatLockRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.TripID, &rec.SeatNumber, &rec.LockToken, &rec.ExpiresAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMultipleTx inserts a batch of lock records inside the transaction.
func (r *SeatLockRepo) CreateMultipleTx(ctx context.Context, tx *sql.Tx, locks []SeatLockRecord) error {
	if len(locks) == 0 {
		return nil
	}
	query := `INSERT INTO seat_locks (user_id, trip_id, seat_number, lock_token, expires_at) VALUES `
	args := make([]interface{}, 0, len(locks)*5)
	for i, l := range locks {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, l.UserID, l.TripID, l.SeatNumber, l.LockToken, l.ExpiresAt)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// DeleteByUserAndTripTx removes all of a user's locks on a trip and returns
// the seat numbers that were released, preserving lock creation order.
func (r *SeatLockRepo) DeleteByUserAndTripTx(ctx context.Context, tx *sql.Tx, userID, tripID uint64) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_number FROM seat_locks WHERE user_id = ? AND trip_id = ? ORDER BY id`,
		userID, tripID,
	)
	if err != nil {
		return nil, err
	}
	var released []string
	for rows.Next() {
		var sn string
		if scanErr := rows.Scan(&sn); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		released = append(released, sn)
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}
	if len(released) == 0 {
		return []string{}, nil
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM seat_locks WHERE user_id = ? AND trip_id = ?`,
		userID, tripID,
	); err != nil {
		return nil, err
	}
	return released, nil
}

// GenerateLockRecords builds lock records for a batch of seat numbers.
// Each record carries a fresh UUID token; the caller persists them with
// CreateMultipleTx.  The seat order of the input is preserved.
func GenerateLockRecords(userID, tripID uint64, seatNumbers []string, expiresAt time.Time) []SeatLockRecord {
	out := make([]SeatLockRecord, 0, len(seatNumbers))
	for _, sn := range seatNumbers {
		out = append(out, SeatLockRecord{
			UserID:     userID,
			TripID:     tripID,
			SeatNumber: sn,
			LockToken:  uuid.NewString(),
			ExpiresAt:  expiresAt,
		})
	}
	return out
}

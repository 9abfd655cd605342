package model

import "time"

// SeatLock represents a temporary hold on a seat while a rider completes
// checkout.  Locks prevent two concurrent riders from booking the same
// seat on a trip.  They expire automatically at ExpiresAt; the booking
// flow also clears expired locks lazily before checking availability.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – rider holding the seat.
//  TripID     – trip on which the seat is locked.
//  SeatNumber – seat identifier from the vehicle layout (e.g. LU3, S7).
//  LockToken  – opaque token returned to the client for reference.
//  ExpiresAt  – when the lock expires.
//  CreatedAt  – when the lock was created.
type SeatLock struct {
	ID         uint64    // seat_locks.id
	UserID     uint64    // seat_locks.user_id
	TripID     uint64    // seat_locks.trip_id
	SeatNumber string    // seat_locks.seat_number
	LockToken  string    // seat_locks.lock_token
	ExpiresAt  time.Time // seat_locks.expires_at
	CreatedAt  time.Time // seat_locks.created_at
}

package model

import "time"

// Trip is one scheduled departure of a vehicle on a route.  Seat
// availability is tracked per trip: bookings and seat locks reference a
// trip plus a seat number from the vehicle's layout.
//
// Fields:
//  ID         – primary key identifier.
//  RouteID    – route being driven.
//  VehicleID  – vehicle assigned to the departure.
//  DepartsAt  – scheduled departure time (UTC).
//  ArrivesAt  – scheduled arrival time (UTC).
//  FareCents  – per-seat fare in cents.
//  IsActive   – whether the trip is open for booking.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Trip struct {
	ID        uint64    // trips.id
	RouteID   uint64    // trips.route_id
	VehicleID uint64    // trips.vehicle_id
	DepartsAt time.Time // trips.departs_at
	ArrivesAt time.Time // trips.arrives_at
	FareCents uint32    // trips.fare_cents
	IsActive  bool      // trips.is_active
	CreatedAt time.Time // trips.created_at
	UpdatedAt time.Time // trips.updated_at
}

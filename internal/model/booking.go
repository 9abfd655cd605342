package model

import "time"

// Booking is a confirmed purchase of one or more seats on a trip.  Seat
// detail lives in BookingSeat rows; their Position column preserves the
// order in which the rider selected the seats, because passenger form N
// corresponds to selection position N.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – rider who made the booking.
//  TripID           – trip being booked.
//  Status           – booking status (CONFIRMED, CANCELLED).
//  TotalAmountCents – total fare paid, in cents.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64    // bookings.id
	UserID           uint64    // bookings.user_id
	TripID           uint64    // bookings.trip_id
	Status           string    // bookings.status
	TotalAmountCents uint32    // bookings.total_amount_cents
	CreatedAt        time.Time // bookings.created_at
	UpdatedAt        time.Time // bookings.updated_at
}

// BookingSeat links one seat of a booking to its passenger.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – owning booking.
//  TripID        – trip (denormalized for availability queries).
//  SeatNumber    – seat identifier from the vehicle layout.
//  PassengerName – passenger travelling on this seat.
//  Position      – zero-based position in the rider's selection order.
//  FareCents     – fare for this seat, in cents.
type BookingSeat struct {
	ID            uint64 // booking_seats.id
	BookingID     uint64 // booking_seats.booking_id
	TripID        uint64 // booking_seats.trip_id
	SeatNumber    string // booking_seats.seat_number
	PassengerName string // booking_seats.passenger_name
	Position      uint32 // booking_seats.position
	FareCents     uint32 // booking_seats.fare_cents
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a rider's booking is confirmed.
// It carries enough denormalized trip data for downstream consumers to
// log, notify or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64   `json:"booking_id"`
	UserID           uint64   `json:"user_id"`
	TripID           uint64   `json:"trip_id"`
	RouteID          uint64   `json:"route_id"`
	Origin           string   `json:"origin"`
	Destination      string   `json:"destination"`
	VehicleID        uint64   `json:"vehicle_id"`
	VehicleName      string   `json:"vehicle_name"`
	DepartsAt        string   `json:"departs_at"`
	ArrivesAt        string   `json:"arrives_at"`
	SeatNumbers      []string `json:"seats"`
	Passengers       []string `json:"passengers"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}

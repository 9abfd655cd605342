package model

import "time"

// Route represents a service corridor between two cities operated by a
// bus operator.  Trips reference a route and add a vehicle and departure
// time.
//
// Fields:
//  ID          – primary key identifier.
//  OperatorID  – user ID of the operator who owns the route.
//  Origin      – departure city name.
//  Destination – arrival city name.
//  DistanceKM  – approximate route length in kilometres (nil if unknown).
//  IsActive    – whether the route is active.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Route struct {
	ID          uint64    // routes.id
	OperatorID  uint64    // routes.operator_id
	Origin      string    // routes.origin
	Destination string    // routes.destination
	DistanceKM  *uint32   // routes.distance_km (nullable)
	IsActive    bool      // routes.is_active
	CreatedAt   time.Time // routes.created_at
	UpdatedAt   time.Time // routes.updated_at
}

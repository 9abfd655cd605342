package model

import (
	"database/sql"
	"time"
)

// Vehicle represents a single bus in an operator's fleet.  The seat map is
// not stored as individual seat rows: the full layout lives in the
// layout_json column as the StoredLayout union understood by the layout
// package, and older vehicles may carry the legacy deck format or no
// layout at all.  TotalSeats is the declared capacity that a generated
// layout must match before it is accepted.
//
// Fields:
//  ID           – primary key identifier.
//  OperatorID   – user ID of the owning operator.
//  Name         – fleet name or registration plate, unique per operator.
//  Class        – vehicle class hint (sleeper, semi-sleeper, seater, ...).
//  TotalSeats   – declared total seat count of the vehicle.
//  LayoutJSON   – serialized layout.StoredLayout (null when never configured).
//  IsActive     – whether the vehicle is in service.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Vehicle struct {
	ID         uint64         // vehicles.id
	OperatorID uint64         // vehicles.operator_id
	Name       string         // vehicles.name
	Class      string         // vehicles.class
	TotalSeats uint32         // vehicles.total_seats
	LayoutJSON sql.NullString // vehicles.layout_json (nullable)
	IsActive   bool           // vehicles.is_active
	CreatedAt  time.Time      // vehicles.created_at
	UpdatedAt  time.Time      // vehicles.updated_at
}

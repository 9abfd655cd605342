// Package repository defines sentinel errors shared by several
// repositories so that handlers can map failure modes to HTTP status
// codes without inspecting SQL errors. ErrForbidden means the resource
// exists but belongs to a different operator or rider; ErrConflict means
// dependent rows block the operation (a vehicle still scheduled on
// trips, a trip that still has confirmed bookings).
package repository

import "errors"

// ErrForbidden is returned when the caller does not own the target
// resource. Handlers translate it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when existing dependent records prevent a
// delete or update, such as removing a vehicle that upcoming trips are
// assigned to. Handlers translate it to HTTP 409.
var ErrConflict = errors.New("conflict")

// Package layout implements the bus seat-layout engine: deterministic
// generation of seat maps from an operator configuration, normalization of
// heterogeneous stored layouts into one canonical structure, and the
// seat-status / selection rules used by the rider booking flow.  Everything
// in this package is a pure computation over immutable inputs — no I/O, no
// clock, no shared state — so it is safe to call from concurrent handlers
// and trivial to test.
package layout

// Side identifies the lateral seat bank relative to the aisle.
type Side string

// Level identifies the vertical berth tier of a seat.
type Level string

// SeatType is the berth/seat class encoded on each seat.
type SeatType string

const (
	SideLeft  Side = "left"  // seats on the left of the aisle
	SideRight Side = "right" // seats on the right of the aisle

	LevelUpper Level = "upper" // upper berth
	LevelLower Level = "lower" // lower berth

	SeatTypeUpper  SeatType = "upper"  // upper-berth sleeper seat
	SeatTypeLower  SeatType = "lower"  // lower-berth sleeper seat
	SeatTypeSingle SeatType = "single" // plain seater seat
)

// Position locates a seat within the vehicle grid.  Row is 1-based.  Seat
// distinguishes multiple seats that share the same row/side/level group and
// is also 1-based.
//
// Fields:
//  Row   – row index within the vehicle, in [1, Layout.TotalRows].
//  Side  – lateral bank ("left" or "right").
//  Level – berth tier ("upper" or "lower").
//  Seat  – index within the row/side/level group.
type Position struct {
	Row   int   `json:"row"`
	Side  Side  `json:"side"`
	Level Level `json:"level"`
	Seat  int   `json:"seat"`
}

// Seat is the atomic unit of a layout.  Number is unique within a vehicle
// and encodes side/level/row so legacy displays can reconstruct the grid
// from the identifier alone (e.g. LU3, RL3-2, S7).
type Seat struct {
	Number   string   `json:"seat_number"`
	Type     SeatType `json:"seat_type"`
	Position Position `json:"position"`
}

// DeckGroup holds the seats of one side of the aisle, split by berth level.
type DeckGroup struct {
	Upper []Seat `json:"upper"`
	Lower []Seat `json:"lower"`
}

// Layout is the full canonical seat map of a vehicle.  The union of the four
// seat lists contains no duplicate seat numbers, and every seat's row falls
// in [1, TotalRows].  A Layout is read-only once produced: the selection
// rules never mutate it.
type Layout struct {
	Left      DeckGroup `json:"left"`
	Right     DeckGroup `json:"right"`
	TotalRows int       `json:"total_rows"`
}

// Seats returns every seat of the layout flattened into a single slice.
// The order is deterministic: left-upper, left-lower, right-upper,
// right-lower, each group in its stored order.
func (l *Layout) Seats() []Seat {
	out := make([]Seat, 0, l.CountSeats())
	out = append(out, l.Left.Upper...)
	out = append(out, l.Left.Lower...)
	out = append(out, l.Right.Upper...)
	out = append(out, l.Right.Lower...)
	return out
}

// CountSeats returns the total number of seats across all four groups.
func (l *Layout) CountSeats() int {
	return len(l.Left.Upper) + len(l.Left.Lower) + len(l.Right.Upper) + len(l.Right.Lower)
}

// SeatNumbers returns the seat identifiers in the same order as Seats.
func (l *Layout) SeatNumbers() []string {
	seats := l.Seats()
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.Number)
	}
	return out
}

// HasSeat reports whether a seat with the given number exists in the layout.
func (l *Layout) HasSeat(number string) bool {
	for _, s := range l.Seats() {
		if s.Number == number {
			return true
		}
	}
	return false
}

package layout

// Status is the derived availability of a single seat.  It is computed on
// demand from three externally supplied seat-number sets and never stored.
type Status string

const (
	StatusBooked    Status = "booked"    // confirmed by the booking backend
	StatusLocked    Status = "locked"    // temporarily held by another rider
	StatusSelected  Status = "selected"  // picked by the current rider
	StatusAvailable Status = "available" // free to select
)

// statusRule pairs a membership predicate with the status it yields.
type statusRule struct {
	member func(sets statusSets, seat string) bool
	status Status
}

type statusSets struct {
	booked   map[string]struct{}
	locked   map[string]struct{}
	selected map[string]struct{}
}

// statusRules is evaluated top-down, first match wins.  The order IS the
// precedence contract: booked > locked > selected > available.  Booked and
// locked come from the server and override a local selection
// unconditionally, so a stale client selection of a freshly booked seat
// resolves to booked, never selected.
var statusRules = []statusRule{
	{func(s statusSets, seat string) bool { _, ok := s.booked[seat]; return ok }, StatusBooked},
	{func(s statusSets, seat string) bool { _, ok := s.locked[seat]; return ok }, StatusLocked},
	{func(s statusSets, seat string) bool { _, ok := s.selected[seat]; return ok }, StatusSelected},
}

// DeriveStatus computes the status of one seat from the three input sets.
// The sets are plain seat-number lists exactly as delivered by the
// reservation backend; they may change between calls, which is fine because
// every call is independent.
func DeriveStatus(seat string, booked, locked, selected []string) Status {
	sets := statusSets{
		booked:   toSet(booked),
		locked:   toSet(locked),
		selected: toSet(selected),
	}
	for _, rule := range statusRules {
		if rule.member(sets, seat) {
			return rule.status
		}
	}
	return StatusAvailable
}

// Toggle applies one rider tap on a seat to an ordered selection and
// returns the resulting selection.  Rules, in order:
//
//  1. a booked or locked seat can neither enter nor leave the selection
//  2. deselecting an already-selected seat is always permitted
//  3. selecting while the selection is full is rejected, not truncated
//  4. otherwise the seat is appended at the end
//
// Removal preserves the relative order of the remaining seats and new
// selections go to the tail: position N of the selection corresponds to
// passenger form N, so the engine must never reorder.  All rejected toggles
// are silent no-ops — the input slice is returned unchanged.
func Toggle(seat string, selected, booked, locked []string, maxSeats int) []string {
	switch DeriveStatus(seat, booked, locked, selected) {
	case StatusBooked, StatusLocked:
		return selected
	case StatusSelected:
		out := make([]string, 0, len(selected)-1)
		for _, s := range selected {
			if s != seat {
				out = append(out, s)
			}
		}
		return out
	}
	if len(selected) >= maxSeats {
		return selected
	}
	out := make([]string, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, seat)
}

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

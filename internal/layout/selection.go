package layout

// Selection owns a rider's in-progress seat picks for one booking session.
// It is not persisted: the booking flow creates one when the rider enters
// seat selection and drops it when the flow completes or the rider
// navigates away.  Selection performs no I/O and holds no locks — the
// caller owns it and drives it from a single goroutine.
type Selection struct {
	seats    []string
	maxSeats int
	onChange func([]string)
}

// NewSelection builds a Selection bounded by maxSeats.  onChange is invoked
// with the full updated seat list after every accepted toggle; it may be
// nil when the caller polls Seats instead.  The callback is the engine's
// only output channel — it never calls any booking or locking API itself.
func NewSelection(maxSeats int, onChange func([]string)) *Selection {
	return &Selection{maxSeats: maxSeats, onChange: onChange}
}

// Reset replaces the selection wholesale.  The caller can reassert
// ownership of the canonical selection at any time, e.g. when the booking
// flow restores state from elsewhere.  Reset does not fire onChange: the
// new value came from the caller in the first place.
func (s *Selection) Reset(seats []string) {
	s.seats = append([]string(nil), seats...)
}

// Seats returns a copy of the current ordered selection.
func (s *Selection) Seats() []string {
	return append([]string(nil), s.seats...)
}

// Len returns the number of currently selected seats.
func (s *Selection) Len() int { return len(s.seats) }

// Toggle applies one tap on a seat, honoring the booked/locked sets
// supplied by the reservation backend.  Accepted toggles update the
// selection and fire the onChange callback; rejected toggles (unavailable
// seat, selection at capacity) change nothing and stay silent.  It reports
// whether the selection changed.
func (s *Selection) Toggle(seat string, booked, locked []string) bool {
	next := Toggle(seat, s.seats, booked, locked, s.maxSeats)
	if len(next) == len(s.seats) && sameOrder(next, s.seats) {
		return false
	}
	s.seats = next
	if s.onChange != nil {
		s.onChange(s.Seats())
	}
	return true
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

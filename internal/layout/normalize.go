package layout

import (
	"math"
	"strconv"
)

// StoredLayout is the persisted JSON shape of a vehicle's seat map.  Over
// the life of the product two representations accumulated in storage: the
// canonical side/level structure produced by Generate, and an older deck
// structure keyed by row/column.  A stored record carries one of them (or
// neither, for vehicles created before layouts existed).  Normalize resolves
// the union exactly once; nothing downstream re-checks the shape.
type StoredLayout struct {
	// canonical representation
	Left      DeckGroup `json:"left"`
	Right     DeckGroup `json:"right"`
	TotalRows int       `json:"total_rows"`
	// legacy representation
	LowerDeck *LegacyDeck `json:"lower_deck,omitempty"`
	UpperDeck *LegacyDeck `json:"upper_deck,omitempty"`
}

// LegacyDeck is one berth level of the old row/column layout format.
type LegacyDeck struct {
	Rows  int          `json:"rows"`
	Seats []LegacySeat `json:"seats"`
}

// LegacySeat is a seat record in the old format.  Position may be absent in
// malformed records; Normalize is deliberately lenient about that (one bad
// record must not discard an entire deck).
type LegacySeat struct {
	Number   string          `json:"seat_number"`
	Position *LegacyPosition `json:"position,omitempty"`
}

// LegacyPosition is the row/column coordinate of the old format.  There is
// no side field: side is inferred from the column (see legacyColumnSide).
type LegacyPosition struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// legacyColumnSide is the fixed column→side convention of the legacy deck
// format: two right-side seats at columns 1-2 and one left-side seat at
// column 3, matching the physical sleeper-bus aisle arrangement.  Columns
// missing from the table are right-side seats.  Kept as an explicit table
// so future arrangements (e.g. 2-2 coaches) extend it instead of
// re-deriving the heuristic.
var legacyColumnSide = map[int]Side{
	3: SideLeft,
}

// defaultTotalRows is used when neither legacy deck carries a row count.
const defaultTotalRows = 10

// Normalize resolves whatever layout information exists for a vehicle into
// the canonical structure.  Resolution order:
//
//  1. canonical data present           → returned as-is
//  2. legacy deck data present         → converted seat by seat
//  3. only a positive seat count known → synthesized fallback (fallback.go)
//
// When none of the three applies, Normalize returns nil.  That is a
// legitimate terminal state ("no layout configured"), not an error: callers
// render an explanatory empty state.  For a fixed input the output seat
// set, ordering and numbering are exactly reproducible.
func Normalize(raw *StoredLayout, totalSeats int, class VehicleClass) *Layout {
	if raw != nil && raw.TotalRows > 0 && hasCanonicalSeats(raw) {
		l := Layout{Left: raw.Left, Right: raw.Right, TotalRows: raw.TotalRows}
		return &l
	}
	if raw != nil && hasLegacySeats(raw) {
		l := convertLegacy(raw)
		return &l
	}
	if totalSeats > 0 {
		l := synthesizeFallback(totalSeats, class)
		return &l
	}
	return nil
}

func hasCanonicalSeats(raw *StoredLayout) bool {
	return len(raw.Left.Upper)+len(raw.Left.Lower)+len(raw.Right.Upper)+len(raw.Right.Lower) > 0
}

func hasLegacySeats(raw *StoredLayout) bool {
	if raw.LowerDeck != nil && len(raw.LowerDeck.Seats) > 0 {
		return true
	}
	return raw.UpperDeck != nil && len(raw.UpperDeck.Seats) > 0
}

// convertLegacy maps both legacy decks into the canonical structure.  The
// row count comes from the lower deck when present, then the upper deck,
// then defaultTotalRows.
func convertLegacy(raw *StoredLayout) Layout {
	l := Layout{TotalRows: defaultTotalRows}
	if raw.LowerDeck != nil && raw.LowerDeck.Rows > 0 {
		l.TotalRows = raw.LowerDeck.Rows
	} else if raw.UpperDeck != nil && raw.UpperDeck.Rows > 0 {
		l.TotalRows = raw.UpperDeck.Rows
	}
	if raw.LowerDeck != nil {
		for _, ls := range raw.LowerDeck.Seats {
			seat := convertLegacySeat(ls, LevelLower)
			l.append(seat.Position.Side, LevelLower, seat)
		}
	}
	if raw.UpperDeck != nil {
		for _, ls := range raw.UpperDeck.Seats {
			seat := convertLegacySeat(ls, LevelUpper)
			l.append(seat.Position.Side, LevelUpper, seat)
		}
	}
	return l
}

// convertLegacySeat translates one legacy record.  A missing position
// defaults to row 1, column 1, which routes the seat to the right side.
// The left bank holds a single seat per row, so left seats always get seat
// index 1; right seats keep their column as the index.
func convertLegacySeat(ls LegacySeat, level Level) Seat {
	row, column := 1, 1
	if ls.Position != nil {
		row, column = ls.Position.Row, ls.Position.Column
	}
	side, ok := legacyColumnSide[column]
	if !ok {
		side = SideRight
	}
	seatIdx := column
	if side == SideLeft {
		seatIdx = 1
	}
	return Seat{
		Number: ls.Number,
		Type:   seatTypeForLevel(level),
		Position: Position{
			Row:   row,
			Side:  side,
			Level: level,
			Seat:  seatIdx,
		},
	}
}

// synthesizeFallback builds a layout from nothing but a seat count and a
// class hint.  Rows are filled top to bottom, right-side seats before
// left-side seats within each row, numbering sequentially S1..Sn and
// stopping exactly at totalSeats (the last row may be partial).  Every
// synthesized seat sits at the lower level: berth placement cannot be
// inferred from a bare count, so the fallback never fabricates upper berths.
func synthesizeFallback(totalSeats int, class VehicleClass) Layout {
	perRow := class.SeatsPerRow()
	leftPerRow := perRow - 2 // right bank always holds two seats
	rows := int(math.Ceil(float64(totalSeats) / float64(perRow)))
	l := Layout{TotalRows: rows}
	n := 0
	for row := 1; row <= rows && n < totalSeats; row++ {
		for i := 1; i <= 2 && n < totalSeats; i++ {
			n++
			l.append(SideRight, LevelLower, fallbackSeat(n, row, SideRight, i))
		}
		for i := 1; i <= leftPerRow && n < totalSeats; i++ {
			n++
			l.append(SideLeft, LevelLower, fallbackSeat(n, row, SideLeft, i))
		}
	}
	return l
}

func fallbackSeat(n, row int, side Side, idx int) Seat {
	return Seat{
		Number: "S" + strconv.Itoa(n),
		Type:   SeatTypeLower,
		Position: Position{
			Row:   row,
			Side:  side,
			Level: LevelLower,
			Seat:  idx,
		},
	}
}

package layout

import "strconv"

// Config is the operator-facing input of the layout generator: a row count
// plus a per-row seat count for each of the four (side, level) groups.  All
// fields are non-negative.  The HTTP layer enforces the plausible ranges
// (Rows in [1, MaxRows], group counts in [0, MaxGroupSeats]) before calling
// Generate; the engine itself never clamps or rejects.
type Config struct {
	Rows       int `json:"rows"`
	LeftUpper  int `json:"left_upper_seats"`
	LeftLower  int `json:"left_lower_seats"`
	RightUpper int `json:"right_upper_seats"`
	RightLower int `json:"right_lower_seats"`
}

// Bounds for operator-entered layout configurations.  Values outside these
// ranges describe physically implausible vehicles and are rejected at the
// request boundary.
const (
	MaxRows       = 15
	MaxGroupSeats = 3
)

// Total returns rows × (sum of the four per-row group counts).  A layout
// built from this config is only accepted once Total matches the vehicle's
// declared seat count; that gate belongs to the caller, not the engine.
func (c Config) Total() int {
	return c.Rows * (c.LeftUpper + c.LeftLower + c.RightUpper + c.RightLower)
}

// InBounds reports whether every field sits inside the plausible ranges.
func (c Config) InBounds() bool {
	if c.Rows < 1 || c.Rows > MaxRows {
		return false
	}
	for _, n := range []int{c.LeftUpper, c.LeftLower, c.RightUpper, c.RightLower} {
		if n < 0 || n > MaxGroupSeats {
			return false
		}
	}
	return true
}

// seatGroup ties a (side, level) pair to its numbering prefix.  The slice
// order fixes the per-row emission order, which keeps Generate idempotent.
type seatGroup struct {
	side   Side
	level  Level
	prefix string
}

var seatGroups = []seatGroup{
	{SideLeft, LevelUpper, "LU"},
	{SideLeft, LevelLower, "LL"},
	{SideRight, LevelUpper, "RU"},
	{SideRight, LevelLower, "RL"},
}

// Generate produces the full seat map for a configuration.  Numbering is
// positional and stable: the prefix encodes side+level, the suffix is the
// row, and a secondary "-i" suffix is appended only when a group holds more
// than one seat per row.  Re-running Generate with the same config yields
// byte-identical seat numbers and ordering.
func Generate(cfg Config) Layout {
	l := Layout{TotalRows: cfg.Rows}
	for row := 1; row <= cfg.Rows; row++ {
		for _, g := range seatGroups {
			count := cfg.groupCount(g.side, g.level)
			for i := 1; i <= count; i++ {
				number := g.prefix + strconv.Itoa(row)
				if count > 1 {
					number += "-" + strconv.Itoa(i)
				}
				seat := Seat{
					Number: number,
					Type:   seatTypeForLevel(g.level),
					Position: Position{
						Row:   row,
						Side:  g.side,
						Level: g.level,
						Seat:  i,
					},
				}
				l.append(g.side, g.level, seat)
			}
		}
	}
	return l
}

func (c Config) groupCount(side Side, level Level) int {
	switch {
	case side == SideLeft && level == LevelUpper:
		return c.LeftUpper
	case side == SideLeft && level == LevelLower:
		return c.LeftLower
	case side == SideRight && level == LevelUpper:
		return c.RightUpper
	default:
		return c.RightLower
	}
}

func (l *Layout) append(side Side, level Level, s Seat) {
	group := &l.Right
	if side == SideLeft {
		group = &l.Left
	}
	if level == LevelUpper {
		group.Upper = append(group.Upper, s)
	} else {
		group.Lower = append(group.Lower, s)
	}
}

func seatTypeForLevel(level Level) SeatType {
	if level == LevelUpper {
		return SeatTypeUpper
	}
	return SeatTypeLower
}

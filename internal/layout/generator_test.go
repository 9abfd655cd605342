package layout

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SleeperCoach(t *testing.T) {
	cfg := Config{Rows: 10, LeftUpper: 1, LeftLower: 1, RightUpper: 1, RightLower: 1}
	l := Generate(cfg)

	assert.Equal(t, 40, l.CountSeats())
	assert.Equal(t, 10, l.TotalRows)

	// row 5 must be present in all four groups
	for _, num := range []string{"LU5", "LL5", "RU5", "RL5"} {
		require.True(t, l.HasSeat(num), "expected seat %s", num)
	}
	for _, s := range l.Seats() {
		if s.Number == "LU5" || s.Number == "LL5" || s.Number == "RU5" || s.Number == "RL5" {
			assert.Equal(t, 5, s.Position.Row)
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	cfg := Config{Rows: 12, LeftUpper: 1, LeftLower: 2, RightUpper: 0, RightLower: 3}
	a := Generate(cfg)
	b := Generate(cfg)
	assert.True(t, reflect.DeepEqual(a, b), "identical config must reproduce identical layout")
	assert.Equal(t, a.SeatNumbers(), b.SeatNumbers())
}

func TestGenerate_TotalInvariant(t *testing.T) {
	cfgs := []Config{
		{Rows: 1, LeftUpper: 0, LeftLower: 0, RightUpper: 0, RightLower: 0},
		{Rows: 15, LeftUpper: 3, LeftLower: 3, RightUpper: 3, RightLower: 3},
		{Rows: 7, LeftUpper: 1, LeftLower: 0, RightUpper: 2, RightLower: 1},
	}
	for _, cfg := range cfgs {
		l := Generate(cfg)
		assert.Equal(t, cfg.Total(), l.CountSeats(), "config %+v", cfg)
	}
}

func TestGenerate_UniqueSeatNumbers(t *testing.T) {
	l := Generate(Config{Rows: 15, LeftUpper: 3, LeftLower: 3, RightUpper: 3, RightLower: 3})
	seen := make(map[string]struct{})
	for _, s := range l.Seats() {
		_, dup := seen[s.Number]
		require.False(t, dup, "duplicate seat number %s", s.Number)
		seen[s.Number] = struct{}{}
	}
}

func TestGenerate_SecondarySuffixOnlyForMultiSeatGroups(t *testing.T) {
	l := Generate(Config{Rows: 2, LeftUpper: 1, LeftLower: 2, RightUpper: 0, RightLower: 0})

	// single-seat group: bare row suffix
	assert.True(t, l.HasSeat("LU1"))
	assert.False(t, l.HasSeat("LU1-1"))
	// two-seat group: indexed suffix for every seat
	assert.True(t, l.HasSeat("LL1-1"))
	assert.True(t, l.HasSeat("LL1-2"))
	assert.False(t, l.HasSeat("LL1"))
}

func TestGenerate_SeatTypeFollowsLevel(t *testing.T) {
	l := Generate(Config{Rows: 3, LeftUpper: 1, LeftLower: 1, RightUpper: 1, RightLower: 1})
	for _, s := range l.Left.Upper {
		assert.Equal(t, SeatTypeUpper, s.Type)
	}
	for _, s := range l.Right.Lower {
		assert.Equal(t, SeatTypeLower, s.Type)
	}
}

func TestGenerate_RowsInRange(t *testing.T) {
	l := Generate(Config{Rows: 9, LeftUpper: 2, LeftLower: 1, RightUpper: 1, RightLower: 2})
	for _, s := range l.Seats() {
		assert.GreaterOrEqual(t, s.Position.Row, 1)
		assert.LessOrEqual(t, s.Position.Row, l.TotalRows)
	}
}

func TestConfig_InBounds(t *testing.T) {
	assert.True(t, Config{Rows: 1}.InBounds())
	assert.True(t, Config{Rows: 15, LeftUpper: 3, LeftLower: 3, RightUpper: 3, RightLower: 3}.InBounds())
	assert.False(t, Config{Rows: 0}.InBounds())
	assert.False(t, Config{Rows: 16}.InBounds())
	assert.False(t, Config{Rows: 5, LeftUpper: 4}.InBounds())
	assert.False(t, Config{Rows: 5, RightLower: -1}.InBounds())
}

package layout

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CanonicalPassThrough(t *testing.T) {
	gen := Generate(Config{Rows: 5, LeftUpper: 1, LeftLower: 1, RightUpper: 1, RightLower: 1})
	raw := &StoredLayout{Left: gen.Left, Right: gen.Right, TotalRows: gen.TotalRows}

	got := Normalize(raw, 20, ClassSleeper)
	require.NotNil(t, got)
	assert.True(t, reflect.DeepEqual(gen, *got), "canonical input must pass through unchanged")
}

func TestNormalize_LegacyColumnThreeIsLeft(t *testing.T) {
	raw := &StoredLayout{
		LowerDeck: &LegacyDeck{
			Rows: 8,
			Seats: []LegacySeat{
				{Number: "L3-3", Position: &LegacyPosition{Row: 3, Column: 3}},
			},
		},
	}
	got := Normalize(raw, 0, ClassSleeper)
	require.NotNil(t, got)
	require.Len(t, got.Left.Lower, 1)

	s := got.Left.Lower[0]
	assert.Equal(t, "L3-3", s.Number)
	assert.Equal(t, SideLeft, s.Position.Side)
	assert.Equal(t, LevelLower, s.Position.Level)
	assert.Equal(t, 3, s.Position.Row)
	assert.Equal(t, 1, s.Position.Seat, "left bank holds one seat per row")
	assert.Equal(t, 8, got.TotalRows)
}

func TestNormalize_LegacyColumnsOneTwoAreRight(t *testing.T) {
	raw := &StoredLayout{
		UpperDeck: &LegacyDeck{
			Rows: 6,
			Seats: []LegacySeat{
				{Number: "U2-1", Position: &LegacyPosition{Row: 2, Column: 1}},
				{Number: "U2-2", Position: &LegacyPosition{Row: 2, Column: 2}},
			},
		},
	}
	got := Normalize(raw, 0, ClassSleeper)
	require.NotNil(t, got)
	require.Len(t, got.Right.Upper, 2)

	assert.Equal(t, SideRight, got.Right.Upper[0].Position.Side)
	assert.Equal(t, 1, got.Right.Upper[0].Position.Seat, "right seats keep their column index")
	assert.Equal(t, 2, got.Right.Upper[1].Position.Seat)
	assert.Equal(t, LevelUpper, got.Right.Upper[0].Position.Level)
}

func TestNormalize_LegacyMissingPositionDefaults(t *testing.T) {
	raw := &StoredLayout{
		LowerDeck: &LegacyDeck{
			Rows:  4,
			Seats: []LegacySeat{{Number: "X1"}}, // malformed record: no position
		},
	}
	got := Normalize(raw, 0, ClassSeater)
	require.NotNil(t, got)
	require.Len(t, got.Right.Lower, 1, "defaulted column 1 routes to the right side")

	s := got.Right.Lower[0]
	assert.Equal(t, 1, s.Position.Row)
	assert.Equal(t, 1, s.Position.Seat)
}

func TestNormalize_LegacyRowCountFallsBackToUpperDeckThenDefault(t *testing.T) {
	upperOnly := &StoredLayout{
		UpperDeck: &LegacyDeck{Rows: 7, Seats: []LegacySeat{{Number: "U1", Position: &LegacyPosition{Row: 1, Column: 1}}}},
	}
	got := Normalize(upperOnly, 0, ClassSleeper)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.TotalRows)

	noRows := &StoredLayout{
		LowerDeck: &LegacyDeck{Seats: []LegacySeat{{Number: "L1", Position: &LegacyPosition{Row: 1, Column: 2}}}},
	}
	got = Normalize(noRows, 0, ClassSleeper)
	require.NotNil(t, got)
	assert.Equal(t, defaultTotalRows, got.TotalRows)
}

func TestNormalize_FallbackSleeper(t *testing.T) {
	got := Normalize(nil, 40, ClassSleeper)
	require.NotNil(t, got)

	// ceil(40/3) = 14 rows, numbered S1..S40, all lower level
	assert.Equal(t, 14, got.TotalRows)
	assert.Equal(t, 40, got.CountSeats())
	assert.True(t, got.HasSeat("S1"))
	assert.True(t, got.HasSeat("S40"))
	assert.False(t, got.HasSeat("S41"))
	assert.Empty(t, got.Left.Upper, "fallback never fabricates upper berths")
	assert.Empty(t, got.Right.Upper)
	for _, s := range got.Seats() {
		assert.Equal(t, LevelLower, s.Position.Level)
	}
}

func TestNormalize_FallbackFillsRightBeforeLeft(t *testing.T) {
	got := Normalize(nil, 6, ClassSleeper)
	require.NotNil(t, got)

	// row 1: S1, S2 right then S3 left
	require.NotEmpty(t, got.Right.Lower)
	assert.Equal(t, "S1", got.Right.Lower[0].Number)
	assert.Equal(t, "S2", got.Right.Lower[1].Number)
	require.NotEmpty(t, got.Left.Lower)
	assert.Equal(t, "S3", got.Left.Lower[0].Number)
	assert.Equal(t, 1, got.Left.Lower[0].Position.Row)
}

func TestNormalize_FallbackSeaterFourPerRow(t *testing.T) {
	got := Normalize(nil, 10, ClassACSeater)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.TotalRows, "ceil(10/4)")
	assert.Equal(t, 10, got.CountSeats(), "last row partially filled")
}

func TestNormalize_FallbackDeterministic(t *testing.T) {
	a := Normalize(nil, 37, ClassSemiSleeper)
	b := Normalize(nil, 37, ClassSemiSleeper)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.SeatNumbers(), b.SeatNumbers())
}

func TestNormalize_NothingKnownReturnsNil(t *testing.T) {
	assert.Nil(t, Normalize(nil, 0, ClassSleeper))
	assert.Nil(t, Normalize(&StoredLayout{}, 0, ClassSeater))
}

func TestNormalize_UniqueSeatNumbersAcrossBranches(t *testing.T) {
	legacy := &StoredLayout{
		LowerDeck: &LegacyDeck{Rows: 3, Seats: []LegacySeat{
			{Number: "L1-1", Position: &LegacyPosition{Row: 1, Column: 1}},
			{Number: "L1-2", Position: &LegacyPosition{Row: 1, Column: 2}},
			{Number: "L1-3", Position: &LegacyPosition{Row: 1, Column: 3}},
		}},
		UpperDeck: &LegacyDeck{Rows: 3, Seats: []LegacySeat{
			{Number: "U1-1", Position: &LegacyPosition{Row: 1, Column: 1}},
		}},
	}
	for _, l := range []*Layout{Normalize(legacy, 0, ClassSleeper), Normalize(nil, 25, ClassVolvo)} {
		require.NotNil(t, l)
		seen := make(map[string]struct{})
		for _, s := range l.Seats() {
			_, dup := seen[s.Number]
			require.False(t, dup, "duplicate seat number %s", s.Number)
			seen[s.Number] = struct{}{}
		}
	}
}

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus_Precedence(t *testing.T) {
	booked := []string{"S1"}
	locked := []string{"S1", "S2"}
	selected := []string{"S1", "S2", "S3"}

	// booked wins over everything, locked over selected
	assert.Equal(t, StatusBooked, DeriveStatus("S1", booked, locked, selected))
	assert.Equal(t, StatusLocked, DeriveStatus("S2", booked, locked, selected))
	assert.Equal(t, StatusSelected, DeriveStatus("S3", booked, locked, selected))
	assert.Equal(t, StatusAvailable, DeriveStatus("S4", booked, locked, selected))
}

func TestDeriveStatus_StaleSelectionResolvesBooked(t *testing.T) {
	// a server-confirmed booking invalidates a lingering client selection
	got := DeriveStatus("S1", []string{"S1"}, nil, []string{"S1"})
	assert.Equal(t, StatusBooked, got)
}

func TestToggle_BookedSeatIsNoOp(t *testing.T) {
	selected := []string{"S1"}
	got := Toggle("S1", selected, []string{"S1"}, nil, 5)
	assert.Equal(t, []string{"S1"}, got, "booked seat can neither enter nor leave the selection")

	got = Toggle("S9", []string{}, []string{"S9"}, nil, 5)
	assert.Empty(t, got)
}

func TestToggle_LockedSeatIsNoOp(t *testing.T) {
	got := Toggle("S7", []string{"S2"}, nil, []string{"S7"}, 5)
	assert.Equal(t, []string{"S2"}, got)
}

func TestToggle_DeselectPreservesOrder(t *testing.T) {
	selected := []string{"S2", "S4", "S6"}
	got := Toggle("S4", selected, nil, nil, 3)
	assert.Equal(t, []string{"S2", "S6"}, got, "remaining seats keep their relative order")
}

func TestToggle_CapacityRejectsNotTruncates(t *testing.T) {
	selected := []string{"S2", "S4"}
	got := Toggle("S5", selected, nil, nil, 2)
	assert.Equal(t, []string{"S2", "S4"}, got, "full selection rejects the add")

	// deselect is still permitted at capacity
	got = Toggle("S2", selected, nil, nil, 2)
	assert.Equal(t, []string{"S4"}, got)
}

func TestToggle_AppendsAtTail(t *testing.T) {
	got := Toggle("S3", []string{"S1"}, nil, nil, 4)
	assert.Equal(t, []string{"S1", "S3"}, got)
}

func TestToggle_CapacityLawOverSequences(t *testing.T) {
	const k = 3
	seats := []string{"S1", "S2", "S3", "S4", "S5", "S1", "S6", "S2", "S7", "S8"}
	selected := []string{}
	for _, s := range seats {
		selected = Toggle(s, selected, nil, nil, k)
		assert.LessOrEqual(t, len(selected), k, "selection must never exceed maxSeats")
	}
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	selected := []string{"S1", "S2"}
	_ = Toggle("S3", selected, nil, nil, 5)
	_ = Toggle("S1", selected, nil, nil, 5)
	assert.Equal(t, []string{"S1", "S2"}, selected)
}

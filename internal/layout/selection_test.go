package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_CallbackFiresOnAcceptedToggle(t *testing.T) {
	var notified [][]string
	sel := NewSelection(5, func(seats []string) { notified = append(notified, seats) })

	require.True(t, sel.Toggle("S1", nil, nil))
	require.True(t, sel.Toggle("S2", nil, nil))
	require.Len(t, notified, 2)
	assert.Equal(t, []string{"S1"}, notified[0])
	assert.Equal(t, []string{"S1", "S2"}, notified[1])
}

func TestSelection_RejectedToggleStaysSilent(t *testing.T) {
	calls := 0
	sel := NewSelection(1, func([]string) { calls++ })

	require.True(t, sel.Toggle("S1", nil, nil))
	assert.False(t, sel.Toggle("S2", nil, nil), "at capacity")
	assert.False(t, sel.Toggle("S3", []string{"S3"}, nil), "booked")
	assert.False(t, sel.Toggle("S4", nil, []string{"S4"}), "locked")
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"S1"}, sel.Seats())
}

func TestSelection_ResetReassertsCallerState(t *testing.T) {
	calls := 0
	sel := NewSelection(5, func([]string) { calls++ })
	sel.Reset([]string{"S8", "S9"})

	assert.Equal(t, []string{"S8", "S9"}, sel.Seats())
	assert.Equal(t, 0, calls, "reset does not fire the callback")
	assert.Equal(t, 2, sel.Len())
}

func TestSelection_SeatLockedOutFromUnderRider(t *testing.T) {
	sel := NewSelection(5, nil)
	require.True(t, sel.Toggle("S1", nil, nil))

	// another rider's lock lands between renders: the seat freezes in place
	assert.False(t, sel.Toggle("S1", nil, []string{"S1"}))
	assert.Equal(t, []string{"S1"}, sel.Seats())
	assert.Equal(t, StatusLocked, DeriveStatus("S1", nil, []string{"S1"}, sel.Seats()))
}

func TestSelection_SeatsReturnsCopy(t *testing.T) {
	sel := NewSelection(5, nil)
	sel.Reset([]string{"S1"})
	got := sel.Seats()
	got[0] = "mutated"
	assert.Equal(t, []string{"S1"}, sel.Seats())
}

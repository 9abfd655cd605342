package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLockRecords(t *testing.T) {
	expires := time.Now().UTC().Add(5 * time.Minute)
	seats := []string{"L3", "L4", "U1"}

	locks := GenerateLockRecords(7, 99, seats, expires)
	require.Len(t, locks, 3)

	tokens := make(map[string]struct{})
	for i, l := range locks {
		assert.EqualValues(t, 7, l.UserID)
		assert.EqualValues(t, 99, l.TripID)
		assert.Equal(t, seats[i], l.SeatNumber)
		assert.Equal(t, expires, l.ExpiresAt)
		assert.NotEmpty(t, l.LockToken)
		tokens[l.LockToken] = struct{}{}
	}
	// every lock gets its own token
	assert.Len(t, tokens, 3)
}

func TestGenerateLockRecordsEmpty(t *testing.T) {
	locks := GenerateLockRecords(1, 2, nil, time.Now())
	assert.Empty(t, locks)
}

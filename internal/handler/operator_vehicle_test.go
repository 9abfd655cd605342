package handler

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bus-ticketing/internal/layout"
	"github.com/iliyamo/bus-ticketing/internal/repository"
)

func generatedLayoutJSON(t *testing.T, cfg layout.Config) sql.NullString {
	t.Helper()
	col, err := encodeLayout(layout.Generate(cfg))
	require.NoError(t, err)
	return col
}

func TestDecodeStoredLayout(t *testing.T) {
	assert.Nil(t, decodeStoredLayout(sql.NullString{}))
	assert.Nil(t, decodeStoredLayout(sql.NullString{String: "  ", Valid: true}))
	assert.Nil(t, decodeStoredLayout(sql.NullString{String: "{not json", Valid: true}))

	col := generatedLayoutJSON(t, layout.Config{Rows: 5, LeftLower: 2, RightLower: 2})
	stored := decodeStoredLayout(col)
	require.NotNil(t, stored)
	assert.Equal(t, 5, stored.TotalRows)
}

func TestEncodeLayoutRoundTrip(t *testing.T) {
	cfg := layout.Config{Rows: 4, LeftUpper: 1, LeftLower: 1, RightUpper: 2, RightLower: 2}
	col := generatedLayoutJSON(t, cfg)
	require.True(t, col.Valid)

	stored := decodeStoredLayout(col)
	require.NotNil(t, stored)
	l := layout.Normalize(stored, 0, layout.ClassSleeper)
	require.NotNil(t, l)
	assert.Equal(t, cfg.Total(), l.CountSeats())
}

func TestVehicleLayoutReady(t *testing.T) {
	cfg := layout.Config{Rows: 5, LeftLower: 2, RightLower: 2}
	col := generatedLayoutJSON(t, cfg)

	v := &repository.Vehicle{Class: "seater", TotalSeats: uint32(cfg.Total()), LayoutJSON: col}
	assert.True(t, vehicleLayoutReady(v))

	// declared capacity disagrees with the stored layout
	v.TotalSeats++
	assert.False(t, vehicleLayoutReady(v))

	// nothing stored yet
	v.LayoutJSON = sql.NullString{}
	assert.False(t, vehicleLayoutReady(v))
}

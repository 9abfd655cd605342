package model_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bus-ticketing/internal/model"
	"github.com/iliyamo/bus-ticketing/internal/repository"
)

// The model package documents the tables the repositories query. Shared
// fields must carry the same types as the live repository structs so the
// documentation cannot drift from the code.
func TestVehicleFieldsMatchRepository(t *testing.T) {
	m := reflect.TypeOf(model.Vehicle{})
	r := reflect.TypeOf(repository.Vehicle{})

	for _, name := range []string{"ID", "OperatorID", "Name", "Class", "TotalSeats", "LayoutJSON", "IsActive"} {
		mf, ok := m.FieldByName(name)
		require.True(t, ok, "model.Vehicle missing %s", name)
		rf, ok := r.FieldByName(name)
		require.True(t, ok, "repository.Vehicle missing %s", name)
		assert.Equal(t, rf.Type, mf.Type, "field %s", name)
	}
}

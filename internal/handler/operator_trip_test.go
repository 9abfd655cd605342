package handler

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bus-ticketing/internal/repository"
)

// unreachableConnector yields a *sql.DB whose every query fails at
// connect time. Handlers under test that get past request validation
// surface that as a 500, which separates "rejected the request" from
// "reached the repository" without a database.
type unreachableConnector struct{}

func (unreachableConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("no database in tests")
}

func (unreachableConnector) Driver() driver.Driver { return nil }

func newUnreachableOperatorHandler() *OperatorHandler {
	db := sql.OpenDB(unreachableConnector{})
	return NewOperatorHandler(
		repository.NewRouteRepo(db),
		repository.NewVehicleRepo(db),
		repository.NewTripRepo(db),
	)
}

func TestListTripsOnRouteReadsIDParam(t *testing.T) {
	h := newUnreachableOperatorHandler()
	e := echo.New()

	run := func(idValue string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		// the router declares GET /v1/operator/routes/:id/trips
		c.SetParamNames("id")
		c.SetParamValues(idValue)
		c.Set("user_id", uint64(1))
		require.NoError(t, h.ListTripsOnRoute(c))
		return rec
	}

	// a numeric :id must clear validation and hit the route lookup
	assert.Equal(t, http.StatusInternalServerError, run("42").Code)

	// a non-numeric :id is rejected before any query
	rec := run("abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid route id")
}

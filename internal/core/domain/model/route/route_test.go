package route_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoute(t *testing.T) *route.Route {
	t.Helper()
	r, err := route.NewRoute(kernel.MustNewPlace("Depot"), kernel.MustNewPlace("Harbour"), 12.5, 30)
	require.NoError(t, err)
	return r
}

func TestNewRoute(t *testing.T) {
	r := newTestRoute(t)

	require.NoError(t, r.Validate())
	assert.Equal(t, route.ID(0), r.ID())
	assert.Equal(t, "Depot", r.Start().String())
	assert.Equal(t, "Harbour", r.End().String())
	assert.InDelta(t, 12.5, r.Distance().Float64(), 1e-9)
	assert.Equal(t, 30, r.EstimatedTime().Int())
	assert.Equal(t, route.Unassigned, r.Status())
	assert.False(t, r.IsAssigned())
	assert.Nil(t, r.AssignedDriverID())
}

func TestNewRoute_InvalidInput(t *testing.T) {
	_, err := route.NewRoute(kernel.Place{}, kernel.MustNewPlace("Harbour"), 1, 1)
	require.ErrorIs(t, err, kernel.ErrPlaceIsNotConstructed)

	_, err = route.NewRoute(kernel.MustNewPlace("Depot"), kernel.MustNewPlace("Harbour"), -1, 1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = route.NewRoute(kernel.MustNewPlace("Depot"), kernel.MustNewPlace("Harbour"), 1, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRoute_Assign(t *testing.T) {
	r := newTestRoute(t)

	require.NoError(t, r.ValidateAssign())
	require.NoError(t, r.Assign("d1"))

	assert.Equal(t, route.Assigned, r.Status())
	assert.True(t, r.IsAssigned())
	require.NotNil(t, r.AssignedDriverID())
	assert.Equal(t, driver.ID("d1"), *r.AssignedDriverID())
}

func TestRoute_AssignTwiceFails(t *testing.T) {
	r := newTestRoute(t)
	require.NoError(t, r.Assign("d1"))

	err := r.Assign("d2")

	require.ErrorIs(t, err, route.ErrRouteIsAlreadyAssigned)
	require.ErrorIs(t, r.ValidateAssign(), route.ErrRouteIsAlreadyAssigned)
	assert.Equal(t, driver.ID("d1"), *r.AssignedDriverID())
}

func TestRoute_AssignBlankDriverFails(t *testing.T) {
	r := newTestRoute(t)

	err := r.Assign(" ")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.False(t, r.IsAssigned())
}

func TestRoute_AssignedDriverIDIsACopy(t *testing.T) {
	r := newTestRoute(t)
	require.NoError(t, r.Assign("d1"))

	id := r.AssignedDriverID()
	*id = "tampered"

	assert.Equal(t, driver.ID("d1"), *r.AssignedDriverID())
}

func TestRestoreRoute(t *testing.T) {
	start := kernel.MustNewPlace("Depot")
	end := kernel.MustNewPlace("Harbour")
	driverID := driver.ID("d1")

	t.Run("assigned with driver", func(t *testing.T) {
		r, err := route.RestoreRoute(3, start, end, 4, 5, route.Assigned, &driverID)
		require.NoError(t, err)
		assert.Equal(t, route.ID(3), r.ID())
		assert.Equal(t, driverID, *r.AssignedDriverID())
	})

	t.Run("unassigned without driver", func(t *testing.T) {
		r, err := route.RestoreRoute(3, start, end, 4, 5, route.Unassigned, nil)
		require.NoError(t, err)
		assert.Nil(t, r.AssignedDriverID())
	})

	t.Run("assigned without driver is rejected", func(t *testing.T) {
		_, err := route.RestoreRoute(3, start, end, 4, 5, route.Assigned, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unassigned with driver is rejected", func(t *testing.T) {
		_, err := route.RestoreRoute(3, start, end, 4, 5, route.Unassigned, &driverID)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("non positive id is rejected", func(t *testing.T) {
		_, err := route.RestoreRoute(0, start, end, 4, 5, route.Unassigned, nil)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

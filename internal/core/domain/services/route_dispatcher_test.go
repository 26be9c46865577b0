package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dispatchTime = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func persistedRoute(t *testing.T, id route.ID) *route.Route {
	t.Helper()
	r, err := route.RestoreRoute(id, kernel.MustNewPlace("A"), kernel.MustNewPlace("B"), 10, 15, route.Unassigned, nil)
	require.NoError(t, err)
	return r
}

func TestRouteDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewRouteDispatcher()

	t.Run("should occupy driver and assign route", func(t *testing.T) {
		r := persistedRoute(t, 11)
		d := restoredDriver(t, "d1", true, 1)

		a, err := dispatcher.Dispatch(r, d, dispatchTime)

		require.NoError(t, err)
		assert.False(t, d.IsAvailable())
		assert.Equal(t, route.Assigned, r.Status())
		assert.Equal(t, driver.ID("d1"), *r.AssignedDriverID())
		assert.Equal(t, assignment.ID(0), a.ID())
		assert.Equal(t, driver.ID("d1"), a.DriverID())
		assert.Equal(t, route.ID(11), a.RouteID())
		assert.True(t, a.AssignedAt().Equal(dispatchTime))
		assert.True(t, a.IsOpen())
	})

	t.Run("should refuse an already assigned route and leave driver free", func(t *testing.T) {
		r := persistedRoute(t, 12)
		require.NoError(t, r.Assign("other"))
		d := restoredDriver(t, "d2", true, 2)

		a, err := dispatcher.Dispatch(r, d, dispatchTime)

		require.ErrorIs(t, err, route.ErrRouteIsAlreadyAssigned)
		assert.Nil(t, a)
		assert.True(t, d.IsAvailable())
		assert.Equal(t, driver.ID("other"), *r.AssignedDriverID())
	})

	t.Run("should refuse a busy driver and leave route unassigned", func(t *testing.T) {
		r := persistedRoute(t, 13)
		d := restoredDriver(t, "d3", false, 3)

		a, err := dispatcher.Dispatch(r, d, dispatchTime)

		require.ErrorIs(t, err, driver.ErrDriverIsNotAvailable)
		assert.Nil(t, a)
		assert.Equal(t, route.Unassigned, r.Status())
	})

	t.Run("should refuse a route that was never persisted", func(t *testing.T) {
		r, err := route.NewRoute(kernel.MustNewPlace("A"), kernel.MustNewPlace("B"), 1, 1)
		require.NoError(t, err)
		d := restoredDriver(t, "d4", true, 4)

		_, err = dispatcher.Dispatch(r, d, dispatchTime)

		require.Error(t, err)
		assert.True(t, d.IsAvailable())
		assert.Equal(t, route.Unassigned, r.Status())
	})

	t.Run("should refuse unconstructed aggregates", func(t *testing.T) {
		_, err := dispatcher.Dispatch(&route.Route{}, restoredDriver(t, "d5", true, 5), dispatchTime)
		require.ErrorIs(t, err, route.ErrRouteIsNotConstructed)

		_, err = dispatcher.Dispatch(persistedRoute(t, 14), &driver.Driver{}, dispatchTime)
		require.ErrorIs(t, err, driver.ErrDriverIsNotConstructed)
	})
}

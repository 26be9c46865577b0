package queries_test

import (
	"math"
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListRoutesQuery_Clamping(t *testing.T) {
	tests := []struct {
		name          string
		page, limit   int
		wantPage      int
		wantLimit     int
		wantOffsetVal int
	}{
		{"defaults", 0, 0, 1, 10, 0},
		{"negative page", -3, 5, 1, 5, 0},
		{"negative limit", 2, -7, 2, 1, 1},
		{"limit above max", 3, 500, 3, 100, 200},
		{"in range", 4, 25, 4, 25, 75},
		{"page above max", math.MaxInt / 50, 100, queries.MaxPage, 100, (queries.MaxPage - 1) * 100},
		{"max int page", math.MaxInt, 1, queries.MaxPage, 1, queries.MaxPage - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queries.NewListRoutesQuery(tt.page, tt.limit)

			require.NoError(t, q.Validate())
			assert.Equal(t, tt.wantPage, q.Page())
			assert.Equal(t, tt.wantLimit, q.Limit())
			assert.Equal(t, tt.wantOffsetVal, q.Offset())
			assert.GreaterOrEqual(t, q.Offset(), 0)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, queries.TotalPages(0, 10))
	assert.Equal(t, 1, queries.TotalPages(10, 10))
	assert.Equal(t, 2, queries.TotalPages(11, 10))
	assert.Equal(t, 25, queries.TotalPages(25, 1))
	assert.Equal(t, 1, queries.TotalPages(5, 0))
}

func TestQueries_ZeroValuesAreNotConstructed(t *testing.T) {
	require.ErrorIs(t, queries.ListRoutesQuery{}.Validate(), queries.ErrListRoutesQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetScheduleQuery{}.Validate(), queries.ErrGetScheduleQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetDriverHistoryQuery{}.Validate(), queries.ErrGetDriverHistoryQueryIsNotConstructed)
}

func TestNewGetDriverHistoryQuery_RejectsBlankID(t *testing.T) {
	_, err := queries.NewGetDriverHistoryQuery("  ")

	require.Error(t, err)
}

package planner

import (
	"testing"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func testShifts() []*domain.Shift {
	return []*domain.Shift{
		{ID: 10, Name: "Morning", SortOrder: 1},
		{ID: 20, Name: "Afternoon", SortOrder: 2},
		{ID: 30, Name: "Evening", SortOrder: 3},
	}
}

func TestBuildGrid_EmptyWeek(t *testing.T) {
	grid := BuildGrid(testShifts(), nil)

	for d := 0; d < 7; d++ {
		require.Len(t, grid[d], 3, "day %d", d)
		for _, sid := range []int64{10, 20, 30} {
			assert.Nil(t, grid[d][sid], "day %d shift %d", d, sid)
		}
	}
}

func TestBuildGrid_Overlay(t *testing.T) {
	assignments := []*domain.Assignment{
		{DayIndex: 0, ShiftID: 10, PersonID: int64Ptr(1)},
		{DayIndex: 0, ShiftID: 20, PersonID: int64Ptr(2)},
		{DayIndex: 6, ShiftID: 30, PersonID: int64Ptr(1)},
		{DayIndex: 3, ShiftID: 20, PersonID: nil}, // explicitly unfilled row
	}

	grid := BuildGrid(testShifts(), assignments)

	assert.Equal(t, int64(1), *grid[0][10])
	assert.Equal(t, int64(2), *grid[0][20])
	assert.Equal(t, int64(1), *grid[6][30])
	assert.Nil(t, grid[3][20])
	assert.Nil(t, grid[1][10])
}

func TestBuildGrid_IgnoresDanglingReferences(t *testing.T) {
	assignments := []*domain.Assignment{
		{DayIndex: 7, ShiftID: 10, PersonID: int64Ptr(1)},  // day out of range
		{DayIndex: -1, ShiftID: 10, PersonID: int64Ptr(1)}, // day out of range
		{DayIndex: 2, ShiftID: 99, PersonID: int64Ptr(1)},  // deleted shift
	}

	grid := BuildGrid(testShifts(), assignments)

	for d := 0; d < 7; d++ {
		assert.Len(t, grid[d], 3)
		assert.NotContains(t, grid[d], int64(99))
		for _, pid := range grid[d] {
			assert.Nil(t, pid)
		}
	}
}

package planner

import (
	"testing"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeople() []*domain.Person {
	return []*domain.Person{
		{ID: 1, FullName: "Anna", IsActive: true},
		{ID: 2, FullName: "Bruno", IsActive: true},
		{ID: 3, FullName: "Carla", IsActive: true},
	}
}

func emptyRotation() [7]map[int64]Status {
	var r [7]map[int64]Status
	for d := range r {
		r[d] = make(map[int64]Status)
	}
	return r
}

func emptyAbsences() [7]map[int64]domain.AbsenceKind {
	var a [7]map[int64]domain.AbsenceKind
	for d := range a {
		a[d] = make(map[int64]domain.AbsenceKind)
	}
	return a
}

func TestComputeAlerts_Duplicates(t *testing.T) {
	shifts := testShifts()
	grid := BuildGrid(shifts, []*domain.Assignment{
		{DayIndex: 2, ShiftID: 10, PersonID: int64Ptr(1)},
		{DayIndex: 2, ShiftID: 20, PersonID: int64Ptr(1)},
		{DayIndex: 3, ShiftID: 10, PersonID: int64Ptr(1)}, // different day, no duplicate
	})

	alerts := ComputeAlerts(grid, shifts, testPeople(), emptyRotation(), emptyAbsences())

	require.Len(t, alerts.Duplicates[2], 1)
	assert.Equal(t, DuplicateAlert{PersonID: 1, Count: 2}, alerts.Duplicates[2][0])
	assert.Empty(t, alerts.Duplicates[3])

	// a third cell the same day raises the count, still one entry
	grid[2][30] = int64Ptr(1)
	alerts = ComputeAlerts(grid, shifts, testPeople(), emptyRotation(), emptyAbsences())
	require.Len(t, alerts.Duplicates[2], 1)
	assert.Equal(t, DuplicateAlert{PersonID: 1, Count: 3}, alerts.Duplicates[2][0])
}

func TestComputeAlerts_RotationConflicts(t *testing.T) {
	shifts := testShifts()
	grid := BuildGrid(shifts, []*domain.Assignment{
		{DayIndex: 0, ShiftID: 10, PersonID: int64Ptr(1)},
		{DayIndex: 1, ShiftID: 20, PersonID: int64Ptr(1)},
	})

	rotation := emptyRotation()
	rotation[0][1] = StatusRest
	rotation[1][1] = StatusLeave

	alerts := ComputeAlerts(grid, shifts, testPeople(), rotation, emptyAbsences())

	require.Len(t, alerts.RestConflicts[0], 1)
	assert.Equal(t, RotationConflict{PersonID: 1, ShiftID: 10, ShiftName: "Morning"}, alerts.RestConflicts[0][0])
	require.Len(t, alerts.LeaveConflicts[1], 1)
	assert.Equal(t, RotationConflict{PersonID: 1, ShiftID: 20, ShiftName: "Afternoon"}, alerts.LeaveConflicts[1][0])
}

// A blocking absence on the same cell suppresses the rest/leave conflict.
func TestComputeAlerts_AbsencePrecedence(t *testing.T) {
	shifts := testShifts()
	grid := BuildGrid(shifts, []*domain.Assignment{
		{DayIndex: 4, ShiftID: 30, PersonID: int64Ptr(2)},
	})

	rotation := emptyRotation()
	rotation[4][2] = StatusRest
	absences := emptyAbsences()
	absences[4][2] = domain.AbsenceSick

	alerts := ComputeAlerts(grid, shifts, testPeople(), rotation, absences)

	require.Len(t, alerts.AbsenceConflicts[4], 1)
	assert.Equal(t, AbsenceConflict{PersonID: 2, Kind: domain.AbsenceSick, ShiftID: 30, ShiftName: "Evening"}, alerts.AbsenceConflicts[4][0])
	assert.Empty(t, alerts.RestConflicts[4])
	assert.Empty(t, alerts.LeaveConflicts[4])
}

// Active people partition per day into exactly one of: assigned, rotation
// status, blocking absence, not planned.
func TestComputeAlerts_NotPlannedPartition(t *testing.T) {
	shifts := testShifts()
	grid := BuildGrid(shifts, []*domain.Assignment{
		{DayIndex: 5, ShiftID: 10, PersonID: int64Ptr(1)},
	})

	rotation := emptyRotation()
	rotation[5][2] = StatusLeave
	absences := emptyAbsences()
	absences[5][3] = domain.AbsenceVacation

	alerts := ComputeAlerts(grid, shifts, testPeople(), rotation, absences)

	// 1 assigned, 2 on leave, 3 absent: nobody unplanned on day 5
	assert.Empty(t, alerts.NotPlanned[5])

	// every other day all three are unplanned
	for d := 0; d < 7; d++ {
		if d == 5 {
			continue
		}
		assert.ElementsMatch(t, []int64{1, 2, 3}, alerts.NotPlanned[d], "day %d", d)
	}
}

// An absent or resting person is excluded from not-planned even though they
// are planned nowhere; a person both assigned and absent counts as assigned
// (and raises an absence conflict instead).
func TestComputeAlerts_NotPlannedExclusions(t *testing.T) {
	shifts := testShifts()
	grid := BuildGrid(shifts, []*domain.Assignment{
		{DayIndex: 0, ShiftID: 10, PersonID: int64Ptr(3)},
	})

	absences := emptyAbsences()
	absences[0][3] = domain.AbsenceInjury

	alerts := ComputeAlerts(grid, shifts, testPeople(), emptyRotation(), absences)

	assert.ElementsMatch(t, []int64{1, 2}, alerts.NotPlanned[0])
	require.Len(t, alerts.AbsenceConflicts[0], 1)
	assert.Equal(t, int64(3), alerts.AbsenceConflicts[0][0].PersonID)
}

func TestBuildWeeklyPlan_EndToEnd(t *testing.T) {
	monday := date(2026, 1, 12)
	people := []*domain.Person{
		{ID: 1, FullName: "Anna", IsActive: true, RotationAnchorDate: datePtr(2026, 1, 13)}, // rest on day 1
		{ID: 2, FullName: "Bruno", IsActive: true},
	}
	snapshot := Snapshot{
		Monday: monday,
		Shifts: testShifts(),
		People: people,
		Assignments: []*domain.Assignment{
			{DayIndex: 1, ShiftID: 10, PersonID: int64Ptr(1)}, // planned on her rest day
			{DayIndex: 0, ShiftID: 10, PersonID: int64Ptr(2)},
		},
		Absences: []*domain.ExtraAbsence{
			{ID: 1, PersonID: 2, Kind: domain.AbsenceVacation, StartDate: date(2026, 1, 14), EndDate: date(2026, 1, 15)},
		},
	}

	plan := BuildWeeklyPlan(snapshot)

	assert.Equal(t, monday, plan.MondayDate)
	assert.Equal(t, int64(1), *plan.Grid[1][10])
	assert.Equal(t, StatusRest, plan.Rotation[1][1])
	assert.Equal(t, StatusLeave, plan.Rotation[2][1])

	require.Len(t, plan.Alerts.RestConflicts[1], 1)
	assert.Equal(t, int64(1), plan.Alerts.RestConflicts[1][0].PersonID)

	// Bruno is on vacation Wednesday and Thursday: not unplanned there
	assert.NotContains(t, plan.Alerts.NotPlanned[2], int64(2))
	assert.NotContains(t, plan.Alerts.NotPlanned[3], int64(2))
	// but unplanned on Friday
	assert.Contains(t, plan.Alerts.NotPlanned[4], int64(2))
}

// The engine never fails on malformed upstream rows; they are simply not part
// of the result.
func TestBuildWeeklyPlan_MalformedRowsIgnored(t *testing.T) {
	snapshot := Snapshot{
		Monday: date(2026, 1, 12),
		Shifts: testShifts(),
		People: testPeople(),
		Assignments: []*domain.Assignment{
			{DayIndex: 42, ShiftID: 10, PersonID: int64Ptr(1)},
			{DayIndex: 2, ShiftID: 12345, PersonID: int64Ptr(1)},
		},
	}

	plan := BuildWeeklyPlan(snapshot)

	for d := 0; d < 7; d++ {
		for _, pid := range plan.Grid[d] {
			assert.Nil(t, pid)
		}
		assert.Empty(t, plan.Alerts.Duplicates[d])
	}
}

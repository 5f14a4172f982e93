package planner

import (
	"testing"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildAbsenceIndex_InclusiveRange(t *testing.T) {
	// VACATION 2026-01-10..2026-01-14 against the week of 2026-01-12: flagged
	// on day 0 (01-12) through day 2 (01-14), not from day 3 on.
	absences := []*domain.ExtraAbsence{
		{ID: 1, PersonID: 7, Kind: domain.AbsenceVacation, StartDate: date(2026, 1, 10), EndDate: date(2026, 1, 14)},
	}

	byDay := BuildAbsenceIndex(absences, date(2026, 1, 12))

	for d := 0; d <= 2; d++ {
		assert.Equal(t, domain.AbsenceVacation, byDay[d][7], "day %d", d)
	}
	for d := 3; d <= 6; d++ {
		assert.NotContains(t, byDay[d], int64(7), "day %d", d)
	}
}

func TestBuildAbsenceIndex_RangeOutsideWeek(t *testing.T) {
	absences := []*domain.ExtraAbsence{
		{ID: 1, PersonID: 7, Kind: domain.AbsenceSick, StartDate: date(2026, 1, 1), EndDate: date(2026, 1, 11)},
		{ID: 2, PersonID: 8, Kind: domain.AbsenceSick, StartDate: date(2026, 1, 19), EndDate: date(2026, 1, 25)},
	}

	byDay := BuildAbsenceIndex(absences, date(2026, 1, 12))

	for d := 0; d < 7; d++ {
		assert.Empty(t, byDay[d], "day %d", d)
	}
}

func TestBuildAbsenceIndex_SingleDayAndSpanningRange(t *testing.T) {
	absences := []*domain.ExtraAbsence{
		{ID: 1, PersonID: 3, Kind: domain.AbsenceInjury, StartDate: date(2026, 1, 15), EndDate: date(2026, 1, 15)},
		{ID: 2, PersonID: 4, Kind: domain.AbsenceVacation, StartDate: date(2025, 12, 1), EndDate: date(2026, 2, 1)},
	}

	byDay := BuildAbsenceIndex(absences, date(2026, 1, 12))

	assert.Equal(t, domain.AbsenceInjury, byDay[3][3]) // Thursday only
	assert.NotContains(t, byDay[2], int64(3))
	assert.NotContains(t, byDay[4], int64(3))

	for d := 0; d < 7; d++ {
		assert.Equal(t, domain.AbsenceVacation, byDay[d][4], "day %d", d)
	}
}

// Overlapping records of the same person: the record processed last wins.
// There is no precedence between kinds; this documents the observable
// behavior rather than an intent.
func TestBuildAbsenceIndex_OverlapLastWins(t *testing.T) {
	absences := []*domain.ExtraAbsence{
		{ID: 1, PersonID: 5, Kind: domain.AbsenceVacation, StartDate: date(2026, 1, 12), EndDate: date(2026, 1, 18)},
		{ID: 2, PersonID: 5, Kind: domain.AbsenceSick, StartDate: date(2026, 1, 14), EndDate: date(2026, 1, 16)},
	}

	byDay := BuildAbsenceIndex(absences, date(2026, 1, 12))

	assert.Equal(t, domain.AbsenceVacation, byDay[0][5])
	assert.Equal(t, domain.AbsenceVacation, byDay[1][5])
	assert.Equal(t, domain.AbsenceSick, byDay[2][5]) // overwritten by record 2
	assert.Equal(t, domain.AbsenceSick, byDay[4][5])
	assert.Equal(t, domain.AbsenceVacation, byDay[5][5])
}

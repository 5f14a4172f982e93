package planner

import (
	"time"

	"github.com/gestione-turni/backend/internal/domain"
)

// BuildAbsenceIndex turns date-ranged absence records into a per-day lookup of
// blocking absence kind for the week starting at monday. Ranges are inclusive
// on both ends.
//
// When two records of the same person cover the same day, the last record in
// the input wins. The data model defines no precedence between kinds, so
// callers supply records in id order to keep the outcome deterministic.
func BuildAbsenceIndex(absences []*domain.ExtraAbsence, monday time.Time) [7]map[int64]domain.AbsenceKind {
	var byDay [7]map[int64]domain.AbsenceKind
	for d := range byDay {
		byDay[d] = make(map[int64]domain.AbsenceKind)
	}

	for _, a := range absences {
		for d := 0; d < 7; d++ {
			day := monday.AddDate(0, 0, d)
			if !day.Before(a.StartDate) && !day.After(a.EndDate) {
				byDay[d][a.PersonID] = a.Kind
			}
		}
	}

	return byDay
}

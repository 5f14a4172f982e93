package planner

import (
	"github.com/gestione-turni/backend/internal/domain"
)

type DuplicateAlert struct {
	PersonID int64 `json:"personID"`
	Count    int   `json:"count"`
}

type RotationConflict struct {
	PersonID  int64  `json:"personID"`
	ShiftID   int64  `json:"shiftID"`
	ShiftName string `json:"shiftName"`
}

type AbsenceConflict struct {
	PersonID  int64              `json:"personID"`
	Kind      domain.AbsenceKind `json:"kind"`
	ShiftID   int64              `json:"shiftID"`
	ShiftName string             `json:"shiftName"`
}

// Alerts are the scheduling problems of one week, each category keyed by day
// index 0..6. Each day is computed independently of the others.
type Alerts struct {
	Duplicates       [7][]DuplicateAlert   `json:"duplicates"`
	NotPlanned       [7][]int64            `json:"notPlanned"`
	RestConflicts    [7][]RotationConflict `json:"restConflicts"`
	LeaveConflicts   [7][]RotationConflict `json:"leaveConflicts"`
	AbsenceConflicts [7][]AbsenceConflict  `json:"absenceConflicts"`
}

// ComputeAlerts cross-references the week grid against the rotation rule and
// the absence index.
//
// Per cell, a blocking absence takes precedence: a person planned during an
// absence yields only an absence conflict, never an additional rest/leave
// conflict for the same cell. The not-planned set is the complement: active
// people with no assignment, no rotation status and no absence that day.
func ComputeAlerts(grid Grid, shifts []*domain.Shift, people []*domain.Person, rotationByDay [7]map[int64]Status, absenceByDay [7]map[int64]domain.AbsenceKind) Alerts {
	alerts := Alerts{}
	for d := range alerts.Duplicates {
		alerts.Duplicates[d] = make([]DuplicateAlert, 0)
		alerts.NotPlanned[d] = make([]int64, 0)
		alerts.RestConflicts[d] = make([]RotationConflict, 0)
		alerts.LeaveConflicts[d] = make([]RotationConflict, 0)
		alerts.AbsenceConflicts[d] = make([]AbsenceConflict, 0)
	}

	shiftNameByID := make(map[int64]string, len(shifts))
	for _, s := range shifts {
		shiftNameByID[s.ID] = s.Name
	}

	for d := 0; d < 7; d++ {
		// people planned more than once on the same day
		counts := make(map[int64]int)
		for _, pid := range grid[d] {
			if pid != nil {
				counts[*pid]++
			}
		}
		for pid, cnt := range counts {
			if cnt >= 2 {
				alerts.Duplicates[d] = append(alerts.Duplicates[d], DuplicateAlert{PersonID: pid, Count: cnt})
			}
		}

		// conflicts per filled cell, in column order
		for _, s := range shifts {
			pid := grid[d][s.ID]
			if pid == nil {
				continue
			}

			if kind, ok := absenceByDay[d][*pid]; ok {
				alerts.AbsenceConflicts[d] = append(alerts.AbsenceConflicts[d], AbsenceConflict{
					PersonID:  *pid,
					Kind:      kind,
					ShiftID:   s.ID,
					ShiftName: shiftNameByID[s.ID],
				})
				continue
			}

			switch rotationByDay[d][*pid] {
			case StatusRest:
				alerts.RestConflicts[d] = append(alerts.RestConflicts[d], RotationConflict{
					PersonID:  *pid,
					ShiftID:   s.ID,
					ShiftName: shiftNameByID[s.ID],
				})
			case StatusLeave:
				alerts.LeaveConflicts[d] = append(alerts.LeaveConflicts[d], RotationConflict{
					PersonID:  *pid,
					ShiftID:   s.ID,
					ShiftName: shiftNameByID[s.ID],
				})
			}
		}

		// active people with no assignment and no absence of either kind
		for _, p := range people {
			if _, assigned := counts[p.ID]; assigned {
				continue
			}
			if _, resting := rotationByDay[d][p.ID]; resting {
				continue
			}
			if _, absent := absenceByDay[d][p.ID]; absent {
				continue
			}
			alerts.NotPlanned[d] = append(alerts.NotPlanned[d], p.ID)
		}
	}

	return alerts
}

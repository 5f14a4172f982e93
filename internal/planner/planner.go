// Package planner reconstructs the weekly shift grid from raw assignment data
// and computes the scheduling alerts. Everything in here is pure computation
// over a snapshot fetched by the caller: no storage access, no errors, always
// a complete result.
package planner

import (
	"time"

	"github.com/gestione-turni/backend/internal/domain"
)

// Snapshot is the input the planner needs for one week: the ordered shift
// list, the active people, the week's stored assignments and every absence
// record whose range can intersect the week.
type Snapshot struct {
	Monday      time.Time
	Shifts      []*domain.Shift
	People      []*domain.Person
	Assignments []*domain.Assignment
	Absences    []*domain.ExtraAbsence
}

// Plan is the reconciled week handed to presentation layers (JSON response,
// PDF, XLSX). Rotation is included so clients can render rest/leave days
// without re-deriving the rule.
type Plan struct {
	MondayDate time.Time           `json:"mondayDate"`
	Shifts     []*domain.Shift     `json:"shifts"`
	People     []*domain.Person    `json:"people"`
	Grid       Grid                `json:"grid"`
	Rotation   [7]map[int64]Status `json:"rotation"`
	Alerts     Alerts              `json:"alerts"`
}

// BuildWeeklyPlan runs the full reconciliation: grid assembly, rotation rule,
// absence index and the alert engine.
func BuildWeeklyPlan(s Snapshot) *Plan {
	grid := BuildGrid(s.Shifts, s.Assignments)
	rotationByDay := BuildRotationByDay(s.People, s.Monday)
	absenceByDay := BuildAbsenceIndex(s.Absences, s.Monday)

	return &Plan{
		MondayDate: s.Monday,
		Shifts:     s.Shifts,
		People:     s.People,
		Grid:       grid,
		Rotation:   rotationByDay,
		Alerts:     ComputeAlerts(grid, s.Shifts, s.People, rotationByDay, absenceByDay),
	}
}

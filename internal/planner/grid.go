package planner

import (
	"github.com/gestione-turni/backend/internal/domain"
)

// Grid is the dense 7-day assignment grid: day index -> shift id -> assigned
// person (nil for an unfilled cell). Every day holds a cell for every shift
// that currently exists, however sparse the stored assignments are.
type Grid [7]map[int64]*int64

// BuildGrid assembles the grid for one week from the stored cell assignments.
// Assignments pointing at a day outside 0..6 or at a shift that is no longer
// defined are ignored, so a deleted shift's historical rows cannot resurrect
// a rendered column.
func BuildGrid(shifts []*domain.Shift, assignments []*domain.Assignment) Grid {
	var grid Grid
	for d := range grid {
		grid[d] = make(map[int64]*int64, len(shifts))
		for _, s := range shifts {
			grid[d][s.ID] = nil
		}
	}

	for _, a := range assignments {
		if a.DayIndex < 0 || a.DayIndex > 6 {
			continue
		}
		if _, ok := grid[a.DayIndex][a.ShiftID]; !ok {
			continue
		}
		grid[a.DayIndex][a.ShiftID] = a.PersonID
	}

	return grid
}

package domain

import (
	"time"
)

// Week is identified by its Monday. Day indices inside a week run 0 (that
// Monday) through 6 (the following Sunday).
type Week struct {
	ID         int64     `json:"id"`
	MondayDate time.Time `json:"mondayDate"`
}

// Assignment is one cell of the weekly grid: (week, day, shift) -> person.
// PersonID nil means the cell is unfilled; readers treat a nil person and a
// missing row identically.
type Assignment struct {
	ID       int64  `json:"id"`
	WeekID   int64  `json:"weekID"`
	DayIndex int    `json:"dayIndex"`
	ShiftID  int64  `json:"shiftID"`
	PersonID *int64 `json:"personID"`
}

// CellRole tags a cell as the opening or closing slot of the day.
type CellRole string

const (
	CellRoleOpen  CellRole = "OPEN"
	CellRoleClose CellRole = "CLOSE"
)

// AssignmentMeta is the optional per-cell annotation. Its lifecycle is
// independent of Assignment: it can exist before, after, or without a person
// ever being planned into the cell.
type AssignmentMeta struct {
	ID            int64   `json:"id"`
	WeekID        int64   `json:"weekID"`
	DayIndex      int     `json:"dayIndex"`
	ShiftID       int64   `json:"shiftID"`
	OverrideStart *string `json:"overrideStart"`
	OverrideEnd   *string `json:"overrideEnd"`
	Role          *string `json:"role"`
}

// CellPatch carries the meta fields of a set-cell request. Each field is
// independently present-or-absent: nil leaves the stored value untouched,
// a pointer to the empty string clears it to NULL.
type CellPatch struct {
	OverrideStart *string
	OverrideEnd   *string
	Role          *string
}

// Empty reports whether the patch carries no meta field at all, in which case
// no AssignmentMeta row is created or modified.
func (p CellPatch) Empty() bool {
	return p.OverrideStart == nil && p.OverrideEnd == nil && p.Role == nil
}

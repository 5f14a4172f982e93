package domain

import (
	"time"
)

type AbsenceKind string

const (
	AbsenceVacation AbsenceKind = "VACATION"
	AbsenceSick     AbsenceKind = "SICK"
	AbsenceInjury   AbsenceKind = "INJURY"
)

// ExtraAbsence is a blocking absence over an inclusive date range. Overlapping
// ranges for the same person are allowed by the data model.
type ExtraAbsence struct {
	ID        int64       `json:"id"`
	PersonID  int64       `json:"personID"`
	Kind      AbsenceKind `json:"kind"`
	StartDate time.Time   `json:"startDate"`
	EndDate   time.Time   `json:"endDate"`
	Notes     string      `json:"notes"`
}

package domain

import (
	"time"
)

// Person is someone who can be planned into shifts. RotationAnchorDate, when
// set, marks a rest day of the repeating 8-day rest/leave rotation; when nil
// the person has no rotation-derived absences at all.
type Person struct {
	ID                 int64      `json:"id"`
	FullName           string     `json:"fullName"`
	IsActive           bool       `json:"isActive"`
	Notes              string     `json:"notes"`
	RotationAnchorDate *time.Time `json:"rotationAnchorDate"`
	CreatedAt          time.Time  `json:"createdAt"`
	Version            int32      `json:"-"`
}

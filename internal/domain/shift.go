package domain

import (
	"time"
)

// Shift is a named column of the weekly grid. StartTime and EndTime are
// nominal times of day in "15:04:05" form; they are display defaults that an
// AssignmentMeta can override per cell. SortOrder only drives column order.
type Shift struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartTime *string   `json:"startTime"`
	EndTime   *string   `json:"endTime"`
	SortOrder int32     `json:"sortOrder"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

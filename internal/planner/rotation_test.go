package planner

import (
	"testing"
	"time"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestRotationStatus_NoAnchor(t *testing.T) {
	p := &domain.Person{ID: 1, FullName: "No Anchor"}

	for d := -20; d <= 20; d++ {
		assert.Equal(t, StatusNone, RotationStatus(p, date(2026, 1, 1).AddDate(0, 0, d)))
	}
}

func TestRotationStatus_Cycle(t *testing.T) {
	p := &domain.Person{ID: 1, RotationAnchorDate: datePtr(2026, 1, 5)}

	tests := []struct {
		name string
		day  time.Time
		want Status
	}{
		{"anchor itself", date(2026, 1, 5), StatusRest},
		{"anchor + 1", date(2026, 1, 6), StatusLeave},
		{"anchor + 2", date(2026, 1, 7), StatusNone},
		{"anchor + 7", date(2026, 1, 12), StatusNone},
		{"anchor + 8", date(2026, 1, 13), StatusRest},
		{"anchor + 9", date(2026, 1, 14), StatusLeave},
		{"anchor + 16", date(2026, 1, 21), StatusRest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RotationStatus(p, tt.day))
		})
	}
}

// Days before the anchor must be classified with a floored modulo: the cycle
// extends backwards unchanged instead of mirroring around the anchor.
func TestRotationStatus_BeforeAnchor(t *testing.T) {
	p := &domain.Person{ID: 1, RotationAnchorDate: datePtr(2026, 1, 5)}

	assert.Equal(t, StatusRest, RotationStatus(p, date(2025, 12, 28)))  // anchor - 8
	assert.Equal(t, StatusLeave, RotationStatus(p, date(2025, 12, 29))) // anchor - 7
	assert.Equal(t, StatusNone, RotationStatus(p, date(2026, 1, 4)))    // anchor - 1 (phase 7)
	assert.Equal(t, StatusLeave, RotationStatus(p, date(2025, 12, 21))) // anchor - 15
}

// Shifting the anchor by whole cycles must not change any classification.
func TestRotationStatus_AnchorShiftInvariance(t *testing.T) {
	day := date(2026, 3, 14)

	for k := -3; k <= 3; k++ {
		anchor := date(2026, 1, 5).AddDate(0, 0, 8*k)
		p := &domain.Person{ID: 1, RotationAnchorDate: &anchor}
		base := &domain.Person{ID: 1, RotationAnchorDate: datePtr(2026, 1, 5)}
		assert.Equal(t, RotationStatus(base, day), RotationStatus(p, day), "k=%d", k)
	}
}

// Anchor Monday 2026-01-05, weeks of 2026-01-12 and 2026-01-19. The phase
// follows the absolute day offset, so the rest day drifts one weekday per
// week instead of restarting each Monday.
func TestBuildRotationByDay_PhasePerAbsoluteDay(t *testing.T) {
	p := &domain.Person{ID: 9, RotationAnchorDate: datePtr(2026, 1, 5)}

	week1 := BuildRotationByDay([]*domain.Person{p}, date(2026, 1, 12)) // offsets 7..13
	week2 := BuildRotationByDay([]*domain.Person{p}, date(2026, 1, 19)) // offsets 14..20

	// offsets 7..13 -> phases 7,0,1,2,3,4,5
	assert.Empty(t, week1[0])
	assert.Equal(t, StatusRest, week1[1][9])
	assert.Equal(t, StatusLeave, week1[2][9])
	for d := 3; d < 7; d++ {
		assert.Empty(t, week1[d], "day %d", d)
	}

	// offsets 14..20 -> phases 6,7,0,1,2,3,4: rest moves to Wednesday
	assert.Empty(t, week2[0])
	assert.Empty(t, week2[1])
	assert.Equal(t, StatusRest, week2[2][9])
	assert.Equal(t, StatusLeave, week2[3][9])
}

func TestFloorMod(t *testing.T) {
	assert.Equal(t, 0, floorMod(0, 8))
	assert.Equal(t, 7, floorMod(-1, 8))
	assert.Equal(t, 0, floorMod(-8, 8))
	assert.Equal(t, 1, floorMod(-15, 8))
	assert.Equal(t, 3, floorMod(11, 8))
}

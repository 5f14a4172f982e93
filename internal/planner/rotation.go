package planner

import (
	"time"

	"github.com/gestione-turni/backend/internal/domain"
)

// Status is a rotation-derived day status.
type Status string

const (
	StatusNone  Status = ""
	StatusRest  Status = "REST"
	StatusLeave Status = "LEAVE"
)

// rotationCycleDays is the fixed length of the rest/leave rotation: the anchor
// day is a rest day, the day after it a leave day, and the pattern repeats.
const rotationCycleDays = 8

// daysBetween returns the number of calendar days from a to b, negative when
// b precedes a. Both arguments are treated as dates, ignoring clock and zone.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// floorMod returns x mod m with a result in [0, m) even for negative x. Go's %
// truncates toward zero, which would misclassify days before the anchor.
func floorMod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// RotationStatus computes the rotation status of one person on one calendar
// day. A person without an anchor date never has a rotation status.
func RotationStatus(p *domain.Person, day time.Time) Status {
	if p.RotationAnchorDate == nil {
		return StatusNone
	}

	switch floorMod(daysBetween(*p.RotationAnchorDate, day), rotationCycleDays) {
	case 0:
		return StatusRest
	case 1:
		return StatusLeave
	default:
		return StatusNone
	}
}

// BuildRotationByDay evaluates the rotation rule for every active person on
// every day of the week starting at monday. Days without a status are absent
// from the maps.
func BuildRotationByDay(people []*domain.Person, monday time.Time) [7]map[int64]Status {
	var byDay [7]map[int64]Status
	for d := range byDay {
		byDay[d] = make(map[int64]Status)
	}

	for _, p := range people {
		for d := 0; d < 7; d++ {
			if status := RotationStatus(p, monday.AddDate(0, 0, d)); status != StatusNone {
				byDay[d][p.ID] = status
			}
		}
	}

	return byDay
}

package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/gestione-turni/backend/internal/repository"
)

var demoShifts = []struct {
	name  string
	start string
	end   string
}{
	{"Apertura", "08:00:00", "13:00:00"},
	{"Mattina", "09:00:00", "13:00:00"},
	{"Pomeriggio", "13:00:00", "18:00:00"},
	{"Chiusura", "15:00:00", "20:00:00"},
}

var demoPeople = []string{
	"Maria Rossi",
	"Luca Bianchi",
	"Giulia Ferrari",
	"Marco Esposito",
	"Sara Romano",
	"Andrea Colombo",
}

func timePtr(s string) *string { return &s }

// SeedShifts inserts the standard shift columns if the table is empty.
func SeedShifts(r *repository.Repository) {
	existing, err := r.GetAllShifts()
	if err != nil {
		slog.Error("failed to list shifts", "error", err)
		return
	}
	if len(existing) > 0 {
		slog.Info("shifts already present, skipping", slog.Int("count", len(existing)))
		return
	}

	cnt := 0
	for _, ds := range demoShifts {
		shift := &domain.Shift{
			Name:      ds.name,
			StartTime: timePtr(ds.start),
			EndTime:   timePtr(ds.end),
		}
		if err := r.CreateShift(shift); err != nil {
			slog.Error("failed to insert shift", slog.String("name", ds.name), "error", err)
			continue
		}
		cnt++
	}

	slog.Info("shifts inserted", slog.Int("count", cnt))
}

// SeedPeople inserts the demo people. Every other person gets a rotation
// anchor so rest and leave days show up in the plan.
func SeedPeople(r *repository.Repository, monday time.Time) {
	cnt := 0
	for i, name := range demoPeople {
		person := &domain.Person{FullName: name}
		if err := r.CreatePerson(person); err != nil {
			slog.Error("failed to insert person", slog.String("name", name), "error", err)
			continue
		}
		cnt++

		if i%2 == 0 {
			anchor := monday.AddDate(0, 0, -i)
			if err := r.SetRotationAnchor(person.ID, &anchor); err != nil {
				slog.Error("failed to set rotation anchor", slog.String("name", name), "error", err)
			}
		}
	}

	slog.Info("people inserted", slog.Int("count", cnt))
}

// SeedWeek fills one week with assignments, cycling the active people over
// the grid. The modulo walk on purpose produces a few duplicate and
// rotation-conflicting cells so the alert panel has something to show.
func SeedWeek(r *repository.Repository, monday time.Time) {
	shifts, err := r.GetAllShifts()
	if err != nil {
		slog.Error("failed to list shifts", "error", err)
		return
	}
	people, err := r.GetActivePeople()
	if err != nil {
		slog.Error("failed to list people", "error", err)
		return
	}
	if len(shifts) == 0 || len(people) == 0 {
		slog.Error("seed shifts and people first")
		return
	}

	week, err := r.GetOrCreateWeek(monday)
	if err != nil {
		slog.Error("failed to create week", "error", err)
		return
	}

	cnt := 0
	for d := 0; d < 7; d++ {
		for i, shift := range shifts {
			person := people[(d+i)%len(people)]
			if err := r.SetCell(week.ID, d, shift.ID, &person.ID, domain.CellPatch{}); err != nil {
				slog.Error("failed to set cell", slog.Int("day", d), slog.Int64("shift_id", shift.ID), "error", err)
				continue
			}
			cnt++
		}
	}

	slog.Info("week filled", slog.String("monday", monday.Format("2006-01-02")), slog.Int("cells", cnt))
}

// SeedAbsences inserts a few random absences around the given week,
// including one spanning the week boundary.
func SeedAbsences(r *repository.Repository, monday time.Time, n int) {
	people, err := r.GetActivePeople()
	if err != nil {
		slog.Error("failed to list people", "error", err)
		return
	}
	if len(people) == 0 {
		slog.Error("seed people first")
		return
	}

	kinds := []domain.AbsenceKind{domain.AbsenceVacation, domain.AbsenceSick, domain.AbsenceInjury}

	cnt := 0
	for i := 0; i < n; i++ {
		person := people[rand.Intn(len(people))]
		start := monday.AddDate(0, 0, rand.Intn(9)-2)
		absence := &domain.ExtraAbsence{
			PersonID:  person.ID,
			Kind:      kinds[rand.Intn(len(kinds))],
			StartDate: start,
			EndDate:   start.AddDate(0, 0, rand.Intn(4)),
		}
		if err := r.CreateAbsence(absence); err != nil {
			slog.Error("failed to insert absence", "error", err)
			continue
		}
		cnt++
	}

	slog.Info("absences inserted", slog.Int("count", cnt))
}

// SeedDemoData builds the full demo dataset for one week.
func SeedDemoData(r *repository.Repository, monday time.Time) {
	SeedShifts(r)
	SeedPeople(r, monday)
	SeedWeek(r, monday)
	SeedAbsences(r, monday, 3)
}

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/gestione-turni/backend/internal/planner"
)

func (h *Handler) GetAllPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.repository.GetAllPeople()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "people fetched", people)
}

func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)

	h.successResponse(w, r, "person fetched", person)
}

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName" validate:"required"`
		Notes    string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	person := &domain.Person{
		FullName: req.FullName,
		Notes:    req.Notes,
	}

	if err := h.repository.CreatePerson(person); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "person created", person)
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)

	var req struct {
		FullName *string `json:"fullName"`
		IsActive *bool   `json:"isActive"`
		Notes    *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		person.FullName = *req.FullName
	}
	if req.IsActive != nil {
		person.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		person.Notes = *req.Notes
	}

	if err := h.repository.UpdatePerson(person); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "person updated", person)
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)

	// assignments fall back to an empty cell and absences cascade, so the
	// delete itself cannot conflict
	if err := h.repository.DeletePerson(person.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "person deleted", nil)
}

// SetPersonRotation sets or clears the 8-day rotation anchor. A null anchor
// removes the rotation entirely.
func (h *Handler) SetPersonRotation(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)

	var req struct {
		AnchorDate *string `json:"anchorDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var anchor *time.Time
	if req.AnchorDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.AnchorDate)
		if err != nil {
			h.errorResponse(w, r, "invalid anchor date, expected YYYY-MM-DD")
			return
		}
		anchor = &parsed
	}

	if err := h.repository.SetRotationAnchor(person.ID, anchor); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	person.RotationAnchorDate = anchor

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "rotation updated", person)
}

// GetPersonRotationICS serves the rotation of one person as an iCalendar
// feed of all-day events, starting from the current week's Monday.
func (h *Handler) GetPersonRotationICS(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonCtx).(*domain.Person)

	if person.RotationAnchorDate == nil {
		h.errorResponse(w, r, "person has no rotation anchor")
		return
	}

	now := time.Now()
	monday := now.AddDate(0, 0, -mondayOffset(now.Weekday()))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Gestione Turni//rotation//EN")

	for d := 0; d < 7*h.config.Rotation.ICSWeeksAhead; d++ {
		day := monday.AddDate(0, 0, d)

		var summary string
		switch planner.RotationStatus(person, day) {
		case planner.StatusRest:
			summary = fmt.Sprintf("%s (rest day)", person.FullName)
		case planner.StatusLeave:
			summary = fmt.Sprintf("%s (leave day)", person.FullName)
		default:
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("rotation-%d-%s@gestione-turni", person.ID, day.Format("2006-01-02")))
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(summary)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"rotation_%d.ics\"", person.ID))
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		h.logInternalServerError(r, err)
	}
}

// mondayOffset is the number of days since the last Monday.
func mondayOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd - time.Monday)
}

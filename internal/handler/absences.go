package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/gestione-turni/backend/internal/planner"
)

func (h *Handler) GetAllAbsences(w http.ResponseWriter, r *http.Request) {
	absences, err := h.repository.GetAllAbsences()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "absences fetched", absences)
}

func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID  int64  `json:"personID" validate:"required"`
		Kind      string `json:"kind" validate:"required,oneof=VACATION SICK INJURY"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Notes     string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.errorResponse(w, r, "invalid end date, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		h.errorResponse(w, r, "end date is before start date")
		return
	}

	absence := &domain.ExtraAbsence{
		PersonID:  req.PersonID,
		Kind:      domain.AbsenceKind(req.Kind),
		StartDate: start,
		EndDate:   end,
		Notes:     req.Notes,
	}

	if err := h.repository.CreateAbsence(absence); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "extra_absences_person_id_fkey":
			h.errorResponse(w, r, "person does not exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "absence created", absence)
}

func (h *Handler) DeleteAbsence(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid absence id")
		return
	}

	if err := h.repository.DeleteAbsence(id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "absence not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "absence deleted", nil)
}

// GetWeekAbsences returns the per-day absence index for one week, the same
// view the weekly plan consumes.
func (h *Handler) GetWeekAbsences(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	sunday := week.MondayDate.AddDate(0, 0, 6)
	absences, err := h.repository.GetAbsencesIntersecting(week.MondayDate, sunday)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	index := planner.BuildAbsenceIndex(absences, week.MondayDate)

	h.successResponse(w, r, "week absences fetched", index)
}

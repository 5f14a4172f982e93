package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gestione-turni/backend/internal/domain"
)

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.repository.GetAllShifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string  `json:"name" validate:"required"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Notes     string  `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !validTimeOfDay(req.StartTime) || !validTimeOfDay(req.EndTime) {
		h.errorResponse(w, r, "invalid time of day, expected HH:MM:SS")
		return
	}

	shift := &domain.Shift{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		Name      *string `json:"name"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		SortOrder *int32  `json:"sortOrder"`
		Notes     *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !validTimeOfDayPatch(req.StartTime) || !validTimeOfDayPatch(req.EndTime) {
		h.errorResponse(w, r, "invalid time of day, expected HH:MM:SS")
		return
	}

	if req.Name != nil {
		shift.Name = *req.Name
	}
	// "" clears the stored time, the same convention as the cell-meta patch
	if req.StartTime != nil {
		if *req.StartTime == "" {
			shift.StartTime = nil
		} else {
			shift.StartTime = req.StartTime
		}
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			shift.EndTime = nil
		} else {
			shift.EndTime = req.EndTime
		}
	}
	if req.SortOrder != nil {
		shift.SortOrder = *req.SortOrder
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "assignments_shift_id_fkey":
			h.errorResponse(w, r, "shift is still referenced by assignments")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "shift deleted", nil)
}

func validTimeOfDay(s *string) bool {
	if s == nil {
		return true
	}
	_, err := time.Parse("15:04:05", *s)
	return err == nil
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/gestione-turni/backend/internal/planner"
	"github.com/gestione-turni/backend/internal/repository"
)

const planGenerationKey = "plan_generation"

func planCacheKeyFor(generation string, monday time.Time) string {
	return fmt.Sprintf("plan_%s_%s", generation, monday.Format("2006-01-02"))
}

// planCacheKey derives the cache key of one week from the current generation
// counter. A missing counter counts as generation 0.
func (h *Handler) planCacheKey(ctx context.Context, monday time.Time) (string, error) {
	generation, err := h.redisClient.Get(ctx, planGenerationKey).Result()
	if errors.Is(err, redis.Nil) {
		generation = "0"
	} else if err != nil {
		return "", err
	}

	return planCacheKeyFor(generation, monday), nil
}

// invalidatePlanCache bumps the generation counter, orphaning every cached
// week at once. The cached plan embeds shifts, people, rotation anchors and
// absences besides the grid, so mutations of any of those must invalidate
// across weeks, not just the week being edited. Orphaned entries age out via
// their TTL.
func (h *Handler) invalidatePlanCache(r *http.Request) {
	if err := h.redisClient.Incr(r.Context(), planGenerationKey).Err(); err != nil {
		h.logInternalServerError(r, err)
	}
}

// buildWeeklyPlan fetches the week's snapshot and runs the planner over it.
func (h *Handler) buildWeeklyPlan(week *domain.Week) (*planner.Plan, error) {
	shifts, err := h.repository.GetAllShifts()
	if err != nil {
		return nil, err
	}
	people, err := h.repository.GetActivePeople()
	if err != nil {
		return nil, err
	}
	assignments, err := h.repository.GetAssignmentsForWeek(week.ID)
	if err != nil {
		return nil, err
	}
	sunday := week.MondayDate.AddDate(0, 0, 6)
	absences, err := h.repository.GetAbsencesIntersecting(week.MondayDate, sunday)
	if err != nil {
		return nil, err
	}

	return planner.BuildWeeklyPlan(planner.Snapshot{
		Monday:      week.MondayDate,
		Shifts:      shifts,
		People:      people,
		Assignments: assignments,
		Absences:    absences,
	}), nil
}

func (h *Handler) GetWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	key, err := h.planCacheKey(r.Context(), week.MondayDate)
	if err != nil {
		h.logInternalServerError(r, err)
	} else {
		cached, err := h.redisClient.Get(r.Context(), key).Result()
		if err == nil {
			h.successResponse(w, r, "weekly plan fetched", json.RawMessage(cached))
			return
		}
		if !errors.Is(err, redis.Nil) {
			h.logInternalServerError(r, err)
		}
	}

	plan, err := h.buildWeeklyPlan(week)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if encoded, err := json.Marshal(plan); err == nil && key != "" {
		expiration := time.Duration(h.config.Redis.PlanCacheExpiration) * time.Second
		if err := h.redisClient.Set(r.Context(), key, encoded, expiration).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "weekly plan fetched", plan)
}

func (h *Handler) GetWeekMeta(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	meta, err := h.repository.GetMetaForWeek(week.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "week meta fetched", meta)
}

// SetCell writes one grid cell. A null personID empties the cell; the
// override fields follow the patch convention of the meta table, nil leaves
// a column alone and an empty string clears it.
func (h *Handler) SetCell(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	var req struct {
		DayIndex      *int    `json:"dayIndex" validate:"required"`
		ShiftID       int64   `json:"shiftID" validate:"required"`
		PersonID      *int64  `json:"personID"`
		OverrideStart *string `json:"overrideStart"`
		OverrideEnd   *string `json:"overrideEnd"`
		Role          *string `json:"role"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if *req.DayIndex < 0 || *req.DayIndex > 6 {
		h.errorResponse(w, r, "day index must be between 0 and 6")
		return
	}
	if !validTimeOfDayPatch(req.OverrideStart) || !validTimeOfDayPatch(req.OverrideEnd) {
		h.errorResponse(w, r, "invalid time of day, expected HH:MM:SS")
		return
	}
	if req.Role != nil && *req.Role != "" {
		role := domain.CellRole(*req.Role)
		if role != domain.CellRoleOpen && role != domain.CellRoleClose {
			h.errorResponse(w, r, "role must be OPEN or CLOSE")
			return
		}
	}

	patch := domain.CellPatch{
		OverrideStart: req.OverrideStart,
		OverrideEnd:   req.OverrideEnd,
		Role:          req.Role,
	}

	if err := h.repository.SetCell(week.ID, *req.DayIndex, req.ShiftID, req.PersonID, patch); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "assignments_shift_id_fkey":
			h.errorResponse(w, r, "shift does not exist")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "assignments_person_id_fkey":
			h.errorResponse(w, r, "person does not exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "cell updated", nil)
}

func (h *Handler) ClearWeek(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	if err := h.repository.ClearWeek(week.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "week cleared", nil)
}

func (h *Handler) CopyWeek(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	var req struct {
		FromMonday string `json:"fromMonday" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	fromMonday, err := parseMonday(req.FromMonday)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	src, err := h.repository.GetOrCreateWeek(fromMonday)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.CopyWeek(src.ID, week.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCopySameWeek):
			h.errorResponse(w, r, "cannot copy a week onto itself")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidatePlanCache(r)

	h.successResponse(w, r, "week copied", nil)
}

// validTimeOfDayPatch accepts nil (leave alone) and "" (clear) on top of the
// HH:MM:SS form.
func validTimeOfDayPatch(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	return validTimeOfDay(s)
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestione-turni/backend/internal/domain"
)

func shiftRequest(method, target, body string, shift *domain.Shift) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	return r.WithContext(context.WithValue(r.Context(), ShiftCtx, shift))
}

func TestDeleteShiftStillReferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, rdb := newTestRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectExec("DELETE FROM shifts").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "assignments_shift_id_fkey"})

	w := httptest.NewRecorder()
	h.DeleteShift(w, shiftRequest(http.MethodDelete, "/shifts/7", "", &domain.Shift{ID: 7, Name: "Apertura"}))

	var resp Response
	require.NoError(t, decodeBody(w, &resp))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "shift is still referenced by assignments", resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Only the assignment foreign key maps to a business error; any other
// database failure surfaces as an internal error.
func TestDeleteShiftUnrelatedConstraint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, rdb := newTestRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectExec("DELETE FROM shifts").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "shifts_pkey"})

	w := httptest.NewRecorder()
	h.DeleteShift(w, shiftRequest(http.MethodDelete, "/shifts/7", "", &domain.Shift{ID: 7, Name: "Apertura"}))

	var resp Response
	require.NoError(t, decodeBody(w, &resp))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "internal server error", resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateShiftClearsTimes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, rdb := newTestRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectQuery("UPDATE shifts").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "version"}).AddRow(time.Now(), int32(2)))

	start, end := "08:00:00", "13:00:00"
	shift := &domain.Shift{ID: 7, Name: "Apertura", StartTime: &start, EndTime: &end, Version: 1}

	w := httptest.NewRecorder()
	h.UpdateShift(w, shiftRequest(http.MethodPatch, "/shifts/7", `{"startTime":"","endTime":""}`, shift))

	var resp Response
	require.NoError(t, decodeBody(w, &resp))
	require.True(t, resp.Success, resp.Message)
	assert.Nil(t, shift.StartTime)
	assert.Nil(t, shift.EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateShiftRejectsMalformedTime(t *testing.T) {
	_, rdb := newTestRedis(t)
	h := newTestHandler(t, nil, rdb)

	start := "08:00:00"
	shift := &domain.Shift{ID: 7, Name: "Apertura", StartTime: &start}

	w := httptest.NewRecorder()
	h.UpdateShift(w, shiftRequest(http.MethodPatch, "/shifts/7", `{"startTime":"25:00"}`, shift))

	var resp Response
	require.NoError(t, decodeBody(w, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid time of day, expected HH:MM:SS", resp.Message)
	assert.Equal(t, &start, shift.StartTime)
}

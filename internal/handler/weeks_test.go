package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestione-turni/backend/internal/config"
	"github.com/gestione-turni/backend/internal/domain"
	"github.com/gestione-turni/backend/internal/repository"
)

func newTestHandler(t *testing.T, db *sql.DB, rdb *redis.Client) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5
	cfg.Redis.PlanCacheExpiration = 300

	h, err := NewHandler(cfg, repository.NewRepository(cfg, db), nil, rdb)
	require.NoError(t, err)
	return h
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func decodeBody(w *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(w.Body).Decode(v)
}

func TestPlanCacheKeyChangesWithGeneration(t *testing.T) {
	_, rdb := newTestRedis(t)
	h := newTestHandler(t, nil, rdb)

	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	key, err := h.planCacheKey(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, "plan_0_2026-01-12", key)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	h.invalidatePlanCache(r)

	bumped, err := h.planCacheKey(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, "plan_1_2026-01-12", bumped)
	assert.NotEqual(t, key, bumped)

	// another week is orphaned by the same bump
	other := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	otherKey, err := h.planCacheKey(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, "plan_1_2026-01-19", otherKey)
}

func TestCreateAbsenceInvalidatesPlanCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr, rdb := newTestRedis(t)
	h := newTestHandler(t, db, rdb)

	require.NoError(t, mr.Set(planGenerationKey, "5"))

	mock.ExpectQuery("INSERT INTO extra_absences").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	body := `{"personID":2,"kind":"VACATION","startDate":"2026-01-13","endDate":"2026-01-14"}`
	r := httptest.NewRequest(http.MethodPost, "/absences", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateAbsence(w, r)

	var resp Response
	require.NoError(t, decodeBody(w, &resp))
	require.True(t, resp.Success, resp.Message)

	generation, err := mr.Get(planGenerationKey)
	require.NoError(t, err)
	assert.Equal(t, "6", generation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPersonRotationInvalidatesPlanCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr, rdb := newTestRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectExec("UPDATE people").
		WillReturnResult(sqlmock.NewResult(0, 1))

	person := &domain.Person{ID: 4, FullName: "Maria Rossi"}
	r := httptest.NewRequest(http.MethodPut, "/people/4/rotation", strings.NewReader(`{"anchorDate":"2026-01-05"}`))
	r = r.WithContext(context.WithValue(r.Context(), PersonCtx, person))
	w := httptest.NewRecorder()

	h.SetPersonRotation(w, r)

	var resp Response
	require.NoError(t, decodeBody(w, &resp))
	require.True(t, resp.Success, resp.Message)

	generation, err := mr.Get(planGenerationKey)
	require.NoError(t, err)
	assert.Equal(t, "1", generation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

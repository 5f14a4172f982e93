package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonday(t *testing.T) {
	monday, err := parseMonday("2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, 2026, monday.Year())

	_, err = parseMonday("2026-01-13")
	assert.ErrorContains(t, err, "Monday")

	_, err = parseMonday("12/01/2026")
	assert.ErrorContains(t, err, "YYYY-MM-DD")

	_, err = parseMonday("")
	assert.Error(t, err)
}

func TestValidTimeOfDay(t *testing.T) {
	valid := "08:30:00"
	invalid := "8:30"
	empty := ""

	assert.True(t, validTimeOfDay(nil))
	assert.True(t, validTimeOfDay(&valid))
	assert.False(t, validTimeOfDay(&invalid))
	assert.False(t, validTimeOfDay(&empty))

	// the patch form additionally treats "" as a clear marker
	assert.True(t, validTimeOfDayPatch(nil))
	assert.True(t, validTimeOfDayPatch(&empty))
	assert.True(t, validTimeOfDayPatch(&valid))
	assert.False(t, validTimeOfDayPatch(&invalid))
}

func TestMondayOffset(t *testing.T) {
	assert.Equal(t, 0, mondayOffset(time.Monday))
	assert.Equal(t, 3, mondayOffset(time.Thursday))
	assert.Equal(t, 5, mondayOffset(time.Saturday))
	assert.Equal(t, 6, mondayOffset(time.Sunday))
}

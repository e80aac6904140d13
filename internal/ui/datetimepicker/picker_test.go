package datetimepicker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("BRT", -3*3600)
	}
	return loc
}()

func TestProjections(t *testing.T) {
	p := New(time.Date(2025, 1, 5, 14, 30, 45, 0, saoPaulo))

	assert.Equal(t, "2025-01-05", p.Date())
	assert.Equal(t, "14:30", p.Clock())
	assert.Equal(t, 2, p.Hour12())
	assert.True(t, p.IsPM())
	assert.False(t, p.Dirty())
}

func TestRoundTripDayThenTime(t *testing.T) {
	p := New(time.Date(2025, 1, 5, 14, 30, 0, 0, saoPaulo))

	p.NextMonth()
	require.NoError(t, p.SelectDay(20))
	require.NoError(t, p.SetHour(9))
	require.NoError(t, p.SetMinute(15))
	p.SetMeridiem(false)

	got := p.Save()
	assert.Equal(t, time.Date(2025, 2, 20, 9, 15, 0, 0, saoPaulo), got)
	assert.Equal(t, got, p.Committed())
}

func TestCancelRevertsToCommitted(t *testing.T) {
	start := time.Date(2025, 1, 5, 14, 30, 0, 0, saoPaulo)
	p := New(start)

	p.NextMonth()
	require.NoError(t, p.SelectDay(20))
	require.NoError(t, p.SetHour(9))
	assert.True(t, p.Dirty())

	p.Cancel()
	assert.Equal(t, start, p.Value())
	assert.Equal(t, start, p.Committed())
	y, m := p.ViewMonth()
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, m)
}

func TestSelectDayKeepsClock(t *testing.T) {
	p := New(time.Date(2025, 1, 5, 16, 45, 0, 0, time.UTC))
	require.NoError(t, p.SelectDay(28))
	assert.Equal(t, "2025-01-28", p.Date())
	assert.Equal(t, "16:45", p.Clock())
}

func TestClockKeepsDay(t *testing.T) {
	p := New(time.Date(2025, 1, 5, 16, 45, 0, 0, time.UTC))
	require.NoError(t, p.SetHour(12))
	assert.Equal(t, "12:45", p.Clock())
	p.SetMeridiem(false)
	assert.Equal(t, "00:45", p.Clock())
	assert.Equal(t, "2025-01-05", p.Date())
}

func TestBrowsingDoesNotChangeSelection(t *testing.T) {
	p := New(time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC))
	p.NextMonth()
	p.NextYear()
	p.PrevMonth()

	y, m := p.ViewMonth()
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.December, m)
	assert.Equal(t, "2025-12-31", p.Date())
}

func TestRejectsOutOfRange(t *testing.T) {
	p := New(time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC))
	assert.Error(t, p.SelectDay(29))
	assert.Error(t, p.SelectDay(0))
	assert.Error(t, p.SetHour(13))
	assert.Error(t, p.SetMinute(60))
	assert.Equal(t, 28, p.DaysInView())
}

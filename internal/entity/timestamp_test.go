package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampRoundTrip(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2025, time.January, 5, 14, 30, 0, 0, loc)

	assert.Equal(t, "05-Jan-2025 14:30:00", FormatTimestamp(in))
	out, err := ParseTimestamp("05-Jan-2025 14:30:00", loc)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))

	day, err := ParseTimestamp("05-Jan-2025", loc)
	require.NoError(t, err)
	assert.Equal(t, 0, day.Hour())

	_, err = ParseTimestamp("2025-01-05", loc)
	assert.Error(t, err)
}

func TestInstantRepresentationsAgree(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	at := time.Date(2025, time.March, 9, 23, 15, 42, 750_000_000, loc)

	inst := NewInstant(at)
	parsed, err := ParseTimestamp(inst.Formatted, loc)
	require.NoError(t, err)
	assert.Equal(t, parsed.UnixMilli(), inst.Millis)
	assert.Equal(t, "09-Mar-2025 23:15:42", inst.Formatted)
}

func TestCombineDateClock(t *testing.T) {
	got, err := CombineDateClock("2025-02-28", "07:05", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 7, 5, 0, 0, time.UTC), got)

	_, err = CombineDateClock("28/02/2025", "07:05", time.UTC)
	assert.Error(t, err)
	_, err = CombineDateClock("2025-02-28", "7pm", time.UTC)
	assert.Error(t, err)
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveMeetingStatus(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2025, time.January, 5, 14, 30, 0, 0, loc)

	cases := []struct {
		name   string
		stored string
		start  string
		want   string
	}{
		{"stored status wins", "Cancelled", "01-Jan-2020 10:00:00", MeetingStatusCancelled},
		{"stored status is lower-cased", "In Progress", "", MeetingStatusInProgress},
		{"start equal to now is today", "", "05-Jan-2025 14:30:00", MeetingStatusToday},
		{"later today", "", "05-Jan-2025 18:00:00", MeetingStatusToday},
		{"earlier today", "", "05-Jan-2025 08:00:00", MeetingStatusCompleted},
		{"yesterday late", "", "04-Jan-2025 23:59:59", MeetingStatusOverdue},
		{"yesterday early", "", "04-Jan-2025 00:00:00", MeetingStatusOverdue},
		{"tomorrow", "", "06-Jan-2025 00:00:00", MeetingStatusUpcoming},
		{"blank stored status ignored", "  ", "06-Jan-2025 09:00:00", MeetingStatusUpcoming},
		{"unparsable", "", "2025-01-05T14:30:00Z", MeetingStatusUnknown},
		{"empty start", "", "", MeetingStatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveMeetingStatus(tc.stored, tc.start, now))
		})
	}
}

func TestDeriveMeetingStatusIgnoresSubSecondNow(t *testing.T) {
	now := time.Date(2025, time.January, 5, 14, 30, 0, 900_000_000, time.UTC)
	assert.Equal(t, MeetingStatusToday, DeriveMeetingStatus("", "05-Jan-2025 14:30:00", now))
}

func TestPresentationFor(t *testing.T) {
	assert.Equal(t, "Completed", PresentationFor("completed").Label)
	assert.Equal(t, "Overdue", PresentationFor(" OVERDUE ").Label)
	assert.Equal(t, "danger", PresentationFor(MeetingStatusCancelled).Badge)
	assert.Equal(t, genericMeetingPresentation, PresentationFor("postponed"))
	assert.Equal(t, "Meeting", PresentationFor("").Label)
}

func TestParticipantsAreDeduplicated(t *testing.T) {
	assert.Equal(t, []string{"ana@ligue.dev", "bob@ligue.dev"}, ParseParticipants("ana@ligue.dev, ,Ana@Ligue.dev,bob@ligue.dev"))
	assert.Equal(t, "a@x.io,b@x.io", JoinParticipants([]string{"a@x.io", "b@x.io", "A@X.IO"}))
	assert.Empty(t, ParseParticipants(""))
}

func TestNextSlot(t *testing.T) {
	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(30*time.Minute), NextSlot(base))
	assert.Equal(t, base.Add(30*time.Minute), NextSlot(base.Add(time.Second)))
	assert.Equal(t, base.Add(time.Hour), NextSlot(base.Add(45*time.Minute)))
}

func TestSortMeetingsNewestFirst(t *testing.T) {
	meetings := []Meeting{
		{ID: "old", Start: "01-Jan-2025 09:00:00"},
		{ID: "bad", Start: "?"},
		{ID: "new", Start: "03-Jan-2025 09:00:00"},
	}
	SortMeetingsNewestFirst(meetings, time.UTC)
	assert.Equal(t, "new", meetings[0].ID)
	assert.Equal(t, "old", meetings[1].ID)
	assert.Equal(t, "bad", meetings[2].ID)
}

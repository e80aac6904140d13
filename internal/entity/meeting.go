package entity

import (
	"sort"
	"strings"
	"time"
)

const (
	MeetingStatusScheduled   = "scheduled"
	MeetingStatusInProgress  = "in progress"
	MeetingStatusCompleted   = "completed"
	MeetingStatusCancelled   = "cancelled"
	MeetingStatusRescheduled = "rescheduled"

	// Derived when no status is stored.
	MeetingStatusToday    = "today"
	MeetingStatusOverdue  = "overdue"
	MeetingStatusUpcoming = "upcoming"
	MeetingStatusUnknown  = "unknown"
)

// StoredMeetingStatuses are the values a user can set explicitly, in the
// casing the platform stores them.
var StoredMeetingStatuses = []string{"Scheduled", "In Progress", "Completed", "Cancelled", "Rescheduled"}

// DefaultMeetingLength is the window used when no end time is given.
const DefaultMeetingLength = 30 * time.Minute

type Meeting struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	RecordID        string   `json:"record_id"`
	Module          string   `json:"module"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	Status          string   `json:"status,omitempty"`
	Participants    []string `json:"participants"`
	CalendarEventID string   `json:"calendar_event_id,omitempty"`
}

// DeriveMeetingStatus resolves the status shown for a meeting. A stored
// status always wins (lower-cased). Otherwise the scheduled start is compared
// to now on the calendar day of now's location. A start equal to now counts
// as still ahead.
func DeriveMeetingStatus(stored, start string, now time.Time) string {
	if s := strings.TrimSpace(stored); s != "" {
		return strings.ToLower(s)
	}
	loc := now.Location()
	t, err := ParseTimestamp(start, loc)
	if err != nil {
		return MeetingStatusUnknown
	}
	// Platform timestamps carry whole seconds only.
	past := t.Before(now.Truncate(time.Second))
	if sameDay(t, now) {
		if past {
			return MeetingStatusCompleted
		}
		return MeetingStatusToday
	}
	if past {
		return MeetingStatusOverdue
	}
	return MeetingStatusUpcoming
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Presentation is the badge shown for a meeting status.
type Presentation struct {
	Badge string `json:"badge"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

var meetingPresentations = map[string]Presentation{
	MeetingStatusScheduled:   {Badge: "primary", Icon: "📅", Label: "Scheduled"},
	MeetingStatusInProgress:  {Badge: "info", Icon: "⏳", Label: "In Progress"},
	MeetingStatusCompleted:   {Badge: "success", Icon: "✅", Label: "Completed"},
	MeetingStatusCancelled:   {Badge: "danger", Icon: "✖", Label: "Cancelled"},
	MeetingStatusRescheduled: {Badge: "warning", Icon: "🔁", Label: "Rescheduled"},
	MeetingStatusToday:       {Badge: "info", Icon: "🕑", Label: "Today"},
	MeetingStatusOverdue:     {Badge: "danger", Icon: "⚠", Label: "Overdue"},
	MeetingStatusUpcoming:    {Badge: "primary", Icon: "🗓", Label: "Upcoming"},
	MeetingStatusUnknown:     {Badge: "secondary", Icon: "❔", Label: "Unknown"},
}

var genericMeetingPresentation = Presentation{Badge: "secondary", Icon: "📅", Label: "Meeting"}

func PresentationFor(status string) Presentation {
	if p, ok := meetingPresentations[strings.ToLower(strings.TrimSpace(status))]; ok {
		return p
	}
	return genericMeetingPresentation
}

// ParseParticipants splits the comma-joined participant field and drops
// blanks and case-insensitive duplicates, keeping first-seen order.
func ParseParticipants(raw string) []string {
	return UniqueEmails(strings.Split(raw, ","))
}

func UniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		key := strings.ToLower(e)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func JoinParticipants(emails []string) string {
	return strings.Join(UniqueEmails(emails), ",")
}

// SortMeetingsNewestFirst orders by scheduled start, unparsable starts last.
func SortMeetingsNewestFirst(meetings []Meeting, loc *time.Location) {
	sort.SliceStable(meetings, func(i, j int) bool {
		ti, erri := ParseTimestamp(meetings[i].Start, loc)
		tj, errj := ParseTimestamp(meetings[j].Start, loc)
		if erri != nil || errj != nil {
			return erri == nil
		}
		return ti.After(tj)
	})
}

// NextSlot returns the first half-hour boundary strictly after now.
func NextSlot(now time.Time) time.Time {
	slot := now.Truncate(30 * time.Minute)
	if !slot.After(now) {
		slot = slot.Add(30 * time.Minute)
	}
	return slot
}

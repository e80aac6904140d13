package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

var fixedNow = time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestListMeetingsDerivesStatusAndSortsNewestFirst(t *testing.T) {
	data := newFakeData()
	data.records[ReportMeetings] = []creator.Record{
		{"ID": "2001", "Title": "Kickoff", "Schedule_Start": "04-Jan-2025 09:00:00", "Participants": "a@x.io,A@x.io, b@x.io"},
		{"ID": "M2", "Title": "Demo", "Schedule_Start": "05-Jan-2025 15:00:00", "Status": "Rescheduled"},
		{"ID": "M3", "Title": "Review", "Schedule_Start": "07-Jan-2025 11:00:00"},
		{"ID": "M4", "Title": "Broken", "Schedule_Start": "sometime"},
	}
	uc := NewListMeetingsUseCase(data, time.UTC)
	uc.Now = clockAt(fixedNow)

	views, err := uc.Execute(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.Equal(t, []string{"M3", "M2", "2001", "M4"}, []string{views[0].ID, views[1].ID, views[2].ID, views[3].ID})
	assert.Equal(t, entity.MeetingStatusUpcoming, views[0].DisplayStatus)
	assert.Equal(t, entity.MeetingStatusRescheduled, views[1].DisplayStatus)
	assert.Equal(t, entity.MeetingStatusOverdue, views[2].DisplayStatus)
	assert.Equal(t, entity.MeetingStatusUnknown, views[3].DisplayStatus)
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, views[2].Participants)
	assert.Equal(t, "Overdue", views[2].Presentation.Label)
}

func TestListMeetingsEmptyPanel(t *testing.T) {
	views, err := NewListMeetingsUseCase(newFakeData(), time.UTC).Execute(context.Background(), "1001")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestScheduleMeetingDefaultsToNextSlot(t *testing.T) {
	data := newFakeData()
	data.customResult = `{"meeting_id":"M7","calendar_event_id":"evt-1"}`
	uc := NewScheduleMeetingUseCase(data, time.UTC, zap.NewNop())
	uc.Now = clockAt(fixedNow.Add(12 * time.Minute))

	view, err := uc.Execute(context.Background(), ScheduleMeetingInput{
		RecordID:     "1001",
		Module:       entity.ModuleLeads,
		Title:        "Intro call",
		Participants: []string{"ana@ligue.dev", "ANA@ligue.dev", "bob@ligue.dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, "M7", view.ID)
	assert.Equal(t, "05-Jan-2025 10:30:00", view.Start)
	assert.Equal(t, "05-Jan-2025 11:00:00", view.End)
	assert.Equal(t, entity.MeetingStatusToday, view.DisplayStatus)

	calls := data.WritesTo("custom", APICreateMeeting)
	require.Len(t, calls, 1)
	payload := calls[0].Fields
	assert.Equal(t, "ana@ligue.dev,bob@ligue.dev", payload["participants"])
	assert.Equal(t, "05-Jan-2025 10:30:00", payload["start"])
	assert.Equal(t, time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC).UnixMilli(), payload["start_millis"])
	assert.Equal(t, time.Date(2025, 1, 5, 11, 0, 0, 0, time.UTC).UnixMilli(), payload["end_millis"])
}

func TestScheduleMeetingValidation(t *testing.T) {
	data := newFakeData()
	uc := NewScheduleMeetingUseCase(data, time.UTC, zap.NewNop())

	_, err := uc.Execute(context.Background(), ScheduleMeetingInput{
		RecordID:     "1001",
		Module:       "Deals",
		Title:        "  ",
		Participants: []string{"not-an-email"},
	})
	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	fields := map[string]bool{}
	for _, e := range vf.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["module"])
	assert.True(t, fields["title"])
	assert.Len(t, vf.Errors, 3)
	assert.Empty(t, data.Calls())
}

func TestScheduleMeetingRejectsEndBeforeStart(t *testing.T) {
	data := newFakeData()
	uc := NewScheduleMeetingUseCase(data, time.UTC, zap.NewNop())

	_, err := uc.Execute(context.Background(), ScheduleMeetingInput{
		RecordID:  "1001",
		Module:    entity.ModuleLeads,
		Title:     "Sync",
		StartDate: "2025-01-06",
		StartTime: "15:00",
		EndDate:   "2025-01-06",
		EndTime:   "14:00",
	})
	assert.True(t, IsValidationFailure(err))
	assert.Empty(t, data.Calls())
}

func TestEditMeetingSendsBothRepresentationsOfTheSameInstant(t *testing.T) {
	data := newFakeData()
	data.records[ReportMeetings] = []creator.Record{{"ID": "2001", "Title": "Demo", "Schedule_Start": "05-Jan-2025 15:00:00", "Calendar_Event_Id": "evt-9"}}
	loc := time.FixedZone("BRT", -3*60*60)
	uc := NewEditMeetingUseCase(data, loc, zap.NewNop())
	uc.Now = clockAt(fixedNow)

	view, err := uc.Execute(context.Background(), EditMeetingInput{
		MeetingID: "2001",
		StartDate: "2025-01-08",
		StartTime: "14:30",
		EndDate:   "2025-01-08",
		EndTime:   "15:00",
		Reason:    "client asked to move",
	})
	require.NoError(t, err)
	assert.Equal(t, "08-Jan-2025 14:30:00", view.Start)

	calls := data.WritesTo("custom", APIUpdateMeeting)
	require.Len(t, calls, 1)
	payload := calls[0].Fields

	start, err := entity.ParseTimestamp(payload["start"].(string), loc)
	require.NoError(t, err)
	assert.Equal(t, start.UnixMilli(), payload["start_millis"])
	end, err := entity.ParseTimestamp(payload["end"].(string), loc)
	require.NoError(t, err)
	assert.Equal(t, end.UnixMilli(), payload["end_millis"])
	assert.Equal(t, "evt-9", payload["calendar_event_id"])
	assert.Equal(t, "client asked to move", payload["reason"])
}

func TestEditMeetingRequiresReason(t *testing.T) {
	data := newFakeData()
	uc := NewEditMeetingUseCase(data, time.UTC, zap.NewNop())

	_, err := uc.Execute(context.Background(), EditMeetingInput{
		MeetingID: "2001",
		StartDate: "2025-01-08",
		StartTime: "14:30",
		EndDate:   "2025-01-08",
		EndTime:   "15:00",
		Reason:    "   ",
	})
	var vf *ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "reason", vf.Errors[0].Field)
	assert.Empty(t, data.Calls())
}

func TestEditMeetingFailureLeavesNothingChanged(t *testing.T) {
	data := newFakeData()
	data.records[ReportMeetings] = []creator.Record{{"ID": "2001", "Schedule_Start": "05-Jan-2025 15:00:00"}}
	data.customErr = apiErr("invokeCustomApi", 4000)
	uc := NewEditMeetingUseCase(data, time.UTC, zap.NewNop())

	view, err := uc.Execute(context.Background(), EditMeetingInput{
		MeetingID: "2001",
		StartDate: "2025-01-08",
		StartTime: "14:30",
		EndDate:   "2025-01-08",
		EndTime:   "15:00",
		Reason:    "moved",
	})
	assert.Nil(t, view)
	assert.True(t, IsTechnicalError(err))
}

func TestChangeMeetingStatusCanonicalisesCase(t *testing.T) {
	data := newFakeData()
	uc := NewChangeMeetingStatusUseCase(data, zap.NewNop())

	status, err := uc.Execute(context.Background(), "2001", "in progress")
	require.NoError(t, err)
	assert.Equal(t, "In Progress", status)
	assert.Equal(t, creator.Fields{"Status": "In Progress"}, data.WritesTo("update", ReportMeetings)[0].Fields)

	_, err = uc.Execute(context.Background(), "2001", "postponed")
	assert.True(t, IsValidationFailure(err))
}

func TestCustomAPIMethodForMeetings(t *testing.T) {
	data := newFakeData()
	data.records[ReportMeetings] = []creator.Record{{"ID": "2001"}}
	var methods []string
	recording := &methodRecorder{fakeData: data, methods: &methods}

	_, err := NewEditMeetingUseCase(recording, time.UTC, zap.NewNop()).Execute(context.Background(), EditMeetingInput{
		MeetingID: "2001", StartDate: "2025-01-08", StartTime: "09:00", EndDate: "2025-01-08", EndTime: "09:30", Reason: "r",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPut}, methods)
}

type methodRecorder struct {
	*fakeData
	methods *[]string
}

func (m *methodRecorder) InvokeCustomAPI(ctx context.Context, req creator.CustomAPIRequest) (*creator.CustomAPIResponse, error) {
	*m.methods = append(*m.methods, req.Method)
	return m.fakeData.InvokeCustomAPI(ctx, req)
}

func TestEditMeetingOnlyAcceptsTheRequestedRecord(t *testing.T) {
	input := EditMeetingInput{
		StartDate: "2025-01-08", StartTime: "09:00", EndDate: "2025-01-08", EndTime: "09:30", Reason: "moved",
	}
	for name, tc := range map[string]struct {
		id     string
		stored string
	}{
		"malformed id":    {id: "1) || (ID != 0", stored: "2001"},
		"different match": {id: "2001", stored: "2002"},
	} {
		t.Run(name, func(t *testing.T) {
			data := newFakeData()
			data.records[ReportMeetings] = []creator.Record{{"ID": tc.stored, "Schedule_Start": "05-Jan-2025 15:00:00"}}
			in := input
			in.MeetingID = tc.id

			_, err := NewEditMeetingUseCase(data, time.UTC, nil).Execute(context.Background(), in)
			var domainErr *DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, CodeNotFound, domainErr.Code)
			assert.Empty(t, data.Writes())
		})
	}
}

func TestScheduleMeetingPairsDateAndTime(t *testing.T) {
	for name, tc := range map[string]struct {
		input ScheduleMeetingInput
		field string
	}{
		"time without date": {ScheduleMeetingInput{StartTime: "15:00"}, "start_date"},
		"date without time": {ScheduleMeetingInput{StartDate: "2025-01-06"}, "start_time"},
		"end time alone":    {ScheduleMeetingInput{EndTime: "16:00"}, "end_date"},
		"malformed time":    {ScheduleMeetingInput{StartDate: "2025-01-06", StartTime: "3pm"}, "start_time"},
	} {
		t.Run(name, func(t *testing.T) {
			data := newFakeData()
			input := tc.input
			input.RecordID, input.Module, input.Title = "1001", entity.ModuleLeads, "Sync"

			_, err := NewScheduleMeetingUseCase(data, time.UTC, nil).Execute(context.Background(), input)
			var vf *ValidationFailure
			require.ErrorAs(t, err, &vf)
			require.Len(t, vf.Errors, 1)
			assert.Equal(t, tc.field, vf.Errors[0].Field)
			assert.Empty(t, data.Calls())
		})
	}
}

package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

// MeetingView is a meeting with the status shown to users already resolved.
type MeetingView struct {
	entity.Meeting
	DisplayStatus string              `json:"display_status"`
	Presentation  entity.Presentation `json:"presentation"`
}

func newMeetingView(m entity.Meeting, now time.Time) MeetingView {
	status := entity.DeriveMeetingStatus(m.Status, m.Start, now)
	return MeetingView{Meeting: m, DisplayStatus: status, Presentation: entity.PresentationFor(status)}
}

func listMeetings(ctx context.Context, data DataService, recordID string, loc *time.Location, now time.Time) ([]MeetingView, error) {
	if loc == nil {
		loc = time.Local
	}
	records, err := data.GetRecords(ctx, creator.Query{
		Report:   ReportMeetings,
		Criteria: creator.Eq(FieldRecordID, recordID),
	})
	if creator.IsNoRecords(err) {
		return []MeetingView{}, nil
	}
	if err != nil {
		return nil, apiFailure("Failed to load meetings", err)
	}

	meetings := make([]entity.Meeting, 0, len(records))
	for _, r := range records {
		meetings = append(meetings, meetingFromRecord(r))
	}
	entity.SortMeetingsNewestFirst(meetings, loc)

	views := make([]MeetingView, len(meetings))
	for i, m := range meetings {
		views[i] = newMeetingView(m, now.In(loc))
	}
	return views, nil
}

func fetchMeeting(ctx context.Context, data DataService, id string) (entity.Meeting, error) {
	if !creator.IsRecordID(id) {
		return entity.Meeting{}, notFound("Meeting not found")
	}
	records, err := data.GetRecords(ctx, creator.Query{
		Report:     ReportMeetings,
		Criteria:   creator.Eq("ID", id),
		MaxRecords: 1,
	})
	if creator.IsNoRecords(err) || (err == nil && (len(records) == 0 || records[0].ID() != id)) {
		return entity.Meeting{}, notFound("Meeting not found")
	}
	if err != nil {
		return entity.Meeting{}, apiFailure("Failed to load meeting", err)
	}
	return meetingFromRecord(records[0]), nil
}

type ListMeetingsUseCase struct {
	Data     DataService
	Location *time.Location
	Now      func() time.Time
}

func NewListMeetingsUseCase(data DataService, loc *time.Location) *ListMeetingsUseCase {
	return &ListMeetingsUseCase{Data: data, Location: loc}
}

func (uc *ListMeetingsUseCase) Execute(ctx context.Context, recordID string) ([]MeetingView, error) {
	if strings.TrimSpace(recordID) == "" {
		return nil, validationFailure([]ValidationError{{Field: "record_id", Message: "is required"}})
	}
	return listMeetings(ctx, uc.Data, recordID, uc.Location, nowFrom(uc.Now))
}

type ScheduleMeetingInput struct {
	RecordID     string   `json:"record_id" validate:"required"`
	Module       string   `json:"module" validate:"required,oneof=Leads Contacts"`
	Title        string   `json:"title" validate:"notblank,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Participants []string `json:"participants" validate:"dive,email"`
	// Empty start means the next half-hour slot; empty end means start plus
	// the default meeting length.
	StartDate string `json:"start_date" validate:"required_with=StartTime,omitempty,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required_with=StartDate,omitempty,datetime=15:04"`
	EndDate   string `json:"end_date" validate:"required_with=EndTime,omitempty,datetime=2006-01-02"`
	EndTime   string `json:"end_time" validate:"required_with=EndDate,omitempty,datetime=15:04"`
}

type ScheduleMeetingUseCase struct {
	Data     DataService
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewScheduleMeetingUseCase(data DataService, loc *time.Location, logger *zap.Logger) *ScheduleMeetingUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleMeetingUseCase{Data: data, Location: loc, Logger: logger}
}

type meetingResult struct {
	MeetingID       string `json:"meeting_id"`
	CalendarEventID string `json:"calendar_event_id"`
}

func (uc *ScheduleMeetingUseCase) Execute(ctx context.Context, input ScheduleMeetingInput) (*MeetingView, error) {
	errs := validateInput(input)
	now := nowFrom(uc.Now).In(uc.loc())

	start := entity.NextSlot(now)
	if input.StartDate != "" && len(errs) == 0 {
		t, err := entity.CombineDateClock(input.StartDate, input.StartTime, uc.loc())
		if err != nil {
			errs = append(errs, ValidationError{Field: "start_date", Message: err.Error()})
		}
		start = t
	}
	end := start.Add(entity.DefaultMeetingLength)
	if input.EndDate != "" && len(errs) == 0 {
		t, err := entity.CombineDateClock(input.EndDate, input.EndTime, uc.loc())
		if err != nil {
			errs = append(errs, ValidationError{Field: "end_date", Message: err.Error()})
		}
		end = t
	}
	if len(errs) == 0 && !end.After(start) {
		errs = append(errs, ValidationError{Field: "end_time", Message: "must be after the start"})
	}
	if err := validationFailure(errs); err != nil {
		return nil, err
	}

	from, to := entity.NewInstant(start), entity.NewInstant(end)
	participants := entity.JoinParticipants(input.Participants)
	resp, err := uc.Data.InvokeCustomAPI(ctx, creator.CustomAPIRequest{
		APIName: APICreateMeeting,
		Method:  http.MethodPost,
		Payload: map[string]any{
			"title":        strings.TrimSpace(input.Title),
			"description":  input.Description,
			"record_id":    input.RecordID,
			"module":       input.Module,
			"participants": participants,
			"start":        from.Formatted,
			"end":          to.Formatted,
			"start_millis": from.Millis,
			"end_millis":   to.Millis,
		},
	})
	if err != nil {
		return nil, apiFailure("Failed to schedule meeting", err)
	}

	var result meetingResult
	if err := resp.Decode(&result); err != nil {
		uc.Logger.Warn("meeting created but response was not readable", zap.Error(err))
	}

	m := entity.Meeting{
		ID:              result.MeetingID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		RecordID:        input.RecordID,
		Module:          input.Module,
		Start:           from.Formatted,
		End:             to.Formatted,
		Participants:    entity.ParseParticipants(participants),
		CalendarEventID: result.CalendarEventID,
	}
	uc.Logger.Info("📅 meeting scheduled", zap.String("record_id", input.RecordID), zap.String("meeting_id", m.ID), zap.String("start", m.Start))
	view := newMeetingView(m, now)
	return &view, nil
}

func (uc *ScheduleMeetingUseCase) loc() *time.Location {
	if uc.Location == nil {
		return time.Local
	}
	return uc.Location
}

type EditMeetingInput struct {
	MeetingID string `json:"-" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Reason    string `json:"reason" validate:"notblank,max=500"`
}

type EditMeetingUseCase struct {
	Data     DataService
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewEditMeetingUseCase(data DataService, loc *time.Location, logger *zap.Logger) *EditMeetingUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditMeetingUseCase{Data: data, Location: loc, Logger: logger}
}

// Execute moves a meeting with a single custom API call. The returned view
// reflects the new times only after the call succeeded.
func (uc *EditMeetingUseCase) Execute(ctx context.Context, input EditMeetingInput) (*MeetingView, error) {
	loc := uc.Location
	if loc == nil {
		loc = time.Local
	}
	errs := validateInput(input)
	var start, end time.Time
	if len(errs) == 0 {
		var err error
		if start, err = entity.CombineDateClock(input.StartDate, input.StartTime, loc); err != nil {
			errs = append(errs, ValidationError{Field: "start_date", Message: err.Error()})
		}
		if end, err = entity.CombineDateClock(input.EndDate, input.EndTime, loc); err != nil {
			errs = append(errs, ValidationError{Field: "end_date", Message: err.Error()})
		}
		if len(errs) == 0 && !end.After(start) {
			errs = append(errs, ValidationError{Field: "end_time", Message: "must be after the start"})
		}
	}
	if err := validationFailure(errs); err != nil {
		return nil, err
	}

	current, err := fetchMeeting(ctx, uc.Data, input.MeetingID)
	if err != nil {
		return nil, err
	}

	from, to := entity.NewInstant(start), entity.NewInstant(end)
	_, err = uc.Data.InvokeCustomAPI(ctx, creator.CustomAPIRequest{
		APIName: APIUpdateMeeting,
		Method:  http.MethodPut,
		Payload: map[string]any{
			"meeting_id":        input.MeetingID,
			"calendar_event_id": current.CalendarEventID,
			"start":             from.Formatted,
			"end":               to.Formatted,
			"start_millis":      from.Millis,
			"end_millis":        to.Millis,
			"reason":            strings.TrimSpace(input.Reason),
		},
	})
	if err != nil {
		return nil, apiFailure("Failed to update meeting", err)
	}

	uc.Logger.Info("🔁 meeting rescheduled",
		zap.String("meeting_id", input.MeetingID),
		zap.String("from", current.Start),
		zap.String("to", from.Formatted),
	)
	current.Start, current.End = from.Formatted, to.Formatted
	view := newMeetingView(current, nowFrom(uc.Now).In(loc))
	return &view, nil
}

type ChangeMeetingStatusUseCase struct {
	Data   DataService
	Logger *zap.Logger
}

func NewChangeMeetingStatusUseCase(data DataService, logger *zap.Logger) *ChangeMeetingStatusUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeMeetingStatusUseCase{Data: data, Logger: logger}
}

// Execute stores an explicit status, which from then on overrides the
// derived one.
func (uc *ChangeMeetingStatusUseCase) Execute(ctx context.Context, meetingID, status string) (string, error) {
	var errs []ValidationError
	if strings.TrimSpace(meetingID) == "" {
		errs = append(errs, ValidationError{Field: "meeting_id", Message: "is required"})
	}
	canonical := ""
	for _, s := range entity.StoredMeetingStatuses {
		if strings.EqualFold(s, strings.TrimSpace(status)) {
			canonical = s
		}
	}
	if canonical == "" {
		errs = append(errs, ValidationError{Field: "status", Message: "must be one of: " + strings.Join(entity.StoredMeetingStatuses, ", ")})
	}
	if err := validationFailure(errs); err != nil {
		return "", err
	}

	if err := uc.Data.UpdateRecordByID(ctx, ReportMeetings, meetingID, creator.Fields{"Status": canonical}); err != nil {
		return "", apiFailure("Failed to update meeting status", err)
	}
	uc.Logger.Info("meeting status changed", zap.String("meeting_id", meetingID), zap.String("status", canonical))
	return canonical, nil
}

package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

type ListRemarksUseCase struct {
	Data     DataService
	Location *time.Location
}

func NewListRemarksUseCase(data DataService, loc *time.Location) *ListRemarksUseCase {
	return &ListRemarksUseCase{Data: data, Location: loc}
}

// Execute returns the remarks of a meeting, newest first.
func (uc *ListRemarksUseCase) Execute(ctx context.Context, meetingID string) ([]entity.Remark, error) {
	if strings.TrimSpace(meetingID) == "" {
		return nil, validationFailure([]ValidationError{{Field: "meeting_id", Message: "is required"}})
	}
	records, err := uc.Data.GetRecords(ctx, creator.Query{
		Report:   ReportRemarks,
		Criteria: creator.Eq("Meeting", meetingID),
	})
	if creator.IsNoRecords(err) {
		return []entity.Remark{}, nil
	}
	if err != nil {
		return nil, apiFailure("Failed to load remarks", err)
	}
	remarks := make([]entity.Remark, 0, len(records))
	for _, r := range records {
		remarks = append(remarks, remarkFromRecord(r, uc.Location))
	}
	entity.SortRemarksNewestFirst(remarks)
	return remarks, nil
}

type AddRemarkInput struct {
	MeetingID string `json:"-" validate:"required"`
	Text      string `json:"text" validate:"notblank,max=4000"`
}

type AddRemarkUseCase struct {
	Data     DataService
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewAddRemarkUseCase(data DataService, loc *time.Location, logger *zap.Logger) *AddRemarkUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddRemarkUseCase{Data: data, Location: loc, Logger: logger}
}

// Execute appends a remark to a completed meeting and flags the owning lead
// as reviewed, which is one of the conversion preconditions.
func (uc *AddRemarkUseCase) Execute(ctx context.Context, input AddRemarkInput) (*entity.Remark, error) {
	if err := validationFailure(validateInput(input)); err != nil {
		return nil, err
	}

	meeting, err := fetchMeeting(ctx, uc.Data, input.MeetingID)
	if err != nil {
		return nil, err
	}
	loc := uc.Location
	if loc == nil {
		loc = time.Local
	}
	now := nowFrom(uc.Now).In(loc)
	if status := entity.DeriveMeetingStatus(meeting.Status, meeting.Start, now); status != entity.MeetingStatusCompleted {
		return nil, &DomainError{Code: CodeMeetingNotDone, Message: "Remarks can only be added to completed meetings"}
	}

	text := strings.TrimSpace(input.Text)
	id, err := uc.Data.AddRecords(ctx, FormRemarks, creator.Fields{
		"Meeting":     meeting.ID,
		"Remark":      text,
		FieldRecordID: meeting.RecordID,
		FieldModule:   meeting.Module,
	})
	if err != nil {
		return nil, apiFailure("Failed to save remark", err)
	}
	remark := &entity.Remark{ID: id, MeetingID: meeting.ID, RecordID: meeting.RecordID, Text: text, AddedTime: now}

	if meeting.Module == entity.ModuleLeads && meeting.RecordID != "" {
		if err := uc.Data.UpdateRecordByID(ctx, ReportLeads, meeting.RecordID, creator.Fields{"Remarks_Done": true}); err != nil {
			return nil, apiFailure("Remark saved, but the lead could not be marked as reviewed", err)
		}
	}
	uc.Logger.Info("📝 remark added", zap.String("meeting_id", meeting.ID), zap.String("record_id", meeting.RecordID))
	return remark, nil
}

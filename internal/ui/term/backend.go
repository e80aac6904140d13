package term

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Backend is what the terminal UI needs from the application layer.
type Backend interface {
	ListLeads(ctx context.Context, status string) ([]entity.Lead, error)
	LeadDetail(ctx context.Context, leadID string) (*usecase.LeadDetail, error)
	ConvertLead(ctx context.Context, leadID string) (*usecase.ConvertLeadOutput, error)
	ListMeetings(ctx context.Context, recordID string) ([]usecase.MeetingView, error)
	ScheduleMeeting(ctx context.Context, input usecase.ScheduleMeetingInput) (*usecase.MeetingView, error)
	ChangeMeetingStatus(ctx context.Context, meetingID, status string) (string, error)
	ListRemarks(ctx context.Context, meetingID string) ([]entity.Remark, error)
	AddRemark(ctx context.Context, input usecase.AddRemarkInput) (*entity.Remark, error)
}

// UseCases runs the terminal UI in process against the use cases.
type UseCases struct {
	Leads         *usecase.ListLeadsUseCase
	Detail        *usecase.LeadDetailUseCase
	Convert       *usecase.ConvertLeadUseCase
	Meetings      *usecase.ListMeetingsUseCase
	Schedule      *usecase.ScheduleMeetingUseCase
	MeetingStatus *usecase.ChangeMeetingStatusUseCase
	Remarks       *usecase.ListRemarksUseCase
	AddRemarks    *usecase.AddRemarkUseCase
}

func (u *UseCases) ListLeads(ctx context.Context, status string) ([]entity.Lead, error) {
	return u.Leads.Execute(ctx, usecase.ListLeadsInput{Status: status, Limit: 200})
}

func (u *UseCases) LeadDetail(ctx context.Context, leadID string) (*usecase.LeadDetail, error) {
	return u.Detail.Execute(ctx, leadID)
}

func (u *UseCases) ConvertLead(ctx context.Context, leadID string) (*usecase.ConvertLeadOutput, error) {
	return u.Convert.Execute(ctx, leadID)
}

func (u *UseCases) ListMeetings(ctx context.Context, recordID string) ([]usecase.MeetingView, error) {
	return u.Meetings.Execute(ctx, recordID)
}

func (u *UseCases) ScheduleMeeting(ctx context.Context, input usecase.ScheduleMeetingInput) (*usecase.MeetingView, error) {
	return u.Schedule.Execute(ctx, input)
}

func (u *UseCases) ChangeMeetingStatus(ctx context.Context, meetingID, status string) (string, error) {
	return u.MeetingStatus.Execute(ctx, meetingID, status)
}

func (u *UseCases) ListRemarks(ctx context.Context, meetingID string) ([]entity.Remark, error) {
	return u.Remarks.Execute(ctx, meetingID)
}

func (u *UseCases) AddRemark(ctx context.Context, input usecase.AddRemarkInput) (*entity.Remark, error) {
	return u.AddRemarks.Execute(ctx, input)
}
var _ Backend = (*UseCases)(nil)

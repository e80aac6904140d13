package term

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/ui/datetimepicker"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type fakeBackend struct {
	mu            sync.Mutex
	leads         []entity.Lead
	meetings      []usecase.MeetingView
	remarks       []entity.Remark
	statusErr     error
	remarkErr     error
	convertOut    *usecase.ConvertLeadOutput
	statusCalls   []string
	convertCalls  int
	scheduleCalls []usecase.ScheduleMeetingInput
}

func (f *fakeBackend) ListLeads(context.Context, string) ([]entity.Lead, error) {
	return f.leads, nil
}

func (f *fakeBackend) LeadDetail(_ context.Context, id string) (*usecase.LeadDetail, error) {
	for i := range f.leads {
		if f.leads[i].ID == id {
			return &usecase.LeadDetail{Lead: &f.leads[i], Meetings: f.meetings}, nil
		}
	}
	return nil, &usecase.DomainError{Code: usecase.CodeNotFound, Message: "Lead not found"}
}

func (f *fakeBackend) ConvertLead(context.Context, string) (*usecase.ConvertLeadOutput, error) {
	f.mu.Lock()
	f.convertCalls++
	f.mu.Unlock()
	return f.convertOut, nil
}

func (f *fakeBackend) ListMeetings(context.Context, string) ([]usecase.MeetingView, error) {
	return f.meetings, nil
}

func (f *fakeBackend) ScheduleMeeting(_ context.Context, in usecase.ScheduleMeetingInput) (*usecase.MeetingView, error) {
	f.scheduleCalls = append(f.scheduleCalls, in)
	return &usecase.MeetingView{}, nil
}

func (f *fakeBackend) ChangeMeetingStatus(_ context.Context, id, status string) (string, error) {
	f.statusCalls = append(f.statusCalls, id+"="+status)
	return status, f.statusErr
}

func (f *fakeBackend) ListRemarks(context.Context, string) ([]entity.Remark, error) {
	return f.remarks, nil
}

func (f *fakeBackend) AddRemark(context.Context, usecase.AddRemarkInput) (*entity.Remark, error) {
	return &entity.Remark{}, f.remarkErr
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and every command it batches, skipping spinner ticks,
// and returns the resulting messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds the model's own messages back into it until no command is
// left. Spinner and cursor blinks are dropped.
func settle(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		var next []tea.Cmd
		for _, msg := range run(cmd) {
			switch msg.(type) {
			case leadsLoadedMsg, detailLoadedMsg, conversionDoneMsg, meetingsLoadedMsg,
				meetingSavedMsg, remarksLoadedMsg, remarkSavedMsg:
				if _, c := m.Update(msg); c != nil {
					next = append(next, c)
				}
			}
		}
		cmd = nil
		if len(next) > 0 {
			cmd = tea.Batch(next...)
		}
	}
}

func meeting(id, status string) usecase.MeetingView {
	return usecase.MeetingView{
		Meeting:       entity.Meeting{ID: id, Title: "Discovery", Start: "09-Jan-2025 15:00:00", Status: status},
		DisplayStatus: status,
		Presentation:  entity.PresentationFor(status),
	}
}

func openDetail(t *testing.T, backend *fakeBackend) *model {
	t.Helper()
	m := newModel(context.Background(), backend, time.UTC)
	m.Update(leadsLoadedMsg{leads: backend.leads})
	_, cmd := m.Update(keyPress("enter"))
	for _, msg := range run(cmd) {
		m.Update(msg)
	}
	require.Equal(t, stateDetail, m.state)
	return m
}

func ada() entity.Lead {
	return entity.Lead{ID: "L1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Status: entity.LeadStatusQualified}
}

func TestConvertIsDisabledWhileRunning(t *testing.T) {
	backend := &fakeBackend{
		leads:      []entity.Lead{ada()},
		convertOut: &usecase.ConvertLeadOutput{Outcome: usecase.OutcomeSuccess, Message: "Lead converted successfully", Contact: &entity.Contact{ID: "C1"}},
	}
	m := openDetail(t, backend)

	_, first := m.Update(keyPress("c"))
	require.NotNil(t, first)
	assert.True(t, m.converting)
	assert.Contains(t, m.View(), "converting (disabled)")

	_, second := m.Update(keyPress("c"))
	assert.Nil(t, second)

	for _, msg := range run(first) {
		if done, ok := msg.(conversionDoneMsg); ok {
			m.Update(done)
		}
	}
	assert.False(t, m.converting)
	assert.Equal(t, 1, backend.convertCalls)
	assert.Equal(t, stateList, m.state)
	assert.Contains(t, m.info, "contact C1")
}

func TestConvertValidationFailureStaysOnDetail(t *testing.T) {
	backend := &fakeBackend{
		leads: []entity.Lead{ada()},
		convertOut: &usecase.ConvertLeadOutput{
			Outcome:    usecase.OutcomeValidationFailed,
			Message:    "Lead is not ready for conversion",
			Violations: []string{"Remarks must be recorded before the lead can be converted"},
		},
	}
	m := openDetail(t, backend)

	m.conversionDone(conversionDoneMsg{out: backend.convertOut})
	assert.Equal(t, stateDetail, m.state)
	assert.Contains(t, m.errMsg, "Remarks must be recorded")
}

func TestMeetingStatusIsOptimisticThenReconciled(t *testing.T) {
	backend := &fakeBackend{leads: []entity.Lead{ada()}, meetings: []usecase.MeetingView{meeting("M1", "Scheduled")}}
	m := openDetail(t, backend)

	_, cmd := m.Update(keyPress("s"))
	item := m.meetings.Items()[0]
	assert.True(t, item.Pending)
	assert.Equal(t, "In Progress", item.Value.Status)

	backend.meetings = []usecase.MeetingView{meeting("M1", "In Progress")}
	settle(t, m, cmd)

	assert.Equal(t, []string{"M1=In Progress"}, backend.statusCalls)
	item = m.meetings.Items()[0]
	assert.False(t, item.Pending)
	assert.Equal(t, "In Progress", item.Value.Status)
}

func TestMeetingStatusFailureReverts(t *testing.T) {
	backend := &fakeBackend{
		leads:     []entity.Lead{ada()},
		meetings:  []usecase.MeetingView{meeting("M1", "Completed")},
		statusErr: &usecase.TechnicalError{Code: usecase.CodeAPIError, Message: "Failed to update meeting status", Err: errors.New("code 2945")},
	}
	m := openDetail(t, backend)

	_, cmd := m.Update(keyPress("s"))
	assert.Equal(t, "Cancelled", m.meetings.Items()[0].Value.Status)
	settle(t, m, cmd)

	assert.Equal(t, "Completed", m.meetings.Items()[0].Value.Status)
	assert.Equal(t, "Failed to update meeting status", m.errMsg)
}

func TestRemarkPlaceholderThenServerCopy(t *testing.T) {
	backend := &fakeBackend{leads: []entity.Lead{ada()}, meetings: []usecase.MeetingView{meeting("M1", "Completed")}}
	m := openDetail(t, backend)

	_, cmd := m.Update(keyPress("r"))
	settle(t, m, cmd)
	require.Equal(t, stateRemark, m.state)

	m.remark.SetValue("Agreed on a pilot")
	_, cmd = m.Update(keyPress("enter"))
	require.Equal(t, 1, m.remarks.Len())
	assert.True(t, m.remarks.Items()[0].Pending)

	backend.remarks = []entity.Remark{{ID: "RK1", MeetingID: "M1", Text: "Agreed on a pilot"}}
	settle(t, m, cmd)

	items := m.remarks.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "RK1", items[0].Key)
	assert.False(t, items[0].Pending)
}

func TestScheduleFromPicker(t *testing.T) {
	backend := &fakeBackend{leads: []entity.Lead{ada()}}
	m := openDetail(t, backend)

	m.Update(keyPress("m"))
	require.Equal(t, statePicker, m.state)

	start := time.Date(2025, 1, 9, 15, 0, 0, 0, time.UTC)
	_, cmd := m.Update(datetimepicker.SavedMsg{Value: start})
	settle(t, m, cmd)

	require.Len(t, backend.scheduleCalls, 1)
	in := backend.scheduleCalls[0]
	assert.Equal(t, "2025-01-09", in.StartDate)
	assert.Equal(t, "15:00", in.StartTime)
	assert.Equal(t, []string{"ada@example.com"}, in.Participants)
	assert.Equal(t, stateDetail, m.state)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Lead not found", userMessage(&usecase.DomainError{Message: "Lead not found"}))
	assert.Equal(t, "Failed to load lead", userMessage(&usecase.TechnicalError{Message: "Failed to load lead", Err: errors.New("secret")}))
	assert.Equal(t, "Something went wrong", userMessage(errors.New("boom")))
}

func TestNextMeetingStatus(t *testing.T) {
	assert.Equal(t, "In Progress", nextMeetingStatus("scheduled"))
	assert.Equal(t, "Scheduled", nextMeetingStatus("Rescheduled"))
	assert.Equal(t, "Scheduled", nextMeetingStatus(""))
}

// Package term is the terminal front end: lead list, lead detail with its
// meetings, conversion, scheduling and remarks.
package term

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/ui/datetimepicker"
	"github.com/xavierca1/ligue-leads/internal/ui/viewstate"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

func NewProgram(ctx context.Context, backend Backend, loc *time.Location) *Program {
	return &Program{program: tea.NewProgram(newModel(ctx, backend, loc), tea.WithAltScreen())}
}

func (p *Program) Run() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	_, err := p.program.Run()
	return err
}

type viewState int

const (
	stateList viewState = iota
	stateDetail
	statePicker
	stateRemark
	stateFilter
)

type (
	leadsLoadedMsg struct {
		leads []entity.Lead
		err   error
	}
	detailLoadedMsg struct {
		detail *usecase.LeadDetail
		err    error
	}
	conversionDoneMsg struct {
		out *usecase.ConvertLeadOutput
		err error
	}
	meetingsLoadedMsg struct {
		meetings []usecase.MeetingView
		err      error
	}
	meetingSavedMsg struct {
		key string
		err error
	}
	remarksLoadedMsg struct {
		meetingID string
		remarks   []entity.Remark
		err       error
	}
	remarkSavedMsg struct {
		key string
		err error
	}
)

type model struct {
	ctx      context.Context
	backend  Backend
	loc      *time.Location
	theme    Theme
	state    viewState
	width    int
	info     string
	errMsg   string
	loading  bool
	spinner  spinner.Model
	filter   textinput.Model
	status   string
	leads    []entity.Lead
	cursor   int
	detail   *usecase.LeadDetail
	meetings *viewstate.Collection[usecase.MeetingView]
	selected int
	remarks  *viewstate.Collection[entity.Remark]
	remarkOf string

	// converting disables the convert action until the run reports back.
	converting bool

	picker datetimepicker.Model
	remark textinput.Model
}

func newModel(ctx context.Context, backend Backend, loc *time.Location) *model {
	if loc == nil {
		loc = time.Local
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	filter := textinput.New()
	filter.Placeholder = "status (empty for all)"
	filter.CharLimit = 32

	remark := textinput.New()
	remark.Placeholder = "What was agreed?"
	remark.CharLimit = 4000

	return &model{
		ctx:      ctx,
		backend:  backend,
		loc:      loc,
		theme:    DefaultTheme(),
		spinner:  sp,
		filter:   filter,
		remark:   remark,
		meetings: viewstate.NewCollection(func(m usecase.MeetingView) string { return m.ID }),
		remarks:  viewstate.NewCollection(func(r entity.Remark) string { return r.ID }),
		loading:  true,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadLeads())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case leadsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.leads = msg.leads
		if m.cursor >= len(m.leads) {
			m.cursor = max(len(m.leads)-1, 0)
		}
		return m, nil
	case detailLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			m.state = stateList
			return m, nil
		}
		m.detail = msg.detail
		m.meetings.Replace(msg.detail.Meetings)
		m.selected = 0
		for panel, problem := range msg.detail.PanelErrors {
			m.errMsg = fmt.Sprintf("%s (%s)", problem, panel)
		}
		return m, nil
	case conversionDoneMsg:
		return m, m.conversionDone(msg)
	case meetingsLoadedMsg:
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.meetings.Replace(msg.meetings)
		if m.selected >= m.meetings.Len() {
			m.selected = max(m.meetings.Len()-1, 0)
		}
		return m, nil
	case meetingSavedMsg:
		if msg.err != nil {
			m.meetings.Revert(msg.key)
			m.errMsg = userMessage(msg.err)
		}
		return m, m.loadMeetings()
	case remarksLoadedMsg:
		if msg.err == nil && msg.meetingID == m.remarkOf {
			m.remarks.Replace(msg.remarks)
		}
		return m, nil
	case remarkSavedMsg:
		if msg.err != nil {
			m.remarks.Revert(msg.key)
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.info = "Remark saved"
		return m, tea.Batch(m.loadRemarks(m.remarkOf), m.reloadDetail())
	case datetimepicker.SavedMsg:
		m.state = stateDetail
		return m, m.scheduleMeeting(msg.Value)
	case datetimepicker.CancelledMsg:
		m.state = stateDetail
		return m, nil
	}

	switch m.state {
	case stateList:
		return m, m.updateList(msg)
	case stateFilter:
		return m, m.updateFilter(msg)
	case stateDetail:
		return m, m.updateDetail(msg)
	case statePicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case stateRemark:
		return m, m.updateRemark(msg)
	}
	return m, nil
}

func (m *model) updateList(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.leads)-1 {
			m.cursor++
		}
	case "f":
		m.state = stateFilter
		m.filter.SetValue(m.status)
		return m.filter.Focus()
	case "R":
		m.loading = true
		return m.loadLeads()
	case "enter":
		if len(m.leads) == 0 {
			return nil
		}
		m.resetMessages()
		m.state = stateDetail
		m.detail = &usecase.LeadDetail{Lead: &m.leads[m.cursor]}
		m.meetings.Replace(nil)
		m.loading = true
		return m.reloadDetail()
	}
	return nil
}

func (m *model) updateFilter(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.status = strings.TrimSpace(m.filter.Value())
			m.filter.Blur()
			m.state = stateList
			m.loading = true
			return m.loadLeads()
		case tea.KeyEsc:
			m.filter.Blur()
			m.state = stateList
			return nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return cmd
}

func (m *model) updateDetail(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "esc", "backspace":
		m.resetMessages()
		m.state = stateList
		return nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < m.meetings.Len()-1 {
			m.selected++
		}
	case "c":
		if m.converting {
			return nil
		}
		m.resetMessages()
		m.converting = true
		return tea.Batch(m.spinner.Tick, m.convert(m.detail.Lead.ID))
	case "m":
		m.resetMessages()
		m.picker = datetimepicker.NewModel("Schedule meeting", entity.NextSlot(time.Now().In(m.loc)))
		m.state = statePicker
	case "s":
		return m.cycleMeetingStatus()
	case "r":
		meeting, ok := m.selectedMeeting()
		if !ok {
			return nil
		}
		m.resetMessages()
		m.remarkOf = meeting.ID
		m.remarks.Replace(nil)
		m.remark.SetValue("")
		m.state = stateRemark
		return tea.Batch(m.remark.Focus(), m.loadRemarks(meeting.ID))
	}
	return nil
}

func (m *model) updateRemark(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.remark.Blur()
			m.state = stateDetail
			return nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.remark.Value())
			if text == "" {
				return nil
			}
			m.remark.SetValue("")
			key := m.remarks.ApplyPlaceholder(entity.Remark{MeetingID: m.remarkOf, Text: text, AddedTime: time.Now().In(m.loc)})
			return m.saveRemark(key, usecase.AddRemarkInput{MeetingID: m.remarkOf, Text: text})
		}
	}
	var cmd tea.Cmd
	m.remark, cmd = m.remark.Update(msg)
	return cmd
}

func (m *model) selectedMeeting() (usecase.MeetingView, bool) {
	items := m.meetings.Items()
	if m.selected < 0 || m.selected >= len(items) {
		return usecase.MeetingView{}, false
	}
	return items[m.selected].Value, true
}

// cycleMeetingStatus shows the next stored status at once and reconciles
// with a fetch once the write returns.
func (m *model) cycleMeetingStatus() tea.Cmd {
	items := m.meetings.Items()
	if m.selected >= len(items) || items[m.selected].Pending {
		return nil
	}
	item := items[m.selected]
	next := nextMeetingStatus(item.Value.Status)

	staged := item.Value
	staged.Status = next
	staged.DisplayStatus = strings.ToLower(next)
	staged.Presentation = entity.PresentationFor(next)
	m.meetings.Stage(item.Key, staged)
	m.resetMessages()

	backend, ctx, key, id := m.backend, m.ctx, item.Key, item.Value.ID
	return func() tea.Msg {
		_, err := backend.ChangeMeetingStatus(ctx, id, next)
		return meetingSavedMsg{key: key, err: err}
	}
}

func nextMeetingStatus(current string) string {
	statuses := entity.StoredMeetingStatuses
	for i, s := range statuses {
		if strings.EqualFold(s, current) {
			return statuses[(i+1)%len(statuses)]
		}
	}
	return statuses[0]
}

func (m *model) conversionDone(msg conversionDoneMsg) tea.Cmd {
	m.converting = false
	if msg.err != nil {
		m.errMsg = userMessage(msg.err)
		return nil
	}
	out := msg.out
	switch out.Outcome {
	case usecase.OutcomeSuccess, usecase.OutcomePartialSuccess:
		m.info = out.Message
		if out.Contact != nil {
			m.info += fmt.Sprintf(" (contact %s)", out.Contact.ID)
		}
		m.state = stateList
		m.loading = true
		return m.loadLeads()
	case usecase.OutcomeValidationFailed:
		m.errMsg = out.Message + ": " + strings.Join(out.Violations, "; ")
	default:
		m.errMsg = out.Message
	}
	return nil
}

func (m *model) resetMessages() {
	m.info = ""
	m.errMsg = ""
}

func (m *model) loadLeads() tea.Cmd {
	backend, ctx, status := m.backend, m.ctx, m.status
	return func() tea.Msg {
		leads, err := backend.ListLeads(ctx, status)
		return leadsLoadedMsg{leads: leads, err: err}
	}
}

func (m *model) reloadDetail() tea.Cmd {
	if m.detail == nil || m.detail.Lead == nil {
		return nil
	}
	backend, ctx, id := m.backend, m.ctx, m.detail.Lead.ID
	return func() tea.Msg {
		detail, err := backend.LeadDetail(ctx, id)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

func (m *model) loadMeetings() tea.Cmd {
	if m.detail == nil || m.detail.Lead == nil {
		return nil
	}
	backend, ctx, id := m.backend, m.ctx, m.detail.Lead.ID
	return func() tea.Msg {
		meetings, err := backend.ListMeetings(ctx, id)
		return meetingsLoadedMsg{meetings: meetings, err: err}
	}
}

func (m *model) loadRemarks(meetingID string) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		remarks, err := backend.ListRemarks(ctx, meetingID)
		return remarksLoadedMsg{meetingID: meetingID, remarks: remarks, err: err}
	}
}

func (m *model) saveRemark(key string, input usecase.AddRemarkInput) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		_, err := backend.AddRemark(ctx, input)
		return remarkSavedMsg{key: key, err: err}
	}
}

func (m *model) convert(leadID string) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		out, err := backend.ConvertLead(ctx, leadID)
		return conversionDoneMsg{out: out, err: err}
	}
}

func (m *model) scheduleMeeting(start time.Time) tea.Cmd {
	lead := m.detail.Lead
	input := usecase.ScheduleMeetingInput{
		RecordID:  lead.ID,
		Module:    entity.ModuleLeads,
		Title:     "Meeting with " + lead.FullName(),
		StartDate: start.Format(datetimepicker.DateLayout),
		StartTime: start.Format(datetimepicker.ClockLayout),
	}
	if lead.Email != "" {
		input.Participants = []string{lead.Email}
	}
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		_, err := backend.ScheduleMeeting(ctx, input)
		return meetingSavedMsg{err: err}
	}
}

// userMessage keeps platform detail out of the status line.
func userMessage(err error) string {
	var (
		vf *usecase.ValidationFailure
		de *usecase.DomainError
		te *usecase.TechnicalError
	)
	switch {
	case errors.As(err, &vf):
		parts := make([]string, len(vf.Errors))
		for i, e := range vf.Errors {
			parts[i] = e.Error()
		}
		return strings.Join(parts, "; ")
	case errors.As(err, &de):
		return de.Message
	case errors.As(err, &te):
		return te.Message
	}
	return "Something went wrong"
}

package datetimepicker

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SavedMsg is sent when the user commits the picker.
type SavedMsg struct {
	Value time.Time
}

// CancelledMsg is sent when the user leaves without saving.
type CancelledMsg struct{}

// Model is the keyboard front of a Picker. The cursor walks days of the
// browsed month; clock keys edit the pending time.
type Model struct {
	Picker *Picker
	Title  string
	cursor int

	dayStyle      lipgloss.Style
	selectedStyle lipgloss.Style
	cursorStyle   lipgloss.Style
	faintStyle    lipgloss.Style
}

func NewModel(title string, t time.Time) Model {
	p := New(t)
	return Model{
		Picker:        p,
		Title:         title,
		cursor:        t.Day(),
		dayStyle:      lipgloss.NewStyle().Width(4).Align(lipgloss.Right),
		selectedStyle: lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Foreground(lipgloss.Color("42")).Bold(true),
		cursorStyle:   lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Foreground(lipgloss.Color("205")).Underline(true),
		faintStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	p := m.Picker

	switch key.String() {
	case "left":
		m.moveCursor(-1)
	case "right":
		m.moveCursor(1)
	case "up":
		m.moveCursor(-7)
	case "down":
		m.moveCursor(7)
	case "[":
		p.PrevMonth()
		m.clampCursor()
	case "]":
		p.NextMonth()
		m.clampCursor()
	case "{":
		p.PrevYear()
		m.clampCursor()
	case "}":
		p.NextYear()
		m.clampCursor()
	case " ":
		_ = p.SelectDay(m.cursor)
	case "h":
		_ = p.SetHour(p.Hour12()%12 + 1)
	case "H":
		_ = p.SetHour((p.Hour12()+10)%12 + 1)
	case "m":
		_ = p.SetMinute((p.Value().Minute()/5*5 + 5) % 60)
	case "M":
		_ = p.SetMinute((p.Value().Minute()/5*5 + 55) % 60)
	case "a":
		p.SetMeridiem(!p.IsPM())
	case "enter":
		v := p.Save()
		return m, func() tea.Msg { return SavedMsg{Value: v} }
	case "esc":
		p.Cancel()
		m.cursor = p.Value().Day()
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor < 1 {
		m.cursor = 1
	}
	if days := m.Picker.DaysInView(); m.cursor > days {
		m.cursor = days
	}
}

func (m Model) View() string {
	p := m.Picker
	year, month := p.ViewMonth()
	selected := p.Value()

	var b strings.Builder
	if m.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Title) + "\n")
	}
	b.WriteString(fmt.Sprintf("%s %d\n", month, year))
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(m.dayStyle.Render(d))
	}
	b.WriteString("\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	b.WriteString(strings.Repeat("    ", int(first.Weekday())))
	for day := 1; day <= p.DaysInView(); day++ {
		style := m.dayStyle
		isSelected := selected.Year() == year && selected.Month() == month && selected.Day() == day
		switch {
		case day == m.cursor:
			style = m.cursorStyle
		case isSelected:
			style = m.selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d", day)))
		if time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() == time.Saturday {
			b.WriteString("\n")
		}
	}

	meridiem := "AM"
	if p.IsPM() {
		meridiem = "PM"
	}
	b.WriteString(fmt.Sprintf("\n\n%s  %02d:%02d %s\n", p.Date(), p.Hour12(), selected.Minute(), meridiem))
	b.WriteString(m.faintStyle.Render("arrows day • space pick • [ ] month • { } year • h/H hour • m/M minute • a am/pm • enter save • esc cancel"))
	return b.String()
}

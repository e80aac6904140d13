package term

import (
	"fmt"
	"strings"
)

func (m *model) View() string {
	var body string
	switch m.state {
	case stateList, stateFilter:
		body = m.viewList()
	case stateDetail:
		body = m.viewDetail()
	case statePicker:
		body = m.picker.View()
	case stateRemark:
		body = m.viewRemark()
	}
	return body + "\n" + m.viewStatusLine()
}

func (m *model) viewStatusLine() string {
	switch {
	case m.converting:
		return m.spinner.View() + " Converting lead..."
	case m.loading:
		return m.spinner.View() + " Loading..."
	case m.errMsg != "":
		return m.theme.Danger.Render(m.errMsg)
	case m.info != "":
		return m.theme.Success.Render(m.info)
	}
	return ""
}

func (m *model) help(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, m.theme.HelpKey.Render(pairs[i])+" "+m.theme.Faint.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

func (m *model) viewList() string {
	title := "Leads"
	if m.status != "" {
		title += " · " + m.status
	}
	lines := []string{m.theme.Title.Render(title), ""}
	if m.state == stateFilter {
		lines = append(lines, "Filter: "+m.filter.View(), "")
	}
	if len(m.leads) == 0 && !m.loading {
		lines = append(lines, m.theme.Faint.Render("No leads"))
	}
	for i, l := range m.leads {
		row := fmt.Sprintf("%-28s %-24s %s", l.FullName(), l.Company, l.Status)
		if i == m.cursor {
			row = m.theme.Highlight.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", m.help("enter", "open", "f", "filter", "R", "reload", "q", "quit"))
	return strings.Join(lines, "\n")
}

func (m *model) viewDetail() string {
	if m.detail == nil || m.detail.Lead == nil {
		return ""
	}
	l := m.detail.Lead
	lines := []string{m.theme.Title.Render(l.FullName())}

	var meta []string
	for _, kv := range [][2]string{
		{"Company", l.Company}, {"Email", l.Email}, {"Phone", l.Phone},
		{"Status", string(l.Status)}, {"Rating", l.Rating}, {"Owner", l.Owner},
	} {
		if kv[1] != "" {
			meta = append(meta, kv[0]+": "+kv[1])
		}
	}
	lines = append(lines, m.theme.Secondary.Render(strings.Join(meta, "  •  ")))
	if l.RemarksDone {
		lines = append(lines, m.theme.Success.Render("Remarks recorded"))
	} else {
		lines = append(lines, m.theme.Warning.Render("Remarks pending"))
	}

	lines = append(lines, "", m.theme.Subtitle.Render("Meetings"))
	items := m.meetings.Items()
	if len(items) == 0 {
		lines = append(lines, m.theme.Faint.Render("No meetings"))
	}
	for i, it := range items {
		row := fmt.Sprintf("%s  %s  %s", m.theme.Badge(it.Value.Presentation), it.Value.Start, it.Value.Title)
		if it.Pending {
			row += m.theme.Faint.Render("  saving…")
		}
		if i == m.selected {
			row = m.theme.Highlight.Render(">") + " " + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}

	lines = append(lines, "",
		m.theme.Faint.Render(fmt.Sprintf("%d attachments • %d notes • %d reminders",
			len(m.detail.Attachments), len(m.detail.Notes), len(m.detail.Reminders))))

	convert := "convert"
	if m.converting {
		convert = "converting (disabled)"
	}
	lines = append(lines, "", m.help("c", convert, "m", "schedule", "s", "status", "r", "remark", "esc", "back"))
	return strings.Join(lines, "\n")
}

func (m *model) viewRemark() string {
	lines := []string{m.theme.Title.Render("Remarks"), "", m.remark.View(), ""}
	for _, it := range m.remarks.Items() {
		row := it.Value.AddedTime.Format("02 Jan 15:04") + "  " + it.Value.Text
		if it.Pending {
			row = m.theme.Faint.Render(row + "  saving…")
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", m.help("enter", "save", "esc", "back"))
	return strings.Join(lines, "\n")
}


package term

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// Theme is the terminal palette.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Faint     lipgloss.Style
	Highlight lipgloss.Style
	HelpKey   lipgloss.Style
	badges    map[string]lipgloss.Style
}

func DefaultTheme() Theme {
	badge := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(color)).Padding(0, 1)
	}
	return Theme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).Underline(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		HelpKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		badges: map[string]lipgloss.Style{
			"primary":   badge("75"),
			"info":      badge("117"),
			"success":   badge("42"),
			"warning":   badge("227"),
			"danger":    badge("203"),
			"secondary": badge("245"),
		},
	}
}

// Badge renders a meeting presentation as a coloured tag.
func (t Theme) Badge(p entity.Presentation) string {
	style, ok := t.badges[p.Badge]
	if !ok {
		style = t.badges["secondary"]
	}
	return style.Render(p.Icon + " " + p.Label)
}

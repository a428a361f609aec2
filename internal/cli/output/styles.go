package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1   lipgloss.Style
	Header2   lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Statement lipgloss.Style
	Raw       lipgloss.Style
	Param     lipgloss.Style
}

// DefaultStyles returns the colored styles for terminals.
func DefaultStyles() *Styles {
	return &Styles{
		Header1:   lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Statement: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Raw:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Param:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header1:   plain,
		Header2:   plain,
		Bold:      plain,
		Muted:     plain,
		Success:   plain,
		Error:     plain,
		Statement: plain,
		Raw:       plain,
		Param:     plain,
	}
}

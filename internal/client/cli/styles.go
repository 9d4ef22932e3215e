package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/accountcli/internal/client/models"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(9)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func renderError(msg string) string {
	return errorStyle.Render("Error: " + msg)
}

func renderSuccess(msg string) string {
	return successStyle.Render(msg)
}

func renderProfileCard(p *models.Profile) string {
	if p == nil {
		return "No profile available yet."
	}

	rows := []struct{ label, value string }{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Picture", p.ProfilePicture},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(row.value)
	}
	return cardStyle.Render(b.String())
}

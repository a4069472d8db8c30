package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/retro/internal/extract"
)

var (
	// Heading - black on bright cyan
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			MarginTop(1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			PaddingLeft(2)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2)
)

// Pretty writes a styled rendering for terminals.
func Pretty(w io.Writer, doc Document) error {
	heading := headingStyle.Render(doc.Heading())
	switch doc.Mode {
	case extract.ModeGood:
		heading += " " + goodStyle.Render("▲")
	case extract.ModeBad:
		heading += " " + badStyle.Render("▼")
	}

	parts := []string{heading}
	for _, s := range doc.Sections {
		parts = append(parts, sectionStyle.Render(s.Title))
		if s.Empty {
			parts = append(parts, emptyStyle.Render(s.Text))
			continue
		}
		parts = append(parts, itemStyle.Render(s.Text))
	}

	_, err := io.WriteString(w, containerStyle.Render(strings.Join(parts, "\n"))+"\n")
	return err
}

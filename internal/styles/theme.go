package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	// Tree node styles
	NodeCategory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")). // Blue
			Bold(true)

	NodeLink = lipgloss.NewStyle()

	NodeURL = lipgloss.NewStyle().
		Foreground(Muted).
		Underline(true)

	NodeArchive = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	NodeID = lipgloss.NewStyle().
		Foreground(Muted)

	Rating = lipgloss.NewStyle().
		Foreground(Warning)

	// Tree indicators
	TreeBranch = lipgloss.NewStyle().Foreground(Muted)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// EntryKind returns the style for an archive entry kind label
func EntryKind(kind string) lipgloss.Style {
	switch kind {
	case "category":
		return NodeCategory
	case "rating":
		return Rating
	default:
		return NodeLink
	}
}

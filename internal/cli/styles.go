package cli

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all command output.
const (
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorPath    = lipgloss.Color("#3B82F6")
)

var (
	// SuccessStyle is for completed operations and found matches.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	// ErrorStyle is for the single error line a failed command prints.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// WarningStyle is for unset keys and ambiguous matches.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	// MutedStyle is for skipped projects and secondary details.
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// PathStyle is for file paths.
	PathStyle = lipgloss.NewStyle().Foreground(ColorPath)
)

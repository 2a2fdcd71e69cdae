package theme

import (
	"github.com/charmbracelet/lipgloss"

	"ofsconsole/internal/domain"
)

// Main UI styles
var (
	HelpLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpShortcutStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// Pane styles
var (
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)
)

// Tree styles
var (
	DirectoryStyle = lipgloss.NewStyle().
			Foreground(ColorDirectory).
			Bold(true)

	FileStyle = lipgloss.NewStyle().
			Foreground(ColorFile)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(ColorSelected).
				Bold(true)

	EmptyTreeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// Command log styles
var (
	LogDeniedStyle = lipgloss.NewStyle().
			Foreground(ColorDenied).
			Bold(true)

	LogFailureStyle = lipgloss.NewStyle().
			Foreground(ColorFailure)

	LogInfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	LogRawStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	LogSentStyle = lipgloss.NewStyle().
			Foreground(ColorSent)

	LogSuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	LogTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorVersion)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Help screen styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Width(12)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// ConnStateStyle returns the status bar style for a connection state
func ConnStateStyle(state domain.ConnState) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch state {
	case domain.StateConnected:
		return style.Foreground(ColorConnected)
	case domain.StateConnecting, domain.StateDisconnecting:
		return style.Foreground(ColorTransition)
	default:
		return style.Foreground(ColorDisconnected)
	}
}

// OutcomeStyle returns the command log style for an outcome kind
func OutcomeStyle(kind domain.OutcomeKind) lipgloss.Style {
	switch kind {
	case domain.OutcomeSuccess:
		return LogSuccessStyle
	case domain.OutcomeFailure:
		return LogFailureStyle
	case domain.OutcomeAccessDenied:
		return LogDeniedStyle
	default:
		return LogRawStyle
	}
}

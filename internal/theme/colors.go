package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Connection state colors
const (
	ColorConnected    Color = "2"   // Green
	ColorDisconnected Color = "1"   // Red
	ColorTransition   Color = "214" // Orange - connecting/disconnecting
)

// Outcome colors for the command log
const (
	ColorDenied  Color = "203" // Salmon - access/permission refusals
	ColorFailure Color = "1"   // Red
	ColorInfo    Color = "33"  // Blue - selections, local notices
	ColorSent    Color = "245" // Light gray - echoed requests
	ColorSuccess Color = "2"   // Green
)

// Tree colors
const (
	ColorDirectory Color = "86"  // Cyan
	ColorFile      Color = "250" // Default text
	ColorSelected  Color = "237" // Dark background for the cursor row
)

// UI semantic colors
const (
	ColorBorder    Color = "238" // Pane borders
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorHelpGroup Color = "141" // Purple
	ColorSpinner   Color = "205" // Pink
)

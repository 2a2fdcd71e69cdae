package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ofsconsole/internal/theme"
)

// HelpScreen displays keyboard shortcuts organized by category
type HelpScreen struct {
	Completed   bool
	content     string         // Pre-built help content
	height      int            // Terminal height
	initialized bool           // Track if viewport has been sized
	keys        *KeyMap        // Key bindings to display
	viewport    viewport.Model // Scrollable viewport
	width       int            // Terminal width
}

// renderShortcut renders a single shortcut line with key and description
func renderShortcut(key, description string) string {
	return theme.HelpKeyStyle.Render(key) + theme.HelpDescStyle.Render(description) + "\n"
}

// renderBinding renders a single shortcut line from a key binding
func renderBinding(binding key.Binding) string {
	help := binding.Help()
	return renderShortcut(help.Key, help.Desc)
}

// buildHelpContent builds the complete help text content using key bindings
func buildHelpContent(keys *KeyMap) string {
	var content string

	content += theme.HelpGroupStyle.Render("Connection") + "\n"
	content += renderBinding(keys.Connection.Connect)
	content += renderBinding(keys.Connection.Login)
	content += renderBinding(keys.Connection.Logout)
	content += renderBinding(keys.Connection.Refresh)

	content += "\n" + theme.HelpGroupStyle.Render("Explorer") + "\n"
	content += renderBinding(keys.Navigation.Up)
	content += renderBinding(keys.Navigation.Down)
	content += renderBinding(keys.Navigation.Top)
	content += renderBinding(keys.Navigation.Bottom)
	content += renderBinding(keys.Navigation.Open)
	content += renderBinding(keys.Navigation.LogUp)
	content += renderBinding(keys.Navigation.LogDown)

	content += "\n" + theme.HelpGroupStyle.Render("Files and Directories") + "\n"
	content += renderBinding(keys.Files.CreateDir)
	content += renderBinding(keys.Files.CreateFile)
	content += renderBinding(keys.Files.WriteFile)
	content += renderBinding(keys.Files.Truncate)
	content += renderBinding(keys.Files.DeleteFile)
	content += renderBinding(keys.Files.DeleteDir)

	content += "\n" + theme.HelpGroupStyle.Render("Users") + "\n"
	content += renderBinding(keys.Users.CreateUser)
	content += renderBinding(keys.Users.DeleteUser)
	content += renderBinding(keys.Users.ListUsers)

	content += "\n" + theme.HelpGroupStyle.Render("Information and System") + "\n"
	content += renderBinding(keys.Info.Stats)
	content += renderBinding(keys.Info.ChangeLog)
	content += renderBinding(keys.Info.ListMyFiles)
	content += renderBinding(keys.Info.ListAllFiles)
	content += renderBinding(keys.Info.ReadBlock)
	content += renderBinding(keys.Info.Format)
	content += renderBinding(keys.Info.Load)

	content += "\n" + theme.HelpGroupStyle.Render("Application") + "\n"
	content += renderBinding(keys.Application.Help)
	content += renderBinding(keys.Application.Quit)
	content += renderBinding(keys.Application.ForceQuit)

	content += "\n" + theme.HelpGroupStyle.Render("Dialogs") + "\n"
	content += renderShortcut("tab", "next field")
	content += renderShortcut("enter", "submit")
	content += renderShortcut("esc", "cancel")

	return content
}

// NewHelpScreen creates a new help screen component
func NewHelpScreen(keys *KeyMap) *HelpScreen {
	return &HelpScreen{
		content:  buildHelpContent(keys),
		keys:     keys,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	h.viewport.KeyMap.Up.SetKeys("up", "k")
	h.viewport.KeyMap.Down.SetKeys("down", "j")
	return nil
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		h.height = msg.Height

		// Dialog header: 4 lines, Footer: 2 lines
		viewportHeight := msg.Height - 6
		if viewportHeight < 5 {
			viewportHeight = 5
		}

		h.viewport.Width = msg.Width
		h.viewport.Height = viewportHeight
		h.viewport.SetContent(h.content)
		h.initialized = true
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "esc" || key.Matches(msg, h.keys.Application.Quit, h.keys.Application.Help) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return "Loading help..."
	}

	footer := theme.HelpStyle.Render("Press esc, q, h, or ? to close • ↑↓/jk/PgUp/PgDn to scroll")
	return h.viewport.View() + "\n\n" + footer
}

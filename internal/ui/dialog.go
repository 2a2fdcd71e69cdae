package ui

import tea "github.com/charmbracelet/bubbletea"

// Dialog wraps any tea.Model content and adds the application header with a title.
//
// Usage:
//
//	contentForm := NewLoginForm(...)
//	dialog := NewDialog("Login", contentForm, devMode)
//	dialog.Init()       // Delegates to contentForm.Init()
//	dialog.Update(msg)  // Delegates to contentForm.Update(msg)
//	dialog.View()       // Returns header + contentForm.View()
type Dialog struct {
	content tea.Model
	devMode bool
	title   string
}

// NewDialog creates a new dialog wrapper.
// The wrapped content will have renderDialogHeader() prepended to its View().
func NewDialog(title string, content tea.Model, devMode bool) *Dialog {
	return &Dialog{
		content: content,
		devMode: devMode,
		title:   title,
	}
}

// Init delegates to wrapped content's Init method.
func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

// Update delegates to wrapped content's Update method.
// The returned tea.Model is the Dialog itself with updated content.
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedContent, cmd := d.content.Update(msg)
	d.content = updatedContent
	return d, cmd
}

// View prepends the dialog header to the wrapped content's view.
func (d *Dialog) View() string {
	return renderDialogHeader(d.devMode, d.title) + d.content.View()
}

// Content returns the wrapped content for type assertion.
//
// Example:
//
//	if content, ok := dialog.Content().(*CommandForm); ok {
//	    if content.Completed {
//	        run := content.Exchange()
//	    }
//	}
func (d *Dialog) Content() tea.Model {
	return d.content
}

// Title returns the dialog title
func (d *Dialog) Title() string {
	return d.title
}

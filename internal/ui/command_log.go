package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/theme"
)

// maxLogLines bounds the command log; older lines are dropped first
const maxLogLines = 1000

// CommandLog is the scrolling pane showing requests and responses
type CommandLog struct {
	lines    []string
	now      func() time.Time
	styled   []string
	viewport viewport.Model
}

// NewCommandLog creates an empty CommandLog
func NewCommandLog() *CommandLog {
	return &CommandLog{
		now:      time.Now,
		viewport: viewport.New(0, 0),
	}
}

// Sent logs an outgoing request
func (cl *CommandLog) Sent(text string) {
	cl.append(theme.LogSentStyle, "> Sending: "+text)
}

// Info logs a local notice
func (cl *CommandLog) Info(text string) {
	cl.append(theme.LogInfoStyle, text)
}

// Success logs a local success
func (cl *CommandLog) Success(text string) {
	cl.append(theme.LogSuccessStyle, text)
}

// Error logs a local failure
func (cl *CommandLog) Error(text string) {
	cl.append(theme.LogFailureStyle, text)
}

// Outcome logs a classified response
func (cl *CommandLog) Outcome(outcome domain.Outcome) {
	cl.append(theme.OutcomeStyle(outcome.Kind), outcome.String())
}

// Lines returns the unstyled log text, oldest first
func (cl *CommandLog) Lines() []string {
	return cl.lines
}

// SetSize resizes the viewport
func (cl *CommandLog) SetSize(width, height int) {
	cl.viewport.Width = width
	cl.viewport.Height = height
	cl.refresh()
}

func (cl *CommandLog) ScrollUp() {
	cl.viewport.HalfViewUp()
}

func (cl *CommandLog) ScrollDown() {
	cl.viewport.HalfViewDown()
}

func (cl *CommandLog) View() string {
	return cl.viewport.View()
}

func (cl *CommandLog) append(style lipgloss.Style, text string) {
	stamp := cl.now().Format("15:04:05")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		cl.lines = append(cl.lines, line)
		cl.styled = append(cl.styled, theme.LogTimestampStyle.Render(stamp)+" "+style.Render(line))
	}
	if over := len(cl.lines) - maxLogLines; over > 0 {
		cl.lines = cl.lines[over:]
		cl.styled = cl.styled[over:]
	}
	cl.refresh()
}

func (cl *CommandLog) refresh() {
	cl.viewport.SetContent(strings.Join(cl.styled, "\n"))
	cl.viewport.GotoBottom()
}

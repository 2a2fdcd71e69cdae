package ui

import (
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"ofsconsole/internal/theme"
)

const (
	defaultErrorClearDelay = 8 * time.Second
	errorPrefix            = "Error: "
	maxErrorLines          = 2
	truncationMark         = "..."
)

// clearErrorMsg clears the error identified by seq, unless a newer one replaced it
type clearErrorMsg struct {
	seq int
}

// ErrorManager holds the error shown above the help line and clears it after a delay
type ErrorManager struct {
	clearDelay time.Duration
	err        error
	seq        int
}

// NewErrorManager creates an ErrorManager. A non-positive delay uses the default.
func NewErrorManager(clearDelay time.Duration) *ErrorManager {
	if clearDelay <= 0 {
		clearDelay = defaultErrorClearDelay
	}
	return &ErrorManager{clearDelay: clearDelay}
}

// SetError replaces the displayed error
func (e *ErrorManager) SetError(err error) {
	e.err = err
	e.seq++
}

// Err returns the displayed error, or nil
func (e *ErrorManager) Err() error {
	return e.err
}

// ClearAfterDelay schedules clearing of the current error
func (e *ErrorManager) ClearAfterDelay() tea.Cmd {
	seq := e.seq
	return tea.Tick(e.clearDelay, func(time.Time) tea.Msg {
		return clearErrorMsg{seq: seq}
	})
}

// Handle clears the error when msg belongs to it
func (e *ErrorManager) Handle(msg clearErrorMsg) {
	if msg.seq == e.seq {
		e.err = nil
	}
}

// View renders the error for a terminal of the given width
func (e *ErrorManager) View(width int) string {
	if e.err == nil {
		return ""
	}
	return theme.ErrorStyle.Render(formatErrorForDisplay(e.err, width))
}

// formatErrorForDisplay formats an error message for TUI display.
// It limits the error to maxErrorLines and wraps text based on terminal width,
// accounting for the "Error: " prefix on the first line.
// Messages that do not fit end with "...".
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}

	message := err.Error()
	if message == "" {
		return errorPrefix + "unknown error"
	}

	firstLineWidth := maxWidth - utf8.RuneCountInString(errorPrefix)
	if firstLineWidth < 10 {
		firstLineWidth = 10
	}

	otherLineWidth := maxWidth
	if otherLineWidth < 10 {
		otherLineWidth = 10
	}

	words := strings.Fields(message)
	if len(words) == 0 {
		return errorPrefix + message
	}

	var lines []string
	var currentLine strings.Builder
	currentLineWidth := firstLineWidth
	truncated := false

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		currentLen := utf8.RuneCountInString(currentLine.String())

		if currentLen > 0 && currentLen+1+wordLen > currentLineWidth {
			lines = append(lines, currentLine.String())
			currentLine.Reset()

			if len(lines) >= maxErrorLines {
				truncated = true
				break
			}
			currentLineWidth = otherLineWidth
		}

		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}

	if currentLine.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, currentLine.String())
	}

	if truncated {
		lastLine := lines[maxErrorLines-1]
		truncLen := utf8.RuneCountInString(truncationMark)

		if utf8.RuneCountInString(lastLine)+truncLen > otherLineWidth {
			if maxRunes := otherLineWidth - truncLen; maxRunes > 0 {
				runes := []rune(lastLine)
				if len(runes) > maxRunes {
					lastLine = string(runes[:maxRunes])
				}
			}
		}
		lines[maxErrorLines-1] = lastLine + truncationMark
	}

	result := errorPrefix + lines[0]
	if len(lines) > 1 {
		result += "\n" + strings.Join(lines[1:], "\n")
	}
	return result
}

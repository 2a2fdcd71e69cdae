package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/services"
	"ofsconsole/internal/theme"
)

type uiState int

const (
	stateExplorer uiState = iota
	stateDialog
	stateHelp
	stateQuitting
)

// Layout constants
const (
	errorLines      = 2 // Reserved for the error display
	headerLines     = 1
	helpLines       = 1
	paneChromeH     = 2 // Top and bottom border
	paneChromeW     = 4 // Borders and horizontal padding
	treePaneDivisor = 3
)

type Model struct {
	commandLog   *CommandLog           // Request/response log pane
	connState    domain.ConnState      // Last reported connection state
	devMode      bool                  // Development mode (shows version info in dialogs)
	dialog       *Dialog               // Active command dialog
	errorManager *ErrorManager         // Error display and auto-clearing
	height       int
	helpScreen   *Dialog               // Help screen dialog
	keys         KeyMap                // Keyboard shortcuts
	ops          *ConsoleOperations    // Console calls as tea.Cmds
	pending      int                   // Exchanges in flight
	spinner      spinner.Model
	state        uiState
	stateCh      chan domain.ConnState // Latest connection state, coalesced
	tree         *TreeView             // File explorer pane
	width        int
}

// NewModel creates the explorer for the server at address.
// Wire ObserveState to the session so connection changes reach the status line.
func NewModel(console *services.ConsoleService, address string, errorClearDelay time.Duration, devMode bool) *Model {
	ops := NewConsoleOperations(console, address)

	return &Model{
		commandLog:   NewCommandLog(),
		connState:    ops.State(),
		devMode:      devMode,
		errorManager: NewErrorManager(errorClearDelay),
		keys:         NewKeyMap(),
		ops:          ops,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.SpinnerStyle),
		),
		state:   stateExplorer,
		stateCh: make(chan domain.ConnState, 1),
		tree:    NewTreeView(),
	}
}

// ObserveState records a connection state change. It never blocks; when the
// UI has not caught up, the stale state is replaced.
func (m *Model) ObserveState(state domain.ConnState) {
	for {
		select {
		case m.stateCh <- state:
			return
		default:
		}
		select {
		case <-m.stateCh:
		default:
		}
	}
}

func (m *Model) waitForState() tea.Cmd {
	ch := m.stateCh
	return func() tea.Msg {
		return stateChangedMsg{state: <-ch}
	}
}

func (m *Model) Init() tea.Cmd {
	m.commandLog.Info(fmt.Sprintf("Press %s to connect to %s", m.keys.Connection.Connect.Help().Key, m.ops.Address()))
	return tea.Batch(m.spinner.Tick, m.waitForState())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Messages handled regardless of the active screen
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.state == stateHelp && m.helpScreen != nil {
			updated, cmd := m.helpScreen.Update(msg)
			m.helpScreen = updated.(*Dialog)
			return m, cmd
		}
		if m.state == stateDialog && m.dialog != nil {
			updated, cmd := m.dialog.Update(msg)
			m.dialog = updated.(*Dialog)
			return m, cmd
		}
		return m, nil

	case stateChangedMsg:
		logging.Logger.Debug("Explorer connection state changed", "state", msg.state)
		m.connState = msg.state
		return m, m.waitForState()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearErrorMsg:
		m.errorManager.Handle(msg)
		return m, nil

	case connectResultMsg:
		return m.handleConnectResult(msg)

	case disconnectResultMsg:
		return m.handleDisconnectResult(msg)

	case exchangeResultMsg:
		return m.handleExchangeResult(msg)
	}

	switch m.state {
	case stateExplorer:
		return m.updateExplorer(msg)
	case stateDialog:
		return m.updateDialog(msg)
	case stateHelp:
		return m.updateHelp(msg)
	case stateQuitting:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Application.ForceQuit) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateExplorer(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.handleAction(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Application.ForceQuit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Navigation.Up):
		m.tree.MoveUp()
		return m, nil
	case key.Matches(keyMsg, m.keys.Navigation.Down):
		m.tree.MoveDown()
		return m, nil
	case key.Matches(keyMsg, m.keys.Navigation.Top):
		m.tree.Top()
		return m, nil
	case key.Matches(keyMsg, m.keys.Navigation.Bottom):
		m.tree.Bottom()
		return m, nil
	case key.Matches(keyMsg, m.keys.Navigation.LogUp):
		m.commandLog.ScrollUp()
		return m, nil
	case key.Matches(keyMsg, m.keys.Navigation.LogDown):
		m.commandLog.ScrollDown()
		return m, nil
	}

	if action, ok := m.keys.ActionFor(keyMsg); ok {
		return m.handleAction(action)
	}
	return m, nil
}

// handleAction runs an action message, from a key press or sent directly
func (m *Model) handleAction(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuitMsg:
		if m.connState == domain.StateConnected {
			m.state = stateQuitting
			m.commandLog.Info("Disconnecting before exit...")
			return m, tea.Sequence(m.ops.Disconnect(), tea.Quit)
		}
		return m, tea.Quit

	case ShowHelpMsg:
		contentForm := NewHelpScreen(&m.keys)
		m.helpScreen = NewDialog("Help", contentForm, m.devMode)
		m.state = stateHelp
		// Send initial WindowSizeMsg so viewport can initialize
		initCmd := m.helpScreen.Init()
		updatedDialog, sizeCmd := m.helpScreen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.helpScreen = updatedDialog.(*Dialog)
		return m, tea.Batch(initCmd, sizeCmd)

	case ToggleConnectionMsg:
		switch m.connState {
		case domain.StateConnected:
			return m, m.ops.Disconnect()
		case domain.StateDisconnected:
			m.commandLog.Info(fmt.Sprintf("Connecting to %s...", m.ops.Address()))
			return m, m.ops.Connect()
		default:
			m.commandLog.Info("Connection change already in progress.")
			return m, nil
		}

	case RefreshTreeMsg:
		if !m.requireConnected() {
			return m, nil
		}
		m.commandLog.Sent("SHOW_TREE for explorer update")
		m.pending++
		return m, m.ops.RefreshTree()

	case SendCommandMsg:
		if !m.requireConnected() {
			return m, nil
		}
		m.commandLog.Sent(string(msg.Verb))
		m.pending++
		return m, m.ops.Run(msg.Verb, simpleExchange(msg.Verb))

	case ShowCommandFormMsg:
		if !m.requireConnected() {
			return m, nil
		}
		form, err := NewCommandForm(msg.Verb, m.tree.SelectedPath())
		if err != nil {
			m.errorManager.SetError(err)
			return m, m.errorManager.ClearAfterDelay()
		}
		m.dialog = NewDialog(CommandFormTitle(msg.Verb), form, m.devMode)
		m.state = stateDialog
		return m, m.dialog.Init()

	case OpenNodeMsg:
		node := m.tree.Selected()
		if node == nil {
			return m, nil
		}
		if node.IsDir() {
			m.commandLog.Info(fmt.Sprintf("Selected directory: %s", node.Path))
			return m, nil
		}
		m.commandLog.Info(fmt.Sprintf("Selected file: %s", node.Path))
		if !m.requireConnected() {
			return m, nil
		}
		m.commandLog.Sent(describeCommand(domain.NewCommand(domain.VerbReadFile, node.Path)))
		m.pending++
		return m, m.ops.ReadFile(node.Path)
	}
	return m, nil
}

func (m *Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.dialog.Update(msg)
	m.dialog = updated.(*Dialog)

	form, ok := m.dialog.Content().(*CommandForm)
	if !ok || !form.Completed {
		return m, cmd
	}

	m.dialog = nil
	m.state = stateExplorer
	if form.Cancelled {
		logging.Logger.Debug("Command dialog cancelled", "verb", form.Verb())
		return m, nil
	}

	m.commandLog.Sent(describeCommand(form.Preview()))
	m.pending++
	return m, m.ops.Run(form.Verb(), form.Exchange())
}

func (m *Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.helpScreen.Update(msg)
	m.helpScreen = updated.(*Dialog)

	if content, ok := m.helpScreen.Content().(*HelpScreen); ok && content.Completed {
		m.helpScreen = nil
		m.state = stateExplorer
		return m, nil
	}
	return m, cmd
}

func (m *Model) handleConnectResult(msg connectResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.connState = m.ops.State()
		m.commandLog.Error(fmt.Sprintf("Connection Failed: %v", msg.err))
		m.errorManager.SetError(msg.err)
		return m, m.errorManager.ClearAfterDelay()
	}
	m.connState = domain.StateConnected
	m.commandLog.Success(fmt.Sprintf("Connected to OFS Server at %s", msg.address))
	return m, nil
}

func (m *Model) handleDisconnectResult(msg disconnectResultMsg) (tea.Model, tea.Cmd) {
	m.connState = domain.StateDisconnected
	if msg.err != nil {
		m.commandLog.Error(fmt.Sprintf("Disconnect failed: %v", msg.err))
		return m, nil
	}
	m.commandLog.Info("Connection closed successfully.")
	return m, nil
}

func (m *Model) handleExchangeResult(msg exchangeResultMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}

	if msg.err != nil {
		m.connState = m.ops.State()
		m.commandLog.Error(fmt.Sprintf("ERROR: %v", msg.err))
		m.errorManager.SetError(msg.err)
		return m, m.errorManager.ClearAfterDelay()
	}

	switch {
	case msg.verb == domain.VerbShowTree:
		if msg.forest == nil {
			m.commandLog.Error(fmt.Sprintf("ERROR showing tree: %s", msg.outcome.Message))
			return m, nil
		}
		m.tree.SetForest(msg.forest)
		m.commandLog.Success("Tree structure received. Updating explorer.")
		if skipped := len(msg.forest.Skipped); skipped > 0 {
			m.commandLog.Info(fmt.Sprintf("%d tree lines skipped", skipped))
		}

	case msg.verb == domain.VerbReadFile && msg.path != "" && !msg.outcome.IsError():
		m.commandLog.Success(fmt.Sprintf("Content of %s:", msg.path))
		m.commandLog.Outcome(domain.Raw(msg.outcome.Message))

	default:
		m.commandLog.Outcome(msg.outcome)
	}
	return m, nil
}

// requireConnected logs a notice and returns false when there is no connection
func (m *Model) requireConnected() bool {
	if m.connState == domain.StateConnected {
		return true
	}
	m.commandLog.Error(fmt.Sprintf("Not connected to server. Press %s to connect first.", m.keys.Connection.Connect.Help().Key))
	return false
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	paneHeight := height - headerLines - helpLines - errorLines - paneChromeH
	if paneHeight < 3 {
		paneHeight = 3
	}
	treeWidth, logWidth := m.paneWidths()

	// One line of each pane holds its title
	m.tree.SetSize(treeWidth-paneChromeW, paneHeight-1)
	m.commandLog.SetSize(logWidth-paneChromeW, paneHeight-1)
}

// paneWidths splits the terminal between the tree and the log
func (m *Model) paneWidths() (int, int) {
	treeWidth := m.width / treePaneDivisor
	if treeWidth < 20 {
		treeWidth = 20
	}
	logWidth := m.width - treeWidth
	if logWidth < 20 {
		logWidth = 20
	}
	return treeWidth, logWidth
}

func (m *Model) View() string {
	switch m.state {
	case stateDialog:
		if m.dialog != nil {
			return m.dialog.View()
		}
	case stateHelp:
		if m.helpScreen != nil {
			return m.helpScreen.View()
		}
	}

	var b strings.Builder
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderPanes())
	b.WriteString("\n")
	if errView := m.errorManager.View(m.width); errView != "" {
		b.WriteString(errView)
		b.WriteString("\n")
	}
	b.WriteString(m.renderShortHelp())
	return b.String()
}

func (m *Model) renderStatusLine() string {
	line := theme.TitleStyle.Render("OFS Console") + "  " +
		theme.HelpLabelStyle.Render("Status: ") +
		theme.ConnStateStyle(m.connState).Render(m.connState.Label()) + "  " +
		theme.HelpLabelStyle.Render(m.ops.Address())
	if m.pending > 0 {
		line += "  " + m.spinner.View()
	}
	return line
}

func (m *Model) renderPanes() string {
	treeWidth, logWidth := m.paneWidths()

	treePane := theme.PaneStyle.Width(treeWidth - 2).Render(
		theme.PaneTitleStyle.Render("File Explorer") + "\n" + m.tree.View())
	logPane := theme.PaneStyle.Width(logWidth - 2).Render(
		theme.PaneTitleStyle.Render("Command Log") + "\n" + m.commandLog.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, treePane, logPane)
}

func (m *Model) renderShortHelp() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, theme.HelpShortcutStyle.Render(help.Key)+" "+theme.HelpLabelStyle.Render(help.Desc))
	}
	return strings.Join(parts, theme.HelpLabelStyle.Render(" • "))
}
